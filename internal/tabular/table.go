// Package tabular decodes CSV snapshots into rows addressable by column
// name, so the upstream files can reorder or append columns without
// breaking the parsers.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is a fully read CSV snapshot plus a header->index map.
type Table struct {
	cols map[string]int
	rows [][]string
}

// Read consumes r as CSV with a header row.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(hdr))
	for i, h := range hdr {
		cols[strings.TrimSpace(h)] = i
	}

	t := &Table{cols: cols}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// Rows returns the data rows in file order.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Require verifies the named columns exist. A missing column is the same
// class of fatal failure as an unreachable source.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, ok := t.cols[name]; !ok {
			return fmt.Errorf("required column %q missing", name)
		}
	}
	return nil
}

// Str returns the trimmed cell value, or "" when the column is absent.
func (t *Table) Str(row []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Int parses an integer cell, tolerating float-formatted integers like
// "2012.0". Unparseable cells yield zero.
func (t *Table) Int(row []string, name string) int {
	v := t.Str(row, name)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// Float parses a float cell; unparseable cells yield zero.
func (t *Table) Float(row []string, name string) float64 {
	v := t.Str(row, name)
	if v == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// IntPtr parses an optional integer cell. Empty or unparseable values
// propagate as nil, never as errors.
func (t *Table) IntPtr(row []string, name string) *int {
	v := t.Str(row, name)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

// StrPtr returns the cell value or nil when empty.
func (t *Table) StrPtr(row []string, name string) *string {
	v := t.Str(row, name)
	if v == "" {
		return nil
	}
	return &v
}
