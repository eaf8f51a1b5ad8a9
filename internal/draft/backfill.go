// Package draft merges the manually curated missing-draft-data table into
// the player biographical records. The nflverse player file has gaps in its
// draft fields; this table was compiled by hand to plug them.
package draft

import (
	"fmt"
	"log"
	"os"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
	"github.com/fortuna/qbvalue/internal/tabular"
)

// DefaultPath is where the curated table lives relative to the working
// directory.
const DefaultPath = "data/missing_draft_data.csv"

// Fix holds the backfill values for one player. Fields mirror the four
// fillable PlayerBio fields; nil means the curated table has no value either.
type Fix struct {
	PlayerID    string
	BirthDate   *string
	RookieYear  *int
	EntryYear   *int
	DraftNumber *int
}

// Load reads the curated table from path. The file's first column is a row
// index and is ignored; all other columns are located by header name.
// Duplicate player_ids keep the first occurrence.
func Load(path string) ([]Fix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open missing draft data: %w", err)
	}
	defer f.Close()

	t, err := tabular.Read(f)
	if err != nil {
		return nil, fmt.Errorf("decode missing draft data: %w", err)
	}
	if err := t.Require("player_id"); err != nil {
		return nil, fmt.Errorf("missing draft data: %w", err)
	}

	seen := make(map[string]bool)
	var out []Fix
	for _, row := range t.Rows() {
		id := t.Str(row, "player_id")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Fix{
			PlayerID:    id,
			BirthDate:   t.StrPtr(row, "birth_date"),
			RookieYear:  t.IntPtr(row, "rookie_year"),
			EntryYear:   t.IntPtr(row, "entry_year"),
			DraftNumber: t.IntPtr(row, "draft_number"),
		})
	}

	log.Printf("[draft] loaded %d backfill rows from %s", len(out), path)
	return out, nil
}

// Apply fills the nil bio/draft fields of each record from the matching Fix.
// Each of the four fields is filled independently and a non-nil primary
// value always wins. Row count and order of bios are preserved; players
// without a fix pass through untouched.
func Apply(bios []nflverse.PlayerBio, fixes []Fix) []nflverse.PlayerBio {
	byID := make(map[string]Fix, len(fixes))
	for _, fx := range fixes {
		if _, ok := byID[fx.PlayerID]; !ok {
			byID[fx.PlayerID] = fx
		}
	}

	out := make([]nflverse.PlayerBio, len(bios))
	for i, bio := range bios {
		fx, ok := byID[bio.PlayerID]
		if !ok {
			out[i] = bio
			continue
		}
		if bio.BirthDate == nil {
			bio.BirthDate = fx.BirthDate
		}
		if bio.RookieYear == nil {
			bio.RookieYear = fx.RookieYear
		}
		if bio.EntryYear == nil {
			bio.EntryYear = fx.EntryYear
		}
		if bio.DraftNumber == nil {
			bio.DraftNumber = fx.DraftNumber
		}
		out[i] = bio
	}
	return out
}

// File is a DraftSource over a fixed path.
type File struct {
	Path string
}

// MissingDraftData loads the curated table from the configured path.
func (f File) MissingDraftData() ([]Fix, error) {
	path := f.Path
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}
