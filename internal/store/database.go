// Package store is an optional Postgres sink for the built dataset. The
// pipeline never reads from it; it exists so downstream consumers can query
// the tables without going through the service.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/fortuna/qbvalue/internal/pipeline"
)

// Database wraps the PostgreSQL connection holding the published tables.
type Database struct {
	conn *sql.DB
}

// NewDatabase opens and verifies a connection.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{conn: db}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// EnsureSchema creates the output tables if they do not exist yet.
func (db *Database) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS qb_model (
			game_id             TEXT NOT NULL,
			season              INT NOT NULL,
			week                INT NOT NULL,
			gameday             TEXT,
			team                TEXT NOT NULL,
			opponent            TEXT,
			player_id           TEXT NOT NULL,
			player_name         TEXT,
			player_display_name TEXT,
			start_number        INT NOT NULL,
			rookie_year         INT,
			entry_year          INT,
			draft_number        INT,
			player_value        DOUBLE PRECISION NOT NULL,
			team_value          DOUBLE PRECISION,
			PRIMARY KEY (game_id, team)
		)`,
		`CREATE TABLE IF NOT EXISTS team_model (
			game_id    TEXT NOT NULL,
			season     INT NOT NULL,
			week       INT NOT NULL,
			gameday    TEXT,
			team       TEXT NOT NULL,
			team_value DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (game_id, team)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// ReplaceSnapshot swaps both output tables for the new dataset inside one
// transaction, so readers never observe a half-replaced state.
func (db *Database) ReplaceSnapshot(ctx context.Context, snap *pipeline.Snapshot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qb_model`); err != nil {
		return fmt.Errorf("clear qb_model: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_model`); err != nil {
		return fmt.Errorf("clear team_model: %w", err)
	}

	modelStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO qb_model (
			game_id, season, week, gameday, team, opponent,
			player_id, player_name, player_display_name,
			start_number, rookie_year, entry_year, draft_number,
			player_value, team_value
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`)
	if err != nil {
		return fmt.Errorf("prepare qb_model insert: %w", err)
	}
	defer modelStmt.Close()

	for _, r := range snap.Model {
		if _, err := modelStmt.ExecContext(ctx,
			r.GameID, r.Season, r.Week, r.Gameday, r.Team, r.Opponent,
			r.PlayerID, r.PlayerName, r.PlayerDisplayName,
			r.StartNumber, r.RookieYear, r.EntryYear, r.DraftNumber,
			r.PlayerValue, r.TeamValue,
		); err != nil {
			return fmt.Errorf("insert qb_model row %s/%s: %w", r.GameID, r.Team, err)
		}
	}

	teamStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_model (game_id, season, week, gameday, team, team_value)
		VALUES ($1,$2,$3,$4,$5,$6)`)
	if err != nil {
		return fmt.Errorf("prepare team_model insert: %w", err)
	}
	defer teamStmt.Close()

	for _, r := range snap.TeamModel {
		if _, err := teamStmt.ExecContext(ctx,
			r.GameID, r.Season, r.Week, r.Gameday, r.Team, r.TeamValue,
		); err != nil {
			return fmt.Errorf("insert team_model row %s/%s: %w", r.GameID, r.Team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("[store] replaced %d model rows, %d team rows", len(snap.Model), len(snap.TeamModel))
	return nil
}

// HealthCheck verifies the connection is alive.
func (db *Database) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return db.conn.PingContext(ctx)
}
