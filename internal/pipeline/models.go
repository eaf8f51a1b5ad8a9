package pipeline

import (
	"time"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
)

// PlayerGameRow is a quarterback stat line enriched with biographical data
// and game context. It is the working row of the pipeline; the published
// outputs are the narrower ModelRow and TeamModelRow.
type PlayerGameRow struct {
	nflverse.PlayerGameStat

	FirstName   string
	LastName    string
	BirthDate   *string
	RookieYear  *int
	EntryYear   *int
	DraftNumber *int

	// game context, empty when no schedule row matched
	GameID              string
	Gameday             string
	Opponent            string
	StarterID           string
	StarterName         string
	OpponentStarterID   string
	OpponentStarterName string
}

// TeamPerspective is one side of a game under a unified team/opponent
// schema. Two of these exist per GameRecord, and they live only long enough
// to join game context onto player rows.
type TeamPerspective struct {
	GameID              string
	Gameday             string
	Season              int
	Week                int
	Team                string
	Opponent            string
	StarterID           string
	StarterName         string
	OpponentStarterID   string
	OpponentStarterName string
}

// ModelRow is the final player-level output: the selected top passer of one
// team-game, with the raw counting stats already collapsed into VALUE.
//
// StartNumber counts the player's appearances as top passer inside this
// dataset's coverage window only. It is an approximation of career starts
// and is known to undercount for careers that began before the window.
type ModelRow struct {
	GameID            string   `json:"game_id"`
	Season            int      `json:"season"`
	Week              int      `json:"week"`
	Gameday           string   `json:"gameday"`
	Team              string   `json:"team"`
	Opponent          string   `json:"opponent"`
	PlayerID          string   `json:"player_id"`
	PlayerName        string   `json:"player_name"`
	PlayerDisplayName string   `json:"player_display_name"`
	StartNumber       int      `json:"start_number"`
	RookieYear        *int     `json:"rookie_year"`
	EntryYear         *int     `json:"entry_year"`
	DraftNumber       *int     `json:"draft_number"`
	PlayerValue       float64  `json:"player_VALUE"`
	TeamValue         *float64 `json:"team_VALUE"`
}

// TeamModelRow is the final team-level output: one row per team-game with
// the summed stats collapsed into VALUE.
type TeamModelRow struct {
	GameID    string  `json:"game_id"`
	Season    int     `json:"season"`
	Week      int     `json:"week"`
	Gameday   string  `json:"gameday"`
	Team      string  `json:"team"`
	TeamValue float64 `json:"team_VALUE"`
}

// Snapshot holds the outputs of one fully successful pipeline run. It is
// immutable once returned; a failed run produces no Snapshot at all.
type Snapshot struct {
	Model     []ModelRow            `json:"model"`
	TeamModel []TeamModelRow        `json:"team_model"`
	Games     []nflverse.GameRecord `json:"games"`
	FetchedAt time.Time             `json:"fetched_at"`
}
