package nflverse

// CountingStats are the nine raw passing/rushing counting stats carried on
// every player row and summed into team rows. They exist only inside the
// pipeline; published outputs drop them once VALUE is computed.
type CountingStats struct {
	Completions   float64 `json:"completions"`
	Attempts      float64 `json:"attempts"`
	PassingYards  float64 `json:"passing_yards"`
	PassingTDs    float64 `json:"passing_tds"`
	Interceptions float64 `json:"interceptions"`
	Sacks         float64 `json:"sacks"`
	Carries       float64 `json:"carries"`
	RushingYards  float64 `json:"rushing_yards"`
	RushingTDs    float64 `json:"rushing_tds"`
}

// Add accumulates o into s.
func (s *CountingStats) Add(o CountingStats) {
	s.Completions += o.Completions
	s.Attempts += o.Attempts
	s.PassingYards += o.PassingYards
	s.PassingTDs += o.PassingTDs
	s.Interceptions += o.Interceptions
	s.Sacks += o.Sacks
	s.Carries += o.Carries
	s.RushingYards += o.RushingYards
	s.RushingTDs += o.RushingTDs
}

// PlayerGameStat is one quarterback's stat line for one game week, with the
// team code already normalized to the canonical abbreviation.
type PlayerGameStat struct {
	PlayerID          string
	PlayerName        string
	PlayerDisplayName string
	Position          string
	Team              string
	Season            int
	Week              int
	Stats             CountingStats
}

// PlayerBio is one player's biographical and draft record. The four
// draft/bio fields may be missing in the source and are eligible for
// backfill; nil means missing.
type PlayerBio struct {
	PlayerID    string
	FirstName   string
	LastName    string
	BirthDate   *string
	RookieYear  *int
	EntryYear   *int
	DraftNumber *int
}

// GameRecord is one scheduled game. GameID is rebuilt from the normalized
// team codes, superseding whatever identifier the raw file carried.
type GameRecord struct {
	GameID     string `json:"game_id"`
	Gameday    string `json:"gameday"`
	Season     int    `json:"season"`
	Week       int    `json:"week"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeQBID   string `json:"home_qb_id"`
	HomeQBName string `json:"home_qb_name"`
	AwayQBID   string `json:"away_qb_id"`
	AwayQBName string `json:"away_qb_name"`
}
