package pipeline

import "github.com/fortuna/qbvalue/internal/ingest/nflverse"

// Value computes the fixed-coefficient linear rating over a stat line.
// The same formula applies at player grain and team grain; only the rows
// differ. Coefficients follow the FiveThirtyEight QB Elo weighting:
// https://fivethirtyeight.com/methodology/how-our-nfl-predictions-work/
func Value(s nflverse.CountingStats) float64 {
	return -2.2*s.Attempts +
		3.7*s.Completions +
		s.PassingYards/5 +
		11.3*s.PassingTDs -
		14.1*s.Interceptions -
		8*s.Sacks -
		1.1*s.Carries +
		0.6*s.RushingYards +
		15.9*s.RushingTDs
}
