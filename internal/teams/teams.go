package teams

// Mapping translates historical or alternate franchise abbreviations to the
// canonical codes used as join keys everywhere downstream.
type Mapping map[string]string

// The two sources normalize relocations differently, so each side gets its
// own table. Using the wrong side produces duplicate "teams" in the joined
// output instead of an error, which is why they are kept separate and passed
// explicitly.
var (
	// PlayerStats is the mapping for the nflverse player stats file.
	PlayerStats = Mapping{
		"LA": "LAR",
		"LV": "OAK",
	}

	// Schedule is the mapping for the game schedule file, which still carries
	// pre-relocation codes for STL and SD.
	Schedule = Mapping{
		"LA":  "LAR",
		"LV":  "OAK",
		"STL": "LAR",
		"SD":  "LAC",
	}
)

// Normalize returns the canonical code for abbr under m. Codes absent from
// the mapping pass through unchanged.
func Normalize(abbr string, m Mapping) string {
	if canonical, ok := m[abbr]; ok {
		return canonical
	}
	return abbr
}
