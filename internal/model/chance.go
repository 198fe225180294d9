package model

// ChanceCategory is the qualitative admission chance for one preference.
// Lower values are better; the ordering is used for best-outcome selection.
type ChanceCategory int

// Chance categories, best first.
const (
	ChanceVeryHigh ChanceCategory = iota
	ChanceHigh
	ChanceModerate
	ChanceLow
	ChanceVeryLow
	ChanceUnknown
)

var chanceLabels = map[ChanceCategory]string{
	ChanceVeryHigh: "Very High Chance",
	ChanceHigh:     "High Chance",
	ChanceModerate: "Moderate Chance",
	ChanceLow:      "Low Chance",
	ChanceVeryLow:  "Very Low Chance",
	ChanceUnknown:  "Unknown",
}

// String returns the display label.
func (c ChanceCategory) String() string {
	if label, ok := chanceLabels[c]; ok {
		return label
	}
	return chanceLabels[ChanceUnknown]
}

// AtLeastHigh reports whether the category is High or VeryHigh.
func (c ChanceCategory) AtLeastHigh() bool {
	return c == ChanceVeryHigh || c == ChanceHigh
}

// MarshalText encodes the category as its label.
func (c ChanceCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category label. Unknown labels decode to ChanceUnknown.
func (c *ChanceCategory) UnmarshalText(text []byte) error {
	for cat, label := range chanceLabels {
		if label == string(text) {
			*c = cat
			return nil
		}
	}
	*c = ChanceUnknown
	return nil
}

// ChanceAssessment is the classification of a (student rank, cutoff) pair.
// Only Category and band membership of Probability are stable; the exact
// probability carries presentation jitter.
type ChanceAssessment struct {
	Difference  *int           `json:"difference,omitempty"` // student rank minus cutoff rank
	Category    ChanceCategory `json:"category"`
	Probability float64        `json:"probability"`
}

// UnknownChance is the assessment used when no cutoff is available.
func UnknownChance() ChanceAssessment {
	return ChanceAssessment{Category: ChanceUnknown}
}
