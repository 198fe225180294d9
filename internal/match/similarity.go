package match

import (
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/cutoff"
)

// Name similarity scores.
const (
	ScoreIdentical = 100
	ScoreContains  = 80
	ScoreWord      = 60
	ScoreNone      = 0

	// MinAcceptScore is the lowest score a fuzzy tier will accept.
	MinAcceptScore = ScoreWord
)

// NameScore rates how well a candidate branch name matches the preference's
// branch name. An empty name is a substring of every name.
func NameScore(preferenceName, candidateName string) int {
	want := cutoff.Normalize(preferenceName)
	got := cutoff.Normalize(candidateName)

	switch {
	case want == got:
		return ScoreIdentical
	case strings.Contains(got, want) || strings.Contains(want, got):
		return ScoreContains
	}

	for _, word := range strings.Fields(want) {
		if strings.Contains(got, word) {
			return ScoreWord
		}
	}

	return ScoreNone
}
