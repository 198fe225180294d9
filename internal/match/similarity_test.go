package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameScore(t *testing.T) {
	tests := []struct {
		name      string
		pref      string
		candidate string
		want      int
	}{
		{name: "identical", pref: "Computer Science Engineering", candidate: "Computer Science Engineering", want: ScoreIdentical},
		{name: "identical after normalization", pref: " computer  science ", candidate: "COMPUTER SCIENCE", want: ScoreIdentical},
		{name: "candidate contains preference", pref: "Computer Science", candidate: "Computer Science and Engineering", want: ScoreContains},
		{name: "preference contains candidate", pref: "Computer Science and Engineering", candidate: "Computer Science", want: ScoreContains},
		{name: "shared word", pref: "Artificial Intelligence", candidate: "AI and Machine Intelligence", want: ScoreWord},
		{name: "common word false positive", pref: "Civil Engineering", candidate: "Mechanical Engineering", want: ScoreWord},
		{name: "no overlap", pref: "Civil", candidate: "Mechanical", want: ScoreNone},
		{name: "empty preference is a substring", pref: "", candidate: "Mechanical", want: ScoreContains},
		{name: "both empty", pref: "", candidate: "  ", want: ScoreIdentical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameScore(tt.pref, tt.candidate))
		})
	}
}
