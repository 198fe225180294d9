// Package match finds the best historical cutoff for a student preference.
package match

import (
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Index is the subset of cutoff.Index the matcher needs.
type Index interface {
	// First returns the first record with a usable rank satisfying pred.
	First(pred cutoff.Predicate) (model.CutoffRecord, bool)
	// UsableQuery returns every record with a usable rank satisfying pred.
	UsableQuery(pred cutoff.Predicate) []model.CutoffRecord
}

// PreferenceMatcher matches one preference for a category, year and round.
type PreferenceMatcher interface {
	Match(pref model.Preference, category, year, round string) model.MatchResult
}
