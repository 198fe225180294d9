package engine

import (
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// CoverageChecker reports whether a dataset covers a year and round at all.
type CoverageChecker interface {
	HasAnyRecordFor(year, round string) bool
}

// Matcher finds the best cutoff record for one preference.
type Matcher interface {
	Match(pref model.Preference, category, year, round string) model.MatchResult
}

// Classifier scores a student rank against a matched cutoff.
type Classifier interface {
	Classify(studentRank int, rec *model.CutoffRecord) model.ChanceAssessment
}
