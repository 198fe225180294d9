package match

import (
	"log/slog"

	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Matcher searches the cutoff index under a fixed descending-specificity
// tier order and returns the first tier that produces a candidate.
type Matcher struct {
	index Index
}

// NewMatcher creates a matcher over index.
func NewMatcher(index Index) *Matcher {
	return &Matcher{index: index}
}

// query carries the normalized keys for one preference lookup.
type query struct {
	college  string
	course   string
	name     string
	category string
	year     string
	round    string
}

func newQuery(pref model.Preference, category, year, round string) query {
	return query{
		college:  cutoff.Normalize(pref.CollegeCode),
		course:   cutoff.Normalize(pref.BranchCode),
		name:     cutoff.Normalize(pref.BranchName),
		category: cutoff.Normalize(category),
		year:     cutoff.Normalize(year),
		round:    cutoff.Normalize(round),
	}
}

func (q query) sameCourse(rec model.CutoffRecord) bool {
	return cutoff.Normalize(rec.InstituteCode) == q.college &&
		cutoff.Normalize(rec.CourseCode) == q.course
}

func (q query) sameName(rec model.CutoffRecord) bool {
	return cutoff.Normalize(rec.BranchName) == q.name
}

func (q query) sameCategory(rec model.CutoffRecord) bool {
	return cutoff.Normalize(rec.Category) == q.category
}

func (q query) sameSession(rec model.CutoffRecord) bool {
	return cutoff.Normalize(rec.Year) == q.year && cutoff.Normalize(rec.Round) == q.round
}

// Match returns the best cutoff record for pref. A preference without a
// college or course code never matches.
func (m *Matcher) Match(pref model.Preference, category, year, round string) model.MatchResult {
	q := newQuery(pref, category, year, round)
	if q.college == "" || q.course == "" {
		return model.NoMatch()
	}

	result := m.match(q)
	slog.Debug("matched preference",
		"option", pref.Option(),
		"priority", pref.Priority,
		"tier", result.Tier.String())
	return result
}

func (m *Matcher) match(q query) model.MatchResult {
	// Tier 1: same course, branch name, category, year and round.
	if rec, ok := m.index.First(func(rec model.CutoffRecord) bool {
		return q.sameCourse(rec) && q.sameName(rec) && q.sameCategory(rec) && q.sameSession(rec)
	}); ok {
		return found(rec, model.TierExact)
	}

	// Tier 2: same course this year and round, any category, closest branch name.
	candidates := m.index.UsableQuery(func(rec model.CutoffRecord) bool {
		return q.sameCourse(rec) && q.sameSession(rec)
	})
	if rec, score, ok := bestByName(candidates, q.name); ok {
		if score >= ScoreContains {
			return found(rec, model.TierCloseName)
		}
		return found(rec, model.TierPartialName)
	}

	// Tier 3: same course, branch name and category in any year or round.
	if rec, ok := m.index.First(func(rec model.CutoffRecord) bool {
		return q.sameCourse(rec) && q.sameName(rec) && q.sameCategory(rec)
	}); ok {
		return found(rec, model.TierHistoricalSame)
	}

	// Tier 4: same course anywhere, closest branch name.
	candidates = m.index.UsableQuery(q.sameCourse)
	if rec, score, ok := bestByName(candidates, q.name); ok {
		if score >= ScoreContains {
			return found(rec, model.TierHistoricalCloseName)
		}
		return found(rec, model.TierHistoricalPartialName)
	}

	return model.NoMatch()
}

// bestByName returns the highest scoring candidate; earlier candidates win ties.
func bestByName(candidates []model.CutoffRecord, name string) (model.CutoffRecord, int, bool) {
	bestScore := ScoreNone
	bestIdx := -1
	for i, c := range candidates {
		if score := NameScore(name, c.BranchName); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < MinAcceptScore {
		return model.CutoffRecord{}, ScoreNone, false
	}
	return candidates[bestIdx], bestScore, true
}

func found(rec model.CutoffRecord, tier model.MatchTier) model.MatchResult {
	r := rec
	return model.MatchResult{Record: &r, Tier: tier}
}
