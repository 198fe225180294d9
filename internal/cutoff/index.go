// Package cutoff holds historical cutoff records in memory and answers filtered lookups.
package cutoff

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Predicate selects cutoff records.
type Predicate func(rec model.CutoffRecord) bool

// Index is an in-memory, read-only collection of cutoff records.
// It is safe for concurrent readers once loaded.
type Index struct {
	records []model.CutoffRecord
}

// NewIndex creates an index holding records.
func NewIndex(records []model.CutoffRecord) *Index {
	idx := &Index{}
	idx.Load(records)
	return idx
}

// Load replaces the indexed records. Rows without a usable rank are kept for
// their metadata but are never returned by UsableQuery.
func (i *Index) Load(records []model.CutoffRecord) {
	i.records = make([]model.CutoffRecord, len(records))
	copy(i.records, records)

	missing := 0
	for _, rec := range i.records {
		if !rec.HasRank() {
			missing++
		}
	}

	slog.Debug("cutoff index loaded", "records", len(i.records), "missing_rank", missing)
}

// Len returns the number of records, including rows without a rank.
func (i *Index) Len() int {
	return len(i.records)
}

// Records returns a copy of every record in load order.
func (i *Index) Records() []model.CutoffRecord {
	out := make([]model.CutoffRecord, len(i.records))
	copy(out, i.records)
	return out
}

// HasAnyRecordFor reports whether at least one record belongs to year and round.
func (i *Index) HasAnyRecordFor(year, round string) bool {
	y, r := Normalize(year), Normalize(round)
	for _, rec := range i.records {
		if Normalize(rec.Year) == y && Normalize(rec.Round) == r {
			return true
		}
	}
	return false
}

// Query returns every record satisfying pred, in load order.
func (i *Index) Query(pred Predicate) []model.CutoffRecord {
	var out []model.CutoffRecord
	for _, rec := range i.records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// UsableQuery is Query restricted to records that carry a cutoff rank.
func (i *Index) UsableQuery(pred Predicate) []model.CutoffRecord {
	return i.Query(func(rec model.CutoffRecord) bool {
		return rec.HasRank() && pred(rec)
	})
}

// First returns the first usable record satisfying pred.
func (i *Index) First(pred Predicate) (model.CutoffRecord, bool) {
	for _, rec := range i.records {
		if rec.HasRank() && pred(rec) {
			return rec, true
		}
	}
	return model.CutoffRecord{}, false
}

// BranchName returns the first non-blank branch name recorded for a college
// and course, in load order.
func (i *Index) BranchName(college, course string) (string, bool) {
	for _, rec := range i.records {
		if Equal(rec.InstituteCode, college) && Equal(rec.CourseCode, course) && strings.TrimSpace(rec.BranchName) != "" {
			return rec.BranchName, true
		}
	}
	return "", false
}

// FillBranchNames returns a copy of prefs in which blank branch names take the
// dataset's name for the same college and course. Preferences the dataset
// does not know keep their blank name.
func (i *Index) FillBranchNames(prefs model.Preferences) model.Preferences {
	out := make(model.Preferences, len(prefs))
	copy(out, prefs)
	for j := range out {
		if strings.TrimSpace(out[j].BranchName) != "" {
			continue
		}
		if name, ok := i.BranchName(out[j].CollegeCode, out[j].BranchCode); ok {
			out[j].BranchName = name
		}
	}
	return out
}

// Years returns the distinct years present, newest first.
func (i *Index) Years() []string {
	return distinctDesc(i.records, func(rec model.CutoffRecord) (string, bool) {
		return rec.Year, true
	})
}

// Rounds returns the distinct rounds present for year, in descending order.
func (i *Index) Rounds(year string) []string {
	y := Normalize(year)
	return distinctDesc(i.records, func(rec model.CutoffRecord) (string, bool) {
		return rec.Round, Normalize(rec.Year) == y
	})
}

// Coverage maps each year to its rounds.
func (i *Index) Coverage() map[string][]string {
	out := make(map[string][]string)
	for _, year := range i.Years() {
		out[year] = i.Rounds(year)
	}
	return out
}

func distinctDesc(records []model.CutoffRecord, key func(model.CutoffRecord) (string, bool)) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		v, ok := key(rec)
		if !ok || v == "" {
			continue
		}
		n := Normalize(v)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Filter is a field-based predicate builder. Empty fields match anything.
type Filter struct {
	Year          string
	Round         string
	InstituteCode string
	CourseCode    string
	Category      string
	BranchName    string
}

// Predicate converts the filter into a Predicate using normalized comparison.
func (f Filter) Predicate() Predicate {
	return func(rec model.CutoffRecord) bool {
		return matchField(f.Year, rec.Year) &&
			matchField(f.Round, rec.Round) &&
			matchField(f.InstituteCode, rec.InstituteCode) &&
			matchField(f.CourseCode, rec.CourseCode) &&
			matchField(f.Category, rec.Category) &&
			matchField(f.BranchName, rec.BranchName)
	}
}

func matchField(want, got string) bool {
	return want == "" || Equal(want, got)
}
