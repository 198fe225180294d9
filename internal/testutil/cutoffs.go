package testutil

import "github.com/Veraticus/kcet-counsel/internal/model"

// CutoffBuilder accumulates cutoff records. Session and category settings
// apply to every record added after them.
type CutoffBuilder struct {
	year     string
	round    string
	category string
	records  []model.CutoffRecord
}

// NewCutoffBuilder starts a builder for GM records in 2024 Round 1.
func NewCutoffBuilder() *CutoffBuilder {
	return &CutoffBuilder{year: "2024", round: "Round 1", category: "GM"}
}

// Session sets the year and round for subsequent records.
func (b *CutoffBuilder) Session(year, round string) *CutoffBuilder {
	b.year, b.round = year, round
	return b
}

// Category sets the reservation category for subsequent records.
func (b *CutoffBuilder) Category(category string) *CutoffBuilder {
	b.category = category
	return b
}

// Add appends a record with a closing rank.
func (b *CutoffBuilder) Add(college, course, branch string, rank int) *CutoffBuilder {
	rec := b.record(college, course, branch)
	rec.CutoffRank = model.IntPtr(rank)
	b.records = append(b.records, rec)
	return b
}

// AddUnranked appends a record whose closing rank is absent.
func (b *CutoffBuilder) AddUnranked(college, course, branch string) *CutoffBuilder {
	b.records = append(b.records, b.record(college, course, branch))
	return b
}

// Build returns a copy of the accumulated records.
func (b *CutoffBuilder) Build() []model.CutoffRecord {
	out := make([]model.CutoffRecord, len(b.records))
	copy(out, b.records)
	return out
}

func (b *CutoffBuilder) record(college, course, branch string) model.CutoffRecord {
	return model.CutoffRecord{
		Year:          b.year,
		Round:         b.round,
		InstituteCode: college,
		CourseCode:    course,
		BranchName:    branch,
		Category:      b.category,
	}
}

// StandardCutoffs is a small dataset spanning two years and two rounds:
//
//	2024 Round 1: E001 CS 2000, E003 ME (no rank)
//	2024 Round 2: E002 EC 9000
//	2023 Round 1: E002 EC 8500, E001 CS 2500 (SCG)
func StandardCutoffs() []model.CutoffRecord {
	return NewCutoffBuilder().
		Add("E001", "CS", "Computer Science", 2000).
		AddUnranked("E003", "ME", "Mechanical").
		Session("2024", "Round 2").
		Add("E002", "EC", "Electronics", 9000).
		Session("2023", "Round 1").
		Add("E002", "EC", "Electronics", 8500).
		Category("SCG").
		Add("E001", "CS", "Computer Science", 2500).
		Build()
}
