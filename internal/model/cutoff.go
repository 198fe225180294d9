// Package model defines the data types shared across the counseling engine.
package model

// CutoffRecord is one historical admission cutoff data point.
type CutoffRecord struct {
	CutoffRank     *int   `json:"cutoff_rank"` // nil when missing or unparseable, never zero
	TotalSeats     *int   `json:"total_seats,omitempty"`
	AvailableSeats *int   `json:"available_seats,omitempty"`
	Year           string `json:"year"`
	Round          string `json:"round"`
	InstituteCode  string `json:"institute_code"`
	CourseCode     string `json:"course"`
	BranchName     string `json:"branch_name,omitempty"`
	CollegeName    string `json:"college_name,omitempty"`
	Category       string `json:"category"`
}

// HasRank reports whether the record carries a usable cutoff rank.
func (r *CutoffRecord) HasRank() bool {
	return r != nil && r.CutoffRank != nil
}

// Rank returns the cutoff rank, or zero when absent. Callers should check HasRank first.
func (r *CutoffRecord) Rank() int {
	if !r.HasRank() {
		return 0
	}
	return *r.CutoffRank
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
