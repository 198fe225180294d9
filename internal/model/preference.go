package model

import (
	"errors"
	"fmt"
)

// ErrInvalidPreferences is returned when a preference list violates its ordering rules.
var ErrInvalidPreferences = errors.New("invalid preference list")

// Preference is one entry in a student's ranked wishlist.
type Preference struct {
	CollegeCode string `json:"college_code"`
	BranchCode  string `json:"branch_code"`
	CollegeName string `json:"college_name,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	Priority    int    `json:"priority"`
}

// Option returns the combined college and course code, e.g. "E001CS".
func (p Preference) Option() string {
	return p.CollegeCode + p.BranchCode
}

// Preferences is an ordered preference list. Priorities are 1-based and dense.
type Preferences []Preference

// Renumber reassigns priorities so they follow slice order starting at 1.
func (p Preferences) Renumber() {
	for i := range p {
		p[i].Priority = i + 1
	}
}

// Append adds a preference at the end of the list with the next priority.
func (p Preferences) Append(pref Preference) Preferences {
	pref.Priority = len(p) + 1
	return append(p, pref)
}

// Remove deletes the preference at index and renumbers the remainder.
func (p Preferences) Remove(index int) (Preferences, error) {
	if index < 0 || index >= len(p) {
		return p, fmt.Errorf("%w: index %d out of range", ErrInvalidPreferences, index)
	}

	out := make(Preferences, 0, len(p)-1)
	out = append(out, p[:index]...)
	out = append(out, p[index+1:]...)
	out.Renumber()
	return out, nil
}

// Move swaps the preference at index with its neighbour in the given direction
// (negative moves up, positive moves down). Moving past either end is a no-op.
func (p Preferences) Move(index, delta int) {
	if index < 0 || index >= len(p) || delta == 0 {
		return
	}

	target := index + 1
	if delta < 0 {
		target = index - 1
	}
	if target < 0 || target >= len(p) {
		return
	}

	p[index], p[target] = p[target], p[index]
	p.Renumber()
}

// Validate checks that the list is non-empty and that priorities are
// strictly increasing, unique and dense starting from 1.
func (p Preferences) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: at least one preference is required", ErrInvalidPreferences)
	}

	for i, pref := range p {
		if pref.Priority != i+1 {
			return fmt.Errorf("%w: preference %d has priority %d, want %d", ErrInvalidPreferences, i, pref.Priority, i+1)
		}
	}

	return nil
}
