package cutoff

import "strings"

// Normalize trims s, collapses internal whitespace runs to a single space and
// folds case. All code and name comparisons in the engine go through it.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Equal reports whether a and b are equal after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
