package model

// PreferenceResult pairs a preference with its match and chance assessment.
type PreferenceResult struct {
	Match      MatchResult      `json:"match"`
	Chance     ChanceAssessment `json:"chance"`
	Preference Preference       `json:"preference"`
}

// ClosingRank returns the matched cutoff rank, if any.
func (r PreferenceResult) ClosingRank() *int {
	if r.Match.Record == nil || !r.Match.Record.HasRank() {
		return nil
	}
	return r.Match.Record.CutoffRank
}

// SimulationResult is the full mock-allotment output for one student.
type SimulationResult struct {
	Best        *PreferenceResult  `json:"best,omitempty"`
	Warning     string             `json:"warning,omitempty"`
	Results     []PreferenceResult `json:"results,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// HasWarning reports whether the dataset could not speak to the requested year and round.
func (s *SimulationResult) HasWarning() bool {
	return s.Warning != ""
}

// WaitingList returns, in priority order, the results that precede the first
// High-or-better option. When no such option exists every result is waiting.
func (s *SimulationResult) WaitingList() []PreferenceResult {
	var waiting []PreferenceResult
	for _, r := range s.Results {
		if r.Chance.Category.AtLeastHigh() {
			break
		}
		if r.Match.Found() {
			waiting = append(waiting, r)
		}
	}
	return waiting
}
