// Package engine runs mock seat-allotment simulations over a cutoff dataset.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/chance"
	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/match"
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Suggestions shown when no preference has a High or better chance.
var Suggestions = []string{
	"Consider adding more safety options with higher closing ranks",
	"Reorder preferences based on realistic chances",
	"Include management quota seats as backup",
	"Check if your category has better chances in other rounds",
}

// AllotmentEngine orchestrates matching and classification across a preference list.
type AllotmentEngine struct {
	coverage       CoverageChecker
	matcher        Matcher
	classifier     Classifier
	maxPreferences int
}

// Config holds configuration options for the allotment engine.
type Config struct {
	// MaxPreferences bounds the list size; zero means unlimited.
	MaxPreferences int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxPreferences: 0}
}

// New creates an engine over index using the standard matcher and classifier.
func New(index *cutoff.Index, src chance.RandomSource) *AllotmentEngine {
	return NewWithConfig(index, match.NewMatcher(index), chance.NewClassifier(src), DefaultConfig())
}

// NewWithConfig creates an engine with explicit collaborators.
func NewWithConfig(coverage CoverageChecker, matcher Matcher, classifier Classifier, config Config) *AllotmentEngine {
	return &AllotmentEngine{
		coverage:       coverage,
		matcher:        matcher,
		classifier:     classifier,
		maxPreferences: config.MaxPreferences,
	}
}

// Request is one student's simulation input.
type Request struct {
	Category    string            `json:"category"`
	Year        string            `json:"year"`
	Round       string            `json:"round"`
	Preferences model.Preferences `json:"preferences"`
	Rank        int               `json:"rank"`
}

// Validate checks the preconditions for running a simulation.
func (r Request) Validate() error {
	if r.Rank <= 0 {
		return common.InvalidInput("rank must be a positive integer, got %d", r.Rank)
	}
	if strings.TrimSpace(r.Category) == "" {
		return common.InvalidInput("category is required")
	}
	if strings.TrimSpace(r.Year) == "" || strings.TrimSpace(r.Round) == "" {
		return common.InvalidInput("year and round are required")
	}
	if len(r.Preferences) == 0 {
		return common.InvalidInput("at least one preference is required")
	}
	if err := r.Preferences.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return nil
}

// Simulate runs the mock allotment for req.
func (e *AllotmentEngine) Simulate(ctx context.Context, req Request) (*model.SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if e.maxPreferences > 0 && len(req.Preferences) > e.maxPreferences {
		return nil, common.InvalidInput("%d preferences exceeds the limit of %d", len(req.Preferences), e.maxPreferences)
	}

	if !e.coverage.HasAnyRecordFor(req.Year, req.Round) {
		slog.Info("dataset does not cover requested session", "year", req.Year, "round", req.Round)
		return &model.SimulationResult{
			Warning: fmt.Sprintf("No cutoff data available for %s %s.", req.Year, req.Round),
		}, nil
	}

	results := make([]model.PreferenceResult, 0, len(req.Preferences))
	for _, pref := range req.Preferences {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		m := e.matcher.Match(pref, req.Category, req.Year, req.Round)
		results = append(results, model.PreferenceResult{
			Preference: pref,
			Match:      m,
			Chance:     e.classifier.Classify(req.Rank, m.Record),
		})
	}

	sim := &model.SimulationResult{
		Results: results,
		Best:    SelectBest(results),
	}
	if sim.Best == nil || !sim.Best.Chance.Category.AtLeastHigh() {
		sim.Suggestions = append([]string(nil), Suggestions...)
	}

	slog.Debug("simulation complete",
		"rank", req.Rank,
		"category", req.Category,
		"preferences", len(results),
		"best", bestOption(sim.Best))

	return sim, nil
}

// SelectBest picks the predicted allotment: the highest-priority VeryHigh
// option, else the highest-priority High option, else the first entry when
// results are ordered by category then priority. Returns nil when no result
// has usable data.
func SelectBest(results []model.PreferenceResult) *model.PreferenceResult {
	if len(results) == 0 {
		return nil
	}

	ranked := make([]model.PreferenceResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Chance.Category != b.Chance.Category {
			return a.Chance.Category < b.Chance.Category
		}
		return a.Preference.Priority < b.Preference.Priority
	})

	for _, want := range []model.ChanceCategory{model.ChanceVeryHigh, model.ChanceHigh} {
		for i := range ranked {
			if ranked[i].Chance.Category == want {
				return &ranked[i]
			}
		}
	}
	if ranked[0].Chance.Category == model.ChanceUnknown {
		return nil
	}
	return &ranked[0]
}

func bestOption(best *model.PreferenceResult) string {
	if best == nil {
		return ""
	}
	return best.Preference.Option()
}
