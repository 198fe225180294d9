package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/kcet-counsel/internal/chance"
	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// stubClassifier assigns categories by college code.
type stubClassifier map[string]model.ChanceCategory

func (s stubClassifier) Classify(_ int, rec *model.CutoffRecord) model.ChanceAssessment {
	if rec == nil {
		return model.UnknownChance()
	}
	return model.ChanceAssessment{Category: s[rec.InstituteCode], Probability: 50}
}

type stubMatcher struct{}

func (stubMatcher) Match(pref model.Preference, category, year, round string) model.MatchResult {
	if pref.CollegeCode == "NONE" {
		return model.NoMatch()
	}
	return model.MatchResult{
		Record: &model.CutoffRecord{InstituteCode: pref.CollegeCode, CutoffRank: model.IntPtr(1000)},
		Tier:   model.TierExact,
	}
}

type coverAll bool

func (c coverAll) HasAnyRecordFor(_, _ string) bool { return bool(c) }

func prefs(codes ...string) model.Preferences {
	out := make(model.Preferences, 0, len(codes))
	for _, c := range codes {
		out = out.Append(model.Preference{CollegeCode: c, BranchCode: "CS"})
	}
	return out
}

func request(p model.Preferences) Request {
	return Request{Rank: 5000, Category: "GM", Year: "2024", Round: "Round 1", Preferences: p}
}

func TestRequest_Validate(t *testing.T) {
	valid := request(prefs("E001"))
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero rank", func(r *Request) { r.Rank = 0 }},
		{"negative rank", func(r *Request) { r.Rank = -3 }},
		{"blank category", func(r *Request) { r.Category = "  " }},
		{"blank year", func(r *Request) { r.Year = "" }},
		{"blank round", func(r *Request) { r.Round = "\t" }},
		{"no preferences", func(r *Request) { r.Preferences = nil }},
		{"gapped priorities", func(r *Request) { r.Preferences = model.Preferences{{Priority: 2, CollegeCode: "E001"}} }},
	}

	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(prefs("E001"))
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestSimulate_RejectsInvalidRequest(t *testing.T) {
	e := NewWithConfig(coverAll(true), stubMatcher{}, stubClassifier{}, DefaultConfig())
	req := request(prefs("E001"))
	req.Rank = 0

	res, err := e.Simulate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Nil(t, res)
}

func TestSimulate_MaxPreferences(t *testing.T) {
	e := NewWithConfig(coverAll(true), stubMatcher{}, stubClassifier{}, Config{MaxPreferences: 2})

	_, err := e.Simulate(context.Background(), request(prefs("A", "B", "C")))
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = e.Simulate(context.Background(), request(prefs("A", "B")))
	require.NoError(t, err)
}

func TestSimulate_CoverageWarning(t *testing.T) {
	e := NewWithConfig(coverAll(false), stubMatcher{}, stubClassifier{}, DefaultConfig())

	res, err := e.Simulate(context.Background(), request(prefs("E001", "E002")))
	require.NoError(t, err)
	assert.Equal(t, "No cutoff data available for 2024 Round 1.", res.Warning)
	assert.True(t, res.HasWarning())
	assert.Empty(t, res.Results)
	assert.Nil(t, res.Best)
	assert.Empty(t, res.Suggestions)
}

func TestSimulate_ResultsFollowInputOrder(t *testing.T) {
	classes := stubClassifier{"A": model.ChanceLow, "B": model.ChanceVeryHigh, "C": model.ChanceModerate}
	e := NewWithConfig(coverAll(true), stubMatcher{}, classes, DefaultConfig())

	res, err := e.Simulate(context.Background(), request(prefs("A", "NONE", "B", "C")))
	require.NoError(t, err)
	require.Len(t, res.Results, 4)

	for i, r := range res.Results {
		assert.Equal(t, i+1, r.Preference.Priority)
	}
	assert.Equal(t, model.TierNoData, res.Results[1].Match.Tier)
	assert.Equal(t, model.ChanceUnknown, res.Results[1].Chance.Category)
	assert.Equal(t, model.ChanceVeryHigh, res.Results[2].Chance.Category)
}

func TestSimulate_BestOutcome(t *testing.T) {
	tests := []struct {
		name            string
		classes         stubClassifier
		codes           []string
		wantCode        string
		wantSuggestions bool
	}{
		{
			name:     "very high beats earlier high",
			classes:  stubClassifier{"A": model.ChanceHigh, "B": model.ChanceVeryHigh},
			codes:    []string{"A", "B"},
			wantCode: "B",
		},
		{
			name:     "earliest very high wins",
			classes:  stubClassifier{"A": model.ChanceLow, "B": model.ChanceVeryHigh, "C": model.ChanceVeryHigh},
			codes:    []string{"A", "B", "C"},
			wantCode: "B",
		},
		{
			name:     "earliest high when no very high",
			classes:  stubClassifier{"A": model.ChanceModerate, "B": model.ChanceHigh, "C": model.ChanceHigh},
			codes:    []string{"A", "B", "C"},
			wantCode: "B",
		},
		{
			name:            "best category fallback",
			classes:         stubClassifier{"A": model.ChanceVeryLow, "B": model.ChanceModerate, "C": model.ChanceLow},
			codes:           []string{"A", "B", "C"},
			wantCode:        "B",
			wantSuggestions: true,
		},
		{
			name:            "classified entry sorts ahead of unknown",
			classes:         stubClassifier{"A": model.ChanceVeryLow},
			codes:           []string{"NONE", "A"},
			wantCode:        "A",
			wantSuggestions: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewWithConfig(coverAll(true), stubMatcher{}, tt.classes, DefaultConfig())
			res, err := e.Simulate(context.Background(), request(prefs(tt.codes...)))
			require.NoError(t, err)
			require.NotNil(t, res.Best)
			assert.Equal(t, tt.wantCode, res.Best.Preference.CollegeCode)
			if tt.wantSuggestions {
				assert.Equal(t, Suggestions, res.Suggestions)
			} else {
				assert.Empty(t, res.Suggestions)
			}
		})
	}
}

func TestSimulate_BestIsFromResults(t *testing.T) {
	classes := stubClassifier{"A": model.ChanceLow, "B": model.ChanceHigh}
	e := NewWithConfig(coverAll(true), stubMatcher{}, classes, DefaultConfig())

	res, err := e.Simulate(context.Background(), request(prefs("A", "B")))
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.Contains(t, res.Results, *res.Best)
}

func TestSimulate_SuggestionsAreCopied(t *testing.T) {
	e := NewWithConfig(coverAll(true), stubMatcher{}, stubClassifier{"A": model.ChanceLow}, DefaultConfig())

	res, err := e.Simulate(context.Background(), request(prefs("A")))
	require.NoError(t, err)
	res.Suggestions[0] = "changed"
	assert.NotEqual(t, "changed", Suggestions[0])
}

func TestSimulate_ContextCanceled(t *testing.T) {
	e := NewWithConfig(coverAll(true), stubMatcher{}, stubClassifier{}, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Simulate(ctx, request(prefs("A")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSelectBest_Empty(t *testing.T) {
	assert.Nil(t, SelectBest(nil))
}

func TestSimulate_NoUsableData(t *testing.T) {
	e := NewWithConfig(coverAll(true), stubMatcher{}, stubClassifier{}, DefaultConfig())

	res, err := e.Simulate(context.Background(), request(prefs("NONE", "NONE")))
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
	assert.Nil(t, res.Best)
	assert.Equal(t, Suggestions, res.Suggestions)
}

func TestSelectBest_DoesNotReorderInput(t *testing.T) {
	results := []model.PreferenceResult{
		{Preference: model.Preference{Priority: 1, CollegeCode: "A"}, Chance: model.ChanceAssessment{Category: model.ChanceLow}},
		{Preference: model.Preference{Priority: 2, CollegeCode: "B"}, Chance: model.ChanceAssessment{Category: model.ChanceHigh}},
	}

	best := SelectBest(results)
	require.NotNil(t, best)
	assert.Equal(t, "B", best.Preference.CollegeCode)
	assert.Equal(t, "A", results[0].Preference.CollegeCode)
}

func TestSimulate_EndToEnd(t *testing.T) {
	idx := cutoff.NewIndex([]model.CutoffRecord{
		{Year: "2024", Round: "Round 1", InstituteCode: "E001", CourseCode: "CS", BranchName: "Computer Science", Category: "GM", CutoffRank: model.IntPtr(2000)},
		{Year: "2024", Round: "Round 1", InstituteCode: "E002", CourseCode: "EC", BranchName: "Electronics", Category: "GM", CutoffRank: model.IntPtr(9000)},
		{Year: "2023", Round: "Round 2", InstituteCode: "E003", CourseCode: "ME", BranchName: "Mechanical", Category: "GM", CutoffRank: model.IntPtr(4000)},
	})
	e := New(idx, fixedSource(0.5))

	req := Request{
		Rank:     5000,
		Category: " gm ",
		Year:     "2024",
		Round:    "round 1",
		Preferences: model.Preferences{
			{Priority: 1, CollegeCode: "E001", BranchCode: "CS", BranchName: "Computer Science"},
			{Priority: 2, CollegeCode: "E002", BranchCode: "EC", BranchName: "Electronics"},
			{Priority: 3, CollegeCode: "E003", BranchCode: "ME", BranchName: "Mechanical"},
			{Priority: 4, CollegeCode: "E009", BranchCode: "XX", BranchName: "Unknown"},
		},
	}

	res, err := e.Simulate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Results, 4)

	// rank 5000 against cutoff 2000: 150% over, very low.
	assert.Equal(t, model.TierExact, res.Results[0].Match.Tier)
	assert.Equal(t, model.ChanceVeryLow, res.Results[0].Chance.Category)

	// 5000 against 9000 is 4000 under, high.
	assert.Equal(t, model.ChanceHigh, res.Results[1].Chance.Category)
	assert.True(t, chance.BandFor(model.ChanceHigh).Contains(res.Results[1].Chance.Probability))

	assert.Equal(t, model.TierHistoricalSame, res.Results[2].Match.Tier)
	assert.Equal(t, model.TierNoData, res.Results[3].Match.Tier)

	require.NotNil(t, res.Best)
	assert.Equal(t, "E002", res.Best.Preference.CollegeCode)
	assert.Empty(t, res.Suggestions)

	waiting := res.WaitingList()
	require.Len(t, waiting, 1)
	assert.Equal(t, "E001", waiting[0].Preference.CollegeCode)
}
