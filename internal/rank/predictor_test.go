package rank

import (
	"testing"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPredictor_Validation(t *testing.T) {
	tests := []struct {
		name    string
		anchors []model.RankAnchor
		wantErr bool
	}{
		{"default table", DefaultAnchors(), false},
		{"single anchor", []model.RankAnchor{{Score: 50, Rank: 100}}, false},
		{"empty", nil, true},
		{"ascending", []model.RankAnchor{{Score: 50, Rank: 100}, {Score: 60, Rank: 50}}, true},
		{"duplicate score", []model.RankAnchor{{Score: 50, Rank: 100}, {Score: 50, Rank: 200}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPredictor(tt.anchors)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAnchors)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestNewPredictor_CopiesAnchors(t *testing.T) {
	anchors := []model.RankAnchor{{Score: 80, Rank: 4000}, {Score: 75, Rank: 8000}}
	p, err := NewPredictor(anchors)
	require.NoError(t, err)

	anchors[0].Rank = 1
	assert.Equal(t, 6000, p.FromComposite(77.5).Medium)
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name    string
		exam    float64
		board   float64
		want    float64
		wantErr bool
	}{
		{"perfect", 180, 100, 100, false},
		{"zero", 0, 0, 0, false},
		{"half", 90, 50, 50, false},
		{"mixed", 144, 90, 84, false},
		{"exam above max", 181, 90, 0, true},
		{"negative exam", -1, 90, 0, true},
		{"board above 100", 100, 100.5, 0, true},
		{"negative board", 100, -2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Composite(tt.exam, ExamMax, tt.board)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				assert.Contains(t, err.Error(), "Please enter valid marks")
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComposite_InvalidMax(t *testing.T) {
	_, err := Composite(10, 0, 50)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestFromComposite_Interpolation(t *testing.T) {
	p, err := NewPredictor([]model.RankAnchor{{Score: 80, Rank: 4000}, {Score: 75, Rank: 8000}, {Score: 70, Rank: 15000}})
	require.NoError(t, err)

	got := p.FromComposite(77.5)
	assert.Equal(t, model.RankPrediction{Low: 5700, Medium: 6000, High: 6300, Composite: 77.5}, got)

	// exactly on an inner anchor
	assert.Equal(t, 8000, p.FromComposite(75).Medium)
}

func TestFromComposite_Bounds(t *testing.T) {
	p := NewDefaultPredictor()

	top := p.FromComposite(99)
	assert.Equal(t, 1, top.Low)
	assert.Equal(t, 1, top.Medium)
	assert.Equal(t, 1, top.High)

	atTop := p.FromComposite(98)
	assert.Equal(t, 1, atTop.Medium)

	for _, c := range []float64{40, 39.9, 0} {
		got := p.FromComposite(c)
		assert.Equal(t, WorstBand.Low, got.Low)
		assert.Equal(t, WorstBand.Medium, got.Medium)
		assert.Equal(t, WorstBand.High, got.High)
		assert.InDelta(t, c, got.Composite, 1e-9)
	}
}

func TestFromComposite_Monotonic(t *testing.T) {
	p := NewDefaultPredictor()

	prev := p.FromComposite(100).Medium
	for c := 99.9; c >= 0; c -= 0.1 {
		got := p.FromComposite(c)
		assert.GreaterOrEqual(t, got.Medium, prev, "composite %.1f", c)
		assert.LessOrEqual(t, got.Low, got.Medium)
		assert.LessOrEqual(t, got.Medium, got.High)
		prev = got.Medium
	}
}

func TestFromComposite_SingleAnchor(t *testing.T) {
	p, err := NewPredictor([]model.RankAnchor{{Score: 50, Rank: 100}})
	require.NoError(t, err)

	assert.Equal(t, 1, p.FromComposite(60).Medium)
	assert.Equal(t, WorstBand.Medium, p.FromComposite(40).Medium)
}

func TestPredict(t *testing.T) {
	p := NewDefaultPredictor()

	got, err := p.Predict(144, 90)
	require.NoError(t, err)
	assert.InDelta(t, 84, got.Composite, 1e-9)
	// between 85/2000 and 80/4000
	assert.Equal(t, 2400, got.Medium)
	assert.Equal(t, 2280, got.Low)
	assert.Equal(t, 2520, got.High)

	_, err = p.Predict(200, 90)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, "100.00", Percentile(0))
	assert.Equal(t, "50.00", Percentile(156000))
	assert.Equal(t, "99.90", Percentile(312))
	assert.Equal(t, "0.00", Percentile(CandidatePool))
}

func TestCompositeLabel(t *testing.T) {
	assert.Equal(t, "Top 1%", CompositeLabel(95))
	assert.Equal(t, "Top 5%", CompositeLabel(94.99))
	assert.Equal(t, "Top 15%", CompositeLabel(80))
	assert.Equal(t, "Below Average", CompositeLabel(79.9))
}

func TestAnalysis(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1000, "Elite rank! Likely to secure top colleges like RVCE or BMSCE."},
		{1001, "Great rank! Strong chances for top branches."},
		{15000, "Solid rank! Good college options available."},
		{30000, "Moderate rank. Explore various colleges."},
		{30001, "Lower rank. Consider all possible options."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Analysis(tt.rank), "rank %d", tt.rank)
	}
}

func TestCollegeSuggestion(t *testing.T) {
	tests := []struct {
		name     string
		rank     int
		category string
		want     string
	}{
		{"general top", 900, "general", "RVCE, BMSCE"},
		{"obc top", 1500, "OBC", "RVCE, BMSCE"},
		{"general second", 1500, "general", "MSRIT, PESIT"},
		{"sc third", 25000, "sc", "BMSIT, SIT"},
		{"st fourth", 60000, " st ", "NMIT, DSCE"},
		{"unknown uses general", 2000, "2AG", "MSRIT, PESIT"},
		{"beyond all tiers", 70000, "st", "Other colleges"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollegeSuggestion(tt.rank, tt.category).Name)
		})
	}
	assert.Equal(t, "All branches", CollegeSuggestion(100000, "general").Branch)
}
