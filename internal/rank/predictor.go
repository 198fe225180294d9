// Package rank predicts an exam rank band from a composite academic score.
package rank

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Exam constants for the KCET composite.
const (
	ExamMax       = 180.0
	ExamWeight    = 0.6
	BoardWeight   = 0.4
	CandidatePool = 312000
	BandSpread    = 0.05
)

// WorstBand is returned for composites at or below the lowest anchor.
var WorstBand = model.RankPrediction{Low: 171000, Medium: 190000, High: 209000}

// ErrInvalidAnchors is returned when a calibration table is empty or unsorted.
var ErrInvalidAnchors = errors.New("invalid rank anchors")

// DefaultAnchors returns the calibrated composite-to-rank table, highest score first.
func DefaultAnchors() []model.RankAnchor {
	return []model.RankAnchor{
		{Score: 98, Rank: 1},
		{Score: 90, Rank: 200},
		{Score: 86, Rank: 1500},
		{Score: 85, Rank: 2000},
		{Score: 80, Rank: 4000},
		{Score: 75, Rank: 8000},
		{Score: 70, Rank: 15000},
		{Score: 65, Rank: 30000},
		{Score: 58.07, Rank: 69918},
		{Score: 58, Rank: 72000},
		{Score: 55, Rank: 90000},
		{Score: 50, Rank: 120000},
		{Score: 45, Rank: 160000},
		{Score: 40, Rank: 200000},
	}
}

// Predictor maps composite scores to rank bands by anchor interpolation.
type Predictor struct {
	anchors []model.RankAnchor
}

// NewPredictor validates anchors and returns a predictor over a copy of them.
// Scores must be strictly descending.
func NewPredictor(anchors []model.RankAnchor) (*Predictor, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: no anchors", ErrInvalidAnchors)
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Score >= anchors[i-1].Score {
			return nil, fmt.Errorf("%w: score %.2f at %d is not below %.2f",
				ErrInvalidAnchors, anchors[i].Score, i, anchors[i-1].Score)
		}
	}

	cp := make([]model.RankAnchor, len(anchors))
	copy(cp, anchors)
	return &Predictor{anchors: cp}, nil
}

// NewDefaultPredictor returns a predictor over DefaultAnchors.
func NewDefaultPredictor() *Predictor {
	p, err := NewPredictor(DefaultAnchors())
	if err != nil {
		panic(err)
	}
	return p
}

// Composite combines an exam score and a board percentage into a 0-100 score.
func Composite(examScore, examMax, boardPct float64) (float64, error) {
	if examMax <= 0 {
		return 0, common.InvalidInput("exam maximum must be positive")
	}
	if examScore < 0 || examScore > examMax || boardPct < 0 || boardPct > 100 ||
		math.IsNaN(examScore) || math.IsNaN(boardPct) {
		return 0, common.InvalidInput("Please enter valid marks (KCET: 0-%g, PUC: 0-100)", examMax)
	}

	composite := ExamWeight*(examScore/examMax*100) + BoardWeight*boardPct
	if composite < 0 || composite > 100 {
		return 0, common.InvalidInput("composite score %.2f outside 0-100", composite)
	}
	return composite, nil
}

// Predict computes the composite for a KCET score out of ExamMax and maps it to a rank band.
func (p *Predictor) Predict(examScore, boardPct float64) (model.RankPrediction, error) {
	composite, err := Composite(examScore, ExamMax, boardPct)
	if err != nil {
		return model.RankPrediction{}, err
	}
	return p.FromComposite(composite), nil
}

// FromComposite maps an already computed composite score to a rank band.
func (p *Predictor) FromComposite(composite float64) model.RankPrediction {
	top := p.anchors[0]
	bottom := p.anchors[len(p.anchors)-1]

	switch {
	case composite >= top.Score:
		return model.RankPrediction{Low: 1, Medium: 1, High: 1, Composite: composite}
	case composite <= bottom.Score:
		pred := WorstBand
		pred.Composite = composite
		return pred
	}

	for i := 0; i < len(p.anchors)-1; i++ {
		higher, lower := p.anchors[i], p.anchors[i+1]
		if composite <= higher.Score && composite >= lower.Score {
			pos := (higher.Score - composite) / (higher.Score - lower.Score)
			medium := float64(higher.Rank) + pos*float64(lower.Rank-higher.Rank)
			return band(int(math.Round(medium)), composite)
		}
	}

	return band(p.nearest(composite).Rank, composite)
}

func (p *Predictor) nearest(composite float64) model.RankAnchor {
	best := p.anchors[0]
	for _, a := range p.anchors[1:] {
		if math.Abs(a.Score-composite) < math.Abs(best.Score-composite) {
			best = a
		}
	}
	return best
}

func band(medium int, composite float64) model.RankPrediction {
	return model.RankPrediction{
		Low:       int(math.Round(float64(medium) * (1 - BandSpread))),
		Medium:    medium,
		High:      int(math.Round(float64(medium) * (1 + BandSpread))),
		Composite: composite,
	}
}

// Percentile returns the share of the candidate pool behind rank, to two decimals.
func Percentile(rank int) string {
	return fmt.Sprintf("%.2f", float64(CandidatePool-rank)/CandidatePool*100)
}

// CompositeLabel buckets a composite score into a coarse standing.
func CompositeLabel(composite float64) string {
	switch {
	case composite >= 95:
		return "Top 1%"
	case composite >= 90:
		return "Top 5%"
	case composite >= 80:
		return "Top 15%"
	default:
		return "Below Average"
	}
}

// Analysis returns commentary for a predicted rank.
func Analysis(rank int) string {
	switch {
	case rank <= 1000:
		return "Elite rank! Likely to secure top colleges like RVCE or BMSCE."
	case rank <= 5000:
		return "Great rank! Strong chances for top branches."
	case rank <= 15000:
		return "Solid rank! Good college options available."
	case rank <= 30000:
		return "Moderate rank. Explore various colleges."
	default:
		return "Lower rank. Consider all possible options."
	}
}

// Suggestion names a college tier a rank can aim for.
type Suggestion struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
}

type tier struct {
	Suggestion
	limits map[string]int
}

var tiers = []tier{
	{
		Suggestion: Suggestion{Name: "RVCE, BMSCE", Branch: "CSE, ECE"},
		limits:     map[string]int{"general": 1000, "obc": 1500, "sc": 2000, "st": 2500},
	},
	{
		Suggestion: Suggestion{Name: "MSRIT, PESIT", Branch: "ISE, EEE"},
		limits:     map[string]int{"general": 5000, "obc": 7000, "sc": 10000, "st": 12000},
	},
	{
		Suggestion: Suggestion{Name: "BMSIT, SIT", Branch: "ME, CE"},
		limits:     map[string]int{"general": 15000, "obc": 20000, "sc": 25000, "st": 30000},
	},
	{
		Suggestion: Suggestion{Name: "NMIT, DSCE", Branch: "All branches"},
		limits:     map[string]int{"general": 30000, "obc": 40000, "sc": 50000, "st": 60000},
	},
}

// CollegeSuggestion returns the first college tier whose category threshold
// covers rank. Unknown categories use the general thresholds.
func CollegeSuggestion(rank int, category string) Suggestion {
	key := strings.ToLower(strings.TrimSpace(category))
	if _, ok := tiers[0].limits[key]; !ok {
		key = "general"
	}
	for _, t := range tiers {
		if rank <= t.limits[key] {
			return t.Suggestion
		}
	}
	return Suggestion{Name: "Other colleges", Branch: "All branches"}
}
