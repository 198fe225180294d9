// Package chance turns a student rank and a matched cutoff into an admission
// chance category with a presentation probability.
//
// The probability is a display aid sampled inside a fixed band per category.
// Only the category and band membership are stable across runs.
package chance

import (
	"math/rand/v2"

	"github.com/Veraticus/kcet-counsel/internal/model"
)

// RandomSource yields values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Band is a half-open probability interval [Min, Max).
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether p lies inside the band.
func (b Band) Contains(p float64) bool {
	return p >= b.Min && p < b.Max
}

func (b Band) sample(src RandomSource) float64 {
	return b.Min + src.Float64()*(b.Max-b.Min)
}

// Bands used for each outcome. High has two bands depending on how far inside
// the cutoff the student is.
var (
	BandVeryHigh = Band{Min: 95, Max: 100}
	BandHighNear = Band{Min: 85, Max: 95}
	BandHighFar  = Band{Min: 80, Max: 95}
	BandModerate = Band{Min: 60, Max: 80}
	BandLow      = Band{Min: 30, Max: 60}
	BandVeryLow  = Band{Min: 0, Max: 20}
)

// Classification thresholds.
const (
	VeryHighMargin = -1000 // rank difference at or above this is VeryHigh
	HighNearMargin = -5000
	ModeratePct    = 20.0 // percent behind the cutoff still Moderate
	LowPct         = 50.0
)

// Classifier implements the chance heuristic.
type Classifier struct {
	src RandomSource
}

// NewClassifier creates a classifier drawing jitter from src. A nil src uses
// the math/rand/v2 top-level generator, which is safe for concurrent use.
func NewClassifier(src RandomSource) *Classifier {
	if src == nil {
		src = globalSource{}
	}
	return &Classifier{src: src}
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Classify assesses studentRank against rec. A nil record or one without a
// usable rank is always Unknown with probability 0.
func (c *Classifier) Classify(studentRank int, rec *model.CutoffRecord) model.ChanceAssessment {
	if !rec.HasRank() {
		return model.UnknownChance()
	}

	cutoffRank := rec.Rank()
	diff := studentRank - cutoffRank
	category, band := Categorize(studentRank, cutoffRank)

	return model.ChanceAssessment{
		Category:    category,
		Probability: band.sample(c.src),
		Difference:  &diff,
	}
}

// Categorize returns the category and probability band for a rank pair.
// It is deterministic; Classify adds the sampled probability.
func Categorize(studentRank, cutoffRank int) (model.ChanceCategory, Band) {
	diff := studentRank - cutoffRank

	if studentRank <= cutoffRank {
		switch {
		case diff >= VeryHighMargin:
			return model.ChanceVeryHigh, BandVeryHigh
		case diff >= HighNearMargin:
			return model.ChanceHigh, BandHighNear
		default:
			return model.ChanceHigh, BandHighFar
		}
	}

	pctDiff := float64(diff) / float64(cutoffRank) * 100
	switch {
	case pctDiff <= ModeratePct:
		return model.ChanceModerate, BandModerate
	case pctDiff <= LowPct:
		return model.ChanceLow, BandLow
	default:
		return model.ChanceVeryLow, BandVeryLow
	}
}

// BandFor returns the widest band a category's probability may fall in.
func BandFor(category model.ChanceCategory) Band {
	switch category {
	case model.ChanceVeryHigh:
		return BandVeryHigh
	case model.ChanceHigh:
		return BandHighFar
	case model.ChanceModerate:
		return BandModerate
	case model.ChanceLow:
		return BandLow
	case model.ChanceVeryLow:
		return BandVeryLow
	default:
		return Band{}
	}
}
