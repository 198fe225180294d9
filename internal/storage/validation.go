// Package storage provides the data persistence layer for imported cutoff
// datasets and simulation history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidSimulation = errors.New("invalid simulation")
	ErrInvalidPrediction = errors.New("invalid prediction")
	ErrInvalidLimit      = errors.New("limit must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

func validateSimulation(rec *model.SimulationRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: simulation", ErrNilParameter)
	}
	if rec.Rank <= 0 {
		return fmt.Errorf("%w: rank must be positive", ErrInvalidSimulation)
	}
	if strings.TrimSpace(rec.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidSimulation)
	}
	if strings.TrimSpace(rec.Year) == "" || strings.TrimSpace(rec.Round) == "" {
		return fmt.Errorf("%w: year and round are required", ErrInvalidSimulation)
	}
	if len(rec.Preferences) == 0 {
		return fmt.Errorf("%w: preferences are required", ErrInvalidSimulation)
	}
	return nil
}

func validatePrediction(rec *model.PredictionRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: prediction", ErrNilParameter)
	}
	if math.IsNaN(rec.Prediction.Composite) || rec.Prediction.Composite < 0 || rec.Prediction.Composite > 100 {
		return fmt.Errorf("%w: composite %.2f outside 0-100", ErrInvalidPrediction, rec.Prediction.Composite)
	}
	p := rec.Prediction
	if p.Low <= 0 || p.Low > p.Medium || p.Medium > p.High {
		return fmt.Errorf("%w: band %d/%d/%d is not ordered", ErrInvalidPrediction, p.Low, p.Medium, p.High)
	}
	return nil
}
