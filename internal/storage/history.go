package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/google/uuid"
)

// SaveSimulation stores a simulation run, assigning an ID and timestamp
// when they are unset.
func (s *SQLiteStorage) SaveSimulation(ctx context.Context, rec *model.SimulationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSimulation(rec); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	prefsJSON, err := json.Marshal(rec.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	var bestOption, bestChance string
	if best := rec.Result.Best; best != nil {
		bestOption = best.Preference.Option()
		bestChance = best.Chance.Category.String()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations (
			id, student_rank, category, year, round, preferences, result,
			best_option, best_chance, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Rank,
		rec.Category,
		rec.Year,
		rec.Round,
		string(prefsJSON),
		string(resultJSON),
		bestOption,
		bestChance,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation %s: %w", rec.ID, err)
	}
	return nil
}

// GetSimulation loads one simulation by ID.
func (s *SQLiteStorage) GetSimulation(ctx context.Context, id string) (*model.SimulationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, student_rank, category, year, round, preferences, result, created_at
		FROM simulations WHERE id = ?
	`, id)

	rec, err := scanSimulation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: simulation %s", common.ErrNotFound, id)
	}
	return rec, err
}

// ListSimulations returns the most recent simulations, newest first.
func (s *SQLiteStorage) ListSimulations(ctx context.Context, limit int) ([]model.SimulationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, student_rank, category, year, round, preferences, result, created_at
		FROM simulations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.SimulationRecord
	for rows.Next() {
		rec, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row scanner) (*model.SimulationRecord, error) {
	var (
		rec                   model.SimulationRecord
		prefsJSON, resultJSON string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Rank,
		&rec.Category,
		&rec.Year,
		&rec.Round,
		&prefsJSON,
		&resultJSON,
		&rec.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan simulation: %w", err)
	}

	if err := json.Unmarshal([]byte(prefsJSON), &rec.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result for %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// SavePrediction stores a rank prediction, assigning an ID and timestamp
// when they are unset.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, rec *model.PredictionRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePrediction(rec); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rank_predictions (
			id, exam_score, board_pct, composite, rank_low, rank_medium, rank_high, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.ExamScore,
		rec.BoardPct,
		rec.Prediction.Composite,
		rec.Prediction.Low,
		rec.Prediction.Medium,
		rec.Prediction.High,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction %s: %w", rec.ID, err)
	}
	return nil
}

// ListPredictions returns the most recent predictions, newest first.
func (s *SQLiteStorage) ListPredictions(ctx context.Context, limit int) ([]model.PredictionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, exam_score, board_pct, composite, rank_low, rank_medium, rank_high, created_at
		FROM rank_predictions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.PredictionRecord
	for rows.Next() {
		var rec model.PredictionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ExamScore,
			&rec.BoardPct,
			&rec.Prediction.Composite,
			&rec.Prediction.Low,
			&rec.Prediction.Medium,
			&rec.Prediction.High,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PrunePredictions keeps only the newest keep predictions and reports how
// many were removed.
func (s *SQLiteStorage) PrunePredictions(ctx context.Context, keep int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if keep < 0 {
		return 0, fmt.Errorf("%w: keep %d", ErrInvalidLimit, keep)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM rank_predictions
		WHERE id NOT IN (
			SELECT id FROM rank_predictions
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune predictions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned predictions: %w", err)
	}
	return int(n), nil
}
