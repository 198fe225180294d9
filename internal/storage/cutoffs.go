package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/kcet-counsel/internal/model"
)

// ReplaceCutoffs swaps the stored dataset for records in one transaction.
// progress, if set, is called with the number of rows written so far.
func (s *SQLiteStorage) ReplaceCutoffs(ctx context.Context, records []model.CutoffRecord, progress func(int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cutoff_records`); err != nil {
		return fmt.Errorf("failed to clear cutoff records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cutoff_records (
			year, round, institute_code, course_code, category,
			branch_name, college_name, cutoff_rank, total_seats, available_seats
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		_, err = stmt.ExecContext(ctx,
			rec.Year,
			rec.Round,
			rec.InstituteCode,
			rec.CourseCode,
			rec.Category,
			rec.BranchName,
			rec.CollegeName,
			nullInt(rec.CutoffRank),
			nullInt(rec.TotalSeats),
			nullInt(rec.AvailableSeats),
		)
		if err != nil {
			return fmt.Errorf("failed to insert cutoff record %d: %w", i, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cutoff records: %w", err)
	}

	slog.Info("Replaced cutoff dataset", "rows", len(records))
	return nil
}

// GetCutoffs returns the stored dataset in import order.
func (s *SQLiteStorage) GetCutoffs(ctx context.Context) ([]model.CutoffRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getCutoffs(ctx, s.db)
}

func (s *SQLiteStorage) getCutoffs(ctx context.Context, q queryable) ([]model.CutoffRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT year, round, institute_code, course_code, category,
			branch_name, college_name, cutoff_rank, total_seats, available_seats
		FROM cutoff_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cutoff records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CutoffRecord
	for rows.Next() {
		var (
			rec                    model.CutoffRecord
			rank, total, available sql.NullInt64
		)
		if err := rows.Scan(
			&rec.Year,
			&rec.Round,
			&rec.InstituteCode,
			&rec.CourseCode,
			&rec.Category,
			&rec.BranchName,
			&rec.CollegeName,
			&rank,
			&total,
			&available,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cutoff record: %w", err)
		}
		rec.CutoffRank = intPtr(rank)
		rec.TotalSeats = intPtr(total)
		rec.AvailableSeats = intPtr(available)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountCutoffs returns the number of stored cutoff records.
func (s *SQLiteStorage) CountCutoffs(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cutoff_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cutoff records: %w", err)
	}
	return count, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return model.IntPtr(int(v.Int64))
}
