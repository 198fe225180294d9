// Package ingest reads cutoff datasets from JSON and CSV files.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
)

// Report summarizes what a reader saw.
type Report struct {
	Rows         int `json:"rows"`
	MissingRank  int `json:"missing_rank"`
	MissingCodes int `json:"missing_codes"`
}

func (r *Report) observe(rec model.CutoffRecord) {
	r.Rows++
	if !rec.HasRank() {
		r.MissingRank++
	}
	if strings.TrimSpace(rec.InstituteCode) == "" || strings.TrimSpace(rec.CourseCode) == "" {
		r.MissingCodes++
	}
}

// Defaults fill in session fields a dataset leaves blank.
type Defaults struct {
	Year     string
	Round    string
	Category string
}

// StandardDefaults are the fallbacks published datasets have historically assumed.
var StandardDefaults = Defaults{Year: "2024", Round: "Round 1", Category: "GM"}

// Apply fills blank fields of each record in place.
func (d Defaults) Apply(records []model.CutoffRecord) {
	for i := range records {
		if strings.TrimSpace(records[i].Year) == "" {
			records[i].Year = d.Year
		}
		if strings.TrimSpace(records[i].Round) == "" {
			records[i].Round = d.Round
		}
		if strings.TrimSpace(records[i].Category) == "" {
			records[i].Category = d.Category
		}
	}
}

// Options control LoadFile.
type Options struct {
	Defaults  *Defaults
	Delimiter rune
}

// LoadFile reads a dataset, choosing the reader from the file extension.
func LoadFile(path string, opts Options) ([]model.CutoffRecord, Report, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied dataset path
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close dataset", "path", path, "error", cerr)
		}
	}()

	var (
		records []model.CutoffRecord
		report  Report
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		records, report, err = ReadJSON(f)
	case ".csv", ".tsv":
		delim := opts.Delimiter
		if delim == 0 {
			delim = ','
			if ext == ".tsv" {
				delim = '\t'
			}
		}
		records, report, err = ReadCSV(f, delim)
	default:
		return nil, Report{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, report, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if opts.Defaults != nil {
		opts.Defaults.Apply(records)
	}

	if report.MissingRank > 0 || report.MissingCodes > 0 {
		slog.Warn("dataset has incomplete rows",
			"path", path,
			"rows", report.Rows,
			"missing_rank", report.MissingRank,
			"missing_codes", report.MissingCodes)
	}
	slog.Info("loaded dataset", "path", path, "rows", report.Rows)

	return records, report, nil
}

// parseRank turns a textual rank into a pointer; blank, unparseable, and
// non-positive values are absent.
func parseRank(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return positive(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return nil
	}
	return positive(int(f))
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return model.IntPtr(n)
}

// optionalCount parses seat counts; zero is a valid count.
func optionalCount(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return model.IntPtr(n)
}
