package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/gocarina/gocsv"
)

type csvRow struct {
	Year           string `csv:"year"`
	Round          string `csv:"round"`
	InstituteCode  string `csv:"institute_code"`
	CourseCode     string `csv:"course"`
	Category       string `csv:"category"`
	CutoffRank     string `csv:"cutoff_rank"`
	CollegeName    string `csv:"college_name"`
	BranchName     string `csv:"branch_name"`
	TotalSeats     string `csv:"total_seats"`
	AvailableSeats string `csv:"available_seats"`
}

// headerAliases maps every accepted spelling, lowercased, to its csvRow column.
var headerAliases = func() map[string]string {
	groups := map[string][]string{
		"year":            yearFields,
		"round":           roundFields,
		"institute_code":  instituteFields,
		"course":          courseFields,
		"category":        categoryFields,
		"cutoff_rank":     rankFields,
		"college_name":    collegeFields,
		"branch_name":     branchFields,
		"total_seats":     totalFields,
		"available_seats": availableFields,
	}
	out := make(map[string]string)
	for canonical, names := range groups {
		for _, n := range names {
			out[strings.ToLower(n)] = canonical
		}
	}
	return out
}()

// aliasReader rewrites the header row to canonical column names.
type aliasReader struct {
	*csv.Reader
	seenHeader bool
}

func (a *aliasReader) Read() ([]string, error) {
	row, err := a.Reader.Read()
	if err != nil || a.seenHeader {
		return row, err
	}
	a.seenHeader = true
	return canonicalHeader(row), nil
}

func (a *aliasReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := a.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func canonicalHeader(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			key = canonical
		}
		out[i] = key
	}
	return out
}

// ReadCSV parses a header-driven delimited dataset.
func ReadCSV(r io.Reader, delim rune) ([]model.CutoffRecord, Report, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []csvRow
	if err := gocsv.UnmarshalCSV(&aliasReader{Reader: cr}, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, Report{}, nil
		}
		return nil, Report{}, fmt.Errorf("failed to parse csv: %w", err)
	}

	var report Report
	records := make([]model.CutoffRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.CutoffRecord{
			Year:           strings.TrimSpace(row.Year),
			Round:          strings.TrimSpace(row.Round),
			InstituteCode:  strings.TrimSpace(row.InstituteCode),
			CourseCode:     strings.TrimSpace(row.CourseCode),
			Category:       strings.TrimSpace(row.Category),
			CollegeName:    strings.TrimSpace(row.CollegeName),
			BranchName:     strings.TrimSpace(row.BranchName),
			CutoffRank:     parseRank(row.CutoffRank),
			TotalSeats:     optionalCount(row.TotalSeats),
			AvailableSeats: optionalCount(row.AvailableSeats),
		}
		report.observe(rec)
		records = append(records, rec)
	}

	return records, report, nil
}
