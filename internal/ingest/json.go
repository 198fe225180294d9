package ingest

import (
	"fmt"
	"io"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/tidwall/gjson"
)

// Field spellings seen across published cutoff exports, preferred first.
var (
	yearFields      = []string{"year", "Year"}
	roundFields     = []string{"round", "Round"}
	instituteFields = []string{"institute_code", "college_code", "instituteCode", "collegeCode"}
	courseFields    = []string{"course", "branch_code", "Course", "courseCode", "course_code"}
	categoryFields  = []string{"category", "Category"}
	rankFields      = []string{"cutoff_rank", "cutoffRank"}
	collegeFields   = []string{"college_name", "collegeName"}
	branchFields    = []string{"branch_name", "branchName"}
	totalFields     = []string{"total_seats", "totalSeats"}
	availableFields = []string{"available_seats", "availableSeats"}
)

// ReadJSON parses a dataset that is either a top-level array of records or
// an object holding the array under "data" or "cutoffs".
func ReadJSON(r io.Reader) ([]model.CutoffRecord, Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to read json: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, Report{}, fmt.Errorf("%w: malformed json", common.ErrUnsupportedFormat)
	}

	items, err := recordArray(gjson.ParseBytes(raw))
	if err != nil {
		return nil, Report{}, err
	}

	var report Report
	records := make([]model.CutoffRecord, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		rec := model.CutoffRecord{
			Year:           text(item, yearFields),
			Round:          text(item, roundFields),
			InstituteCode:  text(item, instituteFields),
			CourseCode:     text(item, courseFields),
			Category:       text(item, categoryFields),
			CollegeName:    text(item, collegeFields),
			BranchName:     text(item, branchFields),
			CutoffRank:     parseRank(text(item, rankFields)),
			TotalSeats:     optionalCount(text(item, totalFields)),
			AvailableSeats: optionalCount(text(item, availableFields)),
		}
		report.observe(rec)
		records = append(records, rec)
	}

	return records, report, nil
}

func recordArray(root gjson.Result) ([]gjson.Result, error) {
	if root.IsArray() {
		return root.Array(), nil
	}
	if root.IsObject() {
		for _, key := range []string{"data", "cutoffs"} {
			if v := root.Get(key); v.IsArray() {
				return v.Array(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: expected an array of cutoff records", common.ErrUnsupportedFormat)
}

// text returns the first present field as a string. Numbers keep their
// shortest decimal form, so 2024 reads as "2024".
func text(item gjson.Result, names []string) string {
	for _, name := range names {
		v := item.Get(name)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		return v.String()
	}
	return ""
}
