package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/Veraticus/kcet-counsel/internal/rank"
)

// OutcomeMessage returns the one-line verdict shown for a chance category.
func OutcomeMessage(c model.ChanceCategory) string {
	switch c {
	case model.ChanceVeryHigh:
		return "Excellent! You would definitely be allotted this option."
	case model.ChanceHigh:
		return "Great! You would likely be allotted this option."
	case model.ChanceModerate:
		return "Moderate chance. This could be a close call."
	case model.ChanceLow:
		return "Low chance. Consider safer options."
	case model.ChanceVeryLow:
		return "Very low chance. This option is too ambitious."
	default:
		return "No cutoff data available for this option."
	}
}

// RenderSimulation writes the recommended outcome, the per-preference
// breakdown, and suggestions.
func RenderSimulation(w io.Writer, res *model.SimulationResult) error {
	if res == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Mock Allotment") + "\n")

	if res.HasWarning() {
		b.WriteString(FormatWarning(res.Warning) + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if best := res.Best; best != nil {
		content := fmt.Sprintf("%s  %s\n%s\n%s",
			BoldStyle.Render(best.Preference.Option()),
			describePreference(best.Preference),
			ChanceStyle(best.Chance.Category).Render(fmt.Sprintf("%s (%.0f%%)", best.Chance.Category, best.Chance.Probability)),
			OutcomeMessage(best.Chance.Category))
		b.WriteString(RenderBox(TargetIcon+" Predicted allotment", content) + "\n")
	} else {
		b.WriteString(FormatWarning("No allotment predicted from the available data.") + "\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "\n#\tOption\tBranch\tClosing rank\tMatch\tChance\n-\t------\t------\t------------\t-----\t------\n") //nolint:forbidigo // User-facing output
	for _, r := range res.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", //nolint:forbidigo // User-facing output
			r.Preference.Priority,
			r.Preference.Option(),
			branchLabel(r),
			formatRank(r.ClosingRank()),
			r.Match.Tier,
			ChanceStyle(r.Chance.Category).Render(r.Chance.Category.String()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var tail strings.Builder
	if waiting := res.WaitingList(); len(waiting) > 0 && res.Best != nil && res.Best.Chance.Category.AtLeastHigh() {
		options := make([]string, 0, len(waiting))
		for _, r := range waiting {
			options = append(options, r.Preference.Option())
		}
		tail.WriteString("\n" + FormatInfo("Waiting on higher preferences: "+strings.Join(options, ", ")) + "\n")
	}
	if len(res.Suggestions) > 0 {
		tail.WriteString("\n" + BoldStyle.Render("Suggestions") + "\n")
		for _, s := range res.Suggestions {
			tail.WriteString("  • " + s + "\n")
		}
	}
	_, err := io.WriteString(w, tail.String())
	return err
}

// RenderPrediction writes a rank band with its percentile and commentary.
func RenderPrediction(w io.Writer, p model.RankPrediction, category string) error {
	suggestion := rank.CollegeSuggestion(p.Medium, category)
	lines := []string{
		fmt.Sprintf("Composite score: %.2f (%s)", p.Composite, rank.CompositeLabel(p.Composite)),
		fmt.Sprintf("Predicted rank:  %s", BoldStyle.Render(strconv.Itoa(p.Medium))),
		fmt.Sprintf("Likely range:    %d - %d", p.Low, p.High),
		fmt.Sprintf("Percentile:      %s", rank.Percentile(p.Medium)),
		"",
		rank.Analysis(p.Medium),
		SubtleStyle.Render(fmt.Sprintf("Colleges to consider: %s (%s)", suggestion.Name, suggestion.Branch)),
	}
	_, err := fmt.Fprintln(w, RenderBox(ChartIcon+" Rank Prediction", strings.Join(lines, "\n")))
	return err
}

// RenderCoverage lists the rounds present for each year, in the given year order.
func RenderCoverage(w io.Writer, years []string, rounds map[string][]string) error {
	if len(years) == 0 {
		_, err := fmt.Fprintln(w, FormatWarning("No cutoff data loaded."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", BoldStyle.Render("Year"), BoldStyle.Render("Rounds")) //nolint:forbidigo // User-facing output
	for _, y := range years {
		fmt.Fprintf(tw, "%s\t%s\n", y, strings.Join(rounds[y], ", ")) //nolint:forbidigo // User-facing output
	}
	return tw.Flush()
}

// RenderCutoffs writes cutoff records as a table.
func RenderCutoffs(w io.Writer, records []model.CutoffRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No matching cutoff records."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Year\tRound\tOption\tCategory\tBranch\tCutoff\n----\t-----\t------\t--------\t------\t------\n") //nolint:forbidigo // User-facing output
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", //nolint:forbidigo // User-facing output
			r.Year, r.Round, r.InstituteCode+r.CourseCode, r.Category, r.BranchName, formatRank(r.CutoffRank))
	}
	return tw.Flush()
}

func describePreference(p model.Preference) string {
	parts := make([]string, 0, 2)
	if p.CollegeName != "" {
		parts = append(parts, p.CollegeName)
	}
	if p.BranchName != "" {
		parts = append(parts, p.BranchName)
	}
	return strings.Join(parts, " · ")
}

func branchLabel(r model.PreferenceResult) string {
	if r.Preference.BranchName != "" {
		return r.Preference.BranchName
	}
	if r.Match.Record != nil && r.Match.Record.BranchName != "" {
		return r.Match.Record.BranchName
	}
	return "-"
}

func formatRank(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
