package main

import (
	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/spf13/cobra"
)

func cutoffsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cutoffs",
		Short: "Look up cutoff records",
		Long: `List cutoff records filtered by college, course, category, year, or round.
Comparisons ignore case and extra whitespace.`,
		RunE: runCutoffs,
	}

	cmd.Flags().String("college", "", "Institute code, e.g. E001")
	cmd.Flags().String("course", "", "Course code, e.g. CS")
	cmd.Flags().String("category", "", "Reservation category, e.g. GM")
	cmd.Flags().String("branch", "", "Branch name")
	cmd.Flags().String("year", "", "Year")
	cmd.Flags().String("round", "", "Round")
	cmd.Flags().Int("limit", 50, "Maximum records to show (0 for all)")
	cmd.Flags().Bool("json", false, "Output JSON")

	return cmd
}

func runCutoffs(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	idx, err := loadIndex(cmd.Context(), settings)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	filter := cutoff.Filter{}
	filter.InstituteCode, _ = flags.GetString("college")
	filter.CourseCode, _ = flags.GetString("course")
	filter.Category, _ = flags.GetString("category")
	filter.BranchName, _ = flags.GetString("branch")
	filter.Year, _ = flags.GetString("year")
	filter.Round, _ = flags.GetString("round")
	limit, _ := flags.GetInt("limit")
	asJSON, _ := flags.GetBool("json")

	records := idx.Query(filter.Predicate())
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), records)
	}
	return cli.RenderCutoffs(cmd.OutOrStdout(), records)
}
