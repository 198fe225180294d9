package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved simulations and rank predictions",
	}

	cmd.AddCommand(historySimulationsCmd())
	cmd.AddCommand(historyPredictionsCmd())
	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historySimulationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulations",
		Short: "List saved simulations, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListSimulations(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list simulations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No saved simulations")) //nolint:forbidigo // User-facing output
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSAVED\tRANK\tCATEGORY\tSESSION\tPREFS\tBEST") //nolint:forbidigo // User-facing output
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s %s\t%d\t%s\n", //nolint:forbidigo // User-facing output
					rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Rank, rec.Category,
					rec.Year, rec.Round, len(rec.Preferences), bestLabel(rec.Result.Best))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum entries to show")
	return cmd
}

func historyPredictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "List saved rank predictions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListPredictions(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list predictions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No saved predictions")) //nolint:forbidigo // User-facing output
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSAVED\tKCET\tPUC\tCOMPOSITE\tRANK RANGE") //nolint:forbidigo // User-facing output
			for _, rec := range records {
				p := rec.Prediction
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g%%\t%.2f\t%d - %d\n", //nolint:forbidigo // User-facing output
					rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.ExamScore, rec.BoardPct,
					p.Composite, p.Low, p.High)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum entries to show")
	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved simulation in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := store.GetSimulation(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rec)
			}
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Rank %d, %s, %s %s", //nolint:forbidigo // User-facing output
				rec.Rank, rec.Category, rec.Year, rec.Round)))
			return cli.RenderSimulation(out, &rec.Result)
		},
	}
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func bestLabel(best *model.PreferenceResult) string {
	if best == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s (%s)", best.Preference.CollegeCode, best.Preference.BranchCode, best.Chance.Category)
}
