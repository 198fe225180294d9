package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/Veraticus/kcet-counsel/internal/config"
	"github.com/Veraticus/kcet-counsel/internal/ingest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a cutoff dataset into the local database",
		Long: `Load a JSON or CSV cutoff export and replace the stored dataset with it.

JSON files may be a top-level array or an object with a "data" or "cutoffs"
array. CSV files need a header row; common column spellings are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("delimiter", "", "CSV field delimiter (default: comma, tab for .tsv)")
	cmd.Flags().Bool("no-defaults", false, "Leave blank year, round, and category fields empty")
	cmd.Flags().Bool("dry-run", false, "Parse and report without writing to the database")

	_ = viper.BindPFlag("import.delimiter", cmd.Flags().Lookup("delimiter"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	opts := ingest.Options{}
	if noDefaults, _ := cmd.Flags().GetBool("no-defaults"); !noDefaults && settings.ApplyDefaults {
		opts.Defaults = &ingest.StandardDefaults
	}
	if delim := []rune(viper.GetString("import.delimiter")); len(delim) > 0 {
		opts.Delimiter = delim[0]
	}

	path := config.ExpandPath(args[0])
	records, report, err := ingest.LoadFile(path, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Read %d rows (%d without a usable rank, %d without codes)", //nolint:forbidigo // User-facing output
		report.Rows, report.MissingRank, report.MissingCodes)))

	if viper.GetBool("import.dry_run") {
		fmt.Fprintln(out, cli.FormatWarning("Dry run: database not modified")) //nolint:forbidigo // User-facing output
		return nil
	}

	handler := cli.NewInterruptHandler(os.Stderr, "Import").WithHint("The previous dataset was kept.")
	ctx := handler.HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar, progress := cli.NewProgress(os.Stderr, len(records), "Importing cutoffs...")
	if err := store.ReplaceCutoffs(ctx, records, progress); err != nil {
		_ = bar.Exit()
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("failed to store cutoffs: %w", err)
	}
	_ = bar.Finish()

	slog.Info("Imported cutoff dataset", "path", path, "rows", len(records), "database", store.Path())
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d cutoff records", len(records)))) //nolint:forbidigo // User-facing output
	return nil
}
