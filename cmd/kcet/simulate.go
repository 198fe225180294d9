package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/kcet-counsel/internal/chance"
	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/config"
	"github.com/Veraticus/kcet-counsel/internal/engine"
	"github.com/Veraticus/kcet-counsel/internal/match"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a mock seat allotment for a preference list",
		Long: `Match each preference against the cutoff dataset, estimate the chance of
allotment, and predict the option you would most likely be allotted.

Preferences are given in priority order, either repeated:
  --pref E001:CS:"Computer Science" --pref E005:EC
or as a JSON file of {college_code, branch_code, branch_name} objects.`,
		RunE: runSimulate,
	}

	cmd.Flags().Int("rank", 0, "Your KCET rank (required)")
	cmd.Flags().String("category", "", "Reservation category, e.g. GM, 2AG, SCG (required)")
	cmd.Flags().String("year", "", "Counseling year (default: simulation.year)")
	cmd.Flags().String("round", "", "Counseling round (default: simulation.round)")
	cmd.Flags().StringArray("pref", nil, "Preference as COLLEGE:COURSE[:Branch Name], repeatable")
	cmd.Flags().String("prefs-file", "", "JSON file with the preference list")
	cmd.Flags().Bool("save", false, "Save the simulation to history")
	cmd.Flags().Bool("json", false, "Output JSON")

	_ = viper.BindPFlag(config.KeyYear, cmd.Flags().Lookup("year"))
	_ = viper.BindPFlag(config.KeyRound, cmd.Flags().Lookup("round"))

	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	studentRank, _ := flags.GetInt("rank")
	category, _ := flags.GetString("category")
	prefFlags, _ := flags.GetStringArray("pref")
	prefsFile, _ := flags.GetString("prefs-file")
	save, _ := flags.GetBool("save")
	asJSON, _ := flags.GetBool("json")

	prefs, err := collectPreferences(prefsFile, prefFlags)
	if err != nil {
		return err
	}

	if settings.Year == "" || settings.Round == "" {
		return common.NewUserError("Set the counseling session with --year and --round, or simulation.year and simulation.round in the config file",
			fmt.Errorf("%w: %s and %s are required", common.ErrMissingConfig, config.KeyYear, config.KeyRound))
	}

	req := engine.Request{
		Rank:        studentRank,
		Category:    category,
		Year:        settings.Year,
		Round:       settings.Round,
		Preferences: prefs,
	}
	if err := req.Validate(); err != nil {
		return common.NewUserError(fmt.Sprintf("Cannot simulate: %v", err), err)
	}

	idx, err := loadIndex(ctx, settings)
	if err != nil {
		return err
	}

	req.Preferences = idx.FillBranchNames(req.Preferences)

	eng := engine.NewWithConfig(idx, match.NewMatcher(idx), chance.NewClassifier(nil),
		engine.Config{MaxPreferences: settings.MaxPreferences})

	res, err := eng.Simulate(ctx, req)
	if err != nil {
		if common.IsValidation(err) {
			return common.NewUserError(fmt.Sprintf("Cannot simulate: %v", err), err)
		}
		return fmt.Errorf("simulation failed: %w", err)
	}

	var savedID string
	if save {
		savedID, err = saveSimulation(cmd, settings, req, res)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, struct {
			*model.SimulationResult
			ID string `json:"id,omitempty"`
		}{res, savedID})
	}

	if err := cli.RenderSimulation(out, res); err != nil {
		return err
	}
	if savedID != "" {
		fmt.Fprintln(out, cli.FormatSuccess("Saved simulation "+savedID)) //nolint:forbidigo // User-facing output
	}
	return nil
}

func saveSimulation(cmd *cobra.Command, settings *config.Settings, req engine.Request, res *model.SimulationResult) (string, error) {
	store, err := initStorage(cmd.Context(), settings)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	rec := &model.SimulationRecord{
		Rank:        req.Rank,
		Category:    req.Category,
		Year:        req.Year,
		Round:       req.Round,
		Preferences: req.Preferences,
		Result:      *res,
	}
	if err := store.SaveSimulation(cmd.Context(), rec); err != nil {
		return "", fmt.Errorf("failed to save simulation: %w", err)
	}
	slog.Debug("saved simulation", "id", rec.ID)
	return rec.ID, nil
}
