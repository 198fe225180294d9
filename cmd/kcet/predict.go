package main

import (
	"fmt"

	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/Veraticus/kcet-counsel/internal/rank"
	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict your KCET rank from exam and board marks",
		Long: `Combine the KCET score (out of 180) and the PUC board percentage into a
composite score and map it onto historical rank anchors.`,
		RunE: runPredict,
	}

	cmd.Flags().Float64("exam", -1, "KCET score out of 180 (required)")
	cmd.Flags().Float64("board", -1, "PUC board percentage (required)")
	cmd.Flags().String("category", "general", "Category for college suggestions (general, obc, sc, st)")
	cmd.Flags().Bool("save", false, "Save the prediction to history")
	cmd.Flags().Bool("json", false, "Output JSON")

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	exam, _ := flags.GetFloat64("exam")
	board, _ := flags.GetFloat64("board")
	category, _ := flags.GetString("category")
	save, _ := flags.GetBool("save")
	asJSON, _ := flags.GetBool("json")

	pred, err := rank.NewDefaultPredictor().Predict(exam, board)
	if err != nil {
		if common.IsValidation(err) {
			return common.NewUserError(fmt.Sprintf("Please enter valid marks (KCET: 0-%g, PUC: 0-100)", rank.ExamMax), err)
		}
		return err
	}

	var savedID string
	if save {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := initStorage(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		rec := &model.PredictionRecord{ExamScore: exam, BoardPct: board, Prediction: pred}
		if err := store.SavePrediction(cmd.Context(), rec); err != nil {
			return fmt.Errorf("failed to save prediction: %w", err)
		}
		if settings.HistoryKeep > 0 {
			if _, err := store.PrunePredictions(cmd.Context(), settings.HistoryKeep); err != nil {
				return fmt.Errorf("failed to prune prediction history: %w", err)
			}
		}
		savedID = rec.ID
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, struct {
			ID         string               `json:"id,omitempty"`
			Percentile string               `json:"percentile"`
			Analysis   string               `json:"analysis"`
			Standing   string               `json:"standing"`
			Suggestion rank.Suggestion      `json:"suggestion"`
			Prediction model.RankPrediction `json:"prediction"`
		}{
			ID:         savedID,
			Percentile: rank.Percentile(pred.Medium),
			Analysis:   rank.Analysis(pred.Medium),
			Standing:   rank.CompositeLabel(pred.Composite),
			Suggestion: rank.CollegeSuggestion(pred.Medium, category),
			Prediction: pred,
		})
	}

	return cli.RenderPrediction(out, pred, category)
}
