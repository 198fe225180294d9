package main

import (
	"log/slog"

	"github.com/Veraticus/kcet-counsel/internal/chance"
	"github.com/Veraticus/kcet-counsel/internal/config"
	"github.com/Veraticus/kcet-counsel/internal/engine"
	"github.com/Veraticus/kcet-counsel/internal/match"
	"github.com/Veraticus/kcet-counsel/internal/rank"
	"github.com/Veraticus/kcet-counsel/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator and rank predictor over HTTP",
		Long: `Start a JSON API under /api/v1 with simulate, predict, cutoffs, and
coverage endpoints. Prometheus metrics are exposed at /metrics.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	_ = viper.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	idx, err := loadIndex(ctx, settings)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng := engine.NewWithConfig(idx, match.NewMatcher(idx), chance.NewClassifier(nil),
		engine.Config{MaxPreferences: settings.MaxPreferences})

	srv := server.New(eng, rank.NewDefaultPredictor(), idx, store, server.Config{
		DefaultYear:  settings.Year,
		DefaultRound: settings.Round,
		HistoryKeep:  settings.HistoryKeep,
	})

	slog.Info("Starting server", "addr", settings.ServerAddr, "records", idx.Len(), "database", store.Path())
	return srv.Run(ctx, settings.ServerAddr)
}
