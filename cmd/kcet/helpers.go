package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/config"
	"github.com/Veraticus/kcet-counsel/internal/cutoff"
	"github.com/Veraticus/kcet-counsel/internal/ingest"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/Veraticus/kcet-counsel/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings returns the validated configuration.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Configuration is invalid", err)
	}
	return settings, nil
}

// initStorage opens the database and applies migrations.
func initStorage(ctx context.Context, settings *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadIndex builds the cutoff index from --dataset when set, else from the database.
func loadIndex(ctx context.Context, settings *config.Settings) (*cutoff.Index, error) {
	var records []model.CutoffRecord

	if settings.DatasetPath != "" {
		opts := ingest.Options{}
		if settings.ApplyDefaults {
			opts.Defaults = &ingest.StandardDefaults
		}
		recs, _, err := ingest.LoadFile(settings.DatasetPath, opts)
		if err != nil {
			return nil, err
		}
		records = recs
	} else {
		store, err := initStorage(ctx, settings)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()

		records, err = store.GetCutoffs(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(records) == 0 {
		return nil, common.NewUserError("No cutoff data loaded. Run 'kcet import <file>' first.", common.ErrDatasetEmpty)
	}
	return cutoff.NewIndex(records), nil
}

// parsePreference reads COLLEGE:COURSE[:Branch Name].
func parsePreference(s string) (model.Preference, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return model.Preference{}, common.InvalidInput("preference %q must look like COLLEGE:COURSE[:Branch Name]", s)
	}

	pref := model.Preference{
		CollegeCode: strings.TrimSpace(parts[0]),
		BranchCode:  strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		pref.BranchName = strings.TrimSpace(parts[2])
	}
	return pref, nil
}

// readPreferences decodes a JSON preference array. Lists with no priorities
// are numbered in file order.
func readPreferences(r io.Reader) (model.Preferences, error) {
	var prefs model.Preferences
	if err := json.NewDecoder(r).Decode(&prefs); err != nil {
		return nil, common.InvalidInput("preferences file is not a JSON array of preferences: %v", err)
	}

	numbered := false
	for _, p := range prefs {
		if p.Priority != 0 {
			numbered = true
			break
		}
	}
	if !numbered {
		prefs.Renumber()
	}
	return prefs, nil
}

// collectPreferences merges a preferences file with repeated --pref values.
func collectPreferences(file string, flags []string) (model.Preferences, error) {
	var prefs model.Preferences

	if file != "" {
		f, err := os.Open(config.ExpandPath(file)) //nolint:gosec // user-supplied path
		if err != nil {
			return nil, fmt.Errorf("failed to open preferences file: %w", err)
		}
		defer func() { _ = f.Close() }()

		prefs, err = readPreferences(f)
		if err != nil {
			return nil, err
		}
	}

	for _, raw := range flags {
		p, err := parsePreference(raw)
		if err != nil {
			return nil, err
		}
		prefs = prefs.Append(p)
	}
	return prefs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
