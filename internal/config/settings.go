package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. KCET_DATABASE_PATH.
const EnvPrefix = "KCET"

// Configuration keys.
const (
	KeyDatasetPath    = "dataset.path"
	KeyDatasetDefault = "dataset.apply_defaults"
	KeyDatabasePath   = "database.path"
	KeyYear           = "simulation.year"
	KeyRound          = "simulation.round"
	KeyMaxPreferences = "simulation.max_preferences"
	KeyHistoryKeep    = "history.keep_predictions"
	KeyServerAddr     = "server.addr"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// Settings is the typed view of the configuration.
type Settings struct {
	DatasetPath    string
	DatabasePath   string
	Year           string
	Round          string
	ServerAddr     string
	LogLevel       string
	LogFormat      string
	MaxPreferences int
	HistoryKeep    int
	ApplyDefaults  bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "$HOME/.local/share/kcet/kcet.db")
	v.SetDefault(KeyDatasetDefault, true)
	v.SetDefault(KeyMaxPreferences, 250)
	v.SetDefault(KeyHistoryKeep, 10)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// BindEnv makes every key overridable through KCET_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from .env style files without overriding the
// existing environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(ExpandPath(p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		slog.Debug("loaded environment file", "path", p)
	}
	return nil
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DatasetPath:    ExpandPath(v.GetString(KeyDatasetPath)),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		Year:           strings.TrimSpace(v.GetString(KeyYear)),
		Round:          strings.TrimSpace(v.GetString(KeyRound)),
		ServerAddr:     v.GetString(KeyServerAddr),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		MaxPreferences: v.GetInt(KeyMaxPreferences),
		HistoryKeep:    v.GetInt(KeyHistoryKeep),
		ApplyDefaults:  v.GetBool(KeyDatasetDefault),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings for values the application cannot use.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.DatabasePath) == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, s.LogFormat)
	}
	if s.MaxPreferences < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyMaxPreferences)
	}
	if s.HistoryKeep < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyHistoryKeep)
	}
	return nil
}
