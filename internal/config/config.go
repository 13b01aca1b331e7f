package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BUDGET_DATABASE_PATH.
const EnvPrefix = "BUDGET"

// Config is the fully resolved application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Import   ImportConfig   `mapstructure:"import"`
	Display  DisplayConfig  `mapstructure:"display"`
}

// DatabaseConfig locates the ledger file.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ImportConfig holds defaults applied to imported rows.
type ImportConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	Currency    string `mapstructure:"currency"`
	RecentCount int    `mapstructure:"recent_count"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: "$HOME/.local/share/budget/budget.db"},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Import:   ImportConfig{DefaultCategory: "other"},
		Display:  DisplayConfig{Currency: "$", RecentCount: 5},
	}
}

// SetDefaults registers every key with v so env overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("import.default_category", d.Import.DefaultCategory)
	v.SetDefault("display.currency", d.Display.Currency)
	v.SetDefault("display.recent_count", d.Display.RecentCount)
}

// BindEnv makes BUDGET_SECTION_KEY override section.key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load resolves configuration from v. Precedence is the usual viper order:
// flags, environment, config file, then defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path is required", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	if strings.TrimSpace(c.Import.DefaultCategory) == "" {
		return fmt.Errorf("%w: import.default_category is required", common.ErrMissingConfig)
	}
	if c.Display.RecentCount < 0 {
		return fmt.Errorf("%w: display.recent_count must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
