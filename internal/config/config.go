// Package config loads and saves the financeflow configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/financeflow/internal/validate"
)

// Environment variables that override the file.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvAPIKeyLegacy = "API_KEY"
	EnvDataDir      = "FINANCEFLOW_DATA_DIR"
	EnvBackend      = "FINANCEFLOW_BACKEND"
)

// Config holds all financeflow configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Investments InvestmentsConfig `toml:"investments"`
	Insights    InsightsConfig    `toml:"insights"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir       string `toml:"data_dir,omitempty"`
	Backend       string `toml:"backend" validate:"oneof=file sqlite"`
	HistoryMonths int    `toml:"history_months" validate:"min=1,max=120"`
	LogLevel      string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// CatalogConfig holds the canonical names offered and seeded by the app.
type CatalogConfig struct {
	ExpenseNames       []string `toml:"expense_names"`
	SharedExpenseNames []string `toml:"shared_expense_names"`
	ETFNames           []string `toml:"etf_names"`
	AccountNames       []string `toml:"account_names"`
	ForeignAccounts    []string `toml:"foreign_accounts"`
}

// InvestmentsConfig holds investment defaults.
type InvestmentsConfig struct {
	DefaultExchangeRate float64 `toml:"default_exchange_rate" validate:"gt=0"`
}

// InsightsConfig holds the generative-AI settings.
type InsightsConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	Model      string `toml:"model" validate:"required"`
	BaseURL    string `toml:"base_url" validate:"required,url"`
	TimeoutSec int    `toml:"timeout_sec" validate:"min=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend:       "file",
			HistoryMonths: 6,
			LogLevel:      "warn",
		},
		Catalog: DefaultCatalog(),
		Investments: InvestmentsConfig{
			DefaultExchangeRate: 4000,
		},
		Insights: InsightsConfig{
			Model:      "gemini-3-flash-preview",
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSec: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "financeflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "financeflow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "financeflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "financeflow")
}

// Load reads .env and the config file, returning defaults if the file
// doesn't exist, then applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(ConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.General.DataDir = dir
	}
	if backend := os.Getenv(EnvBackend); backend != "" {
		cfg.General.Backend = backend
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir returns the configured data directory or the default one.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return DefaultDataDir()
}

// InsightsAPIKey returns the API key from env vars or config, in that order.
func InsightsAPIKey(cfg Config) string {
	for _, env := range []string{EnvAPIKey, EnvAPIKeyLegacy} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return cfg.Insights.APIKey
}

// InsightsTimeout returns the request timeout. Zero disables it.
func InsightsTimeout(cfg Config) time.Duration {
	return time.Duration(cfg.Insights.TimeoutSec) * time.Second
}
