package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/config"
	"github.com/theirongolddev/financeflow/internal/ledger"
	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
	"github.com/theirongolddev/financeflow/internal/store"
)

var (
	flagMonth   int
	flagYear    int
	flagDataDir string
	flagBackend string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "financeflow",
	Short:        "Finanzas personales: gastos, patrimonio e inversiones",
	Long:         "Registra gastos mensuales, saldos de cuentas y aportes a ETFs, y calcula las métricas de cada mes.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	now := time.Now()

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagMonth, "month", "m", int(now.Month()), "Mes a consultar (1-12)")
	pf.IntVarP(&flagYear, "year", "y", now.Year(), "Año a consultar")
	pf.StringVarP(&flagDataDir, "data-dir", "d", "", "Directorio de datos (por defecto el de la configuración)")
	pf.StringVar(&flagBackend, "backend", "", "Almacenamiento: file o sqlite")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Solo errores, sin spinner")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Registro detallado en stderr")
}

// app bundles everything a command needs to read or change the document.
type app struct {
	cfg    config.Config
	log    *log.Logger
	store  store.Backend
	ledger *ledger.Ledger
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		return nil, err
	}
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelError
	}
	lc := log.DefaultConfig()
	lc.Level = level
	return log.New(lc), nil
}

// openApp loads config, opens the configured backend and the ledger on it.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := store.Open(cfg.General.Backend, config.DataDir(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	l, err := ledger.Open(ctx, backend, catalogFor(cfg), logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	logger.Debug("Ledger ready",
		log.FieldBackend, cfg.General.Backend,
		log.FieldPath, config.DataDir(cfg),
	)
	return &app{cfg: cfg, log: logger, store: backend, ledger: l}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Closing store failed", log.FieldError, err)
	}
}

func (a *app) isForeign() func(string) bool {
	return pipeline.AccountIn(a.cfg.Catalog.ForeignAccounts...)
}

func catalogFor(cfg config.Config) ledger.Catalog {
	return ledger.Catalog{
		ExpenseNames:        cfg.Catalog.ExpenseNames,
		SharedExpenseNames:  cfg.Catalog.SharedExpenseNames,
		ETFNames:            cfg.Catalog.ETFNames,
		DefaultExchangeRate: decimal.NewFromFloat(cfg.Investments.DefaultExchangeRate),
	}
}

// selectedPeriod converts the --month/--year flags into a Period.
func selectedPeriod() (model.Period, error) {
	return periodFromFlags(flagMonth, flagYear)
}

func periodFromFlags(month, year int) (model.Period, error) {
	if month < 1 || month > 12 {
		return model.Period{}, fmt.Errorf("--month must be between 1 and 12, got %d", month)
	}
	if year < 1 || year > 9999 {
		return model.Period{}, fmt.Errorf("--year out of range: %d", year)
	}
	return model.Period{Month: month - 1, Year: year}, nil
}
