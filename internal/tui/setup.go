package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/financeflow/internal/config"
	"github.com/theirongolddev/financeflow/internal/model"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	DataDir       string
	Backend       string
	HistoryMonths int
	ExchangeRate  string
	APIKey        string
}

// SetupValuesFrom pre-fills the wizard from cfg. The API key is left blank
// so an existing one is kept unless the user types a new one.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		DataDir:       config.DataDir(cfg),
		Backend:       cfg.General.Backend,
		HistoryMonths: cfg.General.HistoryMonths,
		ExchangeRate:  strconv.FormatFloat(cfg.Investments.DefaultExchangeRate, 'f', -1, 64),
	}
}

// NewSetupForm builds the interactive setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("financeflow").
				Description("Configuremos dónde guardar tus datos y algunos valores por defecto."),
			huh.NewInput().
				Title("Directorio de datos").
				Value(&v.DataDir),
			huh.NewSelect[string]().
				Title("Almacenamiento").
				Options(
					huh.NewOption("Archivo JSON", "file"),
					huh.NewOption("SQLite", "sqlite"),
				).
				Value(&v.Backend),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rango del historial").
				Options(
					huh.NewOption("6 meses", 6),
					huh.NewOption("12 meses", 12),
				).
				Value(&v.HistoryMonths),
			huh.NewInput().
				Title("TRM por defecto (COP por USD)").
				Value(&v.ExchangeRate).
				Validate(validateRate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				Description("Opcional. Déjalo vacío para conservar la actual.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
		),
	)
}

func validateRate(s string) error {
	if !model.ParseAmount(s).IsPositive() {
		return errors.New("la TRM debe ser un número mayor que cero")
	}
	return nil
}

// Apply copies the wizard answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.DataDir = strings.TrimSpace(v.DataDir)
	if v.Backend != "" {
		cfg.General.Backend = v.Backend
	}
	if v.HistoryMonths > 0 {
		cfg.General.HistoryMonths = v.HistoryMonths
	}
	if rate := model.ParseAmount(v.ExchangeRate); rate.IsPositive() {
		cfg.Investments.DefaultExchangeRate = rate.InexactFloat64()
	}
	if key := strings.TrimSpace(v.APIKey); key != "" {
		cfg.Insights.APIKey = key
	}
}
