package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/config"
	"github.com/theirongolddev/financeflow/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Asistente de configuración",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// A broken config file should not block the wizard that repairs it.
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		cfg = config.DefaultConfig()
	}

	values := tui.SetupValuesFrom(cfg)
	if key := config.InsightsAPIKey(cfg); key != "" {
		fmt.Printf("\n  API key actual: %s (deja el campo vacío para conservarla)\n", maskAPIKey(key))
	}

	if err := tui.NewSetupForm(&values).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Configuración cancelada, no se guardó nada.")
			return nil
		}
		return err
	}

	values.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Guardado en %s\n", config.ConfigPath())
	fmt.Println("  Ejecuta `financeflow setup` cuando quieras reconfigurar.")
	fmt.Println()
	return nil
}
