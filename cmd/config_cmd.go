// Package cmd implements the financeflow CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Mostrar la configuración efectiva",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Archivo: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Estado: cargado")
	} else {
		fmt.Println("  Estado: valores por defecto (no hay archivo)")
	}
	fmt.Println()

	fmt.Println("  [general]")
	fmt.Printf("    Directorio de datos: %s\n", config.DataDir(cfg))
	fmt.Printf("    Almacenamiento:      %s\n", cfg.General.Backend)
	fmt.Printf("    Meses de historial:  %d\n", cfg.General.HistoryMonths)
	fmt.Printf("    Nivel de registro:   %s\n", valueOr(cfg.General.LogLevel, "warn"))
	fmt.Println()

	fmt.Println("  [catalog]")
	fmt.Printf("    Gastos:       %s\n", strings.Join(cfg.Catalog.ExpenseNames, ", "))
	fmt.Printf("    Compartidos:  %s\n", strings.Join(cfg.Catalog.SharedExpenseNames, ", "))
	fmt.Printf("    ETFs:         %s\n", strings.Join(cfg.Catalog.ETFNames, ", "))
	fmt.Printf("    Cuentas:      %s\n", strings.Join(cfg.Catalog.AccountNames, ", "))
	fmt.Printf("    Del exterior: %s\n", strings.Join(cfg.Catalog.ForeignAccounts, ", "))
	fmt.Println()

	fmt.Println("  [investments]")
	fmt.Printf("    TRM por defecto: %g\n", cfg.Investments.DefaultExchangeRate)
	fmt.Println()

	fmt.Println("  [insights]")
	if key := config.InsightsAPIKey(cfg); key != "" {
		fmt.Printf("    API key: %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key: no configurada")
	}
	fmt.Printf("    Modelo:  %s\n", cfg.Insights.Model)
	fmt.Printf("    URL:     %s\n", cfg.Insights.BaseURL)
	fmt.Printf("    Timeout: %s\n", config.InsightsTimeout(cfg))
	fmt.Println()

	fmt.Println("  Ejecuta `financeflow setup` para reconfigurar.")
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
