package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/export"
)

var (
	flagExportDir    string
	flagExportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exportar gastos, patrimonio e inversiones a CSV o Excel",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportDir, "dir", ".", "Directorio de salida")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", export.FormatCSV, "csv, xlsx o all")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	paths, err := export.WriteAll(cmd.Context(), flagExportDir, a.ledger.Document(), flagYear, flagExportFormat, a.log)
	if err != nil {
		return err
	}
	fmt.Println("  Archivos exportados:")
	for _, p := range paths {
		fmt.Printf("    %s\n", p)
	}
	return nil
}
