package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/backup"
	"github.com/theirongolddev/financeflow/internal/log"
)

var flagBackupOut string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copia de seguridad de todos los datos",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Guardar una copia JSON de todos los datos",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Reemplazar todos los datos con una copia JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupExportCmd.Flags().StringVar(&flagBackupOut, "out", ".", "Directorio donde guardar la copia")

	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	doc := a.ledger.Document()
	path, err := backup.ExportFile(flagBackupOut, doc, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("  Copia guardada en %s\n", path)
	fmt.Printf("  %d gastos, %d saldos, %d inversiones\n",
		len(doc.Expenses), len(doc.Balances), len(doc.Investments))
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := backup.ImportFile(args[0])
	if err != nil {
		a.log.Debug("Backup rejected", log.FieldPath, args[0], log.FieldError, err)
		return errors.New(importMessage(err))
	}
	if err := a.ledger.Replace(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Println("  Datos importados correctamente.")
	fmt.Printf("  %d gastos, %d saldos, %d inversiones\n",
		len(doc.Expenses), len(doc.Balances), len(doc.Investments))
	return nil
}

// importMessage maps an import failure to the text shown to the user.
func importMessage(err error) string {
	if errors.Is(err, backup.ErrMalformed) {
		return "El archivo no tiene el formato correcto."
	}
	return "Error al leer el archivo."
}
