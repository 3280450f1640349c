package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

const maxHistoryMonths = 120

var flagHistoryMonths int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Evolución de patrimonio, gastos e inversión",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryMonths, "months", 0, "Número de meses (por defecto el de la configuración)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n := a.cfg.General.HistoryMonths
	if cmd.Flags().Changed("months") {
		n = flagHistoryMonths
	}
	if err := checkHistoryMonths(n); err != nil {
		return err
	}

	points := pipeline.History(a.ledger.Document(), p, n)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORIAL  %d meses hasta %s", n, cli.FormatPeriod(p))))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	netWorth := make([]float64, 0, len(points))
	expenses := make([]float64, 0, len(points))
	invested := make([]float64, 0, len(points))
	for _, pt := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%s %d", cli.ShortMonth(pt.Period.Month), pt.Period.Year),
			cli.FormatCOP(pt.NetWorth),
			cli.FormatCOP(pt.Expenses),
			cli.FormatCOP(pt.Investments),
		})
		netWorth = append(netWorth, pt.NetWorth.InexactFloat64())
		expenses = append(expenses, pt.Expenses.InexactFloat64())
		invested = append(invested, pt.Investments.InexactFloat64())
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Mes", "Patrimonio", "Gastos", "Inversión"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Patrimonio  %s\n", cli.RenderSparkline(netWorth))
	fmt.Printf("  Gastos      %s\n", cli.RenderSparkline(expenses))
	fmt.Printf("  Inversión   %s\n", cli.RenderSparkline(invested))
	return nil
}

func checkHistoryMonths(n int) error {
	if n < 1 || n > maxHistoryMonths {
		return fmt.Errorf("--months must be between 1 and %d, got %d", maxHistoryMonths, n)
	}
	return nil
}
