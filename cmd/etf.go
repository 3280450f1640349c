package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

var etfCmd = &cobra.Command{
	Use:   "etf",
	Short: "Distribución histórica del portafolio por ETF",
	RunE:  runETF,
}

func init() {
	rootCmd.AddCommand(etfCmd)
}

func runETF(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	dist := pipeline.ETFDistribution(a.ledger.Document().Investments)

	fmt.Println()
	fmt.Println(cli.RenderTitle("PORTAFOLIO ETF  acumulado"))
	fmt.Println()

	total := decimal.Zero
	for _, e := range dist {
		total = total.Add(e.Amount)
	}
	if !total.IsPositive() {
		fmt.Println("  Aún no hay aportes registrados.")
		return nil
	}

	fmt.Print(renderDistribution("Valor invertido (COP)", dist))
	fmt.Println()
	fmt.Printf("  Total invertido: %s\n", cli.FormatCOP(total))
	return nil
}
