package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Resumen del mes: patrimonio, gastos e inversión",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	doc := a.ledger.Document()
	curr := pipeline.Summarize(doc, p, a.isForeign())
	prev := pipeline.Summarize(doc, p.Prev(), a.isForeign())

	fmt.Println()
	fmt.Println(cli.RenderTitle("RESUMEN  " + cli.FormatPeriod(p)))
	fmt.Println()

	rows := [][]string{
		{"Patrimonio total", cli.FormatCOP(curr.NetWorth.Total), cli.FormatDelta(curr.NetWorth.Total, prev.NetWorth.Total)},
		{"  Local", cli.FormatCOP(curr.NetWorth.Local), cli.FormatDelta(curr.NetWorth.Local, prev.NetWorth.Local)},
		{"  Exterior", cli.FormatCOP(curr.NetWorth.Foreign), cli.FormatDelta(curr.NetWorth.Foreign, prev.NetWorth.Foreign)},
		{"---"},
		{"Mis gastos", cli.FormatCOP(curr.Expenses.UserTotal), cli.FormatDelta(curr.Expenses.UserTotal, prev.Expenses.UserTotal)},
		{"Parte de la pareja", cli.FormatCOP(curr.Expenses.PartnerShare), cli.FormatDelta(curr.Expenses.PartnerShare, prev.Expenses.PartnerShare)},
		{"Gastos compartidos", cli.FormatCOP(curr.Expenses.Shared), cli.FormatDelta(curr.Expenses.Shared, prev.Expenses.Shared)},
		{"Gastos totales", cli.FormatCOP(curr.Expenses.Total), cli.FormatDelta(curr.Expenses.Total, prev.Expenses.Total)},
		{"---"},
		{"Inversión del mes", cli.FormatCOP(curr.Investments.COP), cli.FormatDelta(curr.Investments.COP, prev.Investments.COP)},
		{"  En dólares", cli.FormatUSD(curr.Investments.USD), ""},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Métrica", "Valor", "vs " + cli.ShortMonth(p.Prev().Month)},
		Rows:    rows,
	}))

	if curr.Expenses.UserTotal.IsPositive() {
		fmt.Println()
		fmt.Print(renderDistribution("Distribución de mis gastos", pipeline.ExpenseDistribution(curr.Expenses)))
	}
	return nil
}

// renderDistribution prints one bar per entry scaled to the largest.
func renderDistribution(title string, entries []model.NamedAmount) string {
	maxValue := 0.0
	labelWidth := 0
	for _, e := range entries {
		maxValue = max(maxValue, e.Amount.InexactFloat64())
		labelWidth = max(labelWidth, len([]rune(e.Name)))
	}

	out := cli.RenderMuted(title) + "\n"
	for _, e := range entries {
		label := fmt.Sprintf("%-*s", labelWidth, e.Name)
		out += fmt.Sprintf("%s  %s  %s\n",
			cli.RenderHorizontalBar(label, e.Amount.InexactFloat64(), maxValue, 30),
			cli.FormatCOP(e.Amount),
			cli.FormatPercent(e.SharePercent),
		)
	}
	return out
}
