package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/ledger"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

var (
	flagInvestRate    string
	flagInvestDate    string
	flagInvestETF     string
	flagInvestUSD     string
	flagInvestNewRate string
	flagInvestNewDate string
)

var investmentsCmd = &cobra.Command{
	Use:     "investments",
	Aliases: []string{"inversiones"},
	Short:   "Aportes a ETFs del mes",
	RunE:    runInvestmentsList,
}

var investmentsAddCmd = &cobra.Command{
	Use:   "add ETF USD",
	Short: "Registrar un aporte en dólares",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvestmentsAdd,
}

var investmentsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Modificar un aporte (el valor en COP se recalcula)",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvestmentsUpdate,
}

var investmentsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Eliminar un aporte",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvestmentsDelete,
}

func init() {
	investmentsCmd.PersistentFlags().BoolVar(&flagNoSeed, "no-seed", false, "No crear los registros por defecto del mes")

	investmentsAddCmd.Flags().StringVar(&flagInvestRate, "rate", "", "TRM en pesos por dólar (por defecto la de la configuración)")
	investmentsAddCmd.Flags().StringVar(&flagInvestDate, "date", "", "Fecha del aporte YYYY-MM-DD (por defecto hoy)")

	investmentsUpdateCmd.Flags().StringVar(&flagInvestETF, "etf", "", "Nuevo ETF")
	investmentsUpdateCmd.Flags().StringVar(&flagInvestUSD, "usd", "", "Nuevo valor en dólares")
	investmentsUpdateCmd.Flags().StringVar(&flagInvestNewRate, "rate", "", "Nueva TRM")
	investmentsUpdateCmd.Flags().StringVar(&flagInvestNewDate, "date", "", "Nueva fecha YYYY-MM-DD")

	investmentsCmd.AddCommand(investmentsAddCmd, investmentsUpdateCmd, investmentsDeleteCmd)
	rootCmd.AddCommand(investmentsCmd)
}

func runInvestmentsList(cmd *cobra.Command, _ []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if !flagNoSeed {
		if _, err := a.ledger.SeedPeriod(cmd.Context(), p); err != nil {
			return err
		}
	}

	doc := a.ledger.Document()
	investments := pipeline.FilterPeriod(doc.Investments, p)

	fmt.Println()
	fmt.Println(cli.RenderTitle("INVERSIONES  " + cli.FormatPeriod(p)))
	fmt.Println()

	if len(investments) == 0 {
		fmt.Println("  No hay aportes registrados en este mes.")
		return nil
	}

	rows := make([][]string, 0, len(investments)+2)
	for _, inv := range investments {
		rows = append(rows, []string{
			cli.ShortID(inv.ID),
			cli.Dash(inv.ETFName),
			cli.Dash(inv.Date),
			cli.FormatUSD(inv.AmountUSD),
			cli.FormatRate(inv.ExchangeRate),
			cli.FormatCOP(inv.AmountCOP),
		})
	}
	totals := pipeline.SumInvestments(doc.Investments, p)
	rows = append(rows,
		[]string{"---"},
		[]string{"", "Total", "", cli.FormatUSD(totals.USD), "", cli.FormatCOP(totals.COP)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "ETF", "Fecha", "USD", "TRM", "COP"},
		Rows:    rows,
	}))
	return nil
}

func runInvestmentsAdd(cmd *cobra.Command, args []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	inv, err := a.ledger.AddInvestment(cmd.Context(), p, ledger.InvestmentInput{
		ETFName:      args[0],
		AmountUSD:    model.ParseAmount(args[1]),
		ExchangeRate: model.ParseAmount(flagInvestRate),
		Date:         flagInvestDate,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Aporte %s agregado: %s %s x %s = %s\n",
		cli.ShortID(inv.ID), inv.ETFName, cli.FormatUSD(inv.AmountUSD),
		cli.FormatRate(inv.ExchangeRate), cli.FormatCOP(inv.AmountCOP))
	return nil
}

func runInvestmentsUpdate(cmd *cobra.Command, args []string) error {
	var patch ledger.InvestmentPatch
	flags := cmd.Flags()
	if flags.Changed("etf") {
		patch.ETFName = &flagInvestETF
	}
	if flags.Changed("usd") {
		usd := model.ParseAmount(flagInvestUSD)
		patch.AmountUSD = &usd
	}
	if flags.Changed("rate") {
		rate := model.ParseAmount(flagInvestNewRate)
		patch.ExchangeRate = &rate
	}
	if flags.Changed("date") {
		patch.Date = &flagInvestNewDate
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Investments, args[0], func(i model.ETFInvestment) string { return i.ID })
	if err != nil {
		return err
	}
	inv, err := a.ledger.UpdateInvestment(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("  Aporte %s actualizado: %s %s x %s = %s\n",
		cli.ShortID(inv.ID), inv.ETFName, cli.FormatUSD(inv.AmountUSD),
		cli.FormatRate(inv.ExchangeRate), cli.FormatCOP(inv.AmountCOP))
	return nil
}

func runInvestmentsDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Investments, args[0], func(i model.ETFInvestment) string { return i.ID })
	if err != nil {
		return err
	}
	if err := a.ledger.DeleteInvestment(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("  Aporte %s eliminado\n", cli.ShortID(id))
	return nil
}
