package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/ledger"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

var (
	flagBalanceAccount string
	flagBalanceAmount  string
)

var balancesCmd = &cobra.Command{
	Use:     "balances",
	Aliases: []string{"patrimonio"},
	Short:   "Saldos de cuentas del mes",
	RunE:    runBalancesList,
}

var balancesSetCmd = &cobra.Command{
	Use:   "set ACCOUNT AMOUNT",
	Short: "Fijar el saldo de una cuenta en el mes (crea o actualiza)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBalancesSet,
}

var balancesAddCmd = &cobra.Command{
	Use:   "add ACCOUNT AMOUNT",
	Short: "Agregar un registro de saldo en el mes",
	Args:  cobra.ExactArgs(2),
	RunE:  runBalancesAdd,
}

var balancesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Modificar un saldo",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalancesUpdate,
}

var balancesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Eliminar un saldo",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalancesDelete,
}

func init() {
	balancesUpdateCmd.Flags().StringVar(&flagBalanceAccount, "account", "", "Nuevo nombre de cuenta")
	balancesUpdateCmd.Flags().StringVar(&flagBalanceAmount, "amount", "", "Nuevo saldo")

	balancesCmd.AddCommand(balancesSetCmd, balancesAddCmd, balancesUpdateCmd, balancesDeleteCmd)
	rootCmd.AddCommand(balancesCmd)
}

func runBalancesList(cmd *cobra.Command, _ []string) error {
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
	balances := pipeline.FilterPeriod(doc.Balances, p)
	isForeign := a.isForeign()

	fmt.Println()
	fmt.Println(cli.RenderTitle("PATRIMONIO  " + cli.FormatPeriod(p)))
	fmt.Println()

	if len(balances) == 0 {
		fmt.Println("  No hay saldos registrados en este mes.")
		fmt.Println(cli.RenderMuted("Usa `financeflow balances set CUENTA SALDO` para registrar uno."))
		return nil
	}

	rows := make([][]string, 0, len(balances)+5)
	for _, b := range balances {
		where := "Local"
		if isForeign(b.AccountName) {
			where = "Exterior"
		}
		rows = append(rows, []string{cli.ShortID(b.ID), cli.Dash(b.AccountName), where, cli.FormatCOP(b.Balance)})
	}

	split := pipeline.SplitNetWorth(doc.Balances, p, isForeign)
	rows = append(rows,
		[]string{"---"},
		[]string{"", "Local", "", cli.FormatCOP(split.Local)},
		[]string{"", "Exterior", "", cli.FormatCOP(split.Foreign)},
		[]string{"", "Total", "", cli.FormatCOP(split.Total)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Cuenta", "Ubicación", "Saldo"},
		Rows:    rows,
	}))
	return nil
}

func runBalancesSet(cmd *cobra.Command, args []string) error {
	return writeBalance(cmd, args, (*ledger.Ledger).SetBalance, "guardado")
}

func runBalancesAdd(cmd *cobra.Command, args []string) error {
	return writeBalance(cmd, args, (*ledger.Ledger).AddBalance, "agregado")
}

type balanceWriter func(*ledger.Ledger, context.Context, model.Period, string, decimal.Decimal) (model.AccountBalance, error)

func writeBalance(cmd *cobra.Command, args []string, write balanceWriter, verb string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := write(a.ledger, cmd.Context(), p, args[0], model.ParseAmount(args[1]))
	if err != nil {
		return err
	}
	fmt.Printf("  Saldo %s %s: %s %s (%s)\n",
		cli.ShortID(b.ID), verb, b.AccountName, cli.FormatCOP(b.Balance), cli.FormatPeriod(p))
	warnUnknownAccount(a, b.AccountName)
	return nil
}

func warnUnknownAccount(a *app, name string) {
	if !a.cfg.Catalog.KnownAccount(name) {
		fmt.Println(cli.RenderHint(fmt.Sprintf("La cuenta %q no está en el catálogo de la configuración.", name)))
	}
}

func runBalancesUpdate(cmd *cobra.Command, args []string) error {
	var patch ledger.BalancePatch
	if cmd.Flags().Changed("account") {
		patch.AccountName = &flagBalanceAccount
	}
	if cmd.Flags().Changed("amount") {
		amount := model.ParseAmount(flagBalanceAmount)
		patch.Balance = &amount
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Balances, args[0], func(b model.AccountBalance) string { return b.ID })
	if err != nil {
		return err
	}
	b, err := a.ledger.UpdateBalance(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("  Saldo %s actualizado: %s %s\n", cli.ShortID(b.ID), b.AccountName, cli.FormatCOP(b.Balance))
	if patch.AccountName != nil {
		warnUnknownAccount(a, b.AccountName)
	}
	return nil
}

func runBalancesDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Balances, args[0], func(b model.AccountBalance) string { return b.ID })
	if err != nil {
		return err
	}
	if err := a.ledger.DeleteBalance(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("  Saldo %s eliminado\n", cli.ShortID(id))
	return nil
}
