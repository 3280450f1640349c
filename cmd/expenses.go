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
	flagNoSeed          bool
	flagExpenseType     string
	flagExpenseCategory string
	flagExpenseName     string
	flagExpenseAmount   string
	flagExpenseNewType  string
	flagExpenseNewCat   string
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"gastos"},
	Short:   "Gastos del mes",
	RunE:    runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Registrar un gasto en el mes seleccionado",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpensesAdd,
}

var expensesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Modificar un gasto",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesUpdate,
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Eliminar un gasto",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesDelete,
}

var expensesCloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Copiar los gastos fijos del mes anterior",
	Args:  cobra.NoArgs,
	RunE:  runExpensesClone,
}

var expensesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crear los gastos e inversiones por defecto que falten en el mes",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	expensesCmd.PersistentFlags().BoolVar(&flagNoSeed, "no-seed", false, "No crear los registros por defecto del mes")

	expensesAddCmd.Flags().StringVar(&flagExpenseType, "type", string(model.Fixed), "Fijo o Variable")
	expensesAddCmd.Flags().StringVar(&flagExpenseCategory, "category", "", "Individual o Compartido (por defecto según el nombre)")

	expensesUpdateCmd.Flags().StringVar(&flagExpenseName, "name", "", "Nuevo nombre")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseAmount, "amount", "", "Nuevo valor")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseNewType, "type", "", "Fijo o Variable")
	expensesUpdateCmd.Flags().StringVar(&flagExpenseNewCat, "category", "", "Individual o Compartido")

	expensesCmd.AddCommand(expensesAddCmd, expensesUpdateCmd, expensesDeleteCmd, expensesCloneCmd, expensesSeedCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(cmd *cobra.Command, _ []string) error {
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
	expenses := pipeline.FilterPeriod(doc.Expenses, p)
	summary := pipeline.SummarizeExpenses(doc.Expenses, p)

	fmt.Println()
	fmt.Println(cli.RenderTitle("GASTOS  " + cli.FormatPeriod(p)))
	fmt.Println()

	if len(expenses) == 0 {
		fmt.Println("  No hay gastos registrados en este mes.")
		return nil
	}

	rows := make([][]string, 0, len(expenses)+3)
	for _, e := range expenses {
		rows = append(rows, []string{
			cli.ShortID(e.ID),
			cli.Dash(e.Name),
			string(e.Type),
			string(e.Category),
			cli.FormatCOP(e.Amount),
			cli.FormatCOP(e.UserShare()),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"", "Total", "", "", cli.FormatCOP(summary.Total), cli.FormatCOP(summary.UserTotal)},
		[]string{"", "Parte de la pareja", "", "", "", cli.FormatCOP(summary.PartnerShare)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Nombre", "Tipo", "Categoría", "Valor", "Mi parte"},
		Rows:    rows,
	}))
	return nil
}

func runExpensesAdd(cmd *cobra.Command, args []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	in := ledger.ExpenseInput{
		Name:   args[0],
		Amount: model.ParseAmount(args[1]),
	}
	if in.Type, err = parseExpenseType(flagExpenseType); err != nil {
		return err
	}
	if flagExpenseCategory != "" {
		if in.Category, err = parseCategory(flagExpenseCategory); err != nil {
			return err
		}
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	e, err := a.ledger.AddExpense(cmd.Context(), p, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Gasto %s agregado: %s %s (%s, %s)\n",
		cli.ShortID(e.ID), e.Name, cli.FormatCOP(e.Amount), e.Type, e.Category)
	return nil
}

func runExpensesUpdate(cmd *cobra.Command, args []string) error {
	var patch ledger.ExpensePatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &flagExpenseName
	}
	if flags.Changed("amount") {
		amount := model.ParseAmount(flagExpenseAmount)
		patch.Amount = &amount
	}
	if flags.Changed("type") {
		t, err := parseExpenseType(flagExpenseNewType)
		if err != nil {
			return err
		}
		patch.Type = &t
	}
	if flags.Changed("category") {
		c, err := parseCategory(flagExpenseNewCat)
		if err != nil {
			return err
		}
		patch.Category = &c
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Expenses, args[0], func(e model.Expense) string { return e.ID })
	if err != nil {
		return err
	}
	e, err := a.ledger.UpdateExpense(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("  Gasto %s actualizado: %s %s (%s, %s)\n",
		cli.ShortID(e.ID), e.Name, cli.FormatCOP(e.Amount), e.Type, e.Category)
	return nil
}

func runExpensesDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a.ledger.Document().Expenses, args[0], func(e model.Expense) string { return e.ID })
	if err != nil {
		return err
	}
	if err := a.ledger.DeleteExpense(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("  Gasto %s eliminado\n", cli.ShortID(id))
	return nil
}

func runExpensesClone(cmd *cobra.Command, _ []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.ledger.CloneFixed(cmd.Context(), p)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Printf("  %s no tiene gastos fijos para copiar\n", cli.FormatPeriod(p.Prev()))
		return nil
	}
	fmt.Printf("  %d gastos fijos copiados de %s a %s\n", n, cli.FormatPeriod(p.Prev()), cli.FormatPeriod(p))
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	p, err := selectedPeriod()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.ledger.SeedPeriod(cmd.Context(), p)
	if err != nil {
		return err
	}
	if res.Total() == 0 {
		fmt.Printf("  %s ya tiene todos los registros por defecto\n", cli.FormatPeriod(p))
		return nil
	}
	fmt.Printf("  %s: %d gastos y %d inversiones creados\n", cli.FormatPeriod(p), res.Expenses, res.Investments)
	return nil
}
