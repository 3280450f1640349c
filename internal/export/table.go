// Package export writes the finance records as per-entity CSV files and as
// a single XLSX workbook.
package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/model"
)

// Table is one exported entity: a header row followed by one row per record.
// Cells are strings, ints or decimals.
type Table struct {
	Name   string
	Prefix string
	Header []string
	Rows   [][]any
}

// FileName returns the CSV file name for the table and year.
func (t Table) FileName(year int) string {
	return fmt.Sprintf("%s_financeflow_%d.csv", t.Prefix, year)
}

// Tables builds the expense, balance and investment tables from every record
// in doc. Months are written one-based.
func Tables(doc model.Document) []Table {
	expenses := Table{
		Name:   "Gastos",
		Prefix: "gastos",
		Header: []string{"Nombre", "Tipo", "Categoria", "Valor Total", "Mes", "Año"},
	}
	for _, e := range doc.Expenses {
		expenses.Rows = append(expenses.Rows, []any{
			e.Name, string(e.Type), string(e.Category), e.Amount, e.Month + 1, e.Year,
		})
	}

	balances := Table{
		Name:   "Patrimonio",
		Prefix: "patrimonio",
		Header: []string{"Cuenta", "Saldo", "Mes", "Año"},
	}
	for _, b := range doc.Balances {
		balances.Rows = append(balances.Rows, []any{b.AccountName, b.Balance, b.Month + 1, b.Year})
	}

	investments := Table{
		Name:   "Inversiones",
		Prefix: "inversiones",
		Header: []string{"ETF", "Fecha", "Valor USD", "TRM", "Valor COP", "Mes", "Año"},
	}
	for _, i := range doc.Investments {
		investments.Rows = append(investments.Rows, []any{
			i.ETFName, i.Date, i.AmountUSD, i.ExchangeRate, i.AmountCOP, i.Month + 1, i.Year,
		})
	}

	return []Table{expenses, balances, investments}
}

func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case decimal.Decimal:
		return c.String()
	}
	return fmt.Sprint(v)
}
