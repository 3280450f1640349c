package model

import "github.com/shopspring/decimal"

// ExpenseType marks an expense as recurring or one-off.
type ExpenseType string

const (
	Fixed    ExpenseType = "Fijo"
	Variable ExpenseType = "Variable"
)

// ExpenseCategory decides how an expense is attributed to the user.
type ExpenseCategory string

const (
	Individual ExpenseCategory = "Individual"
	Shared     ExpenseCategory = "Compartido"
)

// Expense is a single spending line in a period.
type Expense struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     ExpenseType     `json:"type"`
	Category ExpenseCategory `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

func (e Expense) Period() Period { return Period{Month: e.Month, Year: e.Year} }

// UserShare is the part of the expense the user carries: half of a shared
// expense, all of an individual one.
func (e Expense) UserShare() decimal.Decimal {
	if e.Category == Shared {
		return e.Amount.Div(decimal.NewFromInt(2))
	}
	return e.Amount
}

// AccountBalance is the balance of one account at the end of a period.
type AccountBalance struct {
	ID          string          `json:"id"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
}

func (b AccountBalance) Period() Period { return Period{Month: b.Month, Year: b.Year} }

// ETFInvestment is one USD contribution to an ETF, converted to COP with the
// exchange rate (TRM) the user supplied.
type ETFInvestment struct {
	ID           string          `json:"id"`
	ETFName      string          `json:"etfName"`
	AmountUSD    decimal.Decimal `json:"amountUsd"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	AmountCOP    decimal.Decimal `json:"amountCop"`
	Date         string          `json:"date"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

func (i ETFInvestment) Period() Period { return Period{Month: i.Month, Year: i.Year} }

// Recompute derives AmountCOP from AmountUSD and ExchangeRate.
func (i *ETFInvestment) Recompute() {
	i.AmountCOP = i.AmountUSD.Mul(i.ExchangeRate)
}

// Document is the whole persisted state.
type Document struct {
	Expenses    []Expense        `json:"expenses"`
	Balances    []AccountBalance `json:"balances"`
	Investments []ETFInvestment  `json:"investments"`
}

// NewDocument returns an empty document whose collections encode as [].
func NewDocument() Document {
	return Document{
		Expenses:    []Expense{},
		Balances:    []AccountBalance{},
		Investments: []ETFInvestment{},
	}
}

// Clone returns a copy that shares no slice storage with d.
// The copy's collections are never nil.
func (d Document) Clone() Document {
	return Document{
		Expenses:    append([]Expense{}, d.Expenses...),
		Balances:    append([]AccountBalance{}, d.Balances...),
		Investments: append([]ETFInvestment{}, d.Investments...),
	}
}
