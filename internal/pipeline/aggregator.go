// Package pipeline derives per-period metrics, time series and distributions
// from the record document.
package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/model"
)

// Periodic is any record stamped with a period.
type Periodic interface {
	Period() model.Period
}

// FilterPeriod returns the records that belong to p, preserving order.
func FilterPeriod[T Periodic](records []T, p model.Period) []T {
	var result []T
	for _, r := range records {
		rp := r.Period()
		if p.Matches(rp.Month, rp.Year) {
			result = append(result, r)
		}
	}
	return result
}

// SummarizeExpenses computes the expense totals of p. Shared expenses are
// attributed half to the user. Expenses with an unknown category count toward
// Total only.
func SummarizeExpenses(expenses []model.Expense, p model.Period) model.ExpenseSummary {
	var s model.ExpenseSummary
	for _, e := range FilterPeriod(expenses, p) {
		s.Count++
		s.Total = s.Total.Add(e.Amount)
		switch e.Category {
		case model.Individual:
			s.Individual = s.Individual.Add(e.Amount)
		case model.Shared:
			s.Shared = s.Shared.Add(e.Amount)
		}
	}
	s.PartnerShare = s.Shared.Div(decimal.NewFromInt(2))
	s.UserTotal = s.Individual.Add(s.PartnerShare)
	return s
}

// NetWorth sums the balances of p whose account satisfies include.
// A nil include counts every account.
func NetWorth(balances []model.AccountBalance, p model.Period, include func(account string) bool) decimal.Decimal {
	total := decimal.Zero
	for _, b := range FilterPeriod(balances, p) {
		if include == nil || include(b.AccountName) {
			total = total.Add(b.Balance)
		}
	}
	return total
}

// SplitNetWorth partitions the balances of p into local and foreign accounts.
// A nil isForeign treats every account as local.
func SplitNetWorth(balances []model.AccountBalance, p model.Period, isForeign func(account string) bool) model.NetWorthSplit {
	var split model.NetWorthSplit
	for _, b := range FilterPeriod(balances, p) {
		if isForeign != nil && isForeign(b.AccountName) {
			split.Foreign = split.Foreign.Add(b.Balance)
		} else {
			split.Local = split.Local.Add(b.Balance)
		}
	}
	split.Total = split.Local.Add(split.Foreign)
	return split
}

// AccountIn returns a predicate matching the given account names,
// ignoring case and surrounding spaces.
func AccountIn(names ...string) func(string) bool {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizeName(n)] = struct{}{}
	}
	return func(account string) bool {
		_, ok := set[normalizeName(account)]
		return ok
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SumInvestments totals the ETF contributions of p.
func SumInvestments(investments []model.ETFInvestment, p model.Period) model.InvestmentTotals {
	var t model.InvestmentTotals
	for _, inv := range FilterPeriod(investments, p) {
		t.Contributions++
		t.USD = t.USD.Add(inv.AmountUSD)
		t.COP = t.COP.Add(inv.AmountCOP)
	}
	return t
}

// Summarize computes the dashboard figures for p.
func Summarize(doc model.Document, p model.Period, isForeign func(string) bool) model.PeriodSummary {
	return model.PeriodSummary{
		Period:      p,
		Expenses:    SummarizeExpenses(doc.Expenses, p),
		NetWorth:    SplitNetWorth(doc.Balances, p, isForeign),
		Investments: SumInvestments(doc.Investments, p),
	}
}

// History returns one point per month for the n months ending at ref,
// oldest first. Expenses are full amounts, not the user's share.
func History(doc model.Document, ref model.Period, n int) []model.MonthPoint {
	if n < 1 {
		return nil
	}
	start := ref.Add(-(n - 1))
	points := make([]model.MonthPoint, 0, n)
	for i := 0; i < n; i++ {
		p := start.Add(i)
		points = append(points, model.MonthPoint{
			Period:      p,
			NetWorth:    NetWorth(doc.Balances, p, nil),
			Expenses:    SummarizeExpenses(doc.Expenses, p).Total,
			Investments: SumInvestments(doc.Investments, p).COP,
		})
	}
	return points
}
