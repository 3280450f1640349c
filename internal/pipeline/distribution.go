package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/model"
)

// ExpenseDistributionShared labels the user's half of shared spending.
const ExpenseDistributionShared = "Compartido (Mi Parte)"

// ETFDistribution groups every investment ever recorded by ETF name and sums
// the COP amounts. Results are sorted by amount descending, then by name.
func ETFDistribution(investments []model.ETFInvestment) []model.NamedAmount {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, inv := range investments {
		totals[inv.ETFName] = totals[inv.ETFName].Add(inv.AmountCOP)
		grand = grand.Add(inv.AmountCOP)
	}

	result := make([]model.NamedAmount, 0, len(totals))
	for name, amount := range totals {
		result = append(result, model.NamedAmount{
			Name:         name,
			Amount:       amount,
			SharePercent: sharePercent(amount, grand),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// ExpenseDistribution splits the user's spending of a period into the
// individual part and their half of shared expenses.
func ExpenseDistribution(s model.ExpenseSummary) []model.NamedAmount {
	mine := s.Individual.Add(s.PartnerShare)
	return []model.NamedAmount{
		{Name: string(model.Individual), Amount: s.Individual, SharePercent: sharePercent(s.Individual, mine)},
		{Name: ExpenseDistributionShared, Amount: s.PartnerShare, SharePercent: sharePercent(s.PartnerShare, mine)},
	}
}

func sharePercent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
