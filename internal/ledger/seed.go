package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

// SeedResult counts the records SeedPeriod created.
type SeedResult struct {
	Expenses    int
	Investments int
}

// Total is the number of records created.
func (r SeedResult) Total() int { return r.Expenses + r.Investments }

// SeedPeriod creates a zero-valued record in p for every catalog expense and
// ETF name that p does not have yet. It saves only when something was added,
// so repeated calls are no-ops.
func (l *Ledger) SeedPeriod(ctx context.Context, p model.Period) (SeedResult, error) {
	if err := checkPeriod(p); err != nil {
		return SeedResult{}, err
	}

	doc := l.Document()
	expenses, investments := l.missingDefaults(doc, p)
	if len(expenses) == 0 && len(investments) == 0 {
		return SeedResult{}, nil
	}

	err := l.apply(ctx, log.OpSeed, func(d *model.Document) error {
		// The document may have changed since the unlocked check.
		expenses, investments = l.missingDefaults(*d, p)
		d.Expenses = append(d.Expenses, expenses...)
		d.Investments = append(d.Investments, investments...)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	res := SeedResult{Expenses: len(expenses), Investments: len(investments)}
	l.log.Info("Period seeded", log.FieldPeriod, p.String(), log.FieldCount, res.Total())
	return res, nil
}

func (l *Ledger) missingDefaults(doc model.Document, p model.Period) ([]model.Expense, []model.ETFInvestment) {
	haveExpense := make(map[string]bool)
	for _, e := range pipeline.FilterPeriod(doc.Expenses, p) {
		haveExpense[e.Name] = true
	}
	haveETF := make(map[string]bool)
	for _, inv := range pipeline.FilterPeriod(doc.Investments, p) {
		haveETF[inv.ETFName] = true
	}

	var expenses []model.Expense
	for _, name := range l.catalog.ExpenseNames {
		if haveExpense[name] {
			continue
		}
		haveExpense[name] = true
		expenses = append(expenses, model.Expense{
			ID:       l.newID(),
			Name:     name,
			Type:     model.Fixed,
			Category: l.CategoryFor(name),
			Amount:   decimal.Zero,
			Month:    p.Month,
			Year:     p.Year,
		})
	}

	var investments []model.ETFInvestment
	date := p.FirstDay().Format("2006-01-02")
	for _, raw := range l.catalog.ETFNames {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if haveETF[name] {
			continue
		}
		haveETF[name] = true
		investments = append(investments, model.ETFInvestment{
			ID:           l.newID(),
			ETFName:      name,
			AmountUSD:    decimal.Zero,
			ExchangeRate: l.catalog.DefaultExchangeRate,
			AmountCOP:    decimal.Zero,
			Date:         date,
			Month:        p.Month,
			Year:         p.Year,
		})
	}
	return expenses, investments
}
