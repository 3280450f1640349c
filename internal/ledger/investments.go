package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
)

// InvestmentInput describes a new ETF contribution. A zero ExchangeRate
// falls back to the configured default and an empty Date means today.
type InvestmentInput struct {
	ETFName      string          `json:"etfName" validate:"max=50"`
	AmountUSD    decimal.Decimal `json:"amountUsd"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Date         string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// InvestmentPatch lists the contribution fields to change. AmountCOP is
// always derived and cannot be patched.
type InvestmentPatch struct {
	ETFName      *string          `json:"etfName" validate:"omitempty,max=50"`
	AmountUSD    *decimal.Decimal `json:"amountUsd"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	Date         *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func investmentID(i model.ETFInvestment) string { return i.ID }

// AddInvestment records a contribution in p.
func (l *Ledger) AddInvestment(ctx context.Context, p model.Period, in InvestmentInput) (model.ETFInvestment, error) {
	if err := checkPeriod(p); err != nil {
		return model.ETFInvestment{}, err
	}
	if err := checkInput(in); err != nil {
		return model.ETFInvestment{}, err
	}
	if err := nonNegative("amountUsd", in.AmountUSD); err != nil {
		return model.ETFInvestment{}, err
	}
	if err := nonNegative("exchangeRate", in.ExchangeRate); err != nil {
		return model.ETFInvestment{}, err
	}
	if in.Date == "" {
		in.Date = l.now().Format("2006-01-02")
	}

	inv := model.ETFInvestment{
		ID:           l.newID(),
		ETFName:      strings.ToUpper(strings.TrimSpace(in.ETFName)),
		AmountUSD:    in.AmountUSD,
		ExchangeRate: l.exchangeRateOrDefault(in.ExchangeRate),
		Date:         in.Date,
		Month:        p.Month,
		Year:         p.Year,
	}
	inv.Recompute()

	err := l.apply(ctx, log.OpCreate, func(d *model.Document) error {
		d.Investments = append(d.Investments, inv)
		return nil
	})
	if err != nil {
		return model.ETFInvestment{}, err
	}
	l.log.Info("Investment added", log.FieldRecordID, inv.ID, log.FieldPeriod, p.String())
	return inv, nil
}

// UpdateInvestment merges patch into the contribution with the given id and
// recomputes the COP amount.
func (l *Ledger) UpdateInvestment(ctx context.Context, id string, patch InvestmentPatch) (model.ETFInvestment, error) {
	if err := checkInput(patch); err != nil {
		return model.ETFInvestment{}, err
	}
	if patch.AmountUSD != nil {
		if err := nonNegative("amountUsd", *patch.AmountUSD); err != nil {
			return model.ETFInvestment{}, err
		}
	}
	if patch.ExchangeRate != nil {
		if err := nonNegative("exchangeRate", *patch.ExchangeRate); err != nil {
			return model.ETFInvestment{}, err
		}
	}

	var updated model.ETFInvestment
	err := l.apply(ctx, log.OpUpdate, func(d *model.Document) error {
		i := indexOf(d.Investments, id, investmentID)
		if i < 0 {
			return fmt.Errorf("investment %s: %w", id, ErrNotFound)
		}
		inv := &d.Investments[i]
		if patch.ETFName != nil {
			inv.ETFName = strings.ToUpper(strings.TrimSpace(*patch.ETFName))
		}
		if patch.AmountUSD != nil {
			inv.AmountUSD = *patch.AmountUSD
		}
		if patch.ExchangeRate != nil {
			inv.ExchangeRate = *patch.ExchangeRate
		}
		if patch.Date != nil {
			inv.Date = *patch.Date
		}
		inv.Recompute()
		updated = *inv
		return nil
	})
	if err != nil {
		return model.ETFInvestment{}, err
	}
	l.log.Info("Investment updated", log.FieldRecordID, id)
	return updated, nil
}

// DeleteInvestment removes exactly the contribution with the given id.
func (l *Ledger) DeleteInvestment(ctx context.Context, id string) error {
	err := l.apply(ctx, log.OpDelete, func(d *model.Document) error {
		i := indexOf(d.Investments, id, investmentID)
		if i < 0 {
			return fmt.Errorf("investment %s: %w", id, ErrNotFound)
		}
		d.Investments = remove(d.Investments, i)
		return nil
	})
	if err != nil {
		return err
	}
	l.log.Info("Investment deleted", log.FieldRecordID, id)
	return nil
}
