package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
)

// BalancePatch lists the balance fields to change.
type BalancePatch struct {
	AccountName *string          `json:"accountName" validate:"omitempty,max=200"`
	Balance     *decimal.Decimal `json:"balance"`
}

type balanceInput struct {
	AccountName string `json:"accountName" validate:"max=200"`
}

func balanceID(b model.AccountBalance) string { return b.ID }

// AddBalance appends a balance record for account in p.
func (l *Ledger) AddBalance(ctx context.Context, p model.Period, account string, amount decimal.Decimal) (model.AccountBalance, error) {
	if err := checkPeriod(p); err != nil {
		return model.AccountBalance{}, err
	}
	if err := checkInput(balanceInput{AccountName: account}); err != nil {
		return model.AccountBalance{}, err
	}
	b := model.AccountBalance{
		ID:          l.newID(),
		AccountName: account,
		Balance:     amount,
		Month:       p.Month,
		Year:        p.Year,
	}
	err := l.apply(ctx, log.OpCreate, func(d *model.Document) error {
		d.Balances = append(d.Balances, b)
		return nil
	})
	if err != nil {
		return model.AccountBalance{}, err
	}
	l.log.Info("Balance added", log.FieldRecordID, b.ID, log.FieldPeriod, p.String())
	return b, nil
}

// SetBalance updates the balance of account in p, creating the record when
// the account has none in that period.
func (l *Ledger) SetBalance(ctx context.Context, p model.Period, account string, amount decimal.Decimal) (model.AccountBalance, error) {
	if err := checkPeriod(p); err != nil {
		return model.AccountBalance{}, err
	}
	if err := checkInput(balanceInput{AccountName: account}); err != nil {
		return model.AccountBalance{}, err
	}
	var result model.AccountBalance
	err := l.apply(ctx, log.OpUpsert, func(d *model.Document) error {
		for i := range d.Balances {
			b := &d.Balances[i]
			if b.AccountName == account && p.Matches(b.Month, b.Year) {
				b.Balance = amount
				result = *b
				return nil
			}
		}
		result = model.AccountBalance{
			ID:          l.newID(),
			AccountName: account,
			Balance:     amount,
			Month:       p.Month,
			Year:        p.Year,
		}
		d.Balances = append(d.Balances, result)
		return nil
	})
	if err != nil {
		return model.AccountBalance{}, err
	}
	l.log.Info("Balance set", log.FieldRecordID, result.ID, log.FieldPeriod, p.String())
	return result, nil
}

// UpdateBalance merges patch into the balance with the given id.
func (l *Ledger) UpdateBalance(ctx context.Context, id string, patch BalancePatch) (model.AccountBalance, error) {
	if err := checkInput(patch); err != nil {
		return model.AccountBalance{}, err
	}
	var updated model.AccountBalance
	err := l.apply(ctx, log.OpUpdate, func(d *model.Document) error {
		i := indexOf(d.Balances, id, balanceID)
		if i < 0 {
			return fmt.Errorf("balance %s: %w", id, ErrNotFound)
		}
		b := &d.Balances[i]
		if patch.AccountName != nil {
			b.AccountName = *patch.AccountName
		}
		if patch.Balance != nil {
			b.Balance = *patch.Balance
		}
		updated = *b
		return nil
	})
	if err != nil {
		return model.AccountBalance{}, err
	}
	l.log.Info("Balance updated", log.FieldRecordID, id)
	return updated, nil
}

// DeleteBalance removes exactly the balance with the given id.
func (l *Ledger) DeleteBalance(ctx context.Context, id string) error {
	err := l.apply(ctx, log.OpDelete, func(d *model.Document) error {
		i := indexOf(d.Balances, id, balanceID)
		if i < 0 {
			return fmt.Errorf("balance %s: %w", id, ErrNotFound)
		}
		d.Balances = remove(d.Balances, i)
		return nil
	})
	if err != nil {
		return err
	}
	l.log.Info("Balance deleted", log.FieldRecordID, id)
	return nil
}
