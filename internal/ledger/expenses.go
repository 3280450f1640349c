package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

// ExpenseInput describes a new expense. An empty Type means Fijo and an
// empty Category is derived from the name.
type ExpenseInput struct {
	Name     string                `json:"name" validate:"max=200"`
	Type     model.ExpenseType     `json:"type" validate:"omitempty,oneof=Fijo Variable"`
	Category model.ExpenseCategory `json:"category" validate:"omitempty,oneof=Individual Compartido"`
	Amount   decimal.Decimal       `json:"amount"`
}

// ExpensePatch lists the fields to change; nil fields are left alone.
type ExpensePatch struct {
	Name     *string                `json:"name" validate:"omitempty,max=200"`
	Type     *model.ExpenseType     `json:"type" validate:"omitempty,oneof=Fijo Variable"`
	Category *model.ExpenseCategory `json:"category" validate:"omitempty,oneof=Individual Compartido"`
	Amount   *decimal.Decimal       `json:"amount"`
}

func expenseID(e model.Expense) string { return e.ID }

// AddExpense records a new expense in p.
func (l *Ledger) AddExpense(ctx context.Context, p model.Period, in ExpenseInput) (model.Expense, error) {
	if err := checkPeriod(p); err != nil {
		return model.Expense{}, err
	}
	if in.Type == "" {
		in.Type = model.Fixed
	}
	if in.Category == "" {
		in.Category = l.CategoryFor(in.Name)
	}
	if err := checkInput(in); err != nil {
		return model.Expense{}, err
	}
	if err := nonNegative("amount", in.Amount); err != nil {
		return model.Expense{}, err
	}

	e := model.Expense{
		ID:       l.newID(),
		Name:     in.Name,
		Type:     in.Type,
		Category: in.Category,
		Amount:   in.Amount,
		Month:    p.Month,
		Year:     p.Year,
	}
	err := l.apply(ctx, log.OpCreate, func(d *model.Document) error {
		d.Expenses = append(d.Expenses, e)
		return nil
	})
	if err != nil {
		return model.Expense{}, err
	}
	l.log.Info("Expense added", log.FieldRecordID, e.ID, log.FieldPeriod, p.String())
	return e, nil
}

// UpdateExpense merges patch into the expense with the given id. Renaming
// without an explicit category re-derives the category from the new name.
func (l *Ledger) UpdateExpense(ctx context.Context, id string, patch ExpensePatch) (model.Expense, error) {
	if err := checkInput(patch); err != nil {
		return model.Expense{}, err
	}
	if patch.Amount != nil {
		if err := nonNegative("amount", *patch.Amount); err != nil {
			return model.Expense{}, err
		}
	}

	var updated model.Expense
	err := l.apply(ctx, log.OpUpdate, func(d *model.Document) error {
		i := indexOf(d.Expenses, id, expenseID)
		if i < 0 {
			return fmt.Errorf("expense %s: %w", id, ErrNotFound)
		}
		e := &d.Expenses[i]
		if patch.Name != nil {
			e.Name = *patch.Name
			if patch.Category == nil {
				e.Category = l.CategoryFor(e.Name)
			}
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.Category != nil {
			e.Category = *patch.Category
		}
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		updated = *e
		return nil
	})
	if err != nil {
		return model.Expense{}, err
	}
	l.log.Info("Expense updated", log.FieldRecordID, id)
	return updated, nil
}

// DeleteExpense removes exactly the expense with the given id.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	err := l.apply(ctx, log.OpDelete, func(d *model.Document) error {
		i := indexOf(d.Expenses, id, expenseID)
		if i < 0 {
			return fmt.Errorf("expense %s: %w", id, ErrNotFound)
		}
		d.Expenses = remove(d.Expenses, i)
		return nil
	})
	if err != nil {
		return err
	}
	l.log.Info("Expense deleted", log.FieldRecordID, id)
	return nil
}

// CloneFixed copies every Fijo expense of the month before p into p with
// fresh ids. Repeated calls add the copies again. It returns how many
// expenses were copied.
func (l *Ledger) CloneFixed(ctx context.Context, p model.Period) (int, error) {
	if err := checkPeriod(p); err != nil {
		return 0, err
	}
	var count int
	err := l.apply(ctx, log.OpClone, func(d *model.Document) error {
		for _, e := range pipeline.FilterPeriod(d.Expenses, p.Prev()) {
			if e.Type != model.Fixed {
				continue
			}
			e.ID = l.newID()
			e.Month, e.Year = p.Month, p.Year
			d.Expenses = append(d.Expenses, e)
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	l.log.Info("Fixed expenses cloned", log.FieldPeriod, p.String(), log.FieldCount, count)
	return count, nil
}
