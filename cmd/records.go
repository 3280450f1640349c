package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/financeflow/internal/ledger"
	"github.com/theirongolddev/financeflow/internal/model"
)

// resolveID expands an id prefix, as printed by the list commands, to the
// full id of exactly one record.
func resolveID[T any](records []T, prefix string, id func(T) string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("empty id: %w", ledger.ErrNotFound)
	}
	var match string
	for _, r := range records {
		full := id(r)
		if full == prefix {
			return full, nil
		}
		if !strings.HasPrefix(full, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id %q is ambiguous, type more characters", prefix)
		}
		match = full
	}
	if match == "" {
		return "", fmt.Errorf("id %s: %w", prefix, ledger.ErrNotFound)
	}
	return match, nil
}

// parseExpenseType accepts the expense type in any letter case.
func parseExpenseType(s string) (model.ExpenseType, error) {
	for _, t := range []model.ExpenseType{model.Fixed, model.Variable} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("tipo %q no válido (use Fijo o Variable): %w", s, ledger.ErrInvalid)
}

// parseCategory accepts the expense category in any letter case.
func parseCategory(s string) (model.ExpenseCategory, error) {
	for _, c := range []model.ExpenseCategory{model.Individual, model.Shared} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("categoría %q no válida (use Individual o Compartido): %w", s, ledger.ErrInvalid)
}
