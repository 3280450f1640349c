package config

import (
	"slices"
	"strings"
)

// DefaultCatalog returns the built-in names used until the user edits
// the [catalog] section.
func DefaultCatalog() CatalogConfig {
	return CatalogConfig{
		ExpenseNames: []string{
			"Arriendo",
			"Administración",
			"Servicios públicos",
			"Internet",
			"Celular",
			"Mercado",
			"Transporte",
			"Gimnasio",
			"Seguro",
			"Streaming",
		},
		SharedExpenseNames: []string{
			"Arriendo",
			"Administración",
			"Servicios públicos",
			"Internet",
			"Mercado",
		},
		ETFNames:        []string{"VOO", "QQQ", "VT", "SCHD"},
		AccountNames:    []string{"Bancolombia", "Nu", "Davivienda", "eToro"},
		ForeignAccounts: []string{"eToro"},
	}
}

// KnownAccount reports whether name is one of the configured accounts,
// ignoring case.
func (c CatalogConfig) KnownAccount(name string) bool {
	return slices.ContainsFunc(c.AccountNames, func(a string) bool {
		return strings.EqualFold(a, strings.TrimSpace(name))
	})
}
