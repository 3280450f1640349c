package model

import "github.com/shopspring/decimal"

// ExpenseSummary holds expense totals for one period.
type ExpenseSummary struct {
	Count        int             `json:"count"`
	Individual   decimal.Decimal `json:"individual"`
	Shared       decimal.Decimal `json:"shared"`
	PartnerShare decimal.Decimal `json:"partner_share"`
	UserTotal    decimal.Decimal `json:"user_total"`
	Total        decimal.Decimal `json:"total"`
}

// NetWorthSplit partitions the balances of a period.
type NetWorthSplit struct {
	Local   decimal.Decimal `json:"local"`
	Foreign decimal.Decimal `json:"foreign"`
	Total   decimal.Decimal `json:"total"`
}

// InvestmentTotals sums the ETF contributions of a period.
type InvestmentTotals struct {
	Contributions int             `json:"contributions"`
	USD           decimal.Decimal `json:"usd"`
	COP           decimal.Decimal `json:"cop"`
}

// PeriodSummary bundles the dashboard numbers for one period.
type PeriodSummary struct {
	Period      Period           `json:"period"`
	Expenses    ExpenseSummary   `json:"expenses"`
	NetWorth    NetWorthSplit    `json:"net_worth"`
	Investments InvestmentTotals `json:"investments"`
}

// MonthPoint is one step of the multi-month series.
type MonthPoint struct {
	Period      Period          `json:"period"`
	NetWorth    decimal.Decimal `json:"net_worth"`
	Expenses    decimal.Decimal `json:"expenses"`
	Investments decimal.Decimal `json:"investments"`
}

// NamedAmount is one slice of a distribution.
type NamedAmount struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	SharePercent float64         `json:"share_percent"`
}
