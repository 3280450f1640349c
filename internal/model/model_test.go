package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodAdd(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		n    int
		want Period
	}{
		{"same year", Period{Month: 5, Year: 2024}, 1, Period{Month: 6, Year: 2024}},
		{"january back", Period{Month: 0, Year: 2024}, -1, Period{Month: 11, Year: 2023}},
		{"december forward", Period{Month: 11, Year: 2024}, 1, Period{Month: 0, Year: 2025}},
		{"two years back", Period{Month: 3, Year: 2024}, -24, Period{Month: 3, Year: 2022}},
		{"zero", Period{Month: 7, Year: 2020}, 0, Period{Month: 7, Year: 2020}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Add(tt.n); got != tt.want {
				t.Fatalf("Add(%d) = %+v, want %+v", tt.n, got, tt.want)
			}
		})
	}
}

func TestPeriodHelpers(t *testing.T) {
	p := PeriodOf(time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC))
	if p != (Period{Month: 5, Year: 2024}) {
		t.Fatalf("PeriodOf = %+v", p)
	}
	if p.String() != "2024-06" {
		t.Errorf("String = %q", p.String())
	}
	if !p.Matches(5, 2024) || p.Matches(5, 2023) {
		t.Errorf("Matches wrong for %+v", p)
	}
	if got := p.FirstDay().Format("2006-01-02"); got != "2024-06-01" {
		t.Errorf("FirstDay = %s", got)
	}
	if (Period{Month: 12, Year: 2024}).Valid() {
		t.Error("month 12 should be invalid")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000000", "1000000"},
		{" 250.5 ", "250.5"},
		{"$1200", "1200"},
		{"12,75", "12.75"},
		{"", "0"},
		{"abc", "0"},
		{"-300", "-300"},
		{"1e400", "0"},
		{"1E5000000", "0"},
		{"2.5e3", "0"},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRecompute(t *testing.T) {
	inv := ETFInvestment{AmountUSD: decimal.NewFromInt(100), ExchangeRate: decimal.NewFromInt(4000)}
	inv.Recompute()
	if !inv.AmountCOP.Equal(decimal.NewFromInt(400000)) {
		t.Fatalf("AmountCOP = %s, want 400000", inv.AmountCOP)
	}
}

func TestUserShare(t *testing.T) {
	shared := Expense{Category: Shared, Amount: decimal.NewFromInt(200000)}
	if !shared.UserShare().Equal(decimal.NewFromInt(100000)) {
		t.Errorf("shared UserShare = %s", shared.UserShare())
	}
	ind := Expense{Category: Individual, Amount: decimal.NewFromInt(5)}
	if !ind.UserShare().Equal(decimal.NewFromInt(5)) {
		t.Errorf("individual UserShare = %s", ind.UserShare())
	}
}

func TestDocumentJSONUsesNumbers(t *testing.T) {
	doc := NewDocument()
	doc.Expenses = append(doc.Expenses, Expense{
		ID: "a", Name: "Arriendo", Type: Fixed, Category: Individual,
		Amount: decimal.NewFromInt(1000000), Month: 5, Year: 2024,
	})
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"amount":1000000`) {
		t.Errorf("amount not encoded as number: %s", s)
	}
	if !strings.Contains(s, `"balances":[]`) {
		t.Errorf("empty collection not encoded as []: %s", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := NewDocument()
	doc.Balances = append(doc.Balances, AccountBalance{ID: "1", AccountName: "Nu"})
	c := doc.Clone()
	c.Balances[0].AccountName = "eToro"
	if doc.Balances[0].AccountName != "Nu" {
		t.Fatal("Clone shares storage with the original")
	}
	var zero Document
	if zero.Clone().Expenses == nil {
		t.Fatal("Clone of zero document has nil expenses")
	}
}
