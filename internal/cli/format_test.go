package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/insight"
	"github.com/theirongolddev/financeflow/internal/model"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"1100000", "$1.100.000"},
		{"100000.5", "$100.000,50"},
		{"-12.5", "-$12,50"},
		{"400000.004", "$400.000"},
	}
	for _, tt := range tests {
		if got := FormatCOP(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatCOP(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(decimal.RequireFromString("1234.5")); got != "US$1,234.50" {
		t.Errorf("FormatUSD = %q", got)
	}
	if got := FormatUSD(decimal.NewFromInt(100)); got != "US$100" {
		t.Errorf("FormatUSD = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(decimal.NewFromInt(1500), decimal.NewFromInt(1000)); got != "+$500" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(decimal.NewFromInt(1000), decimal.NewFromInt(1500)); got != "-$500" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestMonthNames(t *testing.T) {
	if MonthName(0) != "Enero" || MonthName(11) != "Diciembre" || MonthName(12) != "???" {
		t.Error("MonthName mismatch")
	}
	if ShortMonth(8) != "Sep" {
		t.Errorf("ShortMonth(8) = %q", ShortMonth(8))
	}
	if got := FormatPeriod(model.Period{Month: 5, Year: 2024}); got != "Junio 2024" {
		t.Errorf("FormatPeriod = %q", got)
	}
}

func TestShortID(t *testing.T) {
	if ShortID("0123456789abcdef") != "01234567" || ShortID("abc") != "abc" {
		t.Error("ShortID mismatch")
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Cuenta", "Saldo"},
		Rows: [][]string{
			{"Davivienda", "$1.000"},
			{"---"},
			{"Año", "$5"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "Davivienda") || !strings.Contains(out, "$1.000") {
		t.Errorf("missing cells:\n%s", out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{-10, 0, 10}); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline should be blank")
	}
}

func TestRenderHorizontalBarKeepsLabel(t *testing.T) {
	if got := RenderHorizontalBar("VOO", 5, 10, 10); !strings.Contains(got, "VOO") {
		t.Errorf("bar lost its label: %q", got)
	}
}

func TestRenderInsight(t *testing.T) {
	out := RenderInsight(insight.Paragraphs("# Resumen\nVas bien."))
	if !strings.Contains(out, "Resumen") || !strings.Contains(out, "Vas bien.") || strings.Contains(out, "#") {
		t.Errorf("insight = %q", out)
	}
}
