package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/financeflow/internal/config"
)

func TestSpinnerFinishesWithResult(t *testing.T) {
	m := newSpinnerModel("Analizando", func() string { return "listo" })
	if !strings.Contains(m.View(), "Analizando") {
		t.Fatalf("view = %q", m.View())
	}

	next, cmd := m.Update(taskDoneMsg{result: "listo"})
	got := next.(spinnerModel)
	if !got.done || got.result != "listo" {
		t.Fatalf("model = %+v", got)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if got.View() != "" {
		t.Errorf("view after done = %q", got.View())
	}
}

func TestSpinnerAbort(t *testing.T) {
	m := newSpinnerModel("x", func() string { return "" })
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(spinnerModel).aborted {
		t.Fatal("ctrl+c did not abort")
	}
}

func TestSetupApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Insights.APIKey = "old"

	v := SetupValuesFrom(cfg)
	if v.ExchangeRate != "4000" || v.HistoryMonths != 6 {
		t.Fatalf("prefill = %+v", v)
	}
	v.Backend = "sqlite"
	v.HistoryMonths = 12
	v.ExchangeRate = "4.150,5"
	v.Apply(&cfg)
	if cfg.General.Backend != "sqlite" || cfg.General.HistoryMonths != 12 {
		t.Errorf("general = %+v", cfg.General)
	}
	if cfg.Investments.DefaultExchangeRate != 4000 {
		t.Errorf("unparsable rate changed the config: %v", cfg.Investments.DefaultExchangeRate)
	}
	if cfg.Insights.APIKey != "old" {
		t.Errorf("blank key replaced existing one")
	}

	v.ExchangeRate = "4150.5"
	v.APIKey = " new "
	v.Apply(&cfg)
	if cfg.Investments.DefaultExchangeRate != 4150.5 || cfg.Insights.APIKey != "new" {
		t.Errorf("after apply = %+v / %+v", cfg.Investments, cfg.Insights)
	}
}

func TestValidateRate(t *testing.T) {
	if validateRate("0") == nil || validateRate("abc") == nil {
		t.Error("expected error for non-positive rate")
	}
	if err := validateRate("4200"); err != nil {
		t.Errorf("validateRate(4200) = %v", err)
	}
}
