package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/model"
)

func sampleDoc() model.Document {
	doc := model.NewDocument()
	doc.Expenses = append(doc.Expenses, model.Expense{
		ID: "e1", Name: "Internet", Type: model.Fixed, Category: model.Shared,
		Amount: decimal.NewFromInt(200000), Month: 5, Year: 2024,
	})
	doc.Balances = append(doc.Balances, model.AccountBalance{
		ID: "b1", AccountName: "Nu", Balance: decimal.RequireFromString("1500.75"), Month: 5, Year: 2024,
	})
	doc.Investments = append(doc.Investments, model.ETFInvestment{
		ID: "i1", ETFName: "VOO", AmountUSD: decimal.NewFromInt(100), ExchangeRate: decimal.NewFromInt(4200),
		AmountCOP: decimal.NewFromInt(420000), Date: "2024-06-10", Month: 5, Year: 2024,
	})
	return doc
}

func TestExportImportRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	if err := Export(&buf, doc); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"expenses\": [") {
		t.Errorf("export not 2-space indented:\n%s", buf.String())
	}

	got, err := Import(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want, _ := json.Marshal(doc)
	have, _ := json.Marshal(got)
	if string(want) != string(have) {
		t.Fatalf("round trip mismatch:\n got  %s\n want %s", have, want)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", "{oops", ErrUnreadable},
		{"missing investments", `{"expenses":[],"balances":[]}`, ErrMalformed},
		{"null balances", `{"expenses":[],"balances":null,"investments":[]}`, ErrMalformed},
		{"array", `[1,2]`, ErrMalformed},
		{"boolean balances", `{"expenses":[],"balances":false,"investments":[]}`, ErrMalformed},
		{"object expenses", `{"expenses":{},"balances":[],"investments":[]}`, ErrMalformed},
		{"string expenses", `{"expenses":"","balances":[],"investments":[]}`, ErrMalformed},
		{"wrong element type", `{"expenses":[1],"balances":[],"investments":[]}`, ErrUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImportEmptyCollections(t *testing.T) {
	doc, err := Import(strings.NewReader(`{"expenses":[],"balances":[],"investments":[],"extra":1}`))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(doc.Expenses)+len(doc.Balances)+len(doc.Investments) != 0 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	path, err := ExportFile(dir, sampleDoc(), now)
	if err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	if filepath.Base(path) != "financeflow_backup_2024-06-30.json" {
		t.Errorf("name = %s", filepath.Base(path))
	}
	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(doc.Investments) != 1 || !doc.Investments[0].AmountCOP.Equal(decimal.NewFromInt(420000)) {
		t.Errorf("investments = %+v", doc.Investments)
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrUnreadable) {
		t.Errorf("missing file err = %v, want ErrUnreadable", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportFile(filepath.Join(dir, "x.json")); !errors.Is(err, ErrMalformed) {
		t.Errorf("empty object err = %v, want ErrMalformed", err)
	}
}
