package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

type memStore struct {
	doc     model.Document
	saves   int
	failing bool
}

func (m *memStore) Load(context.Context) (model.Document, error) { return m.doc.Clone(), nil }

func (m *memStore) Save(_ context.Context, doc model.Document) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.saves++
	m.doc = doc.Clone()
	return nil
}

var june = model.Period{Month: 5, Year: 2024}

func newTestLedger(t *testing.T) (*Ledger, *memStore) {
	t.Helper()
	st := &memStore{doc: model.NewDocument()}
	l, err := Open(context.Background(), st, Catalog{
		ExpenseNames:        []string{"Arriendo", "Internet", "Gimnasio"},
		SharedExpenseNames:  []string{"Arriendo", "Internet"},
		ETFNames:            []string{"VOO", "QQQ"},
		DefaultExchangeRate: decimal.NewFromInt(4000),
	}, log.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	l.now = func() time.Time { return time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC) }
	return l, st
}

func ptr[T any](v T) *T { return &v }

func TestAddExpenseScenario(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	if _, err := l.AddExpense(ctx, june, ExpenseInput{Name: "Rent", Category: model.Individual, Amount: decimal.NewFromInt(1000000)}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	internet, err := l.AddExpense(ctx, june, ExpenseInput{Name: "Internet", Type: model.Variable, Amount: decimal.NewFromInt(200000)})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if internet.Category != model.Shared {
		t.Errorf("derived category = %s, want Compartido", internet.Category)
	}

	s := pipeline.SummarizeExpenses(l.Document().Expenses, june)
	if !s.UserTotal.Equal(decimal.NewFromInt(1100000)) || !s.PartnerShare.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("summary = %+v", s)
	}
	if st.saves != 2 {
		t.Errorf("saves = %d, want 2", st.saves)
	}
}

func TestAddExpenseRejectsInvalid(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	tests := []struct {
		name string
		p    model.Period
		in   ExpenseInput
	}{
		{"bad type", june, ExpenseInput{Name: "x", Type: "Mensual"}},
		{"bad category", june, ExpenseInput{Name: "x", Category: "Familiar"}},
		{"negative", june, ExpenseInput{Name: "x", Amount: decimal.NewFromInt(-1)}},
		{"bad month", model.Period{Month: 12, Year: 2024}, ExpenseInput{Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.AddExpense(ctx, tt.p, tt.in); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
	if st.saves != 0 {
		t.Errorf("invalid input was saved %d times", st.saves)
	}
}

func TestUpdateExpenseRenameRederivesCategory(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	e, _ := l.AddExpense(ctx, june, ExpenseInput{Name: "Gimnasio", Amount: decimal.NewFromInt(90000)})
	if e.Category != model.Individual {
		t.Fatalf("category = %s", e.Category)
	}

	got, err := l.UpdateExpense(ctx, e.ID, ExpensePatch{Name: ptr("Arriendo")})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if got.Category != model.Shared || !got.Amount.Equal(decimal.NewFromInt(90000)) {
		t.Fatalf("after rename = %+v", got)
	}

	got, _ = l.UpdateExpense(ctx, e.ID, ExpensePatch{Name: ptr("Internet"), Category: ptr(model.Individual)})
	if got.Category != model.Individual {
		t.Errorf("explicit category overridden: %s", got.Category)
	}

	if _, err := l.UpdateExpense(ctx, "missing", ExpensePatch{Amount: ptr(decimal.NewFromInt(1))}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesOnlyThatRecord(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		e, err := l.AddExpense(ctx, june, ExpenseInput{Name: "Mercado", Amount: decimal.NewFromInt(50000)})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, e.ID)
	}

	if err := l.DeleteExpense(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	left := l.Document().Expenses
	if len(left) != 2 || left[0].ID != ids[0] || left[1].ID != ids[2] {
		t.Fatalf("remaining = %+v", left)
	}
	if err := l.DeleteExpense(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCloneFixedDuplicates(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	may := june.Prev()
	_, _ = l.AddExpense(ctx, may, ExpenseInput{Name: "Arriendo", Amount: decimal.NewFromInt(1800000)})
	_, _ = l.AddExpense(ctx, may, ExpenseInput{Name: "Cine", Type: model.Variable, Amount: decimal.NewFromInt(30000)})

	n, err := l.CloneFixed(ctx, june)
	if err != nil || n != 1 {
		t.Fatalf("CloneFixed = %d, %v", n, err)
	}
	n, _ = l.CloneFixed(ctx, june)
	if n != 1 {
		t.Fatalf("second CloneFixed = %d", n)
	}

	cloned := pipeline.FilterPeriod(l.Document().Expenses, june)
	if len(cloned) != 2 || cloned[0].ID == cloned[1].ID {
		t.Fatalf("cloned = %+v", cloned)
	}
	if cloned[0].Name != "Arriendo" || !cloned[0].Amount.Equal(decimal.NewFromInt(1800000)) {
		t.Errorf("clone content = %+v", cloned[0])
	}
}

func TestCloneFixedAcrossYear(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	_, _ = l.AddExpense(ctx, model.Period{Month: 11, Year: 2023}, ExpenseInput{Name: "Arriendo"})
	n, err := l.CloneFixed(ctx, model.Period{Month: 0, Year: 2024})
	if err != nil || n != 1 {
		t.Fatalf("CloneFixed = %d, %v", n, err)
	}
}

func TestSeedPeriodIdempotent(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	_, _ = l.AddExpense(ctx, june, ExpenseInput{Name: "Internet", Amount: decimal.NewFromInt(120000)})

	res, err := l.SeedPeriod(ctx, june)
	if err != nil {
		t.Fatalf("SeedPeriod: %v", err)
	}
	if res.Expenses != 2 || res.Investments != 2 {
		t.Fatalf("seeded = %+v, want 2 expenses and 2 investments", res)
	}
	doc := l.Document()
	count := len(doc.Expenses) + len(doc.Investments)
	saves := st.saves

	res, err = l.SeedPeriod(ctx, june)
	if err != nil || res.Total() != 0 {
		t.Fatalf("second SeedPeriod = %+v, %v", res, err)
	}
	doc = l.Document()
	if len(doc.Expenses)+len(doc.Investments) != count {
		t.Errorf("record count changed on reseed")
	}
	if st.saves != saves {
		t.Errorf("reseed persisted")
	}

	for _, e := range pipeline.FilterPeriod(doc.Expenses, june) {
		if e.Name == "Arriendo" && (e.Category != model.Shared || e.Type != model.Fixed || !e.Amount.IsZero()) {
			t.Errorf("seeded Arriendo = %+v", e)
		}
		if e.Name == "Gimnasio" && e.Category != model.Individual {
			t.Errorf("seeded Gimnasio = %+v", e)
		}
	}
	for _, inv := range doc.Investments {
		if !inv.ExchangeRate.Equal(decimal.NewFromInt(4000)) || inv.Date != "2024-06-01" {
			t.Errorf("seeded investment = %+v", inv)
		}
	}
}

func TestInvestmentScenario(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	inv, err := l.AddInvestment(ctx, june, InvestmentInput{
		ETFName: "voo", AmountUSD: decimal.NewFromInt(100), ExchangeRate: decimal.NewFromInt(4000),
	})
	if err != nil {
		t.Fatalf("AddInvestment: %v", err)
	}
	if inv.ETFName != "VOO" || !inv.AmountCOP.Equal(decimal.NewFromInt(400000)) || inv.Date != "2024-06-20" {
		t.Fatalf("added = %+v", inv)
	}

	up, err := l.UpdateInvestment(ctx, inv.ID, InvestmentPatch{ExchangeRate: ptr(decimal.NewFromInt(4200))})
	if err != nil {
		t.Fatalf("UpdateInvestment: %v", err)
	}
	if !up.AmountCOP.Equal(decimal.NewFromInt(420000)) || !up.AmountUSD.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("updated = %+v", up)
	}

	up, _ = l.UpdateInvestment(ctx, inv.ID, InvestmentPatch{AmountUSD: ptr(decimal.RequireFromString("12.5"))})
	if !up.AmountCOP.Equal(decimal.NewFromInt(52500)) {
		t.Errorf("AmountCOP = %s, want 52500", up.AmountCOP)
	}
}

func TestAddInvestmentDefaults(t *testing.T) {
	l, _ := newTestLedger(t)
	inv, err := l.AddInvestment(context.Background(), june, InvestmentInput{ETFName: " qqq ", AmountUSD: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("AddInvestment: %v", err)
	}
	if !inv.ExchangeRate.Equal(decimal.NewFromInt(4000)) || !inv.AmountCOP.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("defaulted = %+v", inv)
	}
	if _, err := l.AddInvestment(context.Background(), june, InvestmentInput{Date: "20/06/2024"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad date err = %v, want ErrInvalid", err)
	}
}

func TestSetBalanceUpserts(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	first, _ := l.SetBalance(ctx, june, "Nu", decimal.NewFromInt(500))
	second, err := l.SetBalance(ctx, june, "Nu", decimal.NewFromInt(700))
	if err != nil {
		t.Fatalf("SetBalance: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a new record")
	}
	_, _ = l.SetBalance(ctx, june.Prev(), "Nu", decimal.NewFromInt(1))
	if n := len(l.Document().Balances); n != 2 {
		t.Fatalf("balances = %d, want 2", n)
	}

	up, err := l.UpdateBalance(ctx, first.ID, BalancePatch{Balance: ptr(decimal.NewFromInt(-20))})
	if err != nil || !up.Balance.Equal(decimal.NewFromInt(-20)) {
		t.Fatalf("UpdateBalance = %+v, %v", up, err)
	}
	if err := l.DeleteBalance(ctx, first.ID); err != nil {
		t.Fatalf("DeleteBalance: %v", err)
	}
	if err := l.DeleteBalance(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFailedSaveKeepsState(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()
	_, _ = l.AddBalance(ctx, june, "Nu", decimal.NewFromInt(100))

	st.failing = true
	if _, err := l.AddBalance(ctx, june, "eToro", decimal.NewFromInt(5)); err == nil {
		t.Fatal("expected save error")
	}
	if err := l.Replace(ctx, model.NewDocument()); err == nil {
		t.Fatal("expected save error on replace")
	}
	if n := len(l.Document().Balances); n != 1 {
		t.Fatalf("in-memory balances = %d after failed saves, want 1", n)
	}
}

func TestDocumentIsCopy(t *testing.T) {
	l, _ := newTestLedger(t)
	_, _ = l.AddBalance(context.Background(), june, "Nu", decimal.NewFromInt(100))
	doc := l.Document()
	doc.Balances[0].AccountName = "changed"
	if l.Document().Balances[0].AccountName != "Nu" {
		t.Fatal("Document exposed internal state")
	}
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	l, st := newTestLedger(t)
	ext := model.NewDocument()
	ext.Balances = append(ext.Balances, model.AccountBalance{ID: "x", AccountName: "Nu", Month: 5, Year: 2024})
	st.doc = ext

	if len(l.Document().Balances) != 0 {
		t.Fatal("ledger saw store change before Reload")
	}
	if err := l.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(l.Document().Balances) != 1 {
		t.Fatal("Reload did not pick up the stored document")
	}
}

func TestSeedUpperCasesCatalogETFs(t *testing.T) {
	l, _ := newTestLedger(t)
	l.catalog.ETFNames = []string{" voo ", "qqq"}
	ctx := context.Background()
	if _, err := l.AddInvestment(ctx, june, InvestmentInput{ETFName: "VOO", AmountUSD: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("AddInvestment: %v", err)
	}

	res, err := l.SeedPeriod(ctx, june)
	if err != nil {
		t.Fatalf("SeedPeriod: %v", err)
	}
	if res.Investments != 1 {
		t.Fatalf("seeded %d investments, want 1", res.Investments)
	}
	dist := pipeline.ETFDistribution(l.Document().Investments)
	if len(dist) != 2 {
		t.Fatalf("distribution = %+v, want VOO and QQQ", dist)
	}
	for _, d := range dist {
		if d.Name != "VOO" && d.Name != "QQQ" {
			t.Errorf("unexpected ETF name %q", d.Name)
		}
	}
}

func TestBalanceAccountNameLength(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	long := strings.Repeat("x", 201)

	if _, err := l.AddBalance(ctx, june, long, decimal.NewFromInt(1)); !errors.Is(err, ErrInvalid) {
		t.Errorf("AddBalance err = %v, want ErrInvalid", err)
	}
	if _, err := l.SetBalance(ctx, june, long, decimal.NewFromInt(1)); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetBalance err = %v, want ErrInvalid", err)
	}
	if n := len(l.Document().Balances); n != 0 {
		t.Errorf("balances = %d, want 0", n)
	}
}
