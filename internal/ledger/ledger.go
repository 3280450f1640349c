// Package ledger holds the in-memory finance document and applies every
// mutation to it. Each successful mutation is persisted before it becomes
// visible; a failed save leaves the previous state in place.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/validate"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid is returned when an input fails validation.
	ErrInvalid = errors.New("invalid input")
)

// Store is the persistence the ledger writes through to.
type Store interface {
	Load(ctx context.Context) (model.Document, error)
	Save(ctx context.Context, doc model.Document) error
}

// Catalog lists the canonical names used for seeding and category defaults.
type Catalog struct {
	ExpenseNames        []string
	SharedExpenseNames  []string
	ETFNames            []string
	DefaultExchangeRate decimal.Decimal
}

// Ledger is the explicit state container for the finance document.
type Ledger struct {
	mu      sync.RWMutex
	doc     model.Document
	store   Store
	catalog Catalog
	log     *log.Logger

	newID func() string
	now   func() time.Time
}

// Open loads the persisted document from st.
func Open(ctx context.Context, st Store, catalog Catalog, logger *log.Logger) (*Ledger, error) {
	doc, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return &Ledger{
		doc:     doc.Clone(),
		store:   st,
		catalog: catalog,
		log:     logger.WithComponent(log.ComponentLedger),
		newID:   uuid.NewString,
		now:     time.Now,
	}, nil
}

// Document returns a copy of the current state.
func (l *Ledger) Document() model.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Clone()
}

// Reload replaces the in-memory state with what the store currently holds,
// picking up changes written by another process.
func (l *Ledger) Reload(ctx context.Context) error {
	doc, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading document: %w", err)
	}
	l.mu.Lock()
	l.doc = doc.Clone()
	l.mu.Unlock()
	return nil
}

// Replace swaps in doc wholesale, as done when restoring a backup.
func (l *Ledger) Replace(ctx context.Context, doc model.Document) error {
	return l.apply(ctx, log.OpReplace, func(d *model.Document) error {
		*d = doc.Clone()
		return nil
	})
}

// apply runs fn on a copy of the document, saves the copy and only then
// installs it as the current state.
func (l *Ledger) apply(ctx context.Context, op string, fn func(*model.Document) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.doc.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := l.store.Save(ctx, next); err != nil {
		l.log.Error("Save failed, keeping previous state", log.FieldOperation, op, log.FieldError, err)
		return fmt.Errorf("saving document: %w", err)
	}
	l.doc = next
	return nil
}

func (l *Ledger) isShared(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, n := range l.catalog.SharedExpenseNames {
		if strings.ToLower(strings.TrimSpace(n)) == key {
			return true
		}
	}
	return false
}

// CategoryFor returns the default category for an expense name.
func (l *Ledger) CategoryFor(name string) model.ExpenseCategory {
	if l.isShared(name) {
		return model.Shared
	}
	return model.Individual
}

func (l *Ledger) exchangeRateOrDefault(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return l.catalog.DefaultExchangeRate
	}
	return rate
}

func checkPeriod(p model.Period) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func checkInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
	}
	return nil
}

// indexOf returns the position of the first record matching id, or -1.
func indexOf[T any](records []T, id string, key func(T) string) int {
	for i, r := range records {
		if key(r) == id {
			return i
		}
	}
	return -1
}

func remove[T any](records []T, i int) []T {
	return append(records[:i:i], records[i+1:]...)
}
