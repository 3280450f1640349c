// Package server exposes the aggregation engine as a local read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/pipeline"
)

// Source provides the document being served.
type Source interface {
	Document() model.Document
	Reload(ctx context.Context) error
}

// Config controls the server runtime behavior.
type Config struct {
	Addr      string
	Interval  time.Duration // how often the document is reloaded; zero disables
	History   int
	IsForeign func(account string) bool
	Backend   string
	DataDir   string
}

// Status is served at /v1/status.
type Status struct {
	StartedAt         time.Time `json:"started_at"`
	LastReloadAt      time.Time `json:"last_reload_at"`
	ReloadIntervalSec int       `json:"reload_interval_sec"`
	ReloadCount       int64     `json:"reload_count"`
	Backend           string    `json:"backend"`
	DataDir           string    `json:"data_dir"`
	Expenses          int       `json:"expenses"`
	Balances          int       `json:"balances"`
	Investments       int       `json:"investments"`
	LastError         string    `json:"last_error,omitempty"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config
	src Source
	log *log.Logger
	now func() time.Time

	mu           sync.RWMutex
	startedAt    time.Time
	lastReloadAt time.Time
	reloadCount  int64
	lastError    string
}

// New returns a service reading from src.
func New(cfg Config, src Source, logger *log.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.History < 1 {
		cfg.History = 6
	}
	return &Service{
		cfg:       cfg,
		src:       src,
		log:       logger.WithComponent(log.ComponentServer),
		now:       time.Now,
		startedAt: time.Now(),
	}
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/history", s.handleHistory)
	mux.HandleFunc("GET /v1/etf", s.handleETF)
	mux.HandleFunc("GET /v1/document", s.handleDocument)
	return log.Middleware(s.log)(mux)
}

// Run serves the API and periodically reloads the document until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("Serving read API", "addr", s.cfg.Addr)

	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-tick:
			s.reloadOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("read api http server: %w", err)
		}
	}
}

func (s *Service) reloadOnce(ctx context.Context) {
	err := s.src.Reload(ctx)

	s.mu.Lock()
	s.lastReloadAt = s.now()
	s.reloadCount++
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("Reload failed", log.FieldError, err)
	}
}

func (s *Service) status() Status {
	doc := s.src.Document()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:         s.startedAt,
		LastReloadAt:      s.lastReloadAt,
		ReloadIntervalSec: int(s.cfg.Interval.Seconds()),
		ReloadCount:       s.reloadCount,
		Backend:           s.cfg.Backend,
		DataDir:           s.cfg.DataDir,
		Expenses:          len(doc.Expenses),
		Balances:          len(doc.Balances),
		Investments:       len(doc.Investments),
		LastError:         s.lastError,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, err := s.periodFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	doc := s.src.Document()
	writeJSON(w, http.StatusOK, struct {
		model.PeriodSummary
		Previous     model.PeriodSummary `json:"previous"`
		Distribution []model.NamedAmount `json:"expense_distribution"`
	}{
		PeriodSummary: pipeline.Summarize(doc, p, s.cfg.IsForeign),
		Previous:      pipeline.Summarize(doc, p.Prev(), s.cfg.IsForeign),
		Distribution:  pipeline.ExpenseDistribution(pipeline.SummarizeExpenses(doc.Expenses, p)),
	})
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	p, err := s.periodFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	months := s.cfg.History
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 || months > 120 {
			writeError(w, fmt.Errorf("months must be between 1 and 120"))
			return
		}
	}
	writeJSON(w, http.StatusOK, pipeline.History(s.src.Document(), p, months))
}

func (s *Service) handleETF(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, pipeline.ETFDistribution(s.src.Document().Investments))
}

func (s *Service) handleDocument(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.src.Document())
}

// periodFromQuery reads month (1-12) and year, defaulting to the current month.
func (s *Service) periodFromQuery(r *http.Request) (model.Period, error) {
	p := model.PeriodOf(s.now())
	q := r.URL.Query()
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return model.Period{}, fmt.Errorf("month must be between 1 and 12")
		}
		p.Month = m - 1
	}
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return model.Period{}, fmt.Errorf("invalid year %q", raw)
		}
		p.Year = y
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
