package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
)

// Fixed texts shown instead of an analysis.
const (
	FallbackEmpty      = "No se pudo generar el análisis en este momento."
	FallbackConnection = "Error al conectar con la inteligencia artificial."
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExpenseView is the part of an expense shared with the model.
type ExpenseView struct {
	Name     string                `json:"name"`
	Amount   decimal.Decimal       `json:"amount"`
	Category model.ExpenseCategory `json:"category"`
}

// Snapshot is the read-only projection of the document sent to the model.
type Snapshot struct {
	Expenses    []ExpenseView          `json:"expenses"`
	Balances    []model.AccountBalance `json:"balances"`
	Investments []model.ETFInvestment  `json:"investments"`
}

// NewSnapshot projects doc. Expenses keep only name, amount and category.
func NewSnapshot(doc model.Document) Snapshot {
	doc = doc.Clone()
	views := make([]ExpenseView, 0, len(doc.Expenses))
	for _, e := range doc.Expenses {
		views = append(views, ExpenseView{Name: e.Name, Amount: e.Amount, Category: e.Category})
	}
	return Snapshot{Expenses: views, Balances: doc.Balances, Investments: doc.Investments}
}

const promptTemplate = `Actúa como un experto asesor financiero personal.
Analiza los siguientes datos financieros de un usuario en Colombia:

Gastos: %s
Saldos de Cuentas: %s
Inversiones ETF: %s

Proporciona un resumen ejecutivo en español que incluya:
1. Un análisis de la distribución de gastos (individual vs compartido).
2. Salud del patrimonio neto actual.
3. Recomendaciones sobre la estrategia de inversión en ETFs basada en los montos aportados.
4. 3 consejos accionables para optimizar el ahorro o reducir gastos.

Mantén un tono profesional, motivador y claro. Usa Markdown para el formato.
`

// BuildPrompt embeds the snapshot of doc in the advisor prompt.
func BuildPrompt(doc model.Document) (string, error) {
	s := NewSnapshot(doc)
	parts := make([]any, 0, 3)
	for _, v := range []any{s.Expenses, s.Balances, s.Investments} {
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("insight: encoding snapshot: %w", err)
		}
		parts = append(parts, string(data))
	}
	return fmt.Sprintf(promptTemplate, parts...), nil
}

// Summarize asks g for an analysis of doc. It never fails: errors are
// logged and replaced by one of the fallback texts.
func Summarize(ctx context.Context, g Generator, doc model.Document, logger *log.Logger) string {
	logger = logger.WithComponent(log.ComponentInsight)

	prompt, err := BuildPrompt(doc)
	if err != nil {
		logger.Error("Building prompt failed", log.FieldError, err)
		return FallbackConnection
	}

	text, err := g.Generate(ctx, prompt)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		logger.Warn("Model returned no text")
		return FallbackEmpty
	case err != nil:
		logger.Error("Insight request failed", log.FieldError, err)
		return FallbackConnection
	}
	return text
}

// Paragraphs splits text on line breaks. Lines starting with '#' are
// headings and lose their markers. Blank lines are kept as empty paragraphs.
func Paragraphs(text string) []Paragraph {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]Paragraph, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			out = append(out, Paragraph{Text: strings.TrimSpace(strings.TrimLeft(trimmed, "#")), Heading: true})
			continue
		}
		out = append(out, Paragraph{Text: line})
	}
	return out
}
