package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/cli"
	"github.com/theirongolddev/financeflow/internal/config"
	"github.com/theirongolddev/financeflow/internal/insight"
	"github.com/theirongolddev/financeflow/internal/tui"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Análisis de tus finanzas con inteligencia artificial",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	client, err := insight.NewClient(insight.Config{
		APIKey:  config.InsightsAPIKey(a.cfg),
		Model:   a.cfg.Insights.Model,
		BaseURL: a.cfg.Insights.BaseURL,
		Timeout: config.InsightsTimeout(a.cfg),
	})
	if errors.Is(err, insight.ErrNoAPIKey) {
		fmt.Println()
		fmt.Println(cli.RenderHint("No hay una API key de Gemini configurada."))
		fmt.Println()
		fmt.Println("  Configúrala con una de estas opciones:")
		fmt.Println("    financeflow setup                         (interactivo)")
		fmt.Printf("    %s=... financeflow insights     (una sola vez)\n", config.EnvAPIKey)
		fmt.Printf("    %s=... en un archivo .env\n", config.EnvAPIKey)
		fmt.Println()
		return nil
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	doc := a.ledger.Document()
	task := func() string { return insight.Summarize(ctx, client, doc, a.log) }

	var text string
	if flagQuiet {
		text = task()
	} else {
		text, err = tui.RunWithSpinner(os.Stderr, "Analizando tus finanzas con "+client.Model()+"...", task)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("  Análisis cancelado.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ANÁLISIS"))
	fmt.Println()
	fmt.Print(cli.RenderInsight(insight.Paragraphs(text)))
	return nil
}
