package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/financeflow/internal/config"
	"github.com/theirongolddev/financeflow/internal/server"
)

var (
	flagServeAddr   string
	flagServeReload time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API JSON local de solo lectura",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Consultar el estado de una API en ejecución",
	Args:  cobra.NoArgs,
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "127.0.0.1:8787", "Dirección HTTP")
	serveCmd.Flags().DurationVar(&flagServeReload, "reload", 30*time.Second, "Cada cuánto releer los datos (0 desactiva)")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	svc := server.New(server.Config{
		Addr:      flagServeAddr,
		Interval:  flagServeReload,
		History:   a.cfg.General.HistoryMonths,
		IsForeign: a.isForeign(),
		Backend:   a.cfg.General.Backend,
		DataDir:   config.DataDir(a.cfg),
	}, a.ledger, a.log)

	fmt.Printf("  financeflow API en http://%s\n", flagServeAddr)
	if flagServeReload > 0 {
		fmt.Printf("  Releyendo datos cada %s desde %s\n", flagServeReload, config.DataDir(a.cfg))
	}
	fmt.Println("  Detener con Ctrl+C")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+flagServeAddr+"/v1/status", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("  API: no responde en %s\n", flagServeAddr)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status endpoint returned %s", resp.Status)
	}
	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decoding status: %w", err)
	}

	fmt.Printf("  API: activa en %s\n", flagServeAddr)
	fmt.Printf("  Desde:          %s\n", st.StartedAt.Local().Format(time.DateTime))
	fmt.Printf("  Almacenamiento: %s (%s)\n", st.Backend, st.DataDir)
	fmt.Printf("  Registros:      %d gastos, %d saldos, %d inversiones\n", st.Expenses, st.Balances, st.Investments)
	if st.ReloadIntervalSec > 0 {
		fmt.Printf("  Relecturas:     %d (cada %ds)\n", st.ReloadCount, st.ReloadIntervalSec)
	}
	if st.LastError != "" {
		fmt.Printf("  Último error:   %s\n", st.LastError)
	}
	return nil
}
