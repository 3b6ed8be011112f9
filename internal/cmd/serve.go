package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/bank-ledger/internal/api"
	"github.com/willfong/bank-ledger/internal/service"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger as a JSON HTTP API",
	Long: `Serve customers, accounts, cards, transactions and card reports over
HTTP. The server shuts down gracefully on SIGINT or SIGTERM.

Routes:
  /health
  /api/customers[/{id}[/accounts|/transactions]]
  /api/accounts[/{id}[/cards]]
  /api/cards[/credit|/debit|/{id}[/transactions|/report]]
  /api/transactions[/{id}]

Examples:
  bankledger serve --addr :8080
  bankledger serve --driver memory --demo   # In-memory ledger with synthetic data`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveDemo bool

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("addr", "", "listen address (default from config, :8080)")
	f.BoolVar(&serveDemo, "demo", false, "seed synthetic data before serving")
	viper.BindPFlag("server.addr", f.Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	u := newUI()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	services := service.New(store, logger)

	if serveDemo {
		u.Println(u.Header("Seeding ledger"))
		if _, err := seedLedger(ctx, u, services); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":   cfg.Server.Addr,
			"driver": cfg.Database.Driver,
		}).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.WithField("timeout", cfg.Server.ShutdownTimeout.String()).Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errChan

	u.Println(u.Success("Server stopped"))
	return nil
}
