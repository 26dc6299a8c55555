package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pumppoints/pumppoints/internal/api"
	"github.com/pumppoints/pumppoints/internal/app/catalog"
	"github.com/pumppoints/pumppoints/internal/app/ledger"
	"github.com/pumppoints/pumppoints/internal/domain"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

// Run opens the store, wires the services, and serves HTTP until the process
// receives SIGINT or SIGTERM.
func Run(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sqlite.Open(cfg.DB.Path, cfg.BusyTimeout())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	led := ledger.New(db, ledger.Config{
		Accrual:       domain.AccrualPolicy(cfg.Ledger.AccrualPolicy),
		IDMaxAttempts: cfg.Ledger.IDMaxAttempts,
		OpTimeout:     cfg.OpTimeout(),
	})
	cat := catalog.New(db, cfg.Ledger.IDMaxAttempts)

	srv := api.NewServer(db, led, cat)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("pumppoints listening on http://%s (accrual policy: %s)", cfg.Addr(), led.Accrual())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
