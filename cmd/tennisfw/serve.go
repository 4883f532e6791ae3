package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tennisframework/tennis-api/internal/handlers"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the datasets over HTTP",
		Long: `Starts the HTTP API on PORT. SIGHUP reloads both datasets;
a failed reload keeps serving the previous data.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	sugar := a.logger.Sugar()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadCtx, cancel := context.WithTimeout(ctx, a.timeout)
	rt, err := a.open(loadCtx)
	cancel()
	if err != nil {
		return err
	}
	defer rt.Close()

	h := handlers.New(handlers.Config{
		Framework: rt.framework,
		Checks:    rt.checks,
		Logger:    a.logger,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           h.Router(a.cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				sugar.Infow("Reloading datasets", "signal", "SIGHUP")
				reloadCtx, cancel := context.WithTimeout(ctx, a.timeout)
				// Failures are logged by the framework; the old snapshot stays in effect.
				_, _ = rt.framework.Reload(reloadCtx)
				cancel()
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting HTTP server", "addr", server.Addr, "env", a.cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	sugar.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server forced to shutdown", "error", err)
		return err
	}

	sugar.Info("Server exited")
	return nil
}
