package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
)

// healthHandler logs the request and answers OK.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// coverageHandler reports the uncovered targets of every coverage aspect.
func (a *App) coverageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.Coverage()); err != nil {
		ctxlog.FromContext(a.ctx).Error("Failed to encode coverage report", "error", err)
	}
}

// diagnosticsMux wires every diagnostics endpoint.
func (a *App) diagnosticsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(a.metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/coverage", a.coverageHandler)
	return mux
}

// startDiagnostics initializes and runs the diagnostics HTTP server.
func (a *App) startDiagnostics() {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Configuring diagnostics server.")
	if a.config.DiagPort <= 0 {
		logger.Debug("Diagnostics server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", a.config.DiagPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.diagnosticsMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Diagnostics server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Diagnostics server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeDiagnostics() error {
	logger := ctxlog.FromContext(a.ctx)
	if a.httpServer == nil {
		logger.Debug("Diagnostics server was not running.")
		return nil
	}

	// The run context may already be cancelled; shutdown still gets its full timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down diagnostics server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Diagnostics server shutdown failed", "error", err)
		return err
	}
	a.httpServer = nil

	logger.Debug("Diagnostics server shut down gracefully.")
	return nil
}
