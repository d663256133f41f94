package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/chainforge/internal/ctxlog"
)

// Handler returns the HTTP handler serving /health, /metrics and /chains.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/chains", a.chainsHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(a.promReg, promhttp.HandlerOpts{}))
	return mux
}

// healthHandler reports OK once a generation is live.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	gen := a.holder.Current()
	if gen == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "NO GENERATION")
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// chainsHandler renders the live generation as JSON.
func (a *App) chainsHandler(w http.ResponseWriter, r *http.Request) {
	gen := a.holder.Current()
	if gen == nil {
		http.Error(w, "no generation published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := NewGenerationView(gen).WriteJSON(w); err != nil {
		a.logger.Error("Failed to write chains response.", "error", err)
	}
}

// startServer starts the HTTP server in the background when a port is
// configured. It returns the address it listens on.
func (a *App) startServer(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.HealthcheckPort <= 0 {
		logger.Warn("HTTP server not started: disabled")
		return "", nil
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.HealthcheckPort))
	if err != nil {
		return "", fmt.Errorf("failed to listen on port %d: %w", a.config.HealthcheckPort, err)
	}

	a.httpServer = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://%s/health", ln.Addr()))
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed unexpectedly", "error", err)
		}
	}()
	return ln.Addr().String(), nil
}

func (a *App) closeServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		logger.Debug("HTTP server was not running.")
		return nil
	}

	// The serve context is usually already cancelled here.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	return nil
}
