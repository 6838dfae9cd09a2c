package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/use-agent/jobscout/api"
	"github.com/use-agent/jobscout/config"
	"github.com/use-agent/jobscout/scraper"
)

// drainTimeout is how long handlers get to write their response once
// running searches have been cancelled.
const drainTimeout = 5 * time.Second

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("jobscout starting",
		"addr", listenAddr(cfg.Server),
		"mode", cfg.Server.Mode,
		"target", cfg.Search.TargetURL,
		"headless", cfg.Browser.Headless,
		"maxConcurrent", cfg.Search.MaxConcurrent,
		"auth", cfg.Auth.Enabled,
	)

	// ── 3. Scraper: selectors are compiled now, browsers per search ─
	sc, err := scraper.NewScraper(cfg.Browser, cfg.Search)
	if err != nil {
		slog.Error("invalid search configuration", "error", err)
		os.Exit(1)
	}

	// ── 4. HTTP server ──────────────────────────────────────────────
	srv, cancelSearches := newServer(listenAddr(cfg.Server), api.NewRouter(sc, cfg, time.Now()))

	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 5. Shutdown ─────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String(), "inFlight", sc.Stats().InFlight)

	// Cancelling the request contexts makes every running search close its
	// browser and return before Shutdown starts waiting on the handlers.
	cancelSearches()

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	}

	stats := sc.Stats()
	slog.Info("jobscout stopped", "searches", stats.Total, "failed", stats.Failed, "inFlight", stats.InFlight)
}

// newServer builds the HTTP server. Every request context derives from a
// root context that the returned cancel func ends, which is how shutdown
// reaches searches still holding a browser.
func newServer(addr string, h http.Handler) (*http.Server, context.CancelFunc) {
	root, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return root },
	}
	return srv, cancel
}

func listenAddr(cfg config.ServerConfig) string {
	return net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
}

// newLogger builds the process logger. Level names are the ones slog
// understands ("debug", "info", "warn", "error"); anything else means info.
// Format "text" selects the text handler, everything else JSON.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
