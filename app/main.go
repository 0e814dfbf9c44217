package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/notice-filter/app/api"
	"github.com/lysyi3m/notice-filter/app/cfg"
	"github.com/lysyi3m/notice-filter/app/pages"
	"github.com/lysyi3m/notice-filter/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Notice Filter server", "version", appCfg.Version)

	slog.Info("Loading pages", "dir", appCfg.PagesDir)
	pageCache := pages.NewCache(appCfg.PagesDir)
	if err := pageCache.Run(); err != nil {
		slog.Error("Failed to load pages", "error", err)
		os.Exit(1)
	}
	slog.Info("Pages loaded", "count", pageCache.GetPageCount())

	slog.Info("Starting page reloader", "interval_seconds", appCfg.ReloadInterval)
	pageScheduler := tasks.NewScheduler(pageCache, time.Duration(appCfg.ReloadInterval)*time.Second)
	pageScheduler.Start()
	defer pageScheduler.Stop()

	handler := api.NewHandler(pageCache, appCfg.AssetsDir, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		baseURL := appCfg.BaseUrl
		if baseURL == "" {
			baseURL = "http://localhost:" + appCfg.Port
		}
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"pages", baseURL+"/pages/<name>",
			"assets", baseURL+"/assets/<file>",
			"health", baseURL+"/health")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Notice Filter server shutdown complete")
}
