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

	"wikifeed/internal/api"
	"wikifeed/internal/cfg"
	"wikifeed/internal/feed"
	"wikifeed/internal/wiki"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting WikiFeed server", "version", appCfg.Version, "lang", appCfg.Lang)

	tags := feed.DefaultTagSet()
	if appCfg.TagsFile != "" {
		tags, err = feed.LoadTagSet(appCfg.TagsFile)
		if err != nil {
			slog.Error("Failed to load tags file", "file", appCfg.TagsFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Tag configuration loaded", "file", appCfg.TagsFile, "tags", tags.Count())
	}

	client := wiki.NewClient(&http.Client{}, appCfg.UserAgent,
		time.Duration(appCfg.SourceTimeout)*time.Second, appCfg.ThumbSize, appCfg.RateLimit)
	cache := feed.NewPopularityCache(time.Duration(appCfg.CacheTTL)*time.Minute, nil)
	selector := feed.NewSelector(client, cache, tags)
	assembler := feed.NewAssembler(client, selector,
		feed.DefaultQualityPolicy(appCfg.MinExtractLen), appCfg.RelatedLimit, nil)

	handler := api.NewHandler(assembler, tags, cache, appCfg.MaxCount, appCfg.Lang)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("WikiFeed server shutdown complete")
}
