// Package main runs the league server: it loads the card catalog, opens
// the league database, and serves the REST API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/twinsuns/league-hq/internal/api"
	"github.com/twinsuns/league-hq/internal/cards/catalog"
	"github.com/twinsuns/league-hq/internal/config"
	"github.com/twinsuns/league-hq/internal/meta"
	"github.com/twinsuns/league-hq/internal/storage"
	"github.com/twinsuns/league-hq/internal/storage/repository"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	dbPath      = flag.String("db-path", "", "Database path (default: ~/.league-hq/data.db)")
	catalogPath = flag.String("catalog", "", "Local catalog JSON file (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dataDir := cfg.App.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(home, ".league-hq")
	}

	finalDBPath := *dbPath
	if finalDBPath == "" {
		finalDBPath = filepath.Join(dataDir, "data.db")
	}

	finalCatalogPath := *catalogPath
	if finalCatalogPath == "" {
		finalCatalogPath = cfg.Catalog.LocalFile
	}
	if finalCatalogPath == "" && cfg.Catalog.BaseURL != "" {
		finalCatalogPath = filepath.Join(dataDir, "catalog.json")
		if err := refreshCatalogCache(cfg, finalCatalogPath, logger); err != nil {
			logger.Error("failed to fetch remote catalog", "error", err)
			os.Exit(1)
		}
	}
	if finalCatalogPath == "" {
		logger.Error("no catalog configured; set catalog.local_file or catalog.base_url, or pass -catalog")
		os.Exit(1)
	}

	store, err := catalog.NewStore(finalCatalogPath, logger)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	logger.Info("database ready", "path", finalDBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Catalog.WatchChanges {
		watcher := store.Watcher()
		go func() {
			if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("catalog watcher stopped", "error", err)
			}
		}()
	}

	deckRepo := repository.NewDeckRepository(db.Conn())

	serverPort := cfg.Server.Port
	if *port != 0 {
		serverPort = *port
	}
	var origins []string
	if cfg.Server.CORSOrigins != "" {
		origins = strings.Split(cfg.Server.CORSOrigins, ",")
	}

	server := api.NewServer(&api.Config{
		Port:        serverPort,
		CORSOrigins: origins,
	}, api.Deps{
		Store:       store,
		Pools:       repository.NewPoolRepository(db.Conn()),
		Decks:       deckRepo,
		Tournaments: repository.NewTournamentRepository(db.Conn()),
		Meta:        meta.NewService(deckRepo, logger),
		DB:          db,
		Backups:     storage.NewBackupManager(finalDBPath),
	}, logger)

	server.Start()
	logger.Info("league server running", "url", fmt.Sprintf("http://localhost:%d", serverPort))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}

// refreshCatalogCache downloads the catalog into cachePath when the cached
// copy is missing or older than the configured TTL.
func refreshCatalogCache(cfg *config.Config, cachePath string, logger *slog.Logger) error {
	ttl, err := cfg.GetCatalogRefreshTTL()
	if err != nil {
		return fmt.Errorf("invalid refresh TTL: %w", err)
	}

	if info, err := os.Stat(cachePath); err == nil && time.Since(info.ModTime()) < ttl {
		logger.Info("using cached catalog", "path", cachePath, "age", time.Since(info.ModTime()).Round(time.Second))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := catalog.NewClient(cfg.Catalog.BaseURL)
	records, err := client.FetchCatalog(ctx, cfg.Catalog.Edition)
	if err != nil {
		// A stale cache beats no catalog at all.
		if _, statErr := os.Stat(cachePath); statErr == nil {
			logger.Warn("catalog fetch failed, using stale cache", "error", err)
			return nil
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("create catalog cache directory: %w", err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode catalog cache: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("write catalog cache: %w", err)
	}

	logger.Info("catalog fetched", "edition", cfg.Catalog.Edition, "cards", len(records))
	return nil
}
