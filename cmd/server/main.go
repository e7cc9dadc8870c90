// Package main is the entry point for the bookie server.
//
// main only reads configuration, builds the logger, metrics and store, and
// hands them to internal/server. Everything else lives in internal/.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/config"
	"github.com/sakif/bookie/internal/logger"
	"github.com/sakif/bookie/internal/metrics"
	"github.com/sakif/bookie/internal/repository/sqldb"
	"github.com/sakif/bookie/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New("bookie", cfg.Env)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	zap.ReplaceGlobals(log)

	// A SQLite file needs its directory to exist.
	if isFilePath(cfg.DatabaseURL) {
		dir := filepath.Dir(cfg.DatabaseURL)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := sqldb.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	srv, err := server.New(cfg, db, log, metrics.New())
	if err != nil {
		db.Close()
		return err
	}

	// Start blocks until SIGINT/SIGTERM and closes db on the way out.
	return srv.Start()
}

func isFilePath(dsn string) bool {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return false
	}
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
