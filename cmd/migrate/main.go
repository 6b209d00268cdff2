// Command migrate applies or inspects the Postgres schema migrations.
//
// Usage:
//
//	migrate [up|down|status|version]
//
// The command defaults to "up". DATABASE_DSN (or config.yaml) selects the
// target database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/app"
	"github.com/infogrid/catalog-backend/internal/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate [up|down|status|version]")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN is required")
	}

	logger := app.NewLogger(cfg.Log, "migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("open migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close() //nolint:errcheck

	switch command {
	case "up":
		err = m.Up(ctx, logger)
	case "down":
		err = m.Down(ctx, logger)
	case "status":
		err = m.Status(ctx, logger)
	case "version":
		var v int64
		if v, err = m.Version(ctx); err == nil {
			logger.Info("schema version", slog.Int64("version", v))
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("migrate "+command, slog.String("error", err.Error()))
		os.Exit(1)
	}
}
