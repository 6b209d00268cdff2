// Command seeder loads a catalog fixture (owners, users, datastores with
// tables and columns, stream topics, access records) into the configured
// storage backend. It is intended for demo and development environments.
//
// Flags:
//
//	--fixture   path to the fixture YAML file (required)
//	--phase     comma-separated list of phases to run (default: all)
//	--dry-run   validate the fixture without writing
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
	"strings"
	"time"

	"github.com/infogrid/catalog-backend/internal/app"
	"github.com/infogrid/catalog-backend/internal/app/seeder"
	"github.com/infogrid/catalog-backend/internal/config"
)

func main() {
	fixtureFlag := flag.String("fixture", "", "path to the fixture YAML file")
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "validate the fixture without writing")
	flag.Parse()

	if *fixtureFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: seeder --fixture=catalog.yaml [--phase=owners,users] [--dry-run]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, "seeder")

	fx, err := seeder.LoadFixture(*fixtureFlag)
	if err != nil {
		logger.Error("load fixture", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close(context.Background()) //nolint:errcheck

	pipeline := seeder.NewPipeline(logger, st.Services.Catalog, st.Services.Access, *dryRunFlag)
	if err := pipeline.Run(ctx, fx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
