package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/infogrid/catalog-backend/internal/adapter/mongodb"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/config"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Storage is an open backend with the services wired on top of it.
type Storage struct {
	Services Services
	pinger   pinger
	close    func(ctx context.Context) error
}

// Close releases the backend connections.
func (s *Storage) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStorage connects to the configured backend and prepares its schema.
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, log)
	case config.BackendMongo:
		return openMongo(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, cfg.Database.DSN, log); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate),
	)

	return &Storage{
		Services: NewPostgresServices(log, cfg.Catalog, pool),
		pinger:   pool,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func migrateUp(ctx context.Context, dsn string, log *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	defer m.Close() //nolint:errcheck

	return m.Up(ctx, log)
}

func openMongo(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info("connected to mongo",
		slog.String("database", cfg.Mongo.Database),
		slog.Bool("transactions", cfg.Mongo.Transactions),
	)

	return &Storage{
		Services: NewMongoServices(log, cfg.Catalog, client, cfg.Mongo.Transactions),
		pinger:   client,
		close:    client.Close,
	}, nil
}
