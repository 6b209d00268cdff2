package app

import (
	"log/slog"

	"github.com/infogrid/catalog-backend/internal/adapter/mongodb"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres"
	pgaccess "github.com/infogrid/catalog-backend/internal/adapter/postgres/access"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/column"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/datastore"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/owner"
	pgownership "github.com/infogrid/catalog-backend/internal/adapter/postgres/ownership"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/streamcolumn"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/streamtopic"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/table"
	"github.com/infogrid/catalog-backend/internal/adapter/postgres/user"
	"github.com/infogrid/catalog-backend/internal/config"
	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
	"github.com/infogrid/catalog-backend/internal/service/ownership"
	"github.com/infogrid/catalog-backend/internal/service/query"
)

// Services holds the domain services consumed by the transport layer.
type Services struct {
	Catalog   *catalog.Service
	Ownership *ownership.Service
	Query     *query.Service
	Access    *access.Service
}

func pageLimits(cfg config.CatalogConfig) domain.PageLimits {
	return domain.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
}

// NewPostgresServices wires every service to the relational repositories.
func NewPostgresServices(log *slog.Logger, cfg config.CatalogConfig, db postgres.DB) Services {
	var (
		tx            = postgres.NewTxManager(db)
		owners        = owner.New(db)
		users         = user.New(db)
		datastores    = datastore.New(db)
		tables        = table.New(db)
		columns       = column.New(db)
		streamTopics  = streamtopic.New(db)
		streamColumns = streamcolumn.New(db)
		records       = pgaccess.New(db)
		links         = pgownership.New(db)
	)

	return Services{
		Catalog: catalog.NewService(log, catalog.Repos{
			Owners:        owners,
			Users:         users,
			DataStores:    datastores,
			Tables:        tables,
			Columns:       columns,
			StreamTopics:  streamTopics,
			StreamColumns: streamColumns,
			AccessRecords: records,
			Links:         links,
		}, tx, pageLimits(cfg)),
		Ownership: ownership.NewService(log, links, owners, ownership.Assets{
			DataStores:   datastores,
			Tables:       tables,
			StreamTopics: streamTopics,
		}, tx),
		Query: query.NewService(log, query.Finders{
			Owners:       owners,
			DataStores:   datastores,
			Tables:       tables,
			StreamTopics: streamTopics,
		}),
		Access: access.NewService(log, records, users, tx, access.Config{
			Pages:       pageLimits(cfg),
			FilterLimit: cfg.DateFilterLimit,
		}),
	}
}

// NewMongoServices wires every service to the document repositories.
// Multi-document writes are atomic only when transactions are enabled.
func NewMongoServices(log *slog.Logger, cfg config.CatalogConfig, c *mongodb.Client, transactions bool) Services {
	var (
		db            = c.Database()
		tx            = mongodb.NewTxManager(c, transactions)
		owners        = mongodb.NewOwnerRepo(db)
		users         = mongodb.NewUserRepo(db)
		datastores    = mongodb.NewDataStoreRepo(db)
		tables        = mongodb.NewTableRepo(db)
		columns       = mongodb.NewColumnRepo(db)
		streamTopics  = mongodb.NewStreamTopicRepo(db)
		streamColumns = mongodb.NewStreamColumnRepo(db)
		records       = mongodb.NewAccessRecordRepo(db)
		links         = mongodb.NewOwnershipRepo(db)
	)

	return Services{
		Catalog: catalog.NewService(log, catalog.Repos{
			Owners:        owners,
			Users:         users,
			DataStores:    datastores,
			Tables:        tables,
			Columns:       columns,
			StreamTopics:  streamTopics,
			StreamColumns: streamColumns,
			AccessRecords: records,
			Links:         links,
		}, tx, pageLimits(cfg)),
		Ownership: ownership.NewService(log, links, owners, ownership.Assets{
			DataStores:   datastores,
			Tables:       tables,
			StreamTopics: streamTopics,
		}, tx),
		Query: query.NewService(log, query.Finders{
			Owners:       owners,
			DataStores:   datastores,
			Tables:       tables,
			StreamTopics: streamTopics,
		}),
		Access: access.NewService(log, records, users, tx, access.Config{
			Pages:       pageLimits(cfg),
			FilterLimit: cfg.DateFilterLimit,
		}),
	}
}
