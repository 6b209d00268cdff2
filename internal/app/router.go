package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/infogrid/catalog-backend/internal/config"
	"github.com/infogrid/catalog-backend/internal/transport/middleware"
	"github.com/infogrid/catalog-backend/internal/transport/rest"
)

// RouterDeps are the inputs of NewRouter.
type RouterDeps struct {
	Log      *slog.Logger
	Config   *config.Config
	Services Services
	Storage  pinger
	Registry *prometheus.Registry
}

// NewRouter builds the HTTP handler: every API route plus health checks and
// metrics behind the shared middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	mux := http.NewServeMux()

	rest.Register(mux, rest.Handlers{
		Health:        rest.NewHealthHandler(d.Storage, d.Config.Storage.Backend, BuildVersion()),
		Owners:        rest.NewOwnerHandler(d.Services.Catalog, log),
		Users:         rest.NewUserHandler(d.Services.Catalog, log),
		DataStores:    rest.NewDataStoreHandler(d.Services.Catalog, log),
		Tables:        rest.NewTableHandler(d.Services.Catalog, log),
		Columns:       rest.NewColumnHandler(d.Services.Catalog, log),
		StreamTopics:  rest.NewStreamTopicHandler(d.Services.Catalog, log),
		StreamColumns: rest.NewStreamColumnHandler(d.Services.Catalog, log),
		Relationships: rest.NewRelationshipHandler(d.Services.Ownership, log),
		Entities:      rest.NewEntityHandler(d.Services.Query, log),
		Access:        rest.NewAccessHandler(d.Services.Access, log),
	})

	// Logger and Metrics wrap Recovery so recovered panics are recorded as 500s.
	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(log),
	}
	if d.Config.Metrics.Enabled && d.Registry != nil {
		mux.Handle("GET "+d.Config.Metrics.Path, promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))
		mws = append(mws, middleware.Metrics(d.Registry))
	}
	mws = append(mws,
		middleware.Recovery(log),
		middleware.CORS(d.Config.CORS),
	)

	return middleware.Chain(mws...)(mux)
}
