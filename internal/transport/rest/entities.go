package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/query"
)

type queryService interface {
	FindOwners(ctx context.Context, p query.Params) ([]domain.Owner, error)
	FindDataStores(ctx context.Context, p query.Params) ([]domain.DataStore, error)
	FindTables(ctx context.Context, p query.Params) ([]domain.Table, error)
	FindStreamTopics(ctx context.Context, p query.Params) ([]domain.StreamTopic, error)
}

// EntityHandler serves the filter facade GET /entities/{kind}.
type EntityHandler struct {
	svc queryService
	log *slog.Logger
}

// NewEntityHandler creates an EntityHandler.
func NewEntityHandler(svc queryService, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{svc: svc, log: logger.With("handler", "entity")}
}

// Find handles GET /entities/{kind}?<field>=<substring>&sort_by=&order=.
func (h *EntityHandler) Find(w http.ResponseWriter, r *http.Request) {
	p := queryParams(r)
	ctx := r.Context()

	var (
		out any
		err error
	)
	switch kind := r.PathValue("kind"); kind {
	case "owners":
		var v []domain.Owner
		v, err = h.svc.FindOwners(ctx, p)
		out = mapSlice(v, toOwnerResponse)
	case "datastores":
		var v []domain.DataStore
		v, err = h.svc.FindDataStores(ctx, p)
		out = mapSlice(v, toDataStoreResponse)
	case "tables":
		var v []domain.Table
		v, err = h.svc.FindTables(ctx, p)
		out = mapSlice(v, toTableResponse)
	case "stream-topics":
		var v []domain.StreamTopic
		v, err = h.svc.FindStreamTopics(ctx, p)
		out = mapSlice(v, toStreamTopicResponse)
	default:
		err = domain.NewValidationError("kind", fmt.Sprintf("unknown entity kind %q", kind))
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// queryParams splits the query string into sort controls and filters.
// Filters are emitted in key order so identical URLs build identical queries.
func queryParams(r *http.Request) query.Params {
	values := r.URL.Query()
	p := query.Params{SortBy: values.Get("sort_by"), Order: values.Get("order")}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "sort_by" && k != "order" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			p.Filters = append(p.Filters, domain.Match{Field: k, Value: v})
		}
	}
	return p
}
