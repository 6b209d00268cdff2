package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type dataStoreService interface {
	CreateDataStore(ctx context.Context, in catalog.CreateDataStoreInput) (*domain.DataStore, error)
	GetDataStore(ctx context.Context, id uuid.UUID) (*domain.DataStore, error)
	ListDataStores(ctx context.Context, in catalog.ListInput) ([]domain.DataStore, error)
	CountDataStores(ctx context.Context) (int, error)
	UpdateDataStore(ctx context.Context, in catalog.UpdateDataStoreInput) (*domain.DataStore, error)
	DeleteDataStore(ctx context.Context, id uuid.UUID) error
	ListDataStoreTables(ctx context.Context, id uuid.UUID) ([]domain.Table, error)
	DataStoreTree(ctx context.Context) ([]domain.DataStoreTree, error)
}

// DataStoreHandler serves /datastores.
type DataStoreHandler struct {
	svc dataStoreService
	log *slog.Logger
}

// NewDataStoreHandler creates a DataStoreHandler.
func NewDataStoreHandler(svc dataStoreService, logger *slog.Logger) *DataStoreHandler {
	return &DataStoreHandler{svc: svc, log: logger.With("handler", "datastore")}
}

// Create handles POST /datastores. owner_ids are linked in the same unit of work.
func (h *DataStoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dataStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ds, err := h.svc.CreateDataStore(r.Context(), catalog.CreateDataStoreInput{
		Name:        req.Name,
		Technology:  req.Technology,
		Description: req.Description,
		OwnerIDs:    req.OwnerIDs,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDataStoreResponse(ds))
}

// Get handles GET /datastores/{id}.
func (h *DataStoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ds, err := h.svc.GetDataStore(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDataStoreResponse(ds))
}

// ListAll handles GET /datastores.
func (h *DataStoreHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /datastores/pagined.
func (h *DataStoreHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *DataStoreHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items, err := h.svc.ListDataStores(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toDataStoreResponse))
}

// Count handles GET /datastores/count.
func (h *DataStoreHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountDataStores(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /datastores/{id}.
func (h *DataStoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req dataStorePatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	ds, err := h.svc.UpdateDataStore(r.Context(), catalog.UpdateDataStoreInput{
		ID:          id,
		Name:        req.Name,
		Technology:  req.Technology,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDataStoreResponse(ds))
}

// Delete handles DELETE /datastores/{id}.
func (h *DataStoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteDataStore(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tables handles GET /datastores/{id}/tables.
func (h *DataStoreHandler) Tables(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	tables, err := h.svc.ListDataStoreTables(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(tables, toTableResponse))
}

// Tree handles GET /datastores/with-tables-columns.
func (h *DataStoreHandler) Tree(w http.ResponseWriter, r *http.Request) {
	trees, err := h.svc.DataStoreTree(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(trees, toDataStoreTreeResponse))
}
