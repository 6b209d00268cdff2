package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type tableService interface {
	CreateTable(ctx context.Context, in catalog.CreateTableInput) (*domain.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	ListTables(ctx context.Context, in catalog.ListInput) ([]domain.Table, error)
	CountTables(ctx context.Context) (int, error)
	UpdateTable(ctx context.Context, in catalog.UpdateTableInput) (*domain.Table, error)
	ReassignTable(ctx context.Context, tableID, datastoreID uuid.UUID) (*domain.Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error
	ListTableColumns(ctx context.Context, id uuid.UUID) ([]domain.Column, error)
}

// TableHandler serves /tables.
type TableHandler struct {
	svc tableService
	log *slog.Logger
}

// NewTableHandler creates a TableHandler.
func NewTableHandler(svc tableService, logger *slog.Logger) *TableHandler {
	return &TableHandler{svc: svc, log: logger.With("handler", "table")}
}

// Create handles POST /tables.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.CreateTable(r.Context(), catalog.CreateTableInput{
		DataStoreID:    req.DataStoreID,
		Name:           req.Name,
		Description:    req.Description,
		LifecycleState: req.LifecycleState,
		QualityGrade:   req.QualityGrade,
		Compliant:      req.Compliant,
		OwnerIDs:       req.OwnerIDs,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTableResponse(t))
}

// Get handles GET /tables/{id}.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.GetTable(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(t))
}

// ListAll handles GET /tables.
func (h *TableHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /tables/pagined.
func (h *TableHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *TableHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	tables, err := h.svc.ListTables(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(tables, toTableResponse))
}

// Count handles GET /tables/count.
func (h *TableHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountTables(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /tables/{id}. A datastore_id in the body moves the table.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req tablePatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.UpdateTable(r.Context(), catalog.UpdateTableInput{
		ID:             id,
		DataStoreID:    req.DataStoreID,
		Name:           req.Name,
		Description:    req.Description,
		LifecycleState: req.LifecycleState,
		QualityGrade:   req.QualityGrade,
		Compliant:      req.Compliant,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(t))
}

// Reassign handles PUT /tables/{id}/datastore.
func (h *TableHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req reassignRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.ReassignTable(r.Context(), id, req.ParentID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(t))
}

// Delete handles DELETE /tables/{id}.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteTable(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Columns handles GET /tables/{id}/columns.
func (h *TableHandler) Columns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cols, err := h.svc.ListTableColumns(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cols, toColumnResponse))
}
