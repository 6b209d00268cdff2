package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type columnService interface {
	CreateColumn(ctx context.Context, in catalog.CreateColumnInput) (*domain.Column, error)
	GetColumn(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	ListColumns(ctx context.Context, in catalog.ListInput) ([]domain.Column, error)
	CountColumns(ctx context.Context) (int, error)
	UpdateColumn(ctx context.Context, in catalog.UpdateColumnInput) (*domain.Column, error)
	ReassignColumn(ctx context.Context, columnID, tableID uuid.UUID) (*domain.Column, error)
	DeleteColumn(ctx context.Context, id uuid.UUID) error
}

// ColumnHandler serves /columns.
type ColumnHandler struct {
	svc columnService
	log *slog.Logger
}

// NewColumnHandler creates a ColumnHandler.
func NewColumnHandler(svc columnService, logger *slog.Logger) *ColumnHandler {
	return &ColumnHandler{svc: svc, log: logger.With("handler", "column")}
}

// Create handles POST /columns.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.CreateColumn(r.Context(), catalog.CreateColumnInput{
		TableID:     req.TableID,
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toColumnResponse(c))
}

// Get handles GET /columns/{id}.
func (h *ColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.GetColumn(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(c))
}

// ListAll handles GET /columns.
func (h *ColumnHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /columns/pagined.
func (h *ColumnHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *ColumnHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cols, err := h.svc.ListColumns(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cols, toColumnResponse))
}

// Count handles GET /columns/count.
func (h *ColumnHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountColumns(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /columns/{id}.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req columnPatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.UpdateColumn(r.Context(), catalog.UpdateColumnInput{
		ID:          id,
		TableID:     req.TableID,
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(c))
}

// Reassign handles PUT /columns/{id}/table.
func (h *ColumnHandler) Reassign(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.svc.ReassignColumn(r.Context(), id, req.ParentID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(c))
}

// Delete handles DELETE /columns/{id}.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteColumn(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
