package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type streamColumnService interface {
	CreateStreamColumn(ctx context.Context, in catalog.CreateStreamColumnInput) (*domain.StreamColumn, error)
	GetStreamColumn(ctx context.Context, id uuid.UUID) (*domain.StreamColumn, error)
	ListStreamColumns(ctx context.Context, in catalog.ListInput) ([]domain.StreamColumn, error)
	CountStreamColumns(ctx context.Context) (int, error)
	UpdateStreamColumn(ctx context.Context, in catalog.UpdateStreamColumnInput) (*domain.StreamColumn, error)
	ReassignStreamColumn(ctx context.Context, columnID, topicID uuid.UUID) (*domain.StreamColumn, error)
	DeleteStreamColumn(ctx context.Context, id uuid.UUID) error
}

// StreamColumnHandler serves /stream-columns.
type StreamColumnHandler struct {
	svc streamColumnService
	log *slog.Logger
}

// NewStreamColumnHandler creates a StreamColumnHandler.
func NewStreamColumnHandler(svc streamColumnService, logger *slog.Logger) *StreamColumnHandler {
	return &StreamColumnHandler{svc: svc, log: logger.With("handler", "stream_column")}
}

// Create handles POST /stream-columns.
func (h *StreamColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req streamColumnRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.CreateStreamColumn(r.Context(), catalog.CreateStreamColumnInput{
		TopicID:     req.TopicID,
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStreamColumnResponse(c))
}

// Get handles GET /stream-columns/{id}.
func (h *StreamColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.GetStreamColumn(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStreamColumnResponse(c))
}

// ListAll handles GET /stream-columns.
func (h *StreamColumnHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /stream-columns/pagined.
func (h *StreamColumnHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *StreamColumnHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cols, err := h.svc.ListStreamColumns(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cols, toStreamColumnResponse))
}

// Count handles GET /stream-columns/count.
func (h *StreamColumnHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountStreamColumns(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /stream-columns/{id}.
func (h *StreamColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req streamColumnPatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.UpdateStreamColumn(r.Context(), catalog.UpdateStreamColumnInput{
		ID:          id,
		TopicID:     req.TopicID,
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStreamColumnResponse(c))
}

// Reassign handles PUT /stream-columns/{id}/topic.
func (h *StreamColumnHandler) Reassign(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.svc.ReassignStreamColumn(r.Context(), id, req.ParentID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStreamColumnResponse(c))
}

// Delete handles DELETE /stream-columns/{id}.
func (h *StreamColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteStreamColumn(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
