package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type streamTopicService interface {
	CreateStreamTopic(ctx context.Context, in catalog.CreateStreamTopicInput) (*domain.StreamTopic, error)
	GetStreamTopic(ctx context.Context, id uuid.UUID) (*domain.StreamTopic, error)
	ListStreamTopics(ctx context.Context, in catalog.ListInput) ([]domain.StreamTopic, error)
	CountStreamTopics(ctx context.Context) (int, error)
	UpdateStreamTopic(ctx context.Context, in catalog.UpdateStreamTopicInput) (*domain.StreamTopic, error)
	DeleteStreamTopic(ctx context.Context, id uuid.UUID) error
	ListStreamTopicColumns(ctx context.Context, id uuid.UUID) ([]domain.StreamColumn, error)
}

// StreamTopicHandler serves /stream-topics.
type StreamTopicHandler struct {
	svc streamTopicService
	log *slog.Logger
}

// NewStreamTopicHandler creates a StreamTopicHandler.
func NewStreamTopicHandler(svc streamTopicService, logger *slog.Logger) *StreamTopicHandler {
	return &StreamTopicHandler{svc: svc, log: logger.With("handler", "stream_topic")}
}

// Create handles POST /stream-topics.
func (h *StreamTopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req streamTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.CreateStreamTopic(r.Context(), catalog.CreateStreamTopicInput{
		Name:           req.Name,
		Description:    req.Description,
		LifecycleState: req.LifecycleState,
		Compliant:      req.Compliant,
		OwnerIDs:       req.OwnerIDs,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStreamTopicResponse(t))
}

// Get handles GET /stream-topics/{id}.
func (h *StreamTopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.GetStreamTopic(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStreamTopicResponse(t))
}

// ListAll handles GET /stream-topics.
func (h *StreamTopicHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /stream-topics/pagined.
func (h *StreamTopicHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *StreamTopicHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	topics, err := h.svc.ListStreamTopics(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(topics, toStreamTopicResponse))
}

// Count handles GET /stream-topics/count.
func (h *StreamTopicHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountStreamTopics(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /stream-topics/{id}.
func (h *StreamTopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req streamTopicPatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.UpdateStreamTopic(r.Context(), catalog.UpdateStreamTopicInput{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		LifecycleState: req.LifecycleState,
		Compliant:      req.Compliant,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStreamTopicResponse(t))
}

// Delete handles DELETE /stream-topics/{id}.
func (h *StreamTopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteStreamTopic(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Columns handles GET /stream-topics/{id}/columns.
func (h *StreamTopicHandler) Columns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	cols, err := h.svc.ListStreamTopicColumns(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cols, toStreamColumnResponse))
}
