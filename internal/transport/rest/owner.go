package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

type ownerService interface {
	CreateOwner(ctx context.Context, in catalog.ContactInput) (*domain.Owner, error)
	GetOwner(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
	ListOwners(ctx context.Context, in catalog.ListInput) ([]domain.Owner, error)
	CountOwners(ctx context.Context) (int, error)
	UpdateOwner(ctx context.Context, in catalog.UpdateContactInput) (*domain.Owner, error)
	DeleteOwner(ctx context.Context, id uuid.UUID) error
}

// OwnerHandler serves /owners.
type OwnerHandler struct {
	svc ownerService
	log *slog.Logger
}

// NewOwnerHandler creates an OwnerHandler.
func NewOwnerHandler(svc ownerService, logger *slog.Logger) *OwnerHandler {
	return &OwnerHandler{svc: svc, log: logger.With("handler", "owner")}
}

// Create handles POST /owners.
func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	o, err := h.svc.CreateOwner(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOwnerResponse(o))
}

// Get handles GET /owners/{id}.
func (h *OwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	o, err := h.svc.GetOwner(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOwnerResponse(o))
}

// ListAll handles GET /owners.
func (h *OwnerHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /owners/pagined?limit=&skip=.
func (h *OwnerHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *OwnerHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	owners, err := h.svc.ListOwners(r.Context(), catalog.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(owners, toOwnerResponse))
}

// Count handles GET /owners/count.
func (h *OwnerHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountOwners(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /owners/{id}.
func (h *OwnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req contactPatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	o, err := h.svc.UpdateOwner(r.Context(), req.input(id))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOwnerResponse(o))
}

// Delete handles DELETE /owners/{id}. Links of the owner go with it.
func (h *OwnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.DeleteOwner(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
