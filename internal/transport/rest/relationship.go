package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/ownership"
)

type ownershipService interface {
	Link(ctx context.Context, in ownership.LinkInput) (*domain.OwnershipLink, error)
	Unlink(ctx context.Context, in ownership.LinkInput) error
	ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID, kind string) ([]domain.AssetSummary, error)
	ListOwnersForAsset(ctx context.Context, kind string, assetID uuid.UUID) ([]domain.Owner, error)
	ListLinks(ctx context.Context, kind string) ([]domain.OwnershipView, error)
}

// RelationshipHandler serves owner-asset links in both directions.
type RelationshipHandler struct {
	svc ownershipService
	log *slog.Logger
}

// NewRelationshipHandler creates a RelationshipHandler.
func NewRelationshipHandler(svc ownershipService, logger *slog.Logger) *RelationshipHandler {
	return &RelationshipHandler{svc: svc, log: logger.With("handler", "relationship")}
}

// Link handles POST /relationships/{kind}.
func (h *RelationshipHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	link, err := h.svc.Link(r.Context(), ownership.LinkInput{
		Kind:    r.PathValue("kind"),
		OwnerID: req.OwnerID,
		AssetID: req.AssetID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLinkResponse(link))
}

// Unlink handles DELETE /relationships/{kind}.
func (h *RelationshipHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	err := h.svc.Unlink(r.Context(), ownership.LinkInput{
		Kind:    r.PathValue("kind"),
		OwnerID: req.OwnerID,
		AssetID: req.AssetID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /relationships/{kind}.
func (h *RelationshipHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListLinks(r.Context(), r.PathValue("kind"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, toLinkViewResponse))
}

// OwnerAssets handles GET /owners/{id}/assets?kind=. Without kind every
// asset kind is listed.
func (h *RelationshipHandler) OwnerAssets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	assets, err := h.svc.ListAssetsForOwner(r.Context(), id, r.URL.Query().Get("kind"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(assets, toAssetSummaryResponse))
}

// AssetOwners returns the handler for GET /{kind}/{id}/owners with the kind
// fixed by the route.
func (h *RelationshipHandler) AssetOwners(kind domain.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		owners, err := h.svc.ListOwnersForAsset(r.Context(), kind.String(), id)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(owners, toOwnerResponse))
	}
}
