package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
)

type accessService interface {
	Create(ctx context.Context, in access.CreateInput) (*domain.AccessRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error)
	List(ctx context.Context, in access.ListInput) ([]domain.AccessRecord, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, in access.UpdateInput) (*domain.AccessRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Filter(ctx context.Context, f access.DateFilter) ([]domain.AccessRecord, error)
}

// AccessHandler serves /access-records.
type AccessHandler struct {
	svc accessService
	log *slog.Logger
}

// NewAccessHandler creates an AccessHandler.
func NewAccessHandler(svc accessService, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{svc: svc, log: logger.With("handler", "access_record")}
}

// Create handles POST /access-records.
func (h *AccessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req accessRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	rec, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccessRecordResponse(rec))
}

// Get handles GET /access-records/{id}.
func (h *AccessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccessRecordResponse(rec))
}

// ListAll handles GET /access-records.
func (h *AccessHandler) ListAll(w http.ResponseWriter, r *http.Request) { h.list(w, r, true) }

// ListPage handles GET /access-records/pagined.
func (h *AccessHandler) ListPage(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }

func (h *AccessHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	p, err := parsePage(r, all)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	recs, err := h.svc.List(r.Context(), access.ListInput(p))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(recs, toAccessRecordResponse))
}

// Count handles GET /access-records/count.
func (h *AccessHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Update handles PUT /access-records/{id}.
func (h *AccessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req accessRecordPatch
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	rec, err := h.svc.Update(r.Context(), req.input(id))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccessRecordResponse(rec))
}

// Delete handles DELETE /access-records/{id}.
func (h *AccessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterByDate handles GET /access-records/filter-by-date with either
// start_date/end_date (YYYY-MM-DD) or year.
func (h *AccessHandler) FilterByDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := access.DateFilter{StartDate: q.Get("start_date"), EndDate: q.Get("end_date")}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("year", "must be an integer"))
			return
		}
		f.Year = &year
	}

	recs, err := h.svc.Filter(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(recs, toAccessRecordResponse))
}
