package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details []fieldDetails `json:"details,omitempty"`
}

type fieldDetails struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type countResponse struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps a service error onto the status/code taxonomy.
// Anything unclassified is logged and hidden behind a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	switch code {
	case domain.CodeNotFound:
		writeError(w, http.StatusNotFound, code, err.Error())
	case domain.CodeInvalidArgument:
		resp := errorResponse{Error: err.Error(), Code: code}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				resp.Details = append(resp.Details, fieldDetails{Field: fe.Field, Message: fe.Message})
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case domain.CodeConflict, domain.CodeFailedPrecondition:
		writeError(w, http.StatusBadRequest, code, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body is empty")
		}
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

// pathID parses a UUID path wildcard.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, fmt.Sprintf("%q is not a valid UUID", raw))
	}
	return id, nil
}

// pageParams is the parsed limit/skip pair. Absent values stay nil so the
// service applies its defaults.
type pageParams struct {
	All    bool
	Limit  *int
	Offset *int
}

// parsePage reads limit and skip. all selects the unpaginated listing.
func parsePage(r *http.Request, all bool) (pageParams, error) {
	if all {
		return pageParams{All: true}, nil
	}
	var (
		p    pageParams
		errs []domain.FieldError
	)
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		} else {
			p.Limit = &n
		}
	}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "skip", Message: "must be an integer"})
		} else {
			p.Offset = &n
		}
	}
	if len(errs) > 0 {
		return pageParams{}, domain.NewValidationErrors(errs)
	}
	return p, nil
}

// mapSlice converts every element of in with f. The result is never nil so
// empty listings encode as [].
func mapSlice[T, R any](in []T, f func(*T) R) []R {
	out := make([]R, 0, len(in))
	for i := range in {
		out = append(out, f(&in[i]))
	}
	return out
}
