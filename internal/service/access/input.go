package access

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

const (
	maxAssetNameLen = 255
	maxPurposeLen   = 2000
	maxPermissions  = 50

	// DateLayout is the wire format of date filter bounds.
	DateLayout = "2006-01-02"
)

// CreateInput holds the parameters for recording an access request.
type CreateInput struct {
	UserID      uuid.UUID
	AssetName   string
	RequestedAt time.Time
	Purpose     string
	Permissions []string
	Status      *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	errs = checkText(errs, "asset_name", i.AssetName, maxAssetNameLen)
	if i.RequestedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "requested_at", Message: "required"})
	}
	errs = checkText(errs, "purpose", i.Purpose, maxPurposeLen)
	if len(i.Permissions) > maxPermissions {
		errs = append(errs, domain.FieldError{Field: "permissions", Message: fmt.Sprintf("max %d entries", maxPermissions)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds a partial update. A nil Permissions slice leaves them
// untouched; an empty one clears them.
type UpdateInput struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	AssetName   *string
	RequestedAt *time.Time
	Purpose     *string
	Permissions []string
	Status      *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.UserID == nil && i.AssetName == nil && i.RequestedAt == nil &&
		i.Purpose == nil && i.Permissions == nil && i.Status == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.UserID != nil && *i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.AssetName != nil {
		errs = checkText(errs, "asset_name", *i.AssetName, maxAssetNameLen)
	}
	if i.RequestedAt != nil && i.RequestedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "requested_at", Message: "required"})
	}
	if i.Purpose != nil {
		errs = checkText(errs, "purpose", *i.Purpose, maxPurposeLen)
	}
	if len(i.Permissions) > maxPermissions {
		errs = append(errs, domain.FieldError{Field: "permissions", Message: fmt.Sprintf("max %d entries", maxPermissions)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DateFilter selects records by calendar dates (YYYY-MM-DD, UTC) or by year.
// EndDate includes the whole day. Year cannot be combined with dates.
type DateFilter struct {
	StartDate string
	EndDate   string
	Year      *int
}

// Range validates the filter and converts it to a half-open time range.
func (f DateFilter) Range() (domain.TimeRange, error) {
	start, end := strings.TrimSpace(f.StartDate), strings.TrimSpace(f.EndDate)

	if f.Year != nil {
		if start != "" || end != "" {
			return domain.TimeRange{}, domain.NewValidationError("year", "cannot be combined with start_date or end_date")
		}
		if *f.Year < 1 || *f.Year > 9999 {
			return domain.TimeRange{}, domain.NewValidationError("year", "must be between 1 and 9999")
		}
		return domain.YearRange(*f.Year), nil
	}

	var (
		rng  domain.TimeRange
		errs []domain.FieldError
	)
	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		} else {
			rng.From = &t
		}
	}
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		} else {
			next := t.AddDate(0, 0, 1)
			rng.To = &next
		}
	}
	if len(errs) > 0 {
		return domain.TimeRange{}, domain.NewValidationErrors(errs)
	}
	if rng.From != nil && rng.To != nil && !rng.From.Before(*rng.To) {
		return domain.TimeRange{}, domain.NewValidationError("start_date", "must not be after end_date")
	}
	return rng, nil
}

// ListInput selects a page of records. All ignores Limit and Offset.
type ListInput struct {
	All    bool
	Limit  *int
	Offset *int
}

func checkText(errs []domain.FieldError, field, value string, limit int) []domain.FieldError {
	v := strings.TrimSpace(value)
	if v == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(v) > limit {
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d characters", limit)})
	}
	return errs
}

// normalizePermissions trims entries, drops blanks and duplicates, and keeps
// first-seen order. The result is never nil.
func normalizePermissions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
