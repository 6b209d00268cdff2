package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessRecord is an audit entry describing a user's request to access an
// asset. AssetName is free text and is not checked against the catalog.
type AccessRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AssetName   string
	RequestedAt time.Time
	Purpose     string
	Permissions []string
	Status      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccessRecordUpdate holds a partial update of an AccessRecord.
// A nil Permissions slice leaves permissions untouched; an empty non-nil
// slice clears them.
type AccessRecordUpdate struct {
	UserID      *uuid.UUID
	AssetName   *string
	RequestedAt *time.Time
	Purpose     *string
	Permissions []string
	Status      *string
}

// IsEmpty reports whether the update carries no fields.
func (u AccessRecordUpdate) IsEmpty() bool {
	return u.UserID == nil && u.AssetName == nil && u.RequestedAt == nil &&
		u.Purpose == nil && u.Permissions == nil && u.Status == nil
}

// NormalizeTimestamp converts t to UTC with millisecond precision, the
// coarsest precision shared by both storage backends.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// TimeRange is a half-open interval [From, To). A nil bound is unbounded.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// YearRange returns the range covering the whole calendar year in UTC.
func YearRange(year int) TimeRange {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	return TimeRange{From: &from, To: &to}
}
