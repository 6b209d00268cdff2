// Package access implements the AccessRecord repository using PostgreSQL.
// Records are unique per (user_id, asset_name, requested_at).
package access

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{
	"id", "user_id", "asset_name", "requested_at", "purpose",
	"permissions", "status", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	AssetName   string    `db:"asset_name"`
	RequestedAt time.Time `db:"requested_at"`
	Purpose     string    `db:"purpose"`
	Permissions []string  `db:"permissions"`
	Status      *string   `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.AccessRecord {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return domain.AccessRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		AssetName:   r.AssetName,
		RequestedAt: r.RequestedAt.UTC(),
		Purpose:     r.Purpose,
		Permissions: perms,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.AccessRecord {
	out := make([]domain.AccessRecord, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides access record persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new access record repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "access_records", "access record", columns...)}
}

// Create inserts a record. A duplicate (user, asset, requested_at) returns
// domain.ErrAlreadyExists; an unknown user domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, rec *domain.AccessRecord) (*domain.AccessRecord, error) {
	perms := rec.Permissions
	if perms == nil {
		perms = []string{}
	}
	values := map[string]any{
		"user_id":      rec.UserID,
		"asset_name":   rec.AssetName,
		"requested_at": domain.NormalizeTimestamp(rec.RequestedAt),
		"purpose":      rec.Purpose,
		"permissions":  perms,
		"status":       postgres.NullText(rec.Status),
	}
	if rec.ID != uuid.Nil {
		values["id"] = rec.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.AccessRecord, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListByRange returns records whose requested_at falls in rng, ordered by
// requested_at, at most limit of them.
func (r *Repo) ListByRange(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.AccessRecord, error) {
	stmt := r.base.SelectAll()
	if rng.From != nil {
		stmt = stmt.Where(sq.GtOrEq{"requested_at": *rng.From})
	}
	if rng.To != nil {
		stmt = stmt.Where(sq.Lt{"requested_at": *rng.To})
	}
	stmt = postgres.ApplyPage(stmt.OrderBy("requested_at ASC", postgres.SeqColumn+" ASC"), domain.Page{Limit: limit})

	rows, err := postgres.Select[row](ctx, r.base.Q(ctx), stmt)
	if err != nil {
		return nil, postgres.MapError(err, r.base.Entity(), uuid.Nil)
	}
	return toDomainList(rows), nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.AccessRecordUpdate) (*domain.AccessRecord, error) {
	set := map[string]any{}
	postgres.SetValue(set, "user_id", u.UserID)
	postgres.SetValue(set, "asset_name", u.AssetName)
	if u.RequestedAt != nil {
		set["requested_at"] = domain.NormalizeTimestamp(*u.RequestedAt)
	}
	postgres.SetValue(set, "purpose", u.Purpose)
	if u.Permissions != nil {
		set["permissions"] = u.Permissions
	}
	postgres.SetText(set, "status", u.Status)

	updated, err := r.base.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	out := updated.toDomain()
	return &out, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}

// CountByUser returns the number of records of a user.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.base.Count(ctx, sq.Eq{"user_id": userID})
}
