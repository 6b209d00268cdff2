// Package owner implements the Owner repository using PostgreSQL.
package owner

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

const table = "owners"

var columns = []string{"id", "name", "email", "role", "phone", "created_at", "updated_at"}

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      *string   `db:"role"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Owner {
	return domain.Owner{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Owner {
	out := make([]domain.Owner, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides owner persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new owner repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, table, "owner", columns...)}
}

// Create inserts an owner. A duplicate email returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, o *domain.Owner) (*domain.Owner, error) {
	values := map[string]any{
		"name":  o.Name,
		"email": o.Email,
		"role":  postgres.NullText(o.Role),
		"phone": postgres.NullText(o.Phone),
	}
	if o.ID != uuid.Nil {
		values["id"] = o.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

// GetByID returns an owner by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

// List returns owners in insertion order.
func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.Owner, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// Find returns owners matching every filter in q.
func (r *Repo) Find(ctx context.Context, q domain.Query) ([]domain.Owner, error) {
	rows, err := r.base.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// Update applies the non-nil fields of u.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.OwnerUpdate) (*domain.Owner, error) {
	set := map[string]any{}
	postgres.SetValue(set, "name", u.Name)
	postgres.SetValue(set, "email", u.Email)
	postgres.SetText(set, "role", u.Role)
	postgres.SetText(set, "phone", u.Phone)

	updated, err := r.base.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	out := updated.toDomain()
	return &out, nil
}

// Delete removes an owner. Ownership links cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

// Count returns the number of owners.
func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}
