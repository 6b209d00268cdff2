// Package datastore implements the DataStore repository using PostgreSQL.
package datastore

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{"id", "name", "technology", "description", "created_at", "updated_at"}

type row struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Technology  string    `db:"technology"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.DataStore {
	return domain.DataStore{
		ID:          r.ID,
		Name:        r.Name,
		Technology:  r.Technology,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.DataStore {
	out := make([]domain.DataStore, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides datastore persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new datastore repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "datastores", "datastore", columns...)}
}

// Create inserts a datastore. A duplicate name returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, ds *domain.DataStore) (*domain.DataStore, error) {
	values := map[string]any{
		"name":        ds.Name,
		"technology":  ds.Technology,
		"description": postgres.NullText(ds.Description),
	}
	if ds.ID != uuid.Nil {
		values["id"] = ds.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DataStore, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.DataStore, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Find(ctx context.Context, q domain.Query) ([]domain.DataStore, error) {
	rows, err := r.base.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.DataStoreUpdate) (*domain.DataStore, error) {
	set := map[string]any{}
	postgres.SetValue(set, "name", u.Name)
	postgres.SetValue(set, "technology", u.Technology)
	postgres.SetText(set, "description", u.Description)

	updated, err := r.base.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	out := updated.toDomain()
	return &out, nil
}

// Delete removes a datastore. Fails with domain.ErrFailedPrecondition while
// tables still reference it.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}

// Exists reports whether the record is present.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.base.Exists(ctx, id)
}
