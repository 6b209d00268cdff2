// Package table implements the Table repository using PostgreSQL.
// Tables live in data_tables and always belong to one datastore.
package table

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{
	"id", "datastore_id", "name", "description", "lifecycle_state",
	"quality_grade", "compliant", "created_at", "updated_at",
}

type row struct {
	ID             uuid.UUID `db:"id"`
	DataStoreID    uuid.UUID `db:"datastore_id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	LifecycleState *string   `db:"lifecycle_state"`
	QualityGrade   *string   `db:"quality_grade"`
	Compliant      *bool     `db:"compliant"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Table {
	return domain.Table{
		ID:             r.ID,
		DataStoreID:    r.DataStoreID,
		Name:           r.Name,
		Description:    r.Description,
		LifecycleState: r.LifecycleState,
		QualityGrade:   r.QualityGrade,
		Compliant:      r.Compliant,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Table {
	out := make([]domain.Table, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides table persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new table repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "data_tables", "table", columns...)}
}

// Create inserts a table. A missing datastore returns domain.ErrNotFound,
// a duplicate name within the datastore domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	values := map[string]any{
		"datastore_id":    t.DataStoreID,
		"name":            t.Name,
		"description":     postgres.NullText(t.Description),
		"lifecycle_state": postgres.NullText(t.LifecycleState),
		"quality_grade":   postgres.NullText(t.QualityGrade),
		"compliant":       postgres.Nullable(t.Compliant),
	}
	if t.ID != uuid.Nil {
		values["id"] = t.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.Table, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListByDataStore returns every table of a datastore in insertion order.
func (r *Repo) ListByDataStore(ctx context.Context, datastoreID uuid.UUID) ([]domain.Table, error) {
	rows, err := r.base.List(ctx, sq.Eq{"datastore_id": datastoreID}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Find(ctx context.Context, q domain.Query) ([]domain.Table, error) {
	rows, err := r.base.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// Update applies the non-nil fields of u. Setting DataStoreID moves the table.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.TableUpdate) (*domain.Table, error) {
	set := map[string]any{}
	postgres.SetValue(set, "datastore_id", u.DataStoreID)
	postgres.SetValue(set, "name", u.Name)
	postgres.SetText(set, "description", u.Description)
	postgres.SetText(set, "lifecycle_state", u.LifecycleState)
	postgres.SetText(set, "quality_grade", u.QualityGrade)
	postgres.SetValue(set, "compliant", u.Compliant)

	updated, err := r.base.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	out := updated.toDomain()
	return &out, nil
}

// Delete removes a table. Fails with domain.ErrFailedPrecondition while
// columns still reference it.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.Delete(ctx, id)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}

// CountByDataStore returns the number of tables in a datastore.
func (r *Repo) CountByDataStore(ctx context.Context, datastoreID uuid.UUID) (int, error) {
	return r.base.Count(ctx, sq.Eq{"datastore_id": datastoreID})
}

// Exists reports whether the record is present.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.base.Exists(ctx, id)
}
