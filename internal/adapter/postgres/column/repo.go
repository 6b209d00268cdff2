// Package column implements the Column repository using PostgreSQL.
// Columns live in table_columns and always belong to one table.
package column

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{"id", "table_id", "name", "data_type", "description", "created_at", "updated_at"}

type row struct {
	ID          uuid.UUID `db:"id"`
	TableID     uuid.UUID `db:"table_id"`
	Name        string    `db:"name"`
	DataType    string    `db:"data_type"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Column {
	return domain.Column{
		ID:          r.ID,
		TableID:     r.TableID,
		Name:        r.Name,
		DataType:    r.DataType,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Column {
	out := make([]domain.Column, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides column persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new column repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "table_columns", "column", columns...)}
}

// Create inserts a column under its table.
func (r *Repo) Create(ctx context.Context, c *domain.Column) (*domain.Column, error) {
	values := map[string]any{
		"table_id":    c.TableID,
		"name":        c.Name,
		"data_type":   c.DataType,
		"description": postgres.NullText(c.Description),
	}
	if c.ID != uuid.Nil {
		values["id"] = c.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.Column, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListByTable returns the columns of a table in insertion order.
func (r *Repo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]domain.Column, error) {
	rows, err := r.base.List(ctx, sq.Eq{"table_id": tableID}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.ColumnUpdate) (*domain.Column, error) {
	set := map[string]any{}
	postgres.SetValue(set, "table_id", u.TableID)
	postgres.SetValue(set, "name", u.Name)
	postgres.SetValue(set, "data_type", u.DataType)
	postgres.SetText(set, "description", u.Description)

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

// CountByTable returns the number of columns in a table.
func (r *Repo) CountByTable(ctx context.Context, tableID uuid.UUID) (int, error) {
	return r.base.Count(ctx, sq.Eq{"table_id": tableID})
}
