package postgres

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// Base implements the statements every catalog table shares.
// R is the row struct the table scans into (fields tagged with `db`).
type Base[R any] struct {
	db      DB
	table   string
	entity  string
	columns []string
}

// NewBase creates a Base for table. entity names the record in error messages.
func NewBase[R any](db DB, table, entity string, columns ...string) Base[R] {
	return Base[R]{db: db, table: table, entity: entity, columns: columns}
}

// Q returns the transaction from ctx or the pool.
func (b Base[R]) Q(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, b.db)
}

// Entity returns the record name used in error messages.
func (b Base[R]) Entity() string { return b.entity }

// SelectAll returns a SELECT of all row columns from the table.
func (b Base[R]) SelectAll() sq.SelectBuilder {
	return Builder().Select(b.columns...).From(b.table)
}

func (b Base[R]) returning() string {
	return "RETURNING " + strings.Join(b.columns, ", ")
}

// Insert inserts values and returns the stored row.
func (b Base[R]) Insert(ctx context.Context, values map[string]any) (R, error) {
	stmt := Builder().Insert(b.table).SetMap(values).Suffix(b.returning())
	row, err := Get[R](ctx, b.Q(ctx), stmt)
	if err != nil {
		return row, MapError(err, b.entity, uuid.Nil)
	}
	return row, nil
}

// GetByID returns the row with the given id.
func (b Base[R]) GetByID(ctx context.Context, id uuid.UUID) (R, error) {
	row, err := Get[R](ctx, b.Q(ctx), b.SelectAll().Where(sq.Eq{"id": id}))
	if err != nil {
		return row, MapError(err, b.entity, id)
	}
	return row, nil
}

// Exists reports whether a row with the given id exists.
func (b Base[R]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := b.Count(ctx, sq.Eq{"id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns rows matching where (nil for all) in insertion order.
func (b Base[R]) List(ctx context.Context, where sq.Sqlizer, page domain.Page) ([]R, error) {
	stmt := b.SelectAll()
	if where != nil {
		stmt = stmt.Where(where)
	}
	stmt = ApplyPage(ApplyInsertionOrder(stmt), page)

	rows, err := Select[R](ctx, b.Q(ctx), stmt)
	if err != nil {
		return nil, MapError(err, b.entity, uuid.Nil)
	}
	return rows, nil
}

// Find returns rows whose columns contain every match value, in the requested order.
func (b Base[R]) Find(ctx context.Context, q domain.Query) ([]R, error) {
	stmt := b.SelectAll()
	for _, m := range q.Matches {
		stmt = stmt.Where(Contains(m.Field, m.Value))
	}
	stmt = ApplySort(stmt, q.Sort)

	rows, err := Select[R](ctx, b.Q(ctx), stmt)
	if err != nil {
		return nil, MapError(err, b.entity, uuid.Nil)
	}
	return rows, nil
}

// Update applies set to the row and returns the updated row.
// updated_at is always refreshed.
func (b Base[R]) Update(ctx context.Context, id uuid.UUID, set map[string]any) (R, error) {
	set["updated_at"] = sq.Expr("now()")
	stmt := Builder().Update(b.table).SetMap(set).Where(sq.Eq{"id": id}).Suffix(b.returning())

	row, err := Get[R](ctx, b.Q(ctx), stmt)
	if err != nil {
		return row, MapError(err, b.entity, id)
	}
	return row, nil
}

// Delete removes the row. A row still referenced by others yields
// ErrFailedPrecondition.
func (b Base[R]) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := Exec(ctx, b.Q(ctx), Builder().Delete(b.table).Where(sq.Eq{"id": id}))
	if err != nil {
		return MapDeleteError(err, b.entity, id)
	}
	if n == 0 {
		return MapError(domain.ErrNotFound, b.entity, id)
	}
	return nil
}

// Count returns the number of rows matching where (nil for all).
func (b Base[R]) Count(ctx context.Context, where sq.Sqlizer) (int, error) {
	stmt := Builder().Select("count(*)").From(b.table)
	if where != nil {
		stmt = stmt.Where(where)
	}
	n, err := Count(ctx, b.Q(ctx), stmt)
	if err != nil {
		return 0, MapError(err, b.entity, uuid.Nil)
	}
	return n, nil
}

// SetText adds an optional text column to a patch. An empty string clears it.
func SetText(set map[string]any, column string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		set[column] = nil
		return
	}
	set[column] = *v
}

// SetValue adds column to a patch when v is non-nil.
func SetValue[T any](set map[string]any, column string, v *T) {
	if v != nil {
		set[column] = *v
	}
}

// NullText converts an optional text value for insertion. Empty is NULL.
func NullText(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

// Nullable converts an optional value for insertion. nil is NULL.
func Nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
