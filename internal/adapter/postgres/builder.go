package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// Builder returns a squirrel statement builder with PostgreSQL placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Get builds the query and scans exactly one row into T.
func Get[T any](ctx context.Context, q Querier, b sq.Sqlizer) (T, error) {
	var dst T

	query, args, err := b.ToSql()
	if err != nil {
		return dst, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, q, &dst, query, args...); err != nil {
		return dst, err
	}
	return dst, nil
}

// Select builds the query and scans all rows into a slice of T.
// The result is never nil.
func Select[T any](ctx context.Context, q Querier, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	dst := make([]T, 0)
	if err := pgxscan.Select(ctx, q, &dst, query, args...); err != nil {
		return nil, err
	}
	return dst, nil
}

// Exec builds the statement, executes it and returns the affected row count.
func Exec(ctx context.Context, q Querier, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Count runs a SELECT count(*) style query and returns the single integer.
func Count(ctx context.Context, q Querier, b sq.Sqlizer) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains is a case-insensitive substring predicate on column.
// LIKE wildcards in value match literally.
func Contains(column, value string) sq.Sqlizer {
	return sq.ILike{column: "%" + likeEscaper.Replace(value) + "%"}
}

// ApplyPage adds LIMIT/OFFSET. A zero limit means no limit.
func ApplyPage(b sq.SelectBuilder, p domain.Page) sq.SelectBuilder {
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b
}

// SeqColumn is the identity column that records insertion order.
const SeqColumn = "seq"

// ApplyInsertionOrder orders rows by SeqColumn.
func ApplyInsertionOrder(b sq.SelectBuilder) sq.SelectBuilder {
	return b.OrderBy(SeqColumn + " ASC")
}

// ApplySort orders by the given column with SeqColumn as a tie-breaker.
// An empty field sorts by created_at.
func ApplySort(b sq.SelectBuilder, s domain.Sort) sq.SelectBuilder {
	field := s.Field
	if field == "" {
		field = domain.DefaultSortField
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return b.OrderBy(pgx.Identifier{field}.Sanitize()+" "+dir, SeqColumn+" "+dir)
}
