// Package streamcolumn implements the StreamColumn repository using PostgreSQL.
// Stream columns describe the fields of one stream topic.
package streamcolumn

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{"id", "topic_id", "name", "data_type", "description", "created_at", "updated_at"}

type row struct {
	ID          uuid.UUID `db:"id"`
	TopicID     uuid.UUID `db:"topic_id"`
	Name        string    `db:"name"`
	DataType    string    `db:"data_type"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.StreamColumn {
	return domain.StreamColumn{
		ID:          r.ID,
		TopicID:     r.TopicID,
		Name:        r.Name,
		DataType:    r.DataType,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.StreamColumn {
	out := make([]domain.StreamColumn, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides stream column persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new stream column repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "stream_columns", "stream column", columns...)}
}

// Create inserts a column under its topic.
func (r *Repo) Create(ctx context.Context, c *domain.StreamColumn) (*domain.StreamColumn, error) {
	values := map[string]any{
		"topic_id":    c.TopicID,
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

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StreamColumn, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.StreamColumn, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListByTopic returns the columns of a stream topic in insertion order.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.StreamColumn, error) {
	rows, err := r.base.List(ctx, sq.Eq{"topic_id": topicID}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.StreamColumnUpdate) (*domain.StreamColumn, error) {
	set := map[string]any{}
	postgres.SetValue(set, "topic_id", u.TopicID)
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

// CountByTopic returns the number of columns of a stream topic.
func (r *Repo) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	return r.base.Count(ctx, sq.Eq{"topic_id": topicID})
}
