// Package streamtopic implements the StreamTopic repository using PostgreSQL.
package streamtopic

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/infogrid/catalog-backend/internal/adapter/postgres"
	"github.com/infogrid/catalog-backend/internal/domain"
)

var columns = []string{"id", "name", "description", "lifecycle_state", "compliant", "created_at", "updated_at"}

type row struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	LifecycleState *string   `db:"lifecycle_state"`
	Compliant      *bool     `db:"compliant"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.StreamTopic {
	return domain.StreamTopic{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		LifecycleState: r.LifecycleState,
		Compliant:      r.Compliant,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.StreamTopic {
	out := make([]domain.StreamTopic, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides stream topic persistence backed by PostgreSQL.
type Repo struct {
	base postgres.Base[row]
}

// New creates a new stream topic repository.
func New(db postgres.DB) *Repo {
	return &Repo{base: postgres.NewBase[row](db, "stream_topics", "stream topic", columns...)}
}

func (r *Repo) Create(ctx context.Context, st *domain.StreamTopic) (*domain.StreamTopic, error) {
	values := map[string]any{
		"name":            st.Name,
		"description":     postgres.NullText(st.Description),
		"lifecycle_state": postgres.NullText(st.LifecycleState),
		"compliant":       postgres.Nullable(st.Compliant),
	}
	if st.ID != uuid.Nil {
		values["id"] = st.ID
	}

	created, err := r.base.Insert(ctx, values)
	if err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StreamTopic, error) {
	got, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := got.toDomain()
	return &out, nil
}

func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.StreamTopic, error) {
	rows, err := r.base.List(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Find(ctx context.Context, q domain.Query) ([]domain.StreamTopic, error) {
	rows, err := r.base.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, u domain.StreamTopicUpdate) (*domain.StreamTopic, error) {
	set := map[string]any{}
	postgres.SetValue(set, "name", u.Name)
	postgres.SetText(set, "description", u.Description)
	postgres.SetText(set, "lifecycle_state", u.LifecycleState)
	postgres.SetValue(set, "compliant", u.Compliant)

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

// Exists reports whether the record is present.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.base.Exists(ctx, id)
}
