package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type streamTopicDoc struct {
	Meta           `bson:",inline"`
	Name           string  `bson:"name"`
	Description    *string `bson:"description,omitempty"`
	LifecycleState *string `bson:"lifecycle_state,omitempty"`
	Compliant      *bool   `bson:"compliant,omitempty"`
}

func (d streamTopicDoc) toDomain() domain.StreamTopic {
	return domain.StreamTopic{
		ID:             parseID(d.ID),
		Name:           d.Name,
		Description:    d.Description,
		LifecycleState: d.LifecycleState,
		Compliant:      d.Compliant,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func streamTopicsToDomain(docs []streamTopicDoc) []domain.StreamTopic {
	out := make([]domain.StreamTopic, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

// StreamTopicRepo stores stream topics in the stream_topics collection.
type StreamTopicRepo struct {
	c collection[streamTopicDoc]
}

func NewStreamTopicRepo(db *mongo.Database) *StreamTopicRepo {
	return &StreamTopicRepo{c: newCollection[streamTopicDoc](db, collStreamTopics, "stream topic")}
}

func (r *StreamTopicRepo) Create(ctx context.Context, st *domain.StreamTopic) (*domain.StreamTopic, error) {
	doc := streamTopicDoc{
		Meta:           newMeta(st.ID),
		Name:           st.Name,
		Description:    optText(st.Description),
		LifecycleState: optText(st.LifecycleState),
		Compliant:      st.Compliant,
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamTopicRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StreamTopic, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamTopicRepo) List(ctx context.Context, page domain.Page) ([]domain.StreamTopic, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return streamTopicsToDomain(docs), nil
}

func (r *StreamTopicRepo) Find(ctx context.Context, q domain.Query) ([]domain.StreamTopic, error) {
	docs, err := r.c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	return streamTopicsToDomain(docs), nil
}

func (r *StreamTopicRepo) Update(ctx context.Context, id uuid.UUID, u domain.StreamTopicUpdate) (*domain.StreamTopic, error) {
	p := &patch{}
	setValue(p, "name", u.Name)
	p.text("description", u.Description)
	p.text("lifecycle_state", u.LifecycleState)
	setValue(p, "compliant", u.Compliant)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamTopicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *StreamTopicRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

// Exists reports whether the record is present.
func (r *StreamTopicRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.c.exists(ctx, id)
}
