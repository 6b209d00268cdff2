package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// StreamColumnRepo stores stream topic fields in the stream_columns collection.
type StreamColumnRepo struct {
	c collection[streamColumnDoc]
}

type streamColumnDoc struct {
	Meta        `bson:",inline"`
	TopicID     string  `bson:"topic_id"`
	Name        string  `bson:"name"`
	DataType    string  `bson:"data_type"`
	Description *string `bson:"description,omitempty"`
}

func (d streamColumnDoc) toDomain() domain.StreamColumn {
	return domain.StreamColumn{
		ID:          parseID(d.ID),
		TopicID:     parseID(d.TopicID),
		Name:        d.Name,
		DataType:    d.DataType,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func streamColumnsToDomain(docs []streamColumnDoc) []domain.StreamColumn {
	out := make([]domain.StreamColumn, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func NewStreamColumnRepo(db *mongo.Database) *StreamColumnRepo {
	return &StreamColumnRepo{c: newCollection[streamColumnDoc](db, collStreamColumns, "stream column")}
}

func (r *StreamColumnRepo) Create(ctx context.Context, col *domain.StreamColumn) (*domain.StreamColumn, error) {
	doc := streamColumnDoc{
		Meta:        newMeta(col.ID),
		TopicID:     col.TopicID.String(),
		Name:        col.Name,
		DataType:    col.DataType,
		Description: optText(col.Description),
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamColumnRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StreamColumn, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamColumnRepo) List(ctx context.Context, page domain.Page) ([]domain.StreamColumn, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return streamColumnsToDomain(docs), nil
}

func (r *StreamColumnRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.StreamColumn, error) {
	docs, err := r.c.list(ctx, bson.D{{Key: "topic_id", Value: topicID.String()}}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return streamColumnsToDomain(docs), nil
}

func (r *StreamColumnRepo) Update(ctx context.Context, id uuid.UUID, u domain.StreamColumnUpdate) (*domain.StreamColumn, error) {
	p := &patch{}
	if u.TopicID != nil {
		p.value("topic_id", u.TopicID.String())
	}
	setValue(p, "name", u.Name)
	setValue(p, "data_type", u.DataType)
	p.text("description", u.Description)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StreamColumnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *StreamColumnRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

func (r *StreamColumnRepo) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	return r.c.count(ctx, bson.D{{Key: "topic_id", Value: topicID.String()}})
}
