package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// ColumnRepo stores table columns in the columns collection.
type ColumnRepo struct {
	c collection[columnDoc]
}

type columnDoc struct {
	Meta        `bson:",inline"`
	TableID     string  `bson:"table_id"`
	Name        string  `bson:"name"`
	DataType    string  `bson:"data_type"`
	Description *string `bson:"description,omitempty"`
}

func (d columnDoc) toDomain() domain.Column {
	return domain.Column{
		ID:          parseID(d.ID),
		TableID:     parseID(d.TableID),
		Name:        d.Name,
		DataType:    d.DataType,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func columnsToDomain(docs []columnDoc) []domain.Column {
	out := make([]domain.Column, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func NewColumnRepo(db *mongo.Database) *ColumnRepo {
	return &ColumnRepo{c: newCollection[columnDoc](db, collColumns, "column")}
}

func (r *ColumnRepo) Create(ctx context.Context, col *domain.Column) (*domain.Column, error) {
	doc := columnDoc{
		Meta:        newMeta(col.ID),
		TableID:     col.TableID.String(),
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

func (r *ColumnRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *ColumnRepo) List(ctx context.Context, page domain.Page) ([]domain.Column, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return columnsToDomain(docs), nil
}

func (r *ColumnRepo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]domain.Column, error) {
	docs, err := r.c.list(ctx, bson.D{{Key: "table_id", Value: tableID.String()}}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return columnsToDomain(docs), nil
}

func (r *ColumnRepo) Update(ctx context.Context, id uuid.UUID, u domain.ColumnUpdate) (*domain.Column, error) {
	p := &patch{}
	if u.TableID != nil {
		p.value("table_id", u.TableID.String())
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

func (r *ColumnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *ColumnRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

func (r *ColumnRepo) CountByTable(ctx context.Context, tableID uuid.UUID) (int, error) {
	return r.c.count(ctx, bson.D{{Key: "table_id", Value: tableID.String()}})
}
