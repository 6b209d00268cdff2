package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type tableDoc struct {
	Meta           `bson:",inline"`
	DataStoreID    string  `bson:"datastore_id"`
	Name           string  `bson:"name"`
	Description    *string `bson:"description,omitempty"`
	LifecycleState *string `bson:"lifecycle_state,omitempty"`
	QualityGrade   *string `bson:"quality_grade,omitempty"`
	Compliant      *bool   `bson:"compliant,omitempty"`
}

func (d tableDoc) toDomain() domain.Table {
	return domain.Table{
		ID:             parseID(d.ID),
		DataStoreID:    parseID(d.DataStoreID),
		Name:           d.Name,
		Description:    d.Description,
		LifecycleState: d.LifecycleState,
		QualityGrade:   d.QualityGrade,
		Compliant:      d.Compliant,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func tablesToDomain(docs []tableDoc) []domain.Table {
	out := make([]domain.Table, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

// TableRepo stores tables in the tables collection. Parent existence is
// checked by the service before writes.
type TableRepo struct {
	c collection[tableDoc]
}

func NewTableRepo(db *mongo.Database) *TableRepo {
	return &TableRepo{c: newCollection[tableDoc](db, collTables, "table")}
}

func (r *TableRepo) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	doc := tableDoc{
		Meta:           newMeta(t.ID),
		DataStoreID:    t.DataStoreID.String(),
		Name:           t.Name,
		Description:    optText(t.Description),
		LifecycleState: optText(t.LifecycleState),
		QualityGrade:   optText(t.QualityGrade),
		Compliant:      t.Compliant,
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *TableRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *TableRepo) List(ctx context.Context, page domain.Page) ([]domain.Table, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return tablesToDomain(docs), nil
}

func (r *TableRepo) ListByDataStore(ctx context.Context, datastoreID uuid.UUID) ([]domain.Table, error) {
	docs, err := r.c.list(ctx, bson.D{{Key: "datastore_id", Value: datastoreID.String()}}, domain.Page{})
	if err != nil {
		return nil, err
	}
	return tablesToDomain(docs), nil
}

func (r *TableRepo) Find(ctx context.Context, q domain.Query) ([]domain.Table, error) {
	docs, err := r.c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	return tablesToDomain(docs), nil
}

func (r *TableRepo) Update(ctx context.Context, id uuid.UUID, u domain.TableUpdate) (*domain.Table, error) {
	p := &patch{}
	if u.DataStoreID != nil {
		p.value("datastore_id", u.DataStoreID.String())
	}
	setValue(p, "name", u.Name)
	p.text("description", u.Description)
	p.text("lifecycle_state", u.LifecycleState)
	p.text("quality_grade", u.QualityGrade)
	setValue(p, "compliant", u.Compliant)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *TableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *TableRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

func (r *TableRepo) CountByDataStore(ctx context.Context, datastoreID uuid.UUID) (int, error) {
	return r.c.count(ctx, bson.D{{Key: "datastore_id", Value: datastoreID.String()}})
}

// Exists reports whether the record is present.
func (r *TableRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.c.exists(ctx, id)
}
