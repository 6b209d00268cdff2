package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type dataStoreDoc struct {
	Meta        `bson:",inline"`
	Name        string  `bson:"name"`
	Technology  string  `bson:"technology"`
	Description *string `bson:"description,omitempty"`
}

func (d dataStoreDoc) toDomain() domain.DataStore {
	return domain.DataStore{
		ID:          parseID(d.ID),
		Name:        d.Name,
		Technology:  d.Technology,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func dataStoresToDomain(docs []dataStoreDoc) []domain.DataStore {
	out := make([]domain.DataStore, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

// DataStoreRepo stores datastores in the datastores collection.
type DataStoreRepo struct {
	c collection[dataStoreDoc]
}

func NewDataStoreRepo(db *mongo.Database) *DataStoreRepo {
	return &DataStoreRepo{c: newCollection[dataStoreDoc](db, collDataStores, "datastore")}
}

func (r *DataStoreRepo) Create(ctx context.Context, ds *domain.DataStore) (*domain.DataStore, error) {
	doc := dataStoreDoc{
		Meta:        newMeta(ds.ID),
		Name:        ds.Name,
		Technology:  ds.Technology,
		Description: optText(ds.Description),
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *DataStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DataStore, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *DataStoreRepo) List(ctx context.Context, page domain.Page) ([]domain.DataStore, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return dataStoresToDomain(docs), nil
}

func (r *DataStoreRepo) Find(ctx context.Context, q domain.Query) ([]domain.DataStore, error) {
	docs, err := r.c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	return dataStoresToDomain(docs), nil
}

func (r *DataStoreRepo) Update(ctx context.Context, id uuid.UUID, u domain.DataStoreUpdate) (*domain.DataStore, error) {
	p := &patch{}
	setValue(p, "name", u.Name)
	setValue(p, "technology", u.Technology)
	p.text("description", u.Description)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *DataStoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *DataStoreRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

// Exists reports whether the record is present.
func (r *DataStoreRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.c.exists(ctx, id)
}
