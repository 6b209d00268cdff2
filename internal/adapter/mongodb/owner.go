package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type ownerDoc struct {
	Meta  `bson:",inline"`
	Name  string  `bson:"name"`
	Email string  `bson:"email"`
	Role  *string `bson:"role,omitempty"`
	Phone *string `bson:"phone,omitempty"`
}

func (d ownerDoc) toDomain() domain.Owner {
	return domain.Owner{
		ID:        parseID(d.ID),
		Name:      d.Name,
		Email:     d.Email,
		Role:      d.Role,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ownersToDomain(docs []ownerDoc) []domain.Owner {
	out := make([]domain.Owner, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

// OwnerRepo stores owners in the owners collection.
type OwnerRepo struct {
	c collection[ownerDoc]
}

func NewOwnerRepo(db *mongo.Database) *OwnerRepo {
	return &OwnerRepo{c: newCollection[ownerDoc](db, collOwners, "owner")}
}

func (r *OwnerRepo) Create(ctx context.Context, o *domain.Owner) (*domain.Owner, error) {
	doc := ownerDoc{
		Meta:  newMeta(o.ID),
		Name:  o.Name,
		Email: o.Email,
		Role:  optText(o.Role),
		Phone: optText(o.Phone),
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *OwnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *OwnerRepo) List(ctx context.Context, page domain.Page) ([]domain.Owner, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return ownersToDomain(docs), nil
}

func (r *OwnerRepo) Find(ctx context.Context, q domain.Query) ([]domain.Owner, error) {
	docs, err := r.c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	return ownersToDomain(docs), nil
}

func (r *OwnerRepo) Update(ctx context.Context, id uuid.UUID, u domain.OwnerUpdate) (*domain.Owner, error) {
	p := &patch{}
	setValue(p, "name", u.Name)
	setValue(p, "email", u.Email)
	p.text("role", u.Role)
	p.text("phone", u.Phone)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *OwnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *OwnerRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}
