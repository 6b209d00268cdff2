package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type userDoc struct {
	Meta  `bson:",inline"`
	Name  string  `bson:"name"`
	Email string  `bson:"email"`
	Role  *string `bson:"role,omitempty"`
	Phone *string `bson:"phone,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:        parseID(d.ID),
		Name:      d.Name,
		Email:     d.Email,
		Role:      d.Role,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// UserRepo stores users in the users collection.
type UserRepo struct {
	c collection[userDoc]
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{c: newCollection[userDoc](db, collUsers, "user")}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	doc := userDoc{
		Meta:  newMeta(u.ID),
		Name:  u.Name,
		Email: u.Email,
		Role:  optText(u.Role),
		Phone: optText(u.Phone),
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *UserRepo) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, u domain.UserUpdate) (*domain.User, error) {
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

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}
