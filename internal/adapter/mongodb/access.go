package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type accessRecordDoc struct {
	Meta        `bson:",inline"`
	UserID      string    `bson:"user_id"`
	AssetName   string    `bson:"asset_name"`
	RequestedAt time.Time `bson:"requested_at"`
	Purpose     string    `bson:"purpose"`
	Permissions []string  `bson:"permissions"`
	Status      *string   `bson:"status,omitempty"`
}

func (d accessRecordDoc) toDomain() domain.AccessRecord {
	perms := d.Permissions
	if perms == nil {
		perms = []string{}
	}
	return domain.AccessRecord{
		ID:          parseID(d.ID),
		UserID:      parseID(d.UserID),
		AssetName:   d.AssetName,
		RequestedAt: d.RequestedAt.UTC(),
		Purpose:     d.Purpose,
		Permissions: perms,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func accessRecordsToDomain(docs []accessRecordDoc) []domain.AccessRecord {
	out := make([]domain.AccessRecord, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

// AccessRecordRepo stores the access audit log in the access_records collection.
type AccessRecordRepo struct {
	c collection[accessRecordDoc]
}

func NewAccessRecordRepo(db *mongo.Database) *AccessRecordRepo {
	return &AccessRecordRepo{c: newCollection[accessRecordDoc](db, collAccessRecords, "access record")}
}

func (r *AccessRecordRepo) Create(ctx context.Context, rec *domain.AccessRecord) (*domain.AccessRecord, error) {
	perms := rec.Permissions
	if perms == nil {
		perms = []string{}
	}
	doc := accessRecordDoc{
		Meta:        newMeta(rec.ID),
		UserID:      rec.UserID.String(),
		AssetName:   rec.AssetName,
		RequestedAt: domain.NormalizeTimestamp(rec.RequestedAt),
		Purpose:     rec.Purpose,
		Permissions: perms,
		Status:      optText(rec.Status),
	}
	if err := r.c.insert(ctx, &doc); err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *AccessRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error) {
	doc, err := r.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *AccessRecordRepo) List(ctx context.Context, page domain.Page) ([]domain.AccessRecord, error) {
	docs, err := r.c.list(ctx, nil, page)
	if err != nil {
		return nil, err
	}
	return accessRecordsToDomain(docs), nil
}

// ListByRange returns records whose requested_at falls in rng, ordered by
// requested_at, at most limit of them.
func (r *AccessRecordRepo) ListByRange(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.AccessRecord, error) {
	bounds := bson.D{}
	if rng.From != nil {
		bounds = append(bounds, bson.E{Key: "$gte", Value: *rng.From})
	}
	if rng.To != nil {
		bounds = append(bounds, bson.E{Key: "$lt", Value: *rng.To})
	}
	filter := bson.D{}
	if len(bounds) > 0 {
		filter = bson.D{{Key: "requested_at", Value: bounds}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: 1}, {Key: "order", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	docs, err := r.c.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return accessRecordsToDomain(docs), nil
}

func (r *AccessRecordRepo) Update(ctx context.Context, id uuid.UUID, u domain.AccessRecordUpdate) (*domain.AccessRecord, error) {
	p := &patch{}
	if u.UserID != nil {
		p.value("user_id", u.UserID.String())
	}
	setValue(p, "asset_name", u.AssetName)
	if u.RequestedAt != nil {
		p.value("requested_at", domain.NormalizeTimestamp(*u.RequestedAt))
	}
	setValue(p, "purpose", u.Purpose)
	if u.Permissions != nil {
		p.value("permissions", u.Permissions)
	}
	p.text("status", u.Status)

	doc, err := r.c.update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *AccessRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.delete(ctx, id)
}

func (r *AccessRecordRepo) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, nil)
}

func (r *AccessRecordRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.c.count(ctx, bson.D{{Key: "user_id", Value: userID.String()}})
}
