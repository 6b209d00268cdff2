package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// Meta is embedded in every stored document.
// Order is a process-monotonic ObjectID that records insertion order.
type Meta struct {
	ID        string        `bson:"_id"`
	Order     bson.ObjectID `bson:"order"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func newMeta(id uuid.UUID) Meta {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := domain.NormalizeTimestamp(time.Now())
	return Meta{ID: id.String(), Order: bson.NewObjectID(), CreatedAt: now, UpdatedAt: now}
}

// parseID converts a stored identifier back to a UUID. Malformed values
// become uuid.Nil.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func byID(id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id.String()}}
}

// collection implements the operations every catalog collection shares.
type collection[D any] struct {
	coll   *mongo.Collection
	entity string
}

func newCollection[D any](db *mongo.Database, name, entity string) collection[D] {
	return collection[D]{coll: db.Collection(name), entity: entity}
}

func (c collection[D]) insert(ctx context.Context, doc *D) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mapError(err, c.entity, "")
	}
	return nil
}

func (c collection[D]) get(ctx context.Context, id uuid.UUID) (D, error) {
	var doc D
	if err := c.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return doc, mapError(err, c.entity, id.String())
	}
	return doc, nil
}

func (c collection[D]) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := c.count(ctx, byID(id))
	return n > 0, err
}

// list returns documents matching filter in insertion order.
func (c collection[D]) list(ctx context.Context, filter bson.D, page domain.Page) ([]D, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	if page.Offset > 0 {
		opts.SetSkip(int64(page.Offset))
	}
	return c.find(ctx, filter, opts)
}

// search applies case-insensitive substring matches and the requested sort.
func (c collection[D]) search(ctx context.Context, q domain.Query) ([]D, error) {
	filter := bson.D{}
	for _, m := range q.Matches {
		filter = append(filter, bson.E{
			Key:   m.Field,
			Value: bson.Regex{Pattern: regexp.QuoteMeta(m.Value), Options: "i"},
		})
	}

	field := q.Sort.Field
	if field == "" {
		field = domain.DefaultSortField
	}
	dir := 1
	if q.Sort.Desc {
		dir = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}, {Key: "order", Value: dir}})
	return c.find(ctx, filter, opts)
}

func (c collection[D]) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]D, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, c.entity, "")
	}

	docs := make([]D, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, c.entity, "")
	}
	if docs == nil {
		docs = make([]D, 0)
	}
	return docs, nil
}

// update applies p and returns the document after the update.
func (c collection[D]) update(ctx context.Context, id uuid.UUID, p *patch) (D, error) {
	p.set = append(p.set, bson.E{Key: "updated_at", Value: domain.NormalizeTimestamp(time.Now())})

	var doc D
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := c.coll.FindOneAndUpdate(ctx, byID(id), p.document(), opts).Decode(&doc); err != nil {
		return doc, mapError(err, c.entity, id.String())
	}
	return doc, nil
}

func (c collection[D]) delete(ctx context.Context, id uuid.UUID) error {
	res, err := c.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return mapError(err, c.entity, id.String())
	}
	if res.DeletedCount == 0 {
		return mapError(mongo.ErrNoDocuments, c.entity, id.String())
	}
	return nil
}

func (c collection[D]) count(ctx context.Context, filter bson.D) (int, error) {
	if filter == nil {
		filter = bson.D{}
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, mapError(err, c.entity, "")
	}
	return int(n), nil
}

// patch collects $set and $unset operations.
type patch struct {
	set   bson.D
	unset bson.D
}

func (p *patch) value(field string, v any) {
	p.set = append(p.set, bson.E{Key: field, Value: v})
}

// text sets an optional string field. An empty string unsets it.
func (p *patch) text(field string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		p.unset = append(p.unset, bson.E{Key: field, Value: ""})
		return
	}
	p.value(field, *v)
}

func setValue[T any](p *patch, field string, v *T) {
	if v != nil {
		p.value(field, *v)
	}
}

func (p *patch) document() bson.D {
	doc := bson.D{{Key: "$set", Value: p.set}}
	if len(p.unset) > 0 {
		doc = append(doc, bson.E{Key: "$unset", Value: p.unset})
	}
	return doc
}

// optText returns nil for empty optional text so the field is omitted.
func optText(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
