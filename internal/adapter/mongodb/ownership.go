package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/infogrid/catalog-backend/internal/domain"
)

var assetCollections = map[domain.AssetKind]string{
	domain.AssetKindDataStore:   collDataStores,
	domain.AssetKindTable:       collTables,
	domain.AssetKindStreamTopic: collStreamTopics,
}

type ownershipDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	OwnerID   string        `bson:"owner_id"`
	AssetID   string        `bson:"asset_id"`
	AssetKind string        `bson:"asset_kind"`
	CreatedAt time.Time     `bson:"created_at"`
}

type nameDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

// OwnershipRepo stores Owner <-> Asset links in the ownerships collection.
// Links are ordered by their ObjectID, i.e. by creation.
type OwnershipRepo struct {
	db    *mongo.Database
	links *mongo.Collection
}

func NewOwnershipRepo(db *mongo.Database) *OwnershipRepo {
	return &OwnershipRepo{db: db, links: db.Collection(collOwnerships)}
}

func assetCollection(kind domain.AssetKind) (string, error) {
	name, ok := assetCollections[kind]
	if !ok {
		return "", domain.NewValidationError("kind", fmt.Sprintf("unknown asset kind %q", kind))
	}
	return name, nil
}

func (r *OwnershipRepo) Link(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error) {
	if _, err := assetCollection(kind); err != nil {
		return nil, err
	}

	doc := ownershipDoc{
		ID:        bson.NewObjectID(),
		OwnerID:   ownerID.String(),
		AssetID:   assetID.String(),
		AssetKind: string(kind),
		CreatedAt: domain.NormalizeTimestamp(time.Now()),
	}
	if _, err := r.links.InsertOne(ctx, doc); err != nil {
		return nil, mapError(err, string(kind)+" ownership", assetID.String())
	}

	return &domain.OwnershipLink{OwnerID: ownerID, AssetID: assetID, Kind: kind, CreatedAt: doc.CreatedAt}, nil
}

func (r *OwnershipRepo) Unlink(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) error {
	res, err := r.links.DeleteOne(ctx, bson.D{
		{Key: "owner_id", Value: ownerID.String()},
		{Key: "asset_id", Value: assetID.String()},
		{Key: "asset_kind", Value: string(kind)},
	})
	if err != nil {
		return mapError(err, string(kind)+" ownership", assetID.String())
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s ownership %s/%s: %w", kind, ownerID, assetID, domain.ErrNotFound)
	}
	return nil
}

func (r *OwnershipRepo) findLinks(ctx context.Context, filter bson.D) ([]ownershipDoc, error) {
	cur, err := r.links.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []ownershipDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// namesByID loads {_id, name} for ids from coll.
func (r *OwnershipRepo) namesByID(ctx context.Context, coll string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}})
	cur, err := r.db.Collection(coll).Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}, opts)
	if err != nil {
		return nil, err
	}
	var docs []nameDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d.Name
	}
	return out, nil
}

func (r *OwnershipRepo) ListAssets(ctx context.Context, ownerID uuid.UUID, kind domain.AssetKind) ([]domain.AssetSummary, error) {
	coll, err := assetCollection(kind)
	if err != nil {
		return nil, err
	}

	links, err := r.findLinks(ctx, bson.D{
		{Key: "owner_id", Value: ownerID.String()},
		{Key: "asset_kind", Value: string(kind)},
	})
	if err != nil {
		return nil, fmt.Errorf("list %s assets of owner %s: %w", kind, ownerID, err)
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.AssetID
	}
	names, err := r.namesByID(ctx, coll, ids)
	if err != nil {
		return nil, fmt.Errorf("load %s names: %w", kind, err)
	}

	out := make([]domain.AssetSummary, 0, len(links))
	for _, l := range links {
		name, ok := names[l.AssetID]
		if !ok {
			continue
		}
		out = append(out, domain.AssetSummary{ID: parseID(l.AssetID), Name: name, Kind: kind})
	}
	return out, nil
}

func (r *OwnershipRepo) ListOwners(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) ([]domain.Owner, error) {
	if _, err := assetCollection(kind); err != nil {
		return nil, err
	}

	links, err := r.findLinks(ctx, bson.D{
		{Key: "asset_id", Value: assetID.String()},
		{Key: "asset_kind", Value: string(kind)},
	})
	if err != nil {
		return nil, fmt.Errorf("list owners of %s %s: %w", kind, assetID, err)
	}
	if len(links) == 0 {
		return []domain.Owner{}, nil
	}

	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.OwnerID
	}
	cur, err := r.db.Collection(collOwners).Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}
	var docs []ownerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}
	byID := make(map[string]ownerDoc, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	out := make([]domain.Owner, 0, len(links))
	for _, l := range links {
		if d, ok := byID[l.OwnerID]; ok {
			out = append(out, d.toDomain())
		}
	}
	return out, nil
}

func (r *OwnershipRepo) ListLinks(ctx context.Context, kind domain.AssetKind) ([]domain.OwnershipView, error) {
	coll, err := assetCollection(kind)
	if err != nil {
		return nil, err
	}

	links, err := r.findLinks(ctx, bson.D{{Key: "asset_kind", Value: string(kind)}})
	if err != nil {
		return nil, fmt.Errorf("list %s links: %w", kind, err)
	}

	ownerIDs := make([]string, len(links))
	assetIDs := make([]string, len(links))
	for i, l := range links {
		ownerIDs[i] = l.OwnerID
		assetIDs[i] = l.AssetID
	}
	ownerNames, err := r.namesByID(ctx, collOwners, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("load owner names: %w", err)
	}
	assetNames, err := r.namesByID(ctx, coll, assetIDs)
	if err != nil {
		return nil, fmt.Errorf("load %s names: %w", kind, err)
	}

	out := make([]domain.OwnershipView, 0, len(links))
	for _, l := range links {
		out = append(out, domain.OwnershipView{
			OwnerID:   parseID(l.OwnerID),
			OwnerName: ownerNames[l.OwnerID],
			AssetID:   parseID(l.AssetID),
			AssetName: assetNames[l.AssetID],
			Kind:      kind,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

func (r *OwnershipRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := r.links.DeleteMany(ctx, bson.D{{Key: "owner_id", Value: ownerID.String()}}); err != nil {
		return fmt.Errorf("delete links of owner %s: %w", ownerID, err)
	}
	return nil
}

func (r *OwnershipRepo) DeleteByAsset(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) error {
	filter := bson.D{
		{Key: "asset_id", Value: assetID.String()},
		{Key: "asset_kind", Value: string(kind)},
	}
	if _, err := r.links.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete links of %s %s: %w", kind, assetID, err)
	}
	return nil
}
