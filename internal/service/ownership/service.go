// Package ownership manages the many-to-many relationship between owners and
// assets. Both directions are answered from the same link records.
package ownership

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type linkRepo interface {
	Link(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error)
	Unlink(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) error
	ListAssets(ctx context.Context, ownerID uuid.UUID, kind domain.AssetKind) ([]domain.AssetSummary, error)
	ListOwners(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) ([]domain.Owner, error)
	ListLinks(ctx context.Context, kind domain.AssetKind) ([]domain.OwnershipView, error)
}

type ownerGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
}

// assetChecker reports whether an asset of one kind exists.
type assetChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements link, unlink and both list directions.
type Service struct {
	links  linkRepo
	owners ownerGetter
	assets map[domain.AssetKind]assetChecker
	tx     txManager
	log    *slog.Logger
}

// Assets maps each ownable kind to its existence checker.
type Assets struct {
	DataStores   assetChecker
	Tables       assetChecker
	StreamTopics assetChecker
}

// NewService creates a new ownership service.
func NewService(log *slog.Logger, links linkRepo, owners ownerGetter, assets Assets, tx txManager) *Service {
	return &Service{
		links:  links,
		owners: owners,
		assets: map[domain.AssetKind]assetChecker{
			domain.AssetKindDataStore:   assets.DataStores,
			domain.AssetKindTable:       assets.Tables,
			domain.AssetKindStreamTopic: assets.StreamTopics,
		},
		tx:  tx,
		log: log.With("service", "ownership"),
	}
}
