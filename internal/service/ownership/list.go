package ownership

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// ListAssetsForOwner returns the assets an owner owns, in link order. An
// empty kind lists every kind, datastores first.
func (s *Service) ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID, kind string) ([]domain.AssetSummary, error) {
	kinds := domain.AssetKinds
	if kind != "" {
		k, err := domain.ParseAssetKind(kind)
		if err != nil {
			return nil, err
		}
		kinds = []domain.AssetKind{k}
	}

	if _, err := s.owners.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	out := []domain.AssetSummary{}
	for _, k := range kinds {
		assets, err := s.links.ListAssets(ctx, ownerID, k)
		if err != nil {
			return nil, fmt.Errorf("list %s assets: %w", k, err)
		}
		out = append(out, assets...)
	}
	return out, nil
}

// ListOwnersForAsset returns the owners of an asset, in link order.
func (s *Service) ListOwnersForAsset(ctx context.Context, kind string, assetID uuid.UUID) ([]domain.Owner, error) {
	k, err := domain.ParseAssetKind(kind)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAsset(ctx, k, assetID); err != nil {
		return nil, err
	}

	owners, err := s.links.ListOwners(ctx, assetID, k)
	if err != nil {
		return nil, fmt.Errorf("list %s owners: %w", k, err)
	}
	return owners, nil
}

// ListLinks returns every relationship of a kind with the names of both sides.
func (s *Service) ListLinks(ctx context.Context, kind string) ([]domain.OwnershipView, error) {
	k, err := domain.ParseAssetKind(kind)
	if err != nil {
		return nil, err
	}
	views, err := s.links.ListLinks(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("list %s links: %w", k, err)
	}
	return views, nil
}
