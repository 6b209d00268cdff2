package ownership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// Link records that an owner owns an asset. Both sides must exist and the
// link must be new.
func (s *Service) Link(ctx context.Context, in LinkInput) (*domain.OwnershipLink, error) {
	kind, err := in.Validate()
	if err != nil {
		return nil, err
	}

	var link *domain.OwnershipLink
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.owners.GetByID(txCtx, in.OwnerID); err != nil {
			return fmt.Errorf("get owner: %w", err)
		}
		if err := s.ensureAsset(txCtx, kind, in.AssetID); err != nil {
			return err
		}

		var linkErr error
		link, linkErr = s.links.Link(txCtx, in.OwnerID, in.AssetID, kind)
		if linkErr != nil {
			return fmt.Errorf("link %s: %w", kind, linkErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "owner linked",
		slog.String("owner_id", in.OwnerID.String()),
		slog.String("asset_id", in.AssetID.String()),
		slog.String("kind", kind.String()),
	)
	return link, nil
}

// Unlink removes an existing relationship.
func (s *Service) Unlink(ctx context.Context, in LinkInput) error {
	kind, err := in.Validate()
	if err != nil {
		return err
	}

	if err := s.links.Unlink(ctx, in.OwnerID, in.AssetID, kind); err != nil {
		return fmt.Errorf("unlink %s: %w", kind, err)
	}

	s.log.InfoContext(ctx, "owner unlinked",
		slog.String("owner_id", in.OwnerID.String()),
		slog.String("asset_id", in.AssetID.String()),
		slog.String("kind", kind.String()),
	)
	return nil
}

func (s *Service) ensureAsset(ctx context.Context, kind domain.AssetKind, id uuid.UUID) error {
	ok, err := s.assets[kind].Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s: %w", kind, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
