package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateOwner registers a new owner. Emails are unique case-insensitively.
func (s *Service) CreateOwner(ctx context.Context, in ContactInput) (*domain.Owner, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.owners.Create(ctx, &domain.Owner{
		Name:  domain.NormalizeName(in.Name),
		Email: domain.NormalizeEmail(in.Email),
		Role:  trimOrNil(in.Role),
		Phone: trimOrNil(in.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("create owner: %w", err)
	}

	s.log.InfoContext(ctx, "owner created",
		slog.String("owner_id", owner.ID.String()),
		slog.String("email", owner.Email),
	)
	return owner, nil
}

// GetOwner returns an owner by id.
func (s *Service) GetOwner(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	owner, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	return owner, nil
}

// ListOwners returns owners in insertion order.
func (s *Service) ListOwners(ctx context.Context, in ListInput) ([]domain.Owner, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	owners, err := s.owners.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

// CountOwners returns the number of owners.
func (s *Service) CountOwners(ctx context.Context) (int, error) {
	n, err := s.owners.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count owners: %w", err)
	}
	return n, nil
}

// UpdateOwner applies a partial update.
func (s *Service) UpdateOwner(ctx context.Context, in UpdateContactInput) (*domain.Owner, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.owners.Update(ctx, in.ID, domain.OwnerUpdate{
		Name:  namePatch(in.Name),
		Email: emailPatch(in.Email),
		Role:  trimPatch(in.Role),
		Phone: trimPatch(in.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("update owner: %w", err)
	}

	s.log.InfoContext(ctx, "owner updated", slog.String("owner_id", in.ID.String()))
	return owner, nil
}

// DeleteOwner removes an owner together with all of its ownership links.
func (s *Service) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.links.DeleteByOwner(txCtx, id); err != nil {
			return fmt.Errorf("delete owner links: %w", err)
		}
		if err := s.owners.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "owner deleted", slog.String("owner_id", id.String()))
	return nil
}
