package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateUser registers a catalog consumer.
func (s *Service) CreateUser(ctx context.Context, in ContactInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:  domain.NormalizeName(in.Name),
		Email: domain.NormalizeEmail(in.Email),
		Role:  trimOrNil(in.Role),
		Phone: trimOrNil(in.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, in ListInput) ([]domain.User, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *Service) UpdateUser(ctx context.Context, in UpdateContactInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, in.ID, domain.UserUpdate{
		Name:  namePatch(in.Name),
		Email: emailPatch(in.Email),
		Role:  trimPatch(in.Role),
		Phone: trimPatch(in.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.InfoContext(ctx, "user updated", slog.String("user_id", in.ID.String()))
	return user, nil
}

// DeleteUser removes a user. Users referenced by access records cannot be
// deleted.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, id); err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		n, err := s.access.CountByUser(txCtx, id)
		if err != nil {
			return fmt.Errorf("count access records: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("user %s has %d access records: %w", id, n, domain.ErrFailedPrecondition)
		}
		if err := s.users.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}
