package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// Create records an access request. The user must exist; the asset name is
// free text. An identical (user, asset, time) entry is a conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.AccessRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var rec *domain.AccessRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, in.UserID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var createErr error
		rec, createErr = s.records.Create(txCtx, &domain.AccessRecord{
			UserID:      in.UserID,
			AssetName:   strings.TrimSpace(in.AssetName),
			RequestedAt: domain.NormalizeTimestamp(in.RequestedAt),
			Purpose:     strings.TrimSpace(in.Purpose),
			Permissions: normalizePermissions(in.Permissions),
			Status:      trimOrNil(in.Status),
		})
		if createErr != nil {
			return fmt.Errorf("create access record: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "access record created",
		slog.String("record_id", rec.ID.String()),
		slog.String("user_id", rec.UserID.String()),
		slog.String("asset", rec.AssetName),
	)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get access record: %w", err)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, in ListInput) ([]domain.AccessRecord, error) {
	var page domain.Page
	if !in.All {
		var err error
		if page, err = s.cfg.Pages.Page(in.Limit, in.Offset); err != nil {
			return nil, err
		}
	}
	list, err := s.records.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list access records: %w", err)
	}
	return list, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.records.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count access records: %w", err)
	}
	return n, nil
}

// Update applies a partial update. A new UserID must reference an existing
// user.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.AccessRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u := domain.AccessRecordUpdate{
		UserID: in.UserID,
		Status: trimPatch(in.Status),
	}
	if in.AssetName != nil {
		v := strings.TrimSpace(*in.AssetName)
		u.AssetName = &v
	}
	if in.Purpose != nil {
		v := strings.TrimSpace(*in.Purpose)
		u.Purpose = &v
	}
	if in.RequestedAt != nil {
		v := domain.NormalizeTimestamp(*in.RequestedAt)
		u.RequestedAt = &v
	}
	if in.Permissions != nil {
		u.Permissions = normalizePermissions(in.Permissions)
	}

	var rec *domain.AccessRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if in.UserID != nil {
			if _, err := s.users.GetByID(txCtx, *in.UserID); err != nil {
				return fmt.Errorf("get user: %w", err)
			}
		}
		var updateErr error
		rec, updateErr = s.records.Update(txCtx, in.ID, u)
		if updateErr != nil {
			return fmt.Errorf("update access record: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "access record updated", slog.String("record_id", in.ID.String()))
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete access record: %w", err)
	}
	s.log.InfoContext(ctx, "access record deleted", slog.String("record_id", id.String()))
	return nil
}

// Filter returns records inside the date or year window ordered by request
// time, capped at the configured filter limit.
func (s *Service) Filter(ctx context.Context, f DateFilter) ([]domain.AccessRecord, error) {
	rng, err := f.Range()
	if err != nil {
		return nil, err
	}

	list, err := s.records.ListByRange(ctx, rng, s.cfg.FilterLimit)
	if err != nil {
		return nil, fmt.Errorf("filter access records: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no access records in range: %w", domain.ErrNotFound)
	}
	return list, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimPatch(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
