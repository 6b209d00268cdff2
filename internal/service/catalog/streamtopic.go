package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateStreamTopic creates a topic and links the given owners to it.
func (s *Service) CreateStreamTopic(ctx context.Context, in CreateStreamTopicInput) (*domain.StreamTopic, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ownerIDs := uniqueIDs(in.OwnerIDs)

	var st *domain.StreamTopic
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureOwners(txCtx, ownerIDs); err != nil {
			return fmt.Errorf("check owners: %w", err)
		}

		var createErr error
		st, createErr = s.topics.Create(txCtx, &domain.StreamTopic{
			Name:           domain.NormalizeName(in.Name),
			Description:    trimOrNil(in.Description),
			LifecycleState: trimOrNil(in.LifecycleState),
			Compliant:      in.Compliant,
		})
		if createErr != nil {
			return fmt.Errorf("create stream topic: %w", createErr)
		}

		if err := s.linkOwners(txCtx, ownerIDs, st.ID, domain.AssetKindStreamTopic); err != nil {
			return fmt.Errorf("link owners: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stream topic created",
		slog.String("topic_id", st.ID.String()),
		slog.String("name", st.Name),
		slog.Int("owners", len(ownerIDs)),
	)
	return st, nil
}

func (s *Service) GetStreamTopic(ctx context.Context, id uuid.UUID) (*domain.StreamTopic, error) {
	st, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get stream topic: %w", err)
	}
	return st, nil
}

func (s *Service) ListStreamTopics(ctx context.Context, in ListInput) ([]domain.StreamTopic, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	list, err := s.topics.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list stream topics: %w", err)
	}
	return list, nil
}

func (s *Service) CountStreamTopics(ctx context.Context) (int, error) {
	n, err := s.topics.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stream topics: %w", err)
	}
	return n, nil
}

func (s *Service) UpdateStreamTopic(ctx context.Context, in UpdateStreamTopicInput) (*domain.StreamTopic, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	st, err := s.topics.Update(ctx, in.ID, domain.StreamTopicUpdate{
		Name:           namePatch(in.Name),
		Description:    trimPatch(in.Description),
		LifecycleState: trimPatch(in.LifecycleState),
		Compliant:      in.Compliant,
	})
	if err != nil {
		return nil, fmt.Errorf("update stream topic: %w", err)
	}

	s.log.InfoContext(ctx, "stream topic updated", slog.String("topic_id", in.ID.String()))
	return st, nil
}

// DeleteStreamTopic removes a topic without columns and its ownership links.
func (s *Service) DeleteStreamTopic(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.topics.GetByID(txCtx, id); err != nil {
			return fmt.Errorf("get stream topic: %w", err)
		}
		n, err := s.streamColumns.CountByTopic(txCtx, id)
		if err != nil {
			return fmt.Errorf("count stream columns: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("stream topic %s has %d columns: %w", id, n, domain.ErrFailedPrecondition)
		}
		if err := s.links.DeleteByAsset(txCtx, id, domain.AssetKindStreamTopic); err != nil {
			return fmt.Errorf("delete stream topic links: %w", err)
		}
		if err := s.topics.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete stream topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "stream topic deleted", slog.String("topic_id", id.String()))
	return nil
}

// ListStreamTopicColumns returns the columns of a topic.
func (s *Service) ListStreamTopicColumns(ctx context.Context, id uuid.UUID) ([]domain.StreamColumn, error) {
	if _, err := s.topics.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get stream topic: %w", err)
	}
	cols, err := s.streamColumns.ListByTopic(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list stream columns: %w", err)
	}
	return cols, nil
}
