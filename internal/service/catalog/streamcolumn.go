package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateStreamColumn creates a column under an existing stream topic.
func (s *Service) CreateStreamColumn(ctx context.Context, in CreateStreamColumnInput) (*domain.StreamColumn, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var col *domain.StreamColumn
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.topics.GetByID(txCtx, in.TopicID); err != nil {
			return fmt.Errorf("get stream topic: %w", err)
		}
		var createErr error
		col, createErr = s.streamColumns.Create(txCtx, &domain.StreamColumn{
			TopicID:     in.TopicID,
			Name:        domain.NormalizeName(in.Name),
			DataType:    strings.TrimSpace(in.DataType),
			Description: trimOrNil(in.Description),
		})
		if createErr != nil {
			return fmt.Errorf("create stream column: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stream column created",
		slog.String("column_id", col.ID.String()),
		slog.String("topic_id", col.TopicID.String()),
	)
	return col, nil
}

func (s *Service) GetStreamColumn(ctx context.Context, id uuid.UUID) (*domain.StreamColumn, error) {
	col, err := s.streamColumns.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get stream column: %w", err)
	}
	return col, nil
}

func (s *Service) ListStreamColumns(ctx context.Context, in ListInput) ([]domain.StreamColumn, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	list, err := s.streamColumns.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list stream columns: %w", err)
	}
	return list, nil
}

func (s *Service) CountStreamColumns(ctx context.Context) (int, error) {
	n, err := s.streamColumns.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stream columns: %w", err)
	}
	return n, nil
}

func (s *Service) UpdateStreamColumn(ctx context.Context, in UpdateStreamColumnInput) (*domain.StreamColumn, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var col *domain.StreamColumn
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.streamColumns.GetByID(txCtx, in.ID); err != nil {
			return fmt.Errorf("get stream column: %w", err)
		}
		if in.TopicID != nil {
			if _, err := s.topics.GetByID(txCtx, *in.TopicID); err != nil {
				return fmt.Errorf("get stream topic: %w", err)
			}
		}

		var updateErr error
		col, updateErr = s.streamColumns.Update(txCtx, in.ID, domain.StreamColumnUpdate{
			TopicID:     in.TopicID,
			Name:        namePatch(in.Name),
			DataType:    trimPatch(in.DataType),
			Description: trimPatch(in.Description),
		})
		if updateErr != nil {
			return fmt.Errorf("update stream column: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stream column updated", slog.String("column_id", in.ID.String()))
	return col, nil
}

// ReassignStreamColumn moves a stream column to another topic.
func (s *Service) ReassignStreamColumn(ctx context.Context, columnID, topicID uuid.UUID) (*domain.StreamColumn, error) {
	return s.UpdateStreamColumn(ctx, UpdateStreamColumnInput{ID: columnID, TopicID: &topicID})
}

func (s *Service) DeleteStreamColumn(ctx context.Context, id uuid.UUID) error {
	if err := s.streamColumns.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete stream column: %w", err)
	}
	s.log.InfoContext(ctx, "stream column deleted", slog.String("column_id", id.String()))
	return nil
}
