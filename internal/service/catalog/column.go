package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateColumn creates a column under an existing table.
func (s *Service) CreateColumn(ctx context.Context, in CreateColumnInput) (*domain.Column, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var col *domain.Column
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tables.GetByID(txCtx, in.TableID); err != nil {
			return fmt.Errorf("get table: %w", err)
		}
		var createErr error
		col, createErr = s.columns.Create(txCtx, &domain.Column{
			TableID:     in.TableID,
			Name:        domain.NormalizeName(in.Name),
			DataType:    strings.TrimSpace(in.DataType),
			Description: trimOrNil(in.Description),
		})
		if createErr != nil {
			return fmt.Errorf("create column: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "column created",
		slog.String("column_id", col.ID.String()),
		slog.String("table_id", col.TableID.String()),
	)
	return col, nil
}

func (s *Service) GetColumn(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	col, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	return col, nil
}

func (s *Service) ListColumns(ctx context.Context, in ListInput) ([]domain.Column, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	list, err := s.columns.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return list, nil
}

func (s *Service) CountColumns(ctx context.Context) (int, error) {
	n, err := s.columns.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count columns: %w", err)
	}
	return n, nil
}

func (s *Service) UpdateColumn(ctx context.Context, in UpdateColumnInput) (*domain.Column, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var col *domain.Column
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.columns.GetByID(txCtx, in.ID); err != nil {
			return fmt.Errorf("get column: %w", err)
		}
		if in.TableID != nil {
			if _, err := s.tables.GetByID(txCtx, *in.TableID); err != nil {
				return fmt.Errorf("get table: %w", err)
			}
		}

		var updateErr error
		col, updateErr = s.columns.Update(txCtx, in.ID, domain.ColumnUpdate{
			TableID:     in.TableID,
			Name:        namePatch(in.Name),
			DataType:    trimPatch(in.DataType),
			Description: trimPatch(in.Description),
		})
		if updateErr != nil {
			return fmt.Errorf("update column: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "column updated", slog.String("column_id", in.ID.String()))
	return col, nil
}

// ReassignColumn moves a column to another table.
func (s *Service) ReassignColumn(ctx context.Context, columnID, tableID uuid.UUID) (*domain.Column, error) {
	return s.UpdateColumn(ctx, UpdateColumnInput{ID: columnID, TableID: &tableID})
}

func (s *Service) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	if err := s.columns.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	s.log.InfoContext(ctx, "column deleted", slog.String("column_id", id.String()))
	return nil
}
