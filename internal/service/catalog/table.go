package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateTable creates a Table under an existing DataStore and links the
// given owners to it.
func (s *Service) CreateTable(ctx context.Context, in CreateTableInput) (*domain.Table, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ownerIDs := uniqueIDs(in.OwnerIDs)

	var t *domain.Table
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.datastores.GetByID(txCtx, in.DataStoreID); err != nil {
			return fmt.Errorf("get datastore: %w", err)
		}
		if err := s.ensureOwners(txCtx, ownerIDs); err != nil {
			return fmt.Errorf("check owners: %w", err)
		}

		var createErr error
		t, createErr = s.tables.Create(txCtx, &domain.Table{
			DataStoreID:    in.DataStoreID,
			Name:           domain.NormalizeName(in.Name),
			Description:    trimOrNil(in.Description),
			LifecycleState: trimOrNil(in.LifecycleState),
			QualityGrade:   trimOrNil(in.QualityGrade),
			Compliant:      in.Compliant,
		})
		if createErr != nil {
			return fmt.Errorf("create table: %w", createErr)
		}

		if err := s.linkOwners(txCtx, ownerIDs, t.ID, domain.AssetKindTable); err != nil {
			return fmt.Errorf("link owners: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "table created",
		slog.String("table_id", t.ID.String()),
		slog.String("datastore_id", t.DataStoreID.String()),
		slog.String("name", t.Name),
	)
	return t, nil
}

func (s *Service) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	t, err := s.tables.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	return t, nil
}

func (s *Service) ListTables(ctx context.Context, in ListInput) ([]domain.Table, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	list, err := s.tables.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return list, nil
}

func (s *Service) CountTables(ctx context.Context) (int, error) {
	n, err := s.tables.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return n, nil
}

// UpdateTable applies a partial update. A new DataStoreID must reference an
// existing DataStore.
func (s *Service) UpdateTable(ctx context.Context, in UpdateTableInput) (*domain.Table, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var t *domain.Table
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tables.GetByID(txCtx, in.ID); err != nil {
			return fmt.Errorf("get table: %w", err)
		}
		if in.DataStoreID != nil {
			if _, err := s.datastores.GetByID(txCtx, *in.DataStoreID); err != nil {
				return fmt.Errorf("get datastore: %w", err)
			}
		}

		var updateErr error
		t, updateErr = s.tables.Update(txCtx, in.ID, domain.TableUpdate{
			DataStoreID:    in.DataStoreID,
			Name:           namePatch(in.Name),
			Description:    trimPatch(in.Description),
			LifecycleState: trimPatch(in.LifecycleState),
			QualityGrade:   trimPatch(in.QualityGrade),
			Compliant:      in.Compliant,
		})
		if updateErr != nil {
			return fmt.Errorf("update table: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "table updated", slog.String("table_id", in.ID.String()))
	return t, nil
}

// ReassignTable moves a table to another DataStore.
func (s *Service) ReassignTable(ctx context.Context, tableID, datastoreID uuid.UUID) (*domain.Table, error) {
	return s.UpdateTable(ctx, UpdateTableInput{ID: tableID, DataStoreID: &datastoreID})
}

// DeleteTable removes a table without columns and its ownership links.
func (s *Service) DeleteTable(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tables.GetByID(txCtx, id); err != nil {
			return fmt.Errorf("get table: %w", err)
		}
		n, err := s.columns.CountByTable(txCtx, id)
		if err != nil {
			return fmt.Errorf("count columns: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("table %s has %d columns: %w", id, n, domain.ErrFailedPrecondition)
		}
		if err := s.links.DeleteByAsset(txCtx, id, domain.AssetKindTable); err != nil {
			return fmt.Errorf("delete table links: %w", err)
		}
		if err := s.tables.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete table: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "table deleted", slog.String("table_id", id.String()))
	return nil
}

// ListTableColumns returns the columns of a table.
func (s *Service) ListTableColumns(ctx context.Context, id uuid.UUID) ([]domain.Column, error) {
	if _, err := s.tables.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	cols, err := s.columns.ListByTable(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return cols, nil
}
