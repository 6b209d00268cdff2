package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// CreateDataStore creates a DataStore and links the given owners to it.
// Every owner must exist; duplicates are collapsed.
func (s *Service) CreateDataStore(ctx context.Context, in CreateDataStoreInput) (*domain.DataStore, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ownerIDs := uniqueIDs(in.OwnerIDs)

	var ds *domain.DataStore
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureOwners(txCtx, ownerIDs); err != nil {
			return fmt.Errorf("check owners: %w", err)
		}

		var createErr error
		ds, createErr = s.datastores.Create(txCtx, &domain.DataStore{
			Name:        domain.NormalizeName(in.Name),
			Technology:  strings.TrimSpace(in.Technology),
			Description: trimOrNil(in.Description),
		})
		if createErr != nil {
			return fmt.Errorf("create datastore: %w", createErr)
		}

		if err := s.linkOwners(txCtx, ownerIDs, ds.ID, domain.AssetKindDataStore); err != nil {
			return fmt.Errorf("link owners: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "datastore created",
		slog.String("datastore_id", ds.ID.String()),
		slog.String("name", ds.Name),
		slog.Int("owners", len(ownerIDs)),
	)
	return ds, nil
}

func (s *Service) GetDataStore(ctx context.Context, id uuid.UUID) (*domain.DataStore, error) {
	ds, err := s.datastores.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get datastore: %w", err)
	}
	return ds, nil
}

func (s *Service) ListDataStores(ctx context.Context, in ListInput) ([]domain.DataStore, error) {
	page, err := s.page(in)
	if err != nil {
		return nil, err
	}
	list, err := s.datastores.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list datastores: %w", err)
	}
	return list, nil
}

func (s *Service) CountDataStores(ctx context.Context) (int, error) {
	n, err := s.datastores.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count datastores: %w", err)
	}
	return n, nil
}

func (s *Service) UpdateDataStore(ctx context.Context, in UpdateDataStoreInput) (*domain.DataStore, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.datastores.Update(ctx, in.ID, domain.DataStoreUpdate{
		Name:        namePatch(in.Name),
		Technology:  trimPatch(in.Technology),
		Description: trimPatch(in.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("update datastore: %w", err)
	}

	s.log.InfoContext(ctx, "datastore updated", slog.String("datastore_id", in.ID.String()))
	return ds, nil
}

// DeleteDataStore removes an empty DataStore and its ownership links.
func (s *Service) DeleteDataStore(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.datastores.GetByID(txCtx, id); err != nil {
			return fmt.Errorf("get datastore: %w", err)
		}
		n, err := s.tables.CountByDataStore(txCtx, id)
		if err != nil {
			return fmt.Errorf("count tables: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("datastore %s has %d tables: %w", id, n, domain.ErrFailedPrecondition)
		}
		if err := s.links.DeleteByAsset(txCtx, id, domain.AssetKindDataStore); err != nil {
			return fmt.Errorf("delete datastore links: %w", err)
		}
		if err := s.datastores.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete datastore: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "datastore deleted", slog.String("datastore_id", id.String()))
	return nil
}

// ListDataStoreTables returns the tables of a DataStore.
func (s *Service) ListDataStoreTables(ctx context.Context, id uuid.UUID) ([]domain.Table, error) {
	if _, err := s.datastores.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get datastore: %w", err)
	}
	tables, err := s.tables.ListByDataStore(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}
