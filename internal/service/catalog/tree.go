package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// DataStoreTree returns every DataStore that has at least one table, with
// its tables and their columns nested in insertion order.
func (s *Service) DataStoreTree(ctx context.Context) ([]domain.DataStoreTree, error) {
	stores, err := s.datastores.List(ctx, domain.Page{})
	if err != nil {
		return nil, fmt.Errorf("list datastores: %w", err)
	}
	tables, err := s.tables.List(ctx, domain.Page{})
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	columns, err := s.columns.List(ctx, domain.Page{})
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	colsByTable := make(map[uuid.UUID][]domain.Column, len(tables))
	for _, c := range columns {
		colsByTable[c.TableID] = append(colsByTable[c.TableID], c)
	}

	tablesByStore := make(map[uuid.UUID][]domain.TableWithColumns, len(stores))
	for _, t := range tables {
		cols := colsByTable[t.ID]
		if cols == nil {
			cols = []domain.Column{}
		}
		tablesByStore[t.DataStoreID] = append(tablesByStore[t.DataStoreID], domain.TableWithColumns{
			Table:   t,
			Columns: cols,
		})
	}

	tree := make([]domain.DataStoreTree, 0, len(stores))
	for _, ds := range stores {
		ts := tablesByStore[ds.ID]
		if len(ts) == 0 {
			continue
		}
		tree = append(tree, domain.DataStoreTree{DataStore: ds, Tables: ts})
	}
	if len(tree) == 0 {
		return nil, fmt.Errorf("no datastore has tables: %w", domain.ErrNotFound)
	}
	return tree, nil
}
