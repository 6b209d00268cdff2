// Package query implements filtered, sorted lookups over the ownable entity
// kinds and owners.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type finder[T any] interface {
	Find(ctx context.Context, q domain.Query) ([]T, error)
}

// Finders groups the searchable repositories.
type Finders struct {
	Owners       finder[domain.Owner]
	DataStores   finder[domain.DataStore]
	Tables       finder[domain.Table]
	StreamTopics finder[domain.StreamTopic]
}

// Service answers filter queries. Only whitelisted fields can be filtered
// or sorted on.
type Service struct {
	finders Finders
	log     *slog.Logger
}

// NewService creates a new query service.
func NewService(log *slog.Logger, finders Finders) *Service {
	return &Service{
		finders: finders,
		log:     log.With("service", "query"),
	}
}

// Params is a raw filter request. Filters are ANDed; blank values are ignored.
type Params struct {
	Filters []domain.Match
	SortBy  string
	Order   string
}

func (s *Service) FindOwners(ctx context.Context, p Params) ([]domain.Owner, error) {
	return find(ctx, s.finders.Owners, domain.OwnerFields, "owners", p)
}

func (s *Service) FindDataStores(ctx context.Context, p Params) ([]domain.DataStore, error) {
	return find(ctx, s.finders.DataStores, domain.DataStoreFields, "datastores", p)
}

func (s *Service) FindTables(ctx context.Context, p Params) ([]domain.Table, error) {
	return find(ctx, s.finders.Tables, domain.TableFields, "tables", p)
}

func (s *Service) FindStreamTopics(ctx context.Context, p Params) ([]domain.StreamTopic, error) {
	return find(ctx, s.finders.StreamTopics, domain.StreamTopicFields, "stream topics", p)
}

func find[T any](ctx context.Context, f finder[T], fields domain.FieldSet, entity string, p Params) ([]T, error) {
	q, err := buildQuery(fields, p)
	if err != nil {
		return nil, err
	}
	out, err := f.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entity, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s match the filter: %w", entity, domain.ErrNotFound)
	}
	return out, nil
}

// buildQuery validates p against the allowed fields.
func buildQuery(fields domain.FieldSet, p Params) (domain.Query, error) {
	var errs []domain.FieldError
	q := domain.Query{Sort: domain.Sort{Field: domain.DefaultSortField}}

	for _, m := range p.Filters {
		if !fields.CanFilter(m.Field) {
			errs = append(errs, domain.FieldError{Field: m.Field, Message: "filtering is not supported"})
			continue
		}
		if v := strings.TrimSpace(m.Value); v != "" {
			q.Matches = append(q.Matches, domain.Match{Field: m.Field, Value: v})
		}
	}

	if sortBy := strings.TrimSpace(p.SortBy); sortBy != "" {
		if fields.CanSort(sortBy) {
			q.Sort.Field = sortBy
		} else {
			errs = append(errs, domain.FieldError{
				Field:   "sort_by",
				Message: fmt.Sprintf("must be one of %s", strings.Join(fields.Sortable, ", ")),
			})
		}
	}

	switch strings.ToLower(strings.TrimSpace(p.Order)) {
	case "", "asc":
	case "desc":
		q.Sort.Desc = true
	default:
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be asc or desc"})
	}

	if len(errs) > 0 {
		return domain.Query{}, domain.NewValidationErrors(errs)
	}
	return q, nil
}
