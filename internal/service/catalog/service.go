// Package catalog implements the entity store rules of the metadata catalog:
// CRUD for every entity kind, parent/child integrity, and owner links made at
// asset creation.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type crudRepo[T, U any] interface {
	Create(ctx context.Context, v *T) (*T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, page domain.Page) ([]T, error)
	Update(ctx context.Context, id uuid.UUID, u U) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type ownerRepo interface {
	crudRepo[domain.Owner, domain.OwnerUpdate]
}

type userRepo interface {
	crudRepo[domain.User, domain.UserUpdate]
}

type dataStoreRepo interface {
	crudRepo[domain.DataStore, domain.DataStoreUpdate]
}

type tableRepo interface {
	crudRepo[domain.Table, domain.TableUpdate]
	ListByDataStore(ctx context.Context, datastoreID uuid.UUID) ([]domain.Table, error)
	CountByDataStore(ctx context.Context, datastoreID uuid.UUID) (int, error)
}

type columnRepo interface {
	crudRepo[domain.Column, domain.ColumnUpdate]
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]domain.Column, error)
	CountByTable(ctx context.Context, tableID uuid.UUID) (int, error)
}

type streamTopicRepo interface {
	crudRepo[domain.StreamTopic, domain.StreamTopicUpdate]
}

type streamColumnRepo interface {
	crudRepo[domain.StreamColumn, domain.StreamColumnUpdate]
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.StreamColumn, error)
	CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error)
}

type accessCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type linkRepo interface {
	Link(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	DeleteByAsset(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repos groups the storage dependencies of the catalog service.
type Repos struct {
	Owners        ownerRepo
	Users         userRepo
	DataStores    dataStoreRepo
	Tables        tableRepo
	Columns       columnRepo
	StreamTopics  streamTopicRepo
	StreamColumns streamColumnRepo
	AccessRecords accessCounter
	Links         linkRepo
}

// Service provides catalog entity operations.
type Service struct {
	owners        ownerRepo
	users         userRepo
	datastores    dataStoreRepo
	tables        tableRepo
	columns       columnRepo
	topics        streamTopicRepo
	streamColumns streamColumnRepo
	access        accessCounter
	links         linkRepo
	tx            txManager
	limits        domain.PageLimits
	log           *slog.Logger
}

// NewService creates a new catalog service.
func NewService(log *slog.Logger, repos Repos, tx txManager, limits domain.PageLimits) *Service {
	return &Service{
		owners:        repos.Owners,
		users:         repos.Users,
		datastores:    repos.DataStores,
		tables:        repos.Tables,
		columns:       repos.Columns,
		topics:        repos.StreamTopics,
		streamColumns: repos.StreamColumns,
		access:        repos.AccessRecords,
		links:         repos.Links,
		tx:            tx,
		limits:        limits,
		log:           log.With("service", "catalog"),
	}
}

// ListInput selects a page of records. All ignores Limit and Offset.
type ListInput struct {
	All    bool
	Limit  *int
	Offset *int
}

func (s *Service) page(in ListInput) (domain.Page, error) {
	if in.All {
		return domain.Page{}, nil
	}
	return s.limits.Page(in.Limit, in.Offset)
}

// ensureOwners checks that every owner exists.
func (s *Service) ensureOwners(ctx context.Context, ownerIDs []uuid.UUID) error {
	for _, id := range ownerIDs {
		if _, err := s.owners.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) linkOwners(ctx context.Context, ownerIDs []uuid.UUID, assetID uuid.UUID, kind domain.AssetKind) error {
	for _, ownerID := range ownerIDs {
		if _, err := s.links.Link(ctx, ownerID, assetID, kind); err != nil {
			return err
		}
	}
	return nil
}

// uniqueIDs drops duplicates, keeping first occurrence order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
