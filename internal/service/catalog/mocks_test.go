package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

var (
	_ ownerRepo        = &ownerRepoMock{}
	_ userRepo         = &userRepoMock{}
	_ dataStoreRepo    = &dataStoreRepoMock{}
	_ tableRepo        = &tableRepoMock{}
	_ columnRepo       = &columnRepoMock{}
	_ streamTopicRepo  = &streamTopicRepoMock{}
	_ streamColumnRepo = &streamColumnRepoMock{}
	_ accessCounter    = &accessCounterMock{}
	_ linkRepo         = &linkRepoMock{}
	_ txManager        = &txManagerMock{}
)

// crudMock implements crudRepo for any entity. Unset funcs panic when called.
type crudMock[T, U any] struct {
	CreateFunc  func(ctx context.Context, v *T) (*T, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*T, error)
	ListFunc    func(ctx context.Context, page domain.Page) ([]T, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, u U) (*T, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	CountFunc   func(ctx context.Context) (int, error)

	calls struct {
		Create []*T
		Update []struct {
			ID     uuid.UUID
			Update U
		}
		Delete []uuid.UUID
		List   []domain.Page
	}
	lock sync.RWMutex
}

func (m *crudMock[T, U]) Create(ctx context.Context, v *T) (*T, error) {
	if m.CreateFunc == nil {
		panic("crudMock.CreateFunc: method is nil but Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, v)
	m.lock.Unlock()
	return m.CreateFunc(ctx, v)
}

func (m *crudMock[T, U]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if m.GetByIDFunc == nil {
		panic("crudMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *crudMock[T, U]) List(ctx context.Context, page domain.Page) ([]T, error) {
	if m.ListFunc == nil {
		panic("crudMock.ListFunc: method is nil but List was just called")
	}
	m.lock.Lock()
	m.calls.List = append(m.calls.List, page)
	m.lock.Unlock()
	return m.ListFunc(ctx, page)
}

func (m *crudMock[T, U]) Update(ctx context.Context, id uuid.UUID, u U) (*T, error) {
	if m.UpdateFunc == nil {
		panic("crudMock.UpdateFunc: method is nil but Update was just called")
	}
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, struct {
		ID     uuid.UUID
		Update U
	}{ID: id, Update: u})
	m.lock.Unlock()
	return m.UpdateFunc(ctx, id, u)
}

func (m *crudMock[T, U]) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("crudMock.DeleteFunc: method is nil but Delete was just called")
	}
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.lock.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *crudMock[T, U]) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		panic("crudMock.CountFunc: method is nil but Count was just called")
	}
	return m.CountFunc(ctx)
}

func (m *crudMock[T, U]) CreateCalls() []*T {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *crudMock[T, U]) UpdateCalls() []struct {
	ID     uuid.UUID
	Update U
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Update
}

func (m *crudMock[T, U]) DeleteCalls() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Delete
}

func (m *crudMock[T, U]) ListCalls() []domain.Page {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.List
}

type ownerRepoMock struct {
	crudMock[domain.Owner, domain.OwnerUpdate]
}

type userRepoMock struct {
	crudMock[domain.User, domain.UserUpdate]
}

type dataStoreRepoMock struct {
	crudMock[domain.DataStore, domain.DataStoreUpdate]
}

type streamTopicRepoMock struct {
	crudMock[domain.StreamTopic, domain.StreamTopicUpdate]
}

type tableRepoMock struct {
	crudMock[domain.Table, domain.TableUpdate]
	ListByDataStoreFunc  func(ctx context.Context, datastoreID uuid.UUID) ([]domain.Table, error)
	CountByDataStoreFunc func(ctx context.Context, datastoreID uuid.UUID) (int, error)
}

func (m *tableRepoMock) ListByDataStore(ctx context.Context, datastoreID uuid.UUID) ([]domain.Table, error) {
	if m.ListByDataStoreFunc == nil {
		panic("tableRepoMock.ListByDataStoreFunc: method is nil but ListByDataStore was just called")
	}
	return m.ListByDataStoreFunc(ctx, datastoreID)
}

func (m *tableRepoMock) CountByDataStore(ctx context.Context, datastoreID uuid.UUID) (int, error) {
	if m.CountByDataStoreFunc == nil {
		panic("tableRepoMock.CountByDataStoreFunc: method is nil but CountByDataStore was just called")
	}
	return m.CountByDataStoreFunc(ctx, datastoreID)
}

type columnRepoMock struct {
	crudMock[domain.Column, domain.ColumnUpdate]
	ListByTableFunc  func(ctx context.Context, tableID uuid.UUID) ([]domain.Column, error)
	CountByTableFunc func(ctx context.Context, tableID uuid.UUID) (int, error)
}

func (m *columnRepoMock) ListByTable(ctx context.Context, tableID uuid.UUID) ([]domain.Column, error) {
	if m.ListByTableFunc == nil {
		panic("columnRepoMock.ListByTableFunc: method is nil but ListByTable was just called")
	}
	return m.ListByTableFunc(ctx, tableID)
}

func (m *columnRepoMock) CountByTable(ctx context.Context, tableID uuid.UUID) (int, error) {
	if m.CountByTableFunc == nil {
		panic("columnRepoMock.CountByTableFunc: method is nil but CountByTable was just called")
	}
	return m.CountByTableFunc(ctx, tableID)
}

type streamColumnRepoMock struct {
	crudMock[domain.StreamColumn, domain.StreamColumnUpdate]
	ListByTopicFunc  func(ctx context.Context, topicID uuid.UUID) ([]domain.StreamColumn, error)
	CountByTopicFunc func(ctx context.Context, topicID uuid.UUID) (int, error)
}

func (m *streamColumnRepoMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.StreamColumn, error) {
	if m.ListByTopicFunc == nil {
		panic("streamColumnRepoMock.ListByTopicFunc: method is nil but ListByTopic was just called")
	}
	return m.ListByTopicFunc(ctx, topicID)
}

func (m *streamColumnRepoMock) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	if m.CountByTopicFunc == nil {
		panic("streamColumnRepoMock.CountByTopicFunc: method is nil but CountByTopic was just called")
	}
	return m.CountByTopicFunc(ctx, topicID)
}

type accessCounterMock struct {
	CountByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *accessCounterMock) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountByUserFunc == nil {
		panic("accessCounterMock.CountByUserFunc: method is nil but CountByUser was just called")
	}
	return m.CountByUserFunc(ctx, userID)
}

type linkRepoMock struct {
	LinkFunc          func(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error)
	DeleteByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) error
	DeleteByAssetFunc func(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) error

	calls struct {
		Link          []domain.OwnershipLink
		DeleteByOwner []uuid.UUID
		DeleteByAsset []domain.AssetSummary
	}
	lock sync.RWMutex
}

func (m *linkRepoMock) Link(ctx context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error) {
	if m.LinkFunc == nil {
		panic("linkRepoMock.LinkFunc: method is nil but Link was just called")
	}
	m.lock.Lock()
	m.calls.Link = append(m.calls.Link, domain.OwnershipLink{OwnerID: ownerID, AssetID: assetID, Kind: kind})
	m.lock.Unlock()
	return m.LinkFunc(ctx, ownerID, assetID, kind)
}

func (m *linkRepoMock) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if m.DeleteByOwnerFunc == nil {
		panic("linkRepoMock.DeleteByOwnerFunc: method is nil but DeleteByOwner was just called")
	}
	m.lock.Lock()
	m.calls.DeleteByOwner = append(m.calls.DeleteByOwner, ownerID)
	m.lock.Unlock()
	return m.DeleteByOwnerFunc(ctx, ownerID)
}

func (m *linkRepoMock) DeleteByAsset(ctx context.Context, assetID uuid.UUID, kind domain.AssetKind) error {
	if m.DeleteByAssetFunc == nil {
		panic("linkRepoMock.DeleteByAssetFunc: method is nil but DeleteByAsset was just called")
	}
	m.lock.Lock()
	m.calls.DeleteByAsset = append(m.calls.DeleteByAsset, domain.AssetSummary{ID: assetID, Kind: kind})
	m.lock.Unlock()
	return m.DeleteByAssetFunc(ctx, assetID, kind)
}

func (m *linkRepoMock) LinkCalls() []domain.OwnershipLink {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Link
}

func (m *linkRepoMock) DeleteByOwnerCalls() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.DeleteByOwner
}

func (m *linkRepoMock) DeleteByAssetCalls() []domain.AssetSummary {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.DeleteByAsset
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx int
	}
	lock sync.RWMutex
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but RunInTx was just called")
	}
	m.lock.Lock()
	m.calls.RunInTx++
	m.lock.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.RunInTx
}
