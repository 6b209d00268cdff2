package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
	"github.com/infogrid/catalog-backend/internal/service/ownership"
	"github.com/infogrid/catalog-backend/internal/service/query"
)

// ---------------------------------------------------------------------------
// ownerService
// ---------------------------------------------------------------------------

type ownerServiceMock struct {
	CreateOwnerFunc func(ctx context.Context, in catalog.ContactInput) (*domain.Owner, error)
	GetOwnerFunc    func(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
	ListOwnersFunc  func(ctx context.Context, in catalog.ListInput) ([]domain.Owner, error)
	CountOwnersFunc func(ctx context.Context) (int, error)
	UpdateOwnerFunc func(ctx context.Context, in catalog.UpdateContactInput) (*domain.Owner, error)
	DeleteOwnerFunc func(ctx context.Context, id uuid.UUID) error

	mu          sync.RWMutex
	createCalls []catalog.ContactInput
	listCalls   []catalog.ListInput
	updateCalls []catalog.UpdateContactInput
}

func (m *ownerServiceMock) CreateOwner(ctx context.Context, in catalog.ContactInput) (*domain.Owner, error) {
	if m.CreateOwnerFunc == nil {
		panic("ownerServiceMock.CreateOwnerFunc: method is nil but CreateOwner was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, in)
	m.mu.Unlock()
	return m.CreateOwnerFunc(ctx, in)
}

func (m *ownerServiceMock) CreateOwnerCalls() []catalog.ContactInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

func (m *ownerServiceMock) GetOwner(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	if m.GetOwnerFunc == nil {
		panic("ownerServiceMock.GetOwnerFunc: method is nil but GetOwner was just called")
	}
	return m.GetOwnerFunc(ctx, id)
}

func (m *ownerServiceMock) ListOwners(ctx context.Context, in catalog.ListInput) ([]domain.Owner, error) {
	if m.ListOwnersFunc == nil {
		panic("ownerServiceMock.ListOwnersFunc: method is nil but ListOwners was just called")
	}
	m.mu.Lock()
	m.listCalls = append(m.listCalls, in)
	m.mu.Unlock()
	return m.ListOwnersFunc(ctx, in)
}

func (m *ownerServiceMock) ListOwnersCalls() []catalog.ListInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCalls
}

func (m *ownerServiceMock) CountOwners(ctx context.Context) (int, error) {
	if m.CountOwnersFunc == nil {
		panic("ownerServiceMock.CountOwnersFunc: method is nil but CountOwners was just called")
	}
	return m.CountOwnersFunc(ctx)
}

func (m *ownerServiceMock) UpdateOwner(ctx context.Context, in catalog.UpdateContactInput) (*domain.Owner, error) {
	if m.UpdateOwnerFunc == nil {
		panic("ownerServiceMock.UpdateOwnerFunc: method is nil but UpdateOwner was just called")
	}
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, in)
	m.mu.Unlock()
	return m.UpdateOwnerFunc(ctx, in)
}

func (m *ownerServiceMock) UpdateOwnerCalls() []catalog.UpdateContactInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

func (m *ownerServiceMock) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	if m.DeleteOwnerFunc == nil {
		panic("ownerServiceMock.DeleteOwnerFunc: method is nil but DeleteOwner was just called")
	}
	return m.DeleteOwnerFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// tableService
// ---------------------------------------------------------------------------

type tableServiceMock struct {
	CreateTableFunc      func(ctx context.Context, in catalog.CreateTableInput) (*domain.Table, error)
	GetTableFunc         func(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	ListTablesFunc       func(ctx context.Context, in catalog.ListInput) ([]domain.Table, error)
	CountTablesFunc      func(ctx context.Context) (int, error)
	UpdateTableFunc      func(ctx context.Context, in catalog.UpdateTableInput) (*domain.Table, error)
	ReassignTableFunc    func(ctx context.Context, tableID, datastoreID uuid.UUID) (*domain.Table, error)
	DeleteTableFunc      func(ctx context.Context, id uuid.UUID) error
	ListTableColumnsFunc func(ctx context.Context, id uuid.UUID) ([]domain.Column, error)
}

func (m *tableServiceMock) CreateTable(ctx context.Context, in catalog.CreateTableInput) (*domain.Table, error) {
	if m.CreateTableFunc == nil {
		panic("tableServiceMock.CreateTableFunc: method is nil but CreateTable was just called")
	}
	return m.CreateTableFunc(ctx, in)
}

func (m *tableServiceMock) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	if m.GetTableFunc == nil {
		panic("tableServiceMock.GetTableFunc: method is nil but GetTable was just called")
	}
	return m.GetTableFunc(ctx, id)
}

func (m *tableServiceMock) ListTables(ctx context.Context, in catalog.ListInput) ([]domain.Table, error) {
	if m.ListTablesFunc == nil {
		panic("tableServiceMock.ListTablesFunc: method is nil but ListTables was just called")
	}
	return m.ListTablesFunc(ctx, in)
}

func (m *tableServiceMock) CountTables(ctx context.Context) (int, error) {
	if m.CountTablesFunc == nil {
		panic("tableServiceMock.CountTablesFunc: method is nil but CountTables was just called")
	}
	return m.CountTablesFunc(ctx)
}

func (m *tableServiceMock) UpdateTable(ctx context.Context, in catalog.UpdateTableInput) (*domain.Table, error) {
	if m.UpdateTableFunc == nil {
		panic("tableServiceMock.UpdateTableFunc: method is nil but UpdateTable was just called")
	}
	return m.UpdateTableFunc(ctx, in)
}

func (m *tableServiceMock) ReassignTable(ctx context.Context, tableID, datastoreID uuid.UUID) (*domain.Table, error) {
	if m.ReassignTableFunc == nil {
		panic("tableServiceMock.ReassignTableFunc: method is nil but ReassignTable was just called")
	}
	return m.ReassignTableFunc(ctx, tableID, datastoreID)
}

func (m *tableServiceMock) DeleteTable(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTableFunc == nil {
		panic("tableServiceMock.DeleteTableFunc: method is nil but DeleteTable was just called")
	}
	return m.DeleteTableFunc(ctx, id)
}

func (m *tableServiceMock) ListTableColumns(ctx context.Context, id uuid.UUID) ([]domain.Column, error) {
	if m.ListTableColumnsFunc == nil {
		panic("tableServiceMock.ListTableColumnsFunc: method is nil but ListTableColumns was just called")
	}
	return m.ListTableColumnsFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// ownershipService
// ---------------------------------------------------------------------------

type ownershipServiceMock struct {
	LinkFunc               func(ctx context.Context, in ownership.LinkInput) (*domain.OwnershipLink, error)
	UnlinkFunc             func(ctx context.Context, in ownership.LinkInput) error
	ListAssetsForOwnerFunc func(ctx context.Context, ownerID uuid.UUID, kind string) ([]domain.AssetSummary, error)
	ListOwnersForAssetFunc func(ctx context.Context, kind string, assetID uuid.UUID) ([]domain.Owner, error)
	ListLinksFunc          func(ctx context.Context, kind string) ([]domain.OwnershipView, error)
}

func (m *ownershipServiceMock) Link(ctx context.Context, in ownership.LinkInput) (*domain.OwnershipLink, error) {
	if m.LinkFunc == nil {
		panic("ownershipServiceMock.LinkFunc: method is nil but Link was just called")
	}
	return m.LinkFunc(ctx, in)
}

func (m *ownershipServiceMock) Unlink(ctx context.Context, in ownership.LinkInput) error {
	if m.UnlinkFunc == nil {
		panic("ownershipServiceMock.UnlinkFunc: method is nil but Unlink was just called")
	}
	return m.UnlinkFunc(ctx, in)
}

func (m *ownershipServiceMock) ListAssetsForOwner(ctx context.Context, ownerID uuid.UUID, kind string) ([]domain.AssetSummary, error) {
	if m.ListAssetsForOwnerFunc == nil {
		panic("ownershipServiceMock.ListAssetsForOwnerFunc: method is nil but ListAssetsForOwner was just called")
	}
	return m.ListAssetsForOwnerFunc(ctx, ownerID, kind)
}

func (m *ownershipServiceMock) ListOwnersForAsset(ctx context.Context, kind string, assetID uuid.UUID) ([]domain.Owner, error) {
	if m.ListOwnersForAssetFunc == nil {
		panic("ownershipServiceMock.ListOwnersForAssetFunc: method is nil but ListOwnersForAsset was just called")
	}
	return m.ListOwnersForAssetFunc(ctx, kind, assetID)
}

func (m *ownershipServiceMock) ListLinks(ctx context.Context, kind string) ([]domain.OwnershipView, error) {
	if m.ListLinksFunc == nil {
		panic("ownershipServiceMock.ListLinksFunc: method is nil but ListLinks was just called")
	}
	return m.ListLinksFunc(ctx, kind)
}

// ---------------------------------------------------------------------------
// queryService
// ---------------------------------------------------------------------------

type queryServiceMock struct {
	FindOwnersFunc       func(ctx context.Context, p query.Params) ([]domain.Owner, error)
	FindDataStoresFunc   func(ctx context.Context, p query.Params) ([]domain.DataStore, error)
	FindTablesFunc       func(ctx context.Context, p query.Params) ([]domain.Table, error)
	FindStreamTopicsFunc func(ctx context.Context, p query.Params) ([]domain.StreamTopic, error)
}

func (m *queryServiceMock) FindOwners(ctx context.Context, p query.Params) ([]domain.Owner, error) {
	if m.FindOwnersFunc == nil {
		panic("queryServiceMock.FindOwnersFunc: method is nil but FindOwners was just called")
	}
	return m.FindOwnersFunc(ctx, p)
}

func (m *queryServiceMock) FindDataStores(ctx context.Context, p query.Params) ([]domain.DataStore, error) {
	if m.FindDataStoresFunc == nil {
		panic("queryServiceMock.FindDataStoresFunc: method is nil but FindDataStores was just called")
	}
	return m.FindDataStoresFunc(ctx, p)
}

func (m *queryServiceMock) FindTables(ctx context.Context, p query.Params) ([]domain.Table, error) {
	if m.FindTablesFunc == nil {
		panic("queryServiceMock.FindTablesFunc: method is nil but FindTables was just called")
	}
	return m.FindTablesFunc(ctx, p)
}

func (m *queryServiceMock) FindStreamTopics(ctx context.Context, p query.Params) ([]domain.StreamTopic, error) {
	if m.FindStreamTopicsFunc == nil {
		panic("queryServiceMock.FindStreamTopicsFunc: method is nil but FindStreamTopics was just called")
	}
	return m.FindStreamTopicsFunc(ctx, p)
}

// ---------------------------------------------------------------------------
// accessService
// ---------------------------------------------------------------------------

type accessServiceMock struct {
	CreateFunc func(ctx context.Context, in access.CreateInput) (*domain.AccessRecord, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error)
	ListFunc   func(ctx context.Context, in access.ListInput) ([]domain.AccessRecord, error)
	CountFunc  func(ctx context.Context) (int, error)
	UpdateFunc func(ctx context.Context, in access.UpdateInput) (*domain.AccessRecord, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
	FilterFunc func(ctx context.Context, f access.DateFilter) ([]domain.AccessRecord, error)
}

func (m *accessServiceMock) Create(ctx context.Context, in access.CreateInput) (*domain.AccessRecord, error) {
	if m.CreateFunc == nil {
		panic("accessServiceMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, in)
}

func (m *accessServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error) {
	if m.GetFunc == nil {
		panic("accessServiceMock.GetFunc: method is nil but Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *accessServiceMock) List(ctx context.Context, in access.ListInput) ([]domain.AccessRecord, error) {
	if m.ListFunc == nil {
		panic("accessServiceMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, in)
}

func (m *accessServiceMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		panic("accessServiceMock.CountFunc: method is nil but Count was just called")
	}
	return m.CountFunc(ctx)
}

func (m *accessServiceMock) Update(ctx context.Context, in access.UpdateInput) (*domain.AccessRecord, error) {
	if m.UpdateFunc == nil {
		panic("accessServiceMock.UpdateFunc: method is nil but Update was just called")
	}
	return m.UpdateFunc(ctx, in)
}

func (m *accessServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("accessServiceMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *accessServiceMock) Filter(ctx context.Context, f access.DateFilter) ([]domain.AccessRecord, error) {
	if m.FilterFunc == nil {
		panic("accessServiceMock.FilterFunc: method is nil but Filter was just called")
	}
	return m.FilterFunc(ctx, f)
}
