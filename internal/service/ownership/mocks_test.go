package ownership

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

var (
	_ linkRepo     = &memLinks{}
	_ ownerGetter  = &ownerGetterMock{}
	_ assetChecker = &assetCheckerMock{}
	_ txManager    = &txManagerMock{}
)

type ownerGetterMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
}

func (m *ownerGetterMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	if m.GetByIDFunc == nil {
		panic("ownerGetterMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type assetCheckerMock struct {
	ExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *assetCheckerMock) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc == nil {
		panic("assetCheckerMock.ExistsFunc: method is nil but Exists was just called")
	}
	return m.ExistsFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}

// memLinks is an in-memory link store with the same error contract as the
// storage adapters.
type memLinks struct {
	mu    sync.Mutex
	links []domain.OwnershipLink
	names map[uuid.UUID]string
}

func newMemLinks() *memLinks {
	return &memLinks{names: make(map[uuid.UUID]string)}
}

func (m *memLinks) index(ownerID, assetID uuid.UUID, kind domain.AssetKind) int {
	return slices.IndexFunc(m.links, func(l domain.OwnershipLink) bool {
		return l.OwnerID == ownerID && l.AssetID == assetID && l.Kind == kind
	})
}

func (m *memLinks) Link(_ context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index(ownerID, assetID, kind) >= 0 {
		return nil, fmt.Errorf("%s owner link: %w", kind, domain.ErrAlreadyExists)
	}
	l := domain.OwnershipLink{OwnerID: ownerID, AssetID: assetID, Kind: kind}
	m.links = append(m.links, l)
	return &l, nil
}

func (m *memLinks) Unlink(_ context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(ownerID, assetID, kind)
	if i < 0 {
		return fmt.Errorf("%s owner link: %w", kind, domain.ErrNotFound)
	}
	m.links = slices.Delete(m.links, i, i+1)
	return nil
}

func (m *memLinks) ListAssets(_ context.Context, ownerID uuid.UUID, kind domain.AssetKind) ([]domain.AssetSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.AssetSummary{}
	for _, l := range m.links {
		if l.OwnerID == ownerID && l.Kind == kind {
			out = append(out, domain.AssetSummary{ID: l.AssetID, Name: m.names[l.AssetID], Kind: kind})
		}
	}
	return out, nil
}

func (m *memLinks) ListOwners(_ context.Context, assetID uuid.UUID, kind domain.AssetKind) ([]domain.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Owner{}
	for _, l := range m.links {
		if l.AssetID == assetID && l.Kind == kind {
			out = append(out, domain.Owner{ID: l.OwnerID, Name: m.names[l.OwnerID]})
		}
	}
	return out, nil
}

func (m *memLinks) ListLinks(_ context.Context, kind domain.AssetKind) ([]domain.OwnershipView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.OwnershipView{}
	for _, l := range m.links {
		if l.Kind == kind {
			out = append(out, domain.OwnershipView{
				OwnerID: l.OwnerID, OwnerName: m.names[l.OwnerID],
				AssetID: l.AssetID, AssetName: m.names[l.AssetID],
				Kind: kind,
			})
		}
	}
	return out, nil
}
