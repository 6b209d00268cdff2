package access

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

var (
	_ recordRepo = &recordRepoMock{}
	_ userGetter = &userGetterMock{}
	_ txManager  = &txManagerMock{}
)

type recordRepoMock struct {
	CreateFunc      func(ctx context.Context, rec *domain.AccessRecord) (*domain.AccessRecord, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error)
	ListFunc        func(ctx context.Context, page domain.Page) ([]domain.AccessRecord, error)
	ListByRangeFunc func(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.AccessRecord, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, u domain.AccessRecordUpdate) (*domain.AccessRecord, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	CountFunc       func(ctx context.Context) (int, error)

	calls struct {
		Create      []*domain.AccessRecord
		ListByRange []struct {
			Range domain.TimeRange
			Limit int
		}
		Update []domain.AccessRecordUpdate
	}
	lock sync.RWMutex
}

func (m *recordRepoMock) Create(ctx context.Context, rec *domain.AccessRecord) (*domain.AccessRecord, error) {
	if m.CreateFunc == nil {
		panic("recordRepoMock.CreateFunc: method is nil but Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, rec)
	m.lock.Unlock()
	return m.CreateFunc(ctx, rec)
}

func (m *recordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error) {
	if m.GetByIDFunc == nil {
		panic("recordRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *recordRepoMock) List(ctx context.Context, page domain.Page) ([]domain.AccessRecord, error) {
	if m.ListFunc == nil {
		panic("recordRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, page)
}

func (m *recordRepoMock) ListByRange(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.AccessRecord, error) {
	if m.ListByRangeFunc == nil {
		panic("recordRepoMock.ListByRangeFunc: method is nil but ListByRange was just called")
	}
	m.lock.Lock()
	m.calls.ListByRange = append(m.calls.ListByRange, struct {
		Range domain.TimeRange
		Limit int
	}{Range: rng, Limit: limit})
	m.lock.Unlock()
	return m.ListByRangeFunc(ctx, rng, limit)
}

func (m *recordRepoMock) Update(ctx context.Context, id uuid.UUID, u domain.AccessRecordUpdate) (*domain.AccessRecord, error) {
	if m.UpdateFunc == nil {
		panic("recordRepoMock.UpdateFunc: method is nil but Update was just called")
	}
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, u)
	m.lock.Unlock()
	return m.UpdateFunc(ctx, id, u)
}

func (m *recordRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("recordRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *recordRepoMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		panic("recordRepoMock.CountFunc: method is nil but Count was just called")
	}
	return m.CountFunc(ctx)
}

func (m *recordRepoMock) CreateCalls() []*domain.AccessRecord {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *recordRepoMock) ListByRangeCalls() []struct {
	Range domain.TimeRange
	Limit int
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.ListByRange
}

func (m *recordRepoMock) UpdateCalls() []domain.AccessRecordUpdate {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Update
}

type userGetterMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userGetterMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userGetterMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
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
