package seeder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
	"github.com/infogrid/catalog-backend/internal/service/access"
	"github.com/infogrid/catalog-backend/internal/service/catalog"
)

// catalogWriterFake records every create and hands out fresh ids.
type catalogWriterFake struct {
	mu sync.Mutex

	failOwner string

	owners        []catalog.ContactInput
	users         []catalog.ContactInput
	dataStores    []catalog.CreateDataStoreInput
	tables        []catalog.CreateTableInput
	columns       []catalog.CreateColumnInput
	topics        []catalog.CreateStreamTopicInput
	streamColumns []catalog.CreateStreamColumnInput
}

func (f *catalogWriterFake) CreateOwner(_ context.Context, in catalog.ContactInput) (*domain.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name == f.failOwner {
		return nil, domain.ErrAlreadyExists
	}
	f.owners = append(f.owners, in)
	return &domain.Owner{ID: uuid.New(), Name: in.Name, Email: in.Email}, nil
}

func (f *catalogWriterFake) CreateUser(_ context.Context, in catalog.ContactInput) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, in)
	return &domain.User{ID: uuid.New(), Name: in.Name, Email: in.Email}, nil
}

func (f *catalogWriterFake) CreateDataStore(_ context.Context, in catalog.CreateDataStoreInput) (*domain.DataStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataStores = append(f.dataStores, in)
	return &domain.DataStore{ID: uuid.New(), Name: in.Name}, nil
}

func (f *catalogWriterFake) CreateTable(_ context.Context, in catalog.CreateTableInput) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = append(f.tables, in)
	return &domain.Table{ID: uuid.New(), DataStoreID: in.DataStoreID, Name: in.Name}, nil
}

func (f *catalogWriterFake) CreateColumn(_ context.Context, in catalog.CreateColumnInput) (*domain.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.columns = append(f.columns, in)
	return &domain.Column{ID: uuid.New(), TableID: in.TableID, Name: in.Name}, nil
}

func (f *catalogWriterFake) CreateStreamTopic(_ context.Context, in catalog.CreateStreamTopicInput) (*domain.StreamTopic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, in)
	return &domain.StreamTopic{ID: uuid.New(), Name: in.Name}, nil
}

func (f *catalogWriterFake) CreateStreamColumn(_ context.Context, in catalog.CreateStreamColumnInput) (*domain.StreamColumn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streamColumns = append(f.streamColumns, in)
	return &domain.StreamColumn{ID: uuid.New(), TopicID: in.TopicID, Name: in.Name}, nil
}

type accessWriterFake struct {
	mu      sync.Mutex
	records []access.CreateInput
}

func (f *accessWriterFake) Create(_ context.Context, in access.CreateInput) (*domain.AccessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, in)
	return &domain.AccessRecord{ID: uuid.New(), UserID: in.UserID, AssetName: in.AssetName}, nil
}
