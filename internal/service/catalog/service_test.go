package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type testRepos struct {
	owners        *ownerRepoMock
	users         *userRepoMock
	datastores    *dataStoreRepoMock
	tables        *tableRepoMock
	columns       *columnRepoMock
	topics        *streamTopicRepoMock
	streamColumns *streamColumnRepoMock
	access        *accessCounterMock
	links         *linkRepoMock
	tx            *txManagerMock
}

func newTestRepos() *testRepos {
	return &testRepos{
		owners:        &ownerRepoMock{},
		users:         &userRepoMock{},
		datastores:    &dataStoreRepoMock{},
		tables:        &tableRepoMock{},
		columns:       &columnRepoMock{},
		topics:        &streamTopicRepoMock{},
		streamColumns: &streamColumnRepoMock{},
		access:        &accessCounterMock{},
		links:         &linkRepoMock{},
		tx: &txManagerMock{
			RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			},
		},
	}
}

func newTestService(r *testRepos) *Service {
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Repos{
			Owners:        r.owners,
			Users:         r.users,
			DataStores:    r.datastores,
			Tables:        r.tables,
			Columns:       r.columns,
			StreamTopics:  r.topics,
			StreamColumns: r.streamColumns,
			AccessRecords: r.access,
			Links:         r.links,
		},
		r.tx,
		domain.PageLimits{Default: 5, Max: 100},
	)
}

func ptr[T any](v T) *T { return &v }

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
}

func existing[T any](v T) func(context.Context, uuid.UUID) (*T, error) {
	return func(context.Context, uuid.UUID) (*T, error) { return &v, nil }
}

// ---------------------------------------------------------------------------
// Owners and users
// ---------------------------------------------------------------------------

func TestCreateOwner_NormalizesInput(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.owners.CreateFunc = func(_ context.Context, o *domain.Owner) (*domain.Owner, error) {
		out := *o
		out.ID = uuid.New()
		out.CreatedAt = time.Now()
		return &out, nil
	}
	svc := newTestService(r)

	got, err := svc.CreateOwner(context.Background(), ContactInput{
		Name:  "  Ada   Lovelace ",
		Email: " Ada@Example.COM ",
		Role:  ptr("  "),
		Phone: ptr(" +44 1 "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Nil(t, got.Role, "blank role is not stored")
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+44 1", *got.Phone)
}

func TestCreateOwner_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	svc := newTestService(r)

	_, err := svc.CreateOwner(context.Background(), ContactInput{Name: "", Email: "not-an-email"})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 2)
	assert.Empty(t, r.owners.CreateCalls())
}

func TestCreateOwner_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.owners.CreateFunc = func(context.Context, *domain.Owner) (*domain.Owner, error) {
		return nil, fmt.Errorf("owner: %w", domain.ErrAlreadyExists)
	}
	svc := newTestService(r)

	_, err := svc.CreateOwner(context.Background(), ContactInput{Name: "A", Email: "a@x.io"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUpdateOwner_EmptyUpdate(t *testing.T) {
	t.Parallel()

	svc := newTestService(newTestRepos())

	_, err := svc.UpdateOwner(context.Background(), UpdateContactInput{ID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateOwner_ClearsOptionalFields(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.owners.UpdateFunc = func(_ context.Context, id uuid.UUID, _ domain.OwnerUpdate) (*domain.Owner, error) {
		return &domain.Owner{ID: id}, nil
	}
	svc := newTestService(r)

	id := uuid.New()
	_, err := svc.UpdateOwner(context.Background(), UpdateContactInput{ID: id, Role: ptr(" "), Email: ptr("B@X.IO")})
	require.NoError(t, err)

	calls := r.owners.UpdateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, id, calls[0].ID)
	require.NotNil(t, calls[0].Update.Role)
	assert.Equal(t, "", *calls[0].Update.Role)
	assert.Equal(t, "b@x.io", *calls[0].Update.Email)
	assert.Nil(t, calls[0].Update.Name)
}

func TestDeleteOwner_RemovesLinks(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.links.DeleteByOwnerFunc = func(context.Context, uuid.UUID) error { return nil }
	r.owners.DeleteFunc = func(context.Context, uuid.UUID) error { return nil }
	svc := newTestService(r)

	id := uuid.New()
	require.NoError(t, svc.DeleteOwner(context.Background(), id))

	assert.Equal(t, []uuid.UUID{id}, r.links.DeleteByOwnerCalls())
	assert.Equal(t, []uuid.UUID{id}, r.owners.DeleteCalls())
	assert.Equal(t, 1, r.tx.RunInTxCalls())
}

func TestDeleteUser_WithAccessRecords(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.users.GetByIDFunc = existing(domain.User{})
	r.access.CountByUserFunc = func(context.Context, uuid.UUID) (int, error) { return 2, nil }
	svc := newTestService(r)

	err := svc.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrFailedPrecondition)
	assert.Empty(t, r.users.DeleteCalls())
}

func TestDeleteUser_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.users.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.User, error) { return nil, notFound("user") }
	svc := newTestService(r)

	err := svc.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

func TestListOwners_Paging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       ListInput
		wantPage domain.Page
		wantErr  error
	}{
		{"default", ListInput{}, domain.Page{Limit: 5}, nil},
		{"explicit", ListInput{Limit: ptr(20), Offset: ptr(40)}, domain.Page{Limit: 20, Offset: 40}, nil},
		{"all", ListInput{All: true, Limit: ptr(0)}, domain.Page{}, nil},
		{"zero limit", ListInput{Limit: ptr(0)}, domain.Page{}, domain.ErrValidation},
		{"above max", ListInput{Limit: ptr(101)}, domain.Page{}, domain.ErrValidation},
		{"negative offset", ListInput{Offset: ptr(-1)}, domain.Page{}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRepos()
			r.owners.ListFunc = func(context.Context, domain.Page) ([]domain.Owner, error) {
				return []domain.Owner{}, nil
			}
			svc := newTestService(r)

			_, err := svc.ListOwners(context.Background(), tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, r.owners.ListCalls())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []domain.Page{tt.wantPage}, r.owners.ListCalls())
		})
	}
}

// ---------------------------------------------------------------------------
// Assets with owners
// ---------------------------------------------------------------------------

func TestCreateDataStore_LinksUniqueOwners(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	dsID := uuid.New()
	o1, o2 := uuid.New(), uuid.New()
	r.owners.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Owner, error) {
		return &domain.Owner{ID: id}, nil
	}
	r.datastores.CreateFunc = func(_ context.Context, ds *domain.DataStore) (*domain.DataStore, error) {
		out := *ds
		out.ID = dsID
		return &out, nil
	}
	r.links.LinkFunc = func(_ context.Context, ownerID, assetID uuid.UUID, kind domain.AssetKind) (*domain.OwnershipLink, error) {
		return &domain.OwnershipLink{OwnerID: ownerID, AssetID: assetID, Kind: kind}, nil
	}
	svc := newTestService(r)

	ds, err := svc.CreateDataStore(context.Background(), CreateDataStoreInput{
		Name:       "warehouse",
		Technology: " postgres ",
		OwnerIDs:   []uuid.UUID{o1, o2, o1},
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres", ds.Technology)

	assert.Equal(t, []domain.OwnershipLink{
		{OwnerID: o1, AssetID: dsID, Kind: domain.AssetKindDataStore},
		{OwnerID: o2, AssetID: dsID, Kind: domain.AssetKindDataStore},
	}, r.links.LinkCalls())
}

func TestCreateDataStore_UnknownOwner(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.owners.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Owner, error) { return nil, notFound("owner") }
	svc := newTestService(r)

	_, err := svc.CreateDataStore(context.Background(), CreateDataStoreInput{
		Name: "warehouse", Technology: "pg", OwnerIDs: []uuid.UUID{uuid.New()},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, r.datastores.CreateCalls())
	assert.Empty(t, r.links.LinkCalls())
}

func TestCreateStreamTopic_NoOwners(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.topics.CreateFunc = func(_ context.Context, st *domain.StreamTopic) (*domain.StreamTopic, error) {
		out := *st
		out.ID = uuid.New()
		return &out, nil
	}
	svc := newTestService(r)

	st, err := svc.CreateStreamTopic(context.Background(), CreateStreamTopicInput{Name: "orders", Compliant: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "orders", st.Name)
	assert.True(t, *st.Compliant)
	assert.Empty(t, r.links.LinkCalls())
}

// ---------------------------------------------------------------------------
// Parent links
// ---------------------------------------------------------------------------

func TestCreateTable_ParentMissing(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.datastores.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.DataStore, error) {
		return nil, notFound("datastore")
	}
	svc := newTestService(r)

	_, err := svc.CreateTable(context.Background(), CreateTableInput{DataStoreID: uuid.New(), Name: "orders"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, r.tables.CreateCalls())
}

func TestCreateColumn_ParentMissing(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.tables.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Table, error) { return nil, notFound("table") }
	svc := newTestService(r)

	_, err := svc.CreateColumn(context.Background(), CreateColumnInput{TableID: uuid.New(), Name: "id", DataType: "uuid"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, r.columns.CreateCalls())
}

func TestReassignTable(t *testing.T) {
	t.Parallel()

	tableID, target := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		tableErr   error
		storeErr   error
		updateErr  error
		wantErr    error
		wantUpdate bool
	}{
		{name: "success", wantUpdate: true},
		{name: "child missing", tableErr: notFound("table"), wantErr: domain.ErrNotFound},
		{name: "parent missing", storeErr: notFound("datastore"), wantErr: domain.ErrNotFound},
		{name: "name taken under new parent", updateErr: fmt.Errorf("table: %w", domain.ErrAlreadyExists), wantErr: domain.ErrAlreadyExists, wantUpdate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRepos()
			r.tables.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.Table, error) {
				if tt.tableErr != nil {
					return nil, tt.tableErr
				}
				return &domain.Table{ID: tableID}, nil
			}
			r.datastores.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.DataStore, error) {
				if tt.storeErr != nil {
					return nil, tt.storeErr
				}
				return &domain.DataStore{ID: target}, nil
			}
			r.tables.UpdateFunc = func(_ context.Context, id uuid.UUID, u domain.TableUpdate) (*domain.Table, error) {
				if tt.updateErr != nil {
					return nil, tt.updateErr
				}
				return &domain.Table{ID: id, DataStoreID: *u.DataStoreID}, nil
			}
			svc := newTestService(r)

			got, err := svc.ReassignTable(context.Background(), tableID, target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, target, got.DataStoreID)
			}
			assert.Equal(t, tt.wantUpdate, len(r.tables.UpdateCalls()) == 1)
		})
	}
}

func TestReassignStreamColumn_UpdatesOnlyParent(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.streamColumns.GetByIDFunc = existing(domain.StreamColumn{})
	r.topics.GetByIDFunc = existing(domain.StreamTopic{})
	r.streamColumns.UpdateFunc = func(_ context.Context, id uuid.UUID, _ domain.StreamColumnUpdate) (*domain.StreamColumn, error) {
		return &domain.StreamColumn{ID: id}, nil
	}
	svc := newTestService(r)

	topicID := uuid.New()
	_, err := svc.ReassignStreamColumn(context.Background(), uuid.New(), topicID)
	require.NoError(t, err)

	calls := r.streamColumns.UpdateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.StreamColumnUpdate{TopicID: &topicID}, calls[0].Update)
}

// ---------------------------------------------------------------------------
// Delete with children
// ---------------------------------------------------------------------------

func TestDeleteDataStore(t *testing.T) {
	t.Parallel()

	t.Run("with tables", func(t *testing.T) {
		t.Parallel()

		r := newTestRepos()
		r.datastores.GetByIDFunc = existing(domain.DataStore{})
		r.tables.CountByDataStoreFunc = func(context.Context, uuid.UUID) (int, error) { return 3, nil }
		svc := newTestService(r)

		err := svc.DeleteDataStore(context.Background(), uuid.New())
		require.ErrorIs(t, err, domain.ErrFailedPrecondition)
		assert.Empty(t, r.datastores.DeleteCalls())
		assert.Empty(t, r.links.DeleteByAssetCalls())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		r := newTestRepos()
		r.datastores.GetByIDFunc = existing(domain.DataStore{})
		r.tables.CountByDataStoreFunc = func(context.Context, uuid.UUID) (int, error) { return 0, nil }
		r.links.DeleteByAssetFunc = func(context.Context, uuid.UUID, domain.AssetKind) error { return nil }
		r.datastores.DeleteFunc = func(context.Context, uuid.UUID) error { return nil }
		svc := newTestService(r)

		id := uuid.New()
		require.NoError(t, svc.DeleteDataStore(context.Background(), id))
		assert.Equal(t, []domain.AssetSummary{{ID: id, Kind: domain.AssetKindDataStore}}, r.links.DeleteByAssetCalls())
		assert.Equal(t, []uuid.UUID{id}, r.datastores.DeleteCalls())
	})
}

func TestDeleteTable_WithColumns(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.tables.GetByIDFunc = existing(domain.Table{})
	r.columns.CountByTableFunc = func(context.Context, uuid.UUID) (int, error) { return 1, nil }
	svc := newTestService(r)

	err := svc.DeleteTable(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrFailedPrecondition)
	assert.Empty(t, r.tables.DeleteCalls())
}

func TestDeleteStreamTopic_WithColumns(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.topics.GetByIDFunc = existing(domain.StreamTopic{})
	r.streamColumns.CountByTopicFunc = func(context.Context, uuid.UUID) (int, error) { return 4, nil }
	svc := newTestService(r)

	err := svc.DeleteStreamTopic(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrFailedPrecondition)
	assert.Empty(t, r.topics.DeleteCalls())
}

func TestDeleteColumn_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.columns.DeleteFunc = func(context.Context, uuid.UUID) error { return notFound("column") }
	svc := newTestService(r)

	assert.ErrorIs(t, svc.DeleteColumn(context.Background(), uuid.New()), domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Child listings and tree
// ---------------------------------------------------------------------------

func TestListDataStoreTables_ParentMissing(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.datastores.GetByIDFunc = func(context.Context, uuid.UUID) (*domain.DataStore, error) {
		return nil, notFound("datastore")
	}
	svc := newTestService(r)

	_, err := svc.ListDataStoreTables(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDataStoreTree(t *testing.T) {
	t.Parallel()

	ds1 := domain.DataStore{ID: uuid.New(), Name: "a"}
	ds2 := domain.DataStore{ID: uuid.New(), Name: "empty"}
	ds3 := domain.DataStore{ID: uuid.New(), Name: "c"}
	t1 := domain.Table{ID: uuid.New(), DataStoreID: ds1.ID, Name: "t1"}
	t2 := domain.Table{ID: uuid.New(), DataStoreID: ds3.ID, Name: "t2"}
	t3 := domain.Table{ID: uuid.New(), DataStoreID: ds1.ID, Name: "t3"}
	c1 := domain.Column{ID: uuid.New(), TableID: t1.ID, Name: "id"}
	c2 := domain.Column{ID: uuid.New(), TableID: t1.ID, Name: "name"}

	r := newTestRepos()
	r.datastores.ListFunc = func(context.Context, domain.Page) ([]domain.DataStore, error) {
		return []domain.DataStore{ds1, ds2, ds3}, nil
	}
	r.tables.ListFunc = func(context.Context, domain.Page) ([]domain.Table, error) {
		return []domain.Table{t1, t2, t3}, nil
	}
	r.columns.ListFunc = func(context.Context, domain.Page) ([]domain.Column, error) {
		return []domain.Column{c1, c2}, nil
	}
	svc := newTestService(r)

	tree, err := svc.DataStoreTree(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, ds1.ID, tree[0].ID)
	require.Len(t, tree[0].Tables, 2)
	assert.Equal(t, []domain.Column{c1, c2}, tree[0].Tables[0].Columns)
	assert.NotNil(t, tree[0].Tables[1].Columns)
	assert.Empty(t, tree[0].Tables[1].Columns)
	assert.Equal(t, ds3.ID, tree[1].ID)
	assert.Equal(t, []domain.Page{{}}, r.datastores.ListCalls(), "tree reads every datastore")
}

func TestDataStoreTree_NoTables(t *testing.T) {
	t.Parallel()

	r := newTestRepos()
	r.datastores.ListFunc = func(context.Context, domain.Page) ([]domain.DataStore, error) {
		return []domain.DataStore{{ID: uuid.New()}}, nil
	}
	r.tables.ListFunc = func(context.Context, domain.Page) ([]domain.Table, error) { return []domain.Table{}, nil }
	r.columns.ListFunc = func(context.Context, domain.Page) ([]domain.Column, error) { return []domain.Column{}, nil }
	svc := newTestService(r)

	_, err := svc.DataStoreTree(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
