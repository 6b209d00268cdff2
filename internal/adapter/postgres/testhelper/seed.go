package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infogrid/catalog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedOwner inserts an owner with a unique email.
func SeedOwner(t *testing.T, pool *pgxpool.Pool) domain.Owner {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	o := domain.Owner{
		ID:        uuid.New(),
		Name:      "Owner " + suffix,
		Email:     "owner-" + suffix + "@example.com",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO owners (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Name, o.Email, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOwner: %v", err)
	}
	return o
}

// SeedUser inserts a user with a unique email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	u := domain.User{
		ID:        uuid.New(),
		Name:      "User " + suffix,
		Email:     "user-" + suffix + "@example.com",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedDataStore inserts a datastore with a unique name.
func SeedDataStore(t *testing.T, pool *pgxpool.Pool) domain.DataStore {
	t.Helper()

	ts := now()
	ds := domain.DataStore{
		ID:         uuid.New(),
		Name:       "warehouse-" + uniqueSuffix(),
		Technology: "postgres",
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO datastores (id, name, technology, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		ds.ID, ds.Name, ds.Technology, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDataStore: %v", err)
	}
	return ds
}

// SeedTable inserts a table under datastoreID.
func SeedTable(t *testing.T, pool *pgxpool.Pool, datastoreID uuid.UUID) domain.Table {
	t.Helper()

	ts := now()
	tbl := domain.Table{
		ID:          uuid.New(),
		DataStoreID: datastoreID,
		Name:        "orders_" + uniqueSuffix(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO data_tables (id, datastore_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		tbl.ID, tbl.DataStoreID, tbl.Name, tbl.CreatedAt, tbl.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTable: %v", err)
	}
	return tbl
}

// SeedColumn inserts a column under tableID.
func SeedColumn(t *testing.T, pool *pgxpool.Pool, tableID uuid.UUID) domain.Column {
	t.Helper()

	ts := now()
	c := domain.Column{
		ID:        uuid.New(),
		TableID:   tableID,
		Name:      "col_" + uniqueSuffix(),
		DataType:  "text",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO table_columns (id, table_id, name, data_type, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TableID, c.Name, c.DataType, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedColumn: %v", err)
	}
	return c
}

// SeedStreamTopic inserts a stream topic with a unique name.
func SeedStreamTopic(t *testing.T, pool *pgxpool.Pool) domain.StreamTopic {
	t.Helper()

	ts := now()
	st := domain.StreamTopic{
		ID:        uuid.New(),
		Name:      "events." + uniqueSuffix(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO stream_topics (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		st.ID, st.Name, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStreamTopic: %v", err)
	}
	return st
}

// SeedStreamColumn inserts a stream column under topicID.
func SeedStreamColumn(t *testing.T, pool *pgxpool.Pool, topicID uuid.UUID) domain.StreamColumn {
	t.Helper()

	ts := now()
	c := domain.StreamColumn{
		ID:        uuid.New(),
		TopicID:   topicID,
		Name:      "field_" + uniqueSuffix(),
		DataType:  "string",
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO stream_columns (id, topic_id, name, data_type, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TopicID, c.Name, c.DataType, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStreamColumn: %v", err)
	}
	return c
}

// SeedAccessRecord inserts an access record for userID at requestedAt.
func SeedAccessRecord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, requestedAt time.Time) domain.AccessRecord {
	t.Helper()

	ts := now()
	r := domain.AccessRecord{
		ID:          uuid.New(),
		UserID:      userID,
		AssetName:   "asset-" + uniqueSuffix(),
		RequestedAt: domain.NormalizeTimestamp(requestedAt),
		Purpose:     "analytics",
		Permissions: []string{"read"},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO access_records (id, user_id, asset_name, requested_at, purpose, permissions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.UserID, r.AssetName, r.RequestedAt, r.Purpose, r.Permissions, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccessRecord: %v", err)
	}
	return r
}
