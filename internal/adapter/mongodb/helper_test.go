package mongodb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/infogrid/catalog-backend/internal/config"
)

var (
	once     sync.Once
	mongoURI string
	initErr  error
)

// setupDB starts a shared MongoDB container (once per test run) and returns a
// fresh database with indexes applied. Skipped in -short mode.
func setupDB(t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("mongo integration test skipped in -short mode")
	}

	once.Do(func() {
		mongoURI, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("failed to start mongo container: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := Connect(ctx, config.MongoConfig{
		URI:            mongoURI,
		Database:       "catalog_" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""),
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Database().Drop(context.Background())
		_ = client.Close(context.Background())
	})

	if err := EnsureIndexes(ctx, client.Database()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return client.Database()
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForLog("Waiting for connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

func ptr[T any](v T) *T { return &v }
