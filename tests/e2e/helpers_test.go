//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/infogrid/catalog-backend/internal/adapter/postgres/testhelper"
	"github.com/infogrid/catalog-backend/internal/app"
	"github.com/infogrid/catalog-backend/internal/config"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendPostgres},
		Catalog: config.CatalogConfig{DefaultPageSize: 5, MaxPageSize: 100, DateFilterLimit: 100},
		CORS:    config.CORSConfig{AllowedOrigins: "*"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	handler := app.NewRouter(app.RouterDeps{
		Log:      logger,
		Config:   cfg,
		Services: app.NewPostgresServices(logger, cfg.Catalog, pool),
		Storage:  pool,
		Registry: prometheus.NewRegistry(),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// do sends a JSON request to path under the API prefix and returns the status
// and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+"/api/v1"+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do plus decoding into out when the body is not empty.
func (ts *testServer) doJSON(t *testing.T, method, path string, body, out any) int {
	t.Helper()
	status, raw := ts.do(t, method, path, body)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return status
}

type entity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// uniq returns a name that does not collide across tests sharing the database.
func uniq(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

func (ts *testServer) createOwner(t *testing.T, name string) entity {
	t.Helper()
	var e entity
	status := ts.doJSON(t, http.MethodPost, "/owners", map[string]any{
		"name":  name,
		"email": uniq("owner") + "@example.com",
	}, &e)
	require.Equal(t, http.StatusCreated, status)
	return e
}

func (ts *testServer) createUser(t *testing.T) entity {
	t.Helper()
	var e entity
	status := ts.doJSON(t, http.MethodPost, "/users", map[string]any{
		"name":  "Analyst",
		"email": uniq("user") + "@example.com",
	}, &e)
	require.Equal(t, http.StatusCreated, status)
	return e
}

func (ts *testServer) createDataStore(t *testing.T, name string) entity {
	t.Helper()
	var e entity
	status := ts.doJSON(t, http.MethodPost, "/datastores", map[string]any{
		"name":       name,
		"technology": "postgres",
	}, &e)
	require.Equal(t, http.StatusCreated, status)
	return e
}

func (ts *testServer) createTable(t *testing.T, datastoreID uuid.UUID, name string) entity {
	t.Helper()
	var e entity
	status := ts.doJSON(t, http.MethodPost, "/tables", map[string]any{
		"datastore_id":    datastoreID,
		"name":            name,
		"lifecycle_state": "active",
		"quality_grade":   "gold",
		"compliant":       true,
	}, &e)
	require.Equal(t, http.StatusCreated, status)
	return e
}

func ids(items []entity) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}
