package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/catalog")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// chdirTemp moves the test into an empty directory so no stray config.yaml
// or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return dir
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

storage:
  backend: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/catalog"
  max_conns: 10
  min_conns: 2
  auto_migrate: true

mongo:
  uri: "mongodb://localhost:27017"
  database: "catalog_test"

catalog:
  default_page_size: 10
  max_page_size: 50
  date_filter_limit: 25

log:
  level: "debug"
  format: "text"

metrics:
  enabled: true
  path: "/internal/metrics"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := chdirTemp(t)
	path := writeFile(t, dir, "custom.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Storage
	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("storage.backend = %q, want %q", cfg.Storage.Backend, BackendPostgres)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should be true")
	}
	if cfg.Mongo.Database != "catalog_test" {
		t.Errorf("mongo.database = %q, want %q", cfg.Mongo.Database, "catalog_test")
	}

	// Catalog
	if cfg.Catalog.DefaultPageSize != 10 {
		t.Errorf("catalog.default_page_size = %d, want 10", cfg.Catalog.DefaultPageSize)
	}
	if cfg.Catalog.MaxPageSize != 50 {
		t.Errorf("catalog.max_page_size = %d, want 50", cfg.Catalog.MaxPageSize)
	}
	if cfg.Catalog.DateFilterLimit != 25 {
		t.Errorf("catalog.date_filter_limit = %d, want 25", cfg.Catalog.DateFilterLimit)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
	if !cfg.Log.RedactContacts {
		t.Error("log.redact_contacts should default to true")
	}

	// Metrics
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("metrics.path = %q, want %q", cfg.Metrics.Path, "/internal/metrics")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := chdirTemp(t)
	path := writeFile(t, dir, "custom.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	chdirTemp(t)
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("storage.backend = %q, want default %q", cfg.Storage.Backend, BackendPostgres)
	}
	if cfg.Catalog.DefaultPageSize != 5 {
		t.Errorf("catalog.default_page_size = %d, want 5 (default)", cfg.Catalog.DefaultPageSize)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	writeFile(t, dir, ".env", "STORAGE_BACKEND=mongo\nMONGO_URI=mongodb://db:27017\n")

	// Variables loaded from .env are process-wide; unset them afterwards.
	t.Cleanup(func() {
		_ = os.Unsetenv("STORAGE_BACKEND")
		_ = os.Unsetenv("MONGO_URI")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendMongo {
		t.Errorf("storage.backend = %q, want %q (from .env)", cfg.Storage.Backend, BackendMongo)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("mongo.uri = %q (from .env)", cfg.Mongo.URI)
	}
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := chdirTemp(t)
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SERVER_PORT", "7000")
	path := writeFile(t, dir, "local.env", "SERVER_PORT=9999\n")
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("server.port = %d, want 7000 (process env wins)", cfg.Server.Port)
	}
}

func TestLoad_ExplicitEnvFileNotFound(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV_FILE", "/nonexistent/.env")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	path := writeFile(t, dir, "config.yaml", `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestValidate_MongoRequiresURI(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = BackendMongo
	cfg.Mongo.URI = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty mongo URI")
	}
}

func TestValidate_MongoDoesNotRequireDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "Mongo"
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendMongo {
		t.Errorf("backend not normalized: %q", cfg.Storage.Backend)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "sqlite"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestValidate_MinConnsAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MinConns = 30
	cfg.Database.MaxConns = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_conns > max_conns")
	}
}

func TestValidate_Catalog(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *CatalogConfig)
	}{
		{"zero max page size", func(c *CatalogConfig) { c.MaxPageSize = 0 }},
		{"zero default page size", func(c *CatalogConfig) { c.DefaultPageSize = 0 }},
		{"default above max", func(c *CatalogConfig) { c.DefaultPageSize = 500 }},
		{"zero date filter limit", func(c *CatalogConfig) { c.DateFilterLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Catalog)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_MetricsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Path = "metrics"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for relative metrics path")
	}
}

func validConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendPostgres},
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/catalog",
			MaxConns: 25,
			MinConns: 2,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "catalog",
		},
		Catalog: CatalogConfig{
			DefaultPageSize: 5,
			MaxPageSize:     100,
			DateFilterLimit: 100,
		},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}
