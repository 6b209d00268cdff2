package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// storagePinger is satisfied by both the pgx pool and the mongo client.
type storagePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health check endpoints.
type HealthHandler struct {
	storage storagePinger
	backend string
	version string
}

// NewHealthHandler creates a HealthHandler. backend names the storage
// component in the /health report.
func NewHealthHandler(storage storagePinger, backend, version string) *HealthHandler {
	return &HealthHandler{storage: storage, backend: backend, version: version}
}

// HealthResponse is the JSON body of the health check endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// Ready answers 200 when storage responds to a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	comp := h.ping(r.Context())
	writeJSON(w, statusFor(comp), HealthResponse{Status: comp.Status, Timestamp: time.Now().UTC()})
}

// Health reports version and per-component status with ping latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	comp := h.ping(r.Context())
	writeJSON(w, statusFor(comp), HealthResponse{
		Status:     comp.Status,
		Version:    h.version,
		Components: map[string]CompStatus{"storage": comp},
		Timestamp:  time.Now().UTC(),
	})
}

func (h *HealthHandler) ping(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Backend: h.backend, Error: err.Error()}
	}
	return CompStatus{Status: "ok", Backend: h.backend, Latency: time.Since(start).String()}
}

func statusFor(c CompStatus) int {
	if c.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
