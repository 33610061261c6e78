package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// catalogState reports whether the words catalog is being served.
type catalogState interface {
	Loaded() bool
	Total() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger // nil when the catalog is kept in memory
	catalog catalogState
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db dbPinger, catalog catalogState, version string) *HealthHandler {
	return &HealthHandler{db: db, catalog: catalog, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Words   *int   `json:"words,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once the catalog is loaded and the
// database (if any) answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.check(r.Context())

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component status and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.check(r.Context())

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) (string, map[string]CompStatus) {
	components := make(map[string]CompStatus, 2)
	overall := "ok"

	if h.catalog.Loaded() {
		total := h.catalog.Total()
		components["catalog"] = CompStatus{Status: "ok", Words: &total}
	} else {
		components["catalog"] = CompStatus{Status: "loading"}
		overall = "down"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		start := time.Now()
		if err := h.db.Ping(ctx); err != nil {
			components["database"] = CompStatus{Status: "down"}
			overall = "down"
		} else {
			components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
		}
	}

	return overall, components
}
