package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthDisabled  HealthStatus = "disabled"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// HealthHandler reports the state of postgres and, when configured, redis.
// redis may be nil.
type HealthHandler struct {
	db    *sqlx.DB
	redis redis.UniversalClient
}

func NewHealthHandler(db *sqlx.DB, rdb redis.UniversalClient) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// Ping only says the process is up.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Check pings every dependency concurrently. Any unhealthy component turns
// the whole response into a 503.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	var pg, rd CheckEntry
	var g errgroup.Group
	g.Go(func() error {
		pg = probe(ctx, h.pingPostgres)
		return nil
	})
	g.Go(func() error {
		if h.redis == nil {
			rd = CheckEntry{Status: HealthDisabled, CheckedAt: time.Now()}
			return nil
		}
		rd = probe(ctx, func(ctx context.Context) error { return h.redis.Ping(ctx).Err() })
		return nil
	})
	_ = g.Wait()

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{"postgres": pg, "redis": rd},
	}
	statusCode := http.StatusOK
	for _, entry := range resp.Components {
		if entry.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
			statusCode = http.StatusServiceUnavailable
		}
	}

	writeHealthJSON(w, statusCode, resp)
}

func (h *HealthHandler) pingPostgres(ctx context.Context) error {
	var one int
	return h.db.GetContext(ctx, &one, "SELECT 1")
}

func probe(ctx context.Context, check func(context.Context) error) CheckEntry {
	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy}
	if err := check(ctx); err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = "unreachable"
	}
	entry.CheckedAt = time.Now()
	entry.DurationMs = time.Since(start).Milliseconds()
	return entry
}

func writeHealthJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
