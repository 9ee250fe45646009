// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/middleware"
)

// SessionCleaner deletes expired session rows and reports how many went.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type Handler struct {
	db       *core.Database
	redis    *core.Redis
	sessions SessionCleaner
	started  time.Time
}

func NewHandler(
	db *core.Database,
	redis *core.Redis,
	sessions SessionCleaner,
) *Handler {
	return &Handler{
		db:       db,
		redis:    redis,
		sessions: sessions,
		started:  time.Now(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin/system", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireMasterAdmin)
		r.Get("/stats", h.Stats)
		r.Post("/sessions/cleanup", h.CleanupSessions)
	})
}

type systemStats struct {
	Uptime    string         `json:"uptime"`
	Goroutine int            `json:"goroutines"`
	Memory    memoryStats    `json:"memory"`
	Database  databaseStats  `json:"database"`
	Redis     redisPoolStats `json:"redis"`
}

type memoryStats struct {
	AllocMB      uint64 `json:"alloc_mb"`
	TotalAllocMB uint64 `json:"total_alloc_mb"`
	SysMB        uint64 `json:"sys_mb"`
	NumGC        uint32 `json:"num_gc"`
}

type databaseStats struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

type redisPoolStats struct {
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	dbStats := h.db.Stats()
	pool := h.redis.PoolStats()

	core.OK(w, systemStats{
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Goroutine: runtime.NumGoroutine(),
		Memory: memoryStats{
			AllocMB:      mem.Alloc / 1024 / 1024,
			TotalAllocMB: mem.TotalAlloc / 1024 / 1024,
			SysMB:        mem.Sys / 1024 / 1024,
			NumGC:        mem.NumGC,
		},
		Database: databaseStats{
			OpenConnections: dbStats.OpenConnections,
			InUse:           dbStats.InUse,
			Idle:            dbStats.Idle,
			WaitCount:       dbStats.WaitCount,
		},
		Redis: redisPoolStats{
			TotalConns: pool.TotalConns,
			IdleConns:  pool.IdleConns,
			Hits:       pool.Hits,
			Misses:     pool.Misses,
		},
	})
}

func (h *Handler) CleanupSessions(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.sessions.CleanupExpiredSessions(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]int64{"deleted": deleted})
}
