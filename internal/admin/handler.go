// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/health"
)

// SessionPurger drops refresh tokens that can no longer be used.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) error
}

// JobSchedule reports when a background job fires next.
type JobSchedule interface {
	Next(name string) (time.Time, bool)
}

type HandlerConfig struct {
	DBStats    func() sql.DBStats
	DBPing     func(ctx context.Context) error
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	CacheStats func() core.CacheStats
	Bus        health.Checker
	Jobs       JobSchedule
	JobNames   []string
	Sessions   SessionPurger
	StartedAt  time.Time
}

type Handler struct {
	cfg       HandlerConfig
	probeWait time.Duration
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &Handler{cfg: cfg, probeWait: 3 * time.Second}
}

// RegisterRoutes expects r to be guarded for administrators already.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/", h.GetSystemStatus)
		r.Get("/db", h.GetDatabaseStats)
		r.Get("/redis", h.GetRedisStats)
		r.Get("/runtime", h.GetRuntimeStats)
		r.Post("/sessions/purge", h.PurgeSessions)
	})
}

func (h *Handler) GetSystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.probeWait)
	defer cancel()

	resp := SystemStatusResponse{
		Database: DatabaseStatus{
			Healthy: probe(ctx, h.cfg.DBPing),
			Stats:   h.dbStats(),
		},
		Redis: RedisStatus{
			Healthy: probe(ctx, h.cfg.RedisPing),
			Stats:   h.redisStats(),
		},
		Runtime: readRuntime(h.cfg.StartedAt),
	}

	if h.cfg.CacheStats != nil {
		stats := h.cfg.CacheStats()
		resp.Cache = &stats
	}

	if h.cfg.Bus != nil {
		resp.EventBus = &BusStatus{Enabled: true, Healthy: probe(ctx, h.cfg.Bus.Ping)}
	} else {
		resp.EventBus = &BusStatus{Enabled: false}
	}

	if h.cfg.Jobs != nil {
		for _, name := range h.cfg.JobNames {
			next, ok := h.cfg.Jobs.Next(name)
			if !ok {
				continue
			}
			resp.Jobs = append(resp.Jobs, JobStatus{Name: name, NextRun: next})
		}
	}

	core.OK(w, resp)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.dbStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.redisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntime(h.cfg.StartedAt))
}

func (h *Handler) PurgeSessions(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Sessions == nil {
		core.JSONError(w, core.NewAppError(
			core.ErrUnavailable,
			"session store not configured",
			http.StatusServiceUnavailable,
			"UNAVAILABLE",
		))
		return
	}

	if err := h.cfg.Sessions.PurgeExpired(r.Context()); err != nil {
		core.WriteError(w, err, "session")
		return
	}

	core.NoContent(w)
}

func probe(ctx context.Context, ping func(ctx context.Context) error) bool {
	if ping == nil {
		return false
	}
	return ping(ctx) == nil
}

func readRuntime(startedAt time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     mem.Alloc,
		MemSys:       mem.Sys,
		NumGC:        mem.NumGC,
		Uptime:       time.Since(startedAt).Round(time.Second).String(),
	}
}

func (h *Handler) dbStats() *DBPoolStats {
	if h.cfg.DBStats == nil {
		return nil
	}

	stats := h.cfg.DBStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) redisStats() *RedisPoolStats {
	if h.cfg.RedisStats == nil {
		return nil
	}

	stats := h.cfg.RedisStats()
	if stats == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}
