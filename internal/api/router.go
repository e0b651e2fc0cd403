package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grapevine-sim/grapevine/internal/api/handlers"
	mw "github.com/grapevine-sim/grapevine/internal/api/middleware"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/sim"
	"go.uber.org/zap"
)

// App holds the router and the simulation it inspects.
type App struct {
	Router       *chi.Mux
	Sim          *sim.Simulation
	startTime    time.Time
	requestCount atomic.Int64
}

func NewApp(s *sim.Simulation, logger *zap.Logger) *App {
	personHandler := handlers.NewPersonHandler(s)
	simHandler := handlers.NewSimulationHandler(s, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sim:       s,
		startTime: time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.countRequests)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst(), logger))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", simHandler.Status)
		r.Post("/step", simHandler.Step)

		r.Route("/people", func(r chi.Router) {
			r.Get("/", personHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/mind", personHandler.GetMind)
				r.Route("/beliefs/{subject}", func(r chi.Router) {
					r.Get("/", personHandler.GetBeliefs)
					r.Get("/sources", personHandler.GetSources)
				})
				r.Get("/evidence/{subject}", personHandler.GetEvidence)
			})
		})
	})

	return app
}

func (a *App) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.requestCount.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (a *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (a *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		now := a.Sim.Now()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"uptime_seconds": int64(time.Since(a.startTime).Seconds()),
			"request_count":  a.requestCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_bytes":     mem.HeapAlloc,
			"sim": map[string]any{
				"ordinal_date": now.OrdinalDate,
				"part":         string(now.Part),
				"steps":        a.Sim.Steps(),
				"people":       len(a.Sim.People()),
			},
		})
	}
}
