// Package rest serves the HTML status page and liveness probe.
package rest

import (
	"net/http"

	"sysglance/internal/config"
	"sysglance/internal/logger"
	"sysglance/internal/transport/rest/middleware"
	"sysglance/internal/transport/ws"
)

type RouterDeps struct {
	Status *StatusHandler
	Ws     *ws.Handler
}

func NewRouter(cfg *config.Config, log logger.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))
	globalMw.Use(middleware.RequestID())
	globalMw.Use(middleware.Logging(log))

	// Liveness only depends on the process being up, never on cache
	// freshness or sampler health.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /{$}", deps.Status.Page)

	if deps.Ws != nil {
		mux.HandleFunc("GET /ws", deps.Ws.Serve)
	}

	return globalMw.Apply(mux)
}
