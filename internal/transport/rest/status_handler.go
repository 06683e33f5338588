package rest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"sysglance/internal/logger"
	"sysglance/internal/stats"
)

// StatusService is the slice of the application layer the page needs.
type StatusService interface {
	GetOrRefresh(ctx context.Context) (*stats.Snapshot, error)
}

type StatusHandler struct {
	svc        StatusService
	ttlSeconds int
	log        logger.Logger
}

func NewStatusHandler(svc StatusService, ttlSeconds int, log logger.Logger) *StatusHandler {
	return &StatusHandler{
		svc:        svc,
		ttlSeconds: ttlSeconds,
		log:        log,
	}
}

func (h *StatusHandler) Page(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetOrRefresh(r.Context())
	if err != nil {
		h.log.Error("rest: failed to read host statistics", "error", err)
		http.Error(w, "failed to read host statistics", http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so an execution error never leaves a
	// half-written 200 response.
	var buf bytes.Buffer
	if err := renderPage(&buf, snap, h.ttlSeconds); err != nil {
		h.log.Error("rest: page render failed", "error", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Client-side caching aligned with the snapshot TTL keeps repeat
	// viewers off the server entirely.
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.ttlSeconds))
	w.Write(buf.Bytes())
}
