package rest

import (
	"net/http"
	"time"
)

// NewServer builds the HTTP server with keep-alive friendly timeouts;
// many viewers polling one page benefit from reused connections.
func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
