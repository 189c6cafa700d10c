package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr accepts "8080" or ":8080" and returns a listen address.
func normalizeAddr(port string) string {
	if port == "" {
		return ""
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// withCORS restricts cross-origin access to the single configured origin.
// An empty origin leaves the handler untouched (same-origin use only).
func withCORS(origin string, handler http.Handler) http.Handler {
	if origin == "" {
		return handler
	}
	return cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(handler)
}

// Run starts the HTTP server on the given port using the provided handler,
// wrapped with the single-origin CORS policy.
func (s *Server) Run(port, corsOrigin string, handler http.Handler) error {
	s.httpServer = newHTTPServer(normalizeAddr(port), withCORS(corsOrigin, handler))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
