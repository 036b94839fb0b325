package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
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

	DefaultPort = "8080"
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

// Addr joins host and port into a listen address. An empty host listens on
// every interface; an empty port falls back to DefaultPort. A leading colon
// on the port is tolerated.
func Addr(host, port string) string {
	if port == "" {
		port = DefaultPort
	}
	if port[0] == ':' {
		port = port[1:]
	}
	return net.JoinHostPort(host, port)
}

// Run listens on host:port and blocks until the server stops. A graceful
// Shutdown is not reported as an error.
func (s *Server) Run(host, port string, handler http.Handler) error {
	s.httpServer = newHTTPServer(Addr(host, port), handler)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
