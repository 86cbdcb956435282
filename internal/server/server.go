package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/echoprobe/internal/discovery"
	"github.com/muurk/echoprobe/internal/logging"
)

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	LogLevel string

	// Defaults applied to scan requests that omit fields.
	ScanDefaults discovery.Options
}

// ScanFunc runs one discovery scan, invoking fn per reply. It exists
// so tests can stub the network; the default is discovery.ScanStream.
type ScanFunc func(ctx context.Context, opts discovery.Options, fn func(discovery.Response)) error

// Server streams discovery scans to WebSocket clients.
type Server struct {
	config *Config
	scan   ScanFunc
	http   *http.Server
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	s := &Server{
		config: config,
		scan:   discovery.ScanStream,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	s.http = &http.Server{
		Addr:              net.JoinHostPort(config.Host, fmt.Sprintf("%d", config.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logging.Info("WebSocket server listening",
			zap.String("addr", s.http.Addr),
		)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}
