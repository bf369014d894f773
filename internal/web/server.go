// Package web serves the activity sign-up frontend.
//
// The frontend holds no activity state of its own. Every page load refetches
// the catalog from the upstream API; signups and unregistrations are proxied
// through and answered with a redirect back to the list on success, or with a
// notice page on failure.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mergington/activities-web/internal/catalog"
	"github.com/mergington/activities-web/internal/telemetry"
	"github.com/mergington/activities-web/internal/web/i18n"
	"github.com/mergington/activities-web/internal/web/platform/httpx"
	webstorage "github.com/mergington/activities-web/internal/web/storage"
	"github.com/mergington/activities-web/internal/web/storage/sqlite"
)

// Config holds web server settings.
type Config struct {
	// HTTPAddr is the listen address, for example "localhost:8080".
	HTTPAddr string
	// APIBaseURL is the upstream activities API, for example "http://localhost:8000".
	APIBaseURL string
	// DiagnosticsDBPath enables the local failure-event store when non-empty.
	DiagnosticsDBPath string
}

// Server is the HTTP server for the activity frontend.
type Server struct {
	httpServer *http.Server
	store      *sqlite.Store
}

// New builds a server from configuration, opening the upstream client and the
// optional diagnostics store.
func New(cfg Config) (*Server, error) {
	client, err := catalog.NewClient(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}

	var store *sqlite.Store
	var diagnostics webstorage.DiagnosticsStore
	if cfg.DiagnosticsDBPath != "" {
		store, err = sqlite.Open(cfg.DiagnosticsDBPath)
		if err != nil {
			return nil, err
		}
		diagnostics = store
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           NewHandler(client, diagnostics),
			ReadHeaderTimeout: 5 * time.Second,
		},
		store: store,
	}, nil
}

// NewHandler builds the full web handler over the given gateway. The
// diagnostics store may be nil.
func NewHandler(gateway CatalogGateway, diagnostics webstorage.DiagnosticsStore) http.Handler {
	svc := newService(gateway, telemetry.NewEmitter(diagnostics))
	h := newHandlers(svc, i18n.Printer(i18n.Default()))
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())
}

// ListenAndServe runs the server until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Close releases server-owned resources.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
