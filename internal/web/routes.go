package web

import (
	"net/http"

	"github.com/mergington/activities-web/internal/web/platform/httpx"
	"github.com/mergington/activities-web/internal/web/platform/metrics"
	"github.com/mergington/activities-web/internal/web/static"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("GET /signup", httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("POST /activities/{activity}/unregister", h.handleUnregister)
	mux.HandleFunc("GET /activities/{activity}/unregister", httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))
}
