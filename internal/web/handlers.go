package web

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/mergington/activities-web/internal/catalog"
	apperrors "github.com/mergington/activities-web/internal/web/platform/errors"
	"github.com/mergington/activities-web/internal/web/platform/flash"
	"github.com/mergington/activities-web/internal/web/platform/httpx"
	"github.com/mergington/activities-web/internal/web/templates"
)

const pageTitle = "Mergington High School Activities"

// activityService defines the service operations used by web handlers.
type activityService interface {
	listActivities(ctx context.Context) (catalog.Catalog, error)
	signup(ctx context.Context, activity string, email string) (string, error)
	unregister(ctx context.Context, activity string, email string) (string, error)
}

type handlers struct {
	service activityService
	loc     *message.Printer
}

func newHandlers(s activityService, loc *message.Printer) handlers {
	return handlers{service: s, loc: loc}
}

// handleIndex renders the activity list and signup form. A catalog failure
// still renders the page, with the list area replaced by a failure note.
func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	var toast *templates.Toast
	if notice, ok := flash.Read(w, r); ok {
		toast = &templates.Toast{Kind: string(notice.Kind), Message: notice.Message}
	}

	cat, err := h.service.listActivities(httpx.RequestContext(r))
	var body templ.Component
	if err != nil {
		body = templates.FetchFailure(h.loc)
	} else {
		body = templates.ActivitiesPage(activityCards(cat), cat.Names(), h.loc)
	}
	h.writePage(w, r, http.StatusOK, toast, body)
}

func (h handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	activity := r.FormValue("activity")
	email := r.FormValue("email")
	msg, err := h.service.signup(httpx.RequestContext(r), activity, email)
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}
	if msg == "" {
		msg = h.loc.Sprintf("Signed up %s for %s", email, activity)
	}
	flash.Write(w, r, flash.Success(msg))
	httpx.WriteRedirect(w, r, "/")
}

func (h handlers) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("activity")
	email := r.FormValue("email")
	msg, err := h.service.unregister(httpx.RequestContext(r), activity, email)
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}
	if msg == "" {
		msg = h.loc.Sprintf("Unregistered %s from %s", email, activity)
	}
	flash.Write(w, r, flash.Success(msg))
	httpx.WriteRedirect(w, r, "/")
}

func (h handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeMutationError reports a failed action without refetching the catalog.
// The page keeps the state the user acted on; only the notice changes.
func (h handlers) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	toast := templates.Toast{
		Kind:    string(flash.KindError),
		Message: apperrors.Message(err, h.loc.Sprintf("An error occurred")),
	}
	status := apperrors.HTTPStatus(err)
	if httpx.IsHTMXRequest(r) {
		h.writeComponent(w, r, status, templates.Banner(toast))
		return
	}
	h.writePage(w, r, status, &toast, templates.BackLink(h.loc))
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, status int, toast *templates.Toast, body templ.Component) {
	h.writeComponent(w, r, status, templates.Page(pageTitle, toast, body))
}

// writeComponent renders into a buffer first so a render failure becomes a
// clean 500 instead of a truncated page.
func (h handlers) writeComponent(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		log.Printf("render page path=%s: %v", r.URL.Path, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
