package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mergington/activities-web/internal/catalog"
	"github.com/mergington/activities-web/internal/web/platform/flash"
)

const sampleCatalogJSON = `{
	"Chess Club": {
		"description": "Learn strategies and compete in tournaments",
		"schedule": "Fridays, 3:30 PM - 5:00 PM",
		"max_participants": 12,
		"participants": ["michael@mergington.edu", "daniel@mergington.edu"]
	},
	"Programming Class": {
		"description": "Learn programming fundamentals",
		"schedule": "Tuesdays, 3:30 PM - 4:30 PM",
		"max_participants": 20,
		"participants": []
	}
}`

func postForm(handler http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flash.CookieName {
			return cookie
		}
	}
	return nil
}

func TestIndexRendersCatalog(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		activitiesFunc: func(context.Context) (catalog.Catalog, error) {
			return mustCatalog(t, sampleCatalogJSON), nil
		},
	}
	handler := newTestHandler(gateway)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Chess Club",
		"Programming Class",
		"michael@mergington.edu",
		"10 spots left",
		"No participants yet",
		"id=\"signup-form\"",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Index(body, "Chess Club") > strings.Index(body, "Programming Class") {
		t.Error("activities rendered out of catalog order")
	}
}

func TestIndexRendersFetchFailure(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		activitiesFunc: func(context.Context) (catalog.Catalog, error) {
			return catalog.Catalog{}, errors.New("connection refused")
		},
	}
	handler := newTestHandler(gateway)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Failed to load activities. Please try again later.") {
		t.Error("page missing fetch failure note")
	}
	if strings.Contains(body, "id=\"signup-form\"") {
		t.Error("signup form rendered despite fetch failure")
	}
}

func TestIndexShowsFlashNotice(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	// First request writes the notice cookie via a successful signup.
	rec := postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"kid@mergington.edu"},
	})
	cookie := flashCookie(rec)
	if cookie == nil {
		t.Fatal("signup did not set a notice cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	pageRec := httptest.NewRecorder()
	handler.ServeHTTP(pageRec, req)

	body := pageRec.Body.String()
	if !strings.Contains(body, "id=\"message\"") || !strings.Contains(body, "class=\"message success\"") {
		t.Error("page missing success notice banner")
	}
}

func TestSignupSuccessRedirects(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		signupFunc: func(_ context.Context, activity string, email string) (string, error) {
			if activity != "Chess Club" || email != "kid@mergington.edu" {
				t.Errorf("signup called with (%q, %q)", activity, email)
			}
			return "Signed up kid@mergington.edu for Chess Club", nil
		},
	}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"kid@mergington.edu"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("redirect location = %q, want /", loc)
	}
	if flashCookie(rec) == nil {
		t.Error("success did not set a notice cookie")
	}
}

func TestSignupSuccessHTMXRedirect(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	form := url.Values{"activity": {"Chess Club"}, "email": {"kid@mergington.edu"}}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Fatalf("HX-Redirect = %q, want /", got)
	}
}

func TestSignupRejectionShowsDetailWithoutRefetch(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		signupFunc: func(context.Context, string, string) (string, error) {
			return "", &catalog.StatusError{StatusCode: http.StatusBadRequest, Detail: "Student already signed up for this activity"}
		},
	}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"michael@mergington.edu"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Student already signed up for this activity") {
		t.Error("page missing server detail message")
	}
	if !strings.Contains(body, "class=\"message error\"") {
		t.Error("page missing error banner")
	}
	if flashCookie(rec) != nil {
		t.Error("failure set a notice cookie")
	}
	if gateway.activitiesCalls != 0 {
		t.Errorf("failure refetched catalog %d times", gateway.activitiesCalls)
	}
}

func TestSignupTransportFailureShowsRetryMessage(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		signupFunc: func(context.Context, string, string) (string, error) {
			return "", errors.New("dial tcp: connection refused")
		},
	}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/signup", url.Values{
		"activity": {"Chess Club"},
		"email":    {"kid@mergington.edu"},
	})

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rec.Body.String(), "Failed to sign up. Please try again.") {
		t.Error("page missing retry message")
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("raw transport error leaked into the page")
	}
}

func TestSignupErrorAsHTMXFragment(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		signupFunc: func(context.Context, string, string) (string, error) {
			return "", &catalog.StatusError{StatusCode: http.StatusNotFound, Detail: "Activity not found"}
		},
	}
	handler := newTestHandler(gateway)

	form := url.Values{"activity": {"Ghost Club"}, "email": {"kid@mergington.edu"}}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("fragment response carried the full page shell")
	}
	if !strings.Contains(body, "Activity not found") {
		t.Error("fragment missing server detail message")
	}
}

func TestSignupMissingFieldsRejected(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/signup", url.Values{"email": {"kid@mergington.edu"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if gateway.signupCalls != 0 {
		t.Errorf("gateway called %d times for invalid input", gateway.signupCalls)
	}
}

func TestUnregisterDecodesActivityFromPath(t *testing.T) {
	t.Parallel()

	var gotActivity, gotEmail string
	gateway := &fakeGateway{
		unregisterFunc: func(_ context.Context, activity string, email string) (string, error) {
			gotActivity = activity
			gotEmail = email
			return "Unregistered michael@mergington.edu from Chess Club", nil
		},
	}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/activities/Chess%20Club/unregister", url.Values{
		"email": {"michael@mergington.edu"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if gotActivity != "Chess Club" {
		t.Errorf("activity = %q, want %q", gotActivity, "Chess Club")
	}
	if gotEmail != "michael@mergington.edu" {
		t.Errorf("email = %q, want %q", gotEmail, "michael@mergington.edu")
	}
}

func TestUnregisterRejectionShowsDetail(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		unregisterFunc: func(context.Context, string, string) (string, error) {
			return "", &catalog.StatusError{StatusCode: http.StatusBadRequest, Detail: "Student not signed up for this activity"}
		},
	}
	handler := newTestHandler(gateway)

	rec := postForm(handler, "/activities/Chess%20Club/unregister", url.Values{
		"email": {"ghost@mergington.edu"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Student not signed up for this activity") {
		t.Error("page missing server detail message")
	}
}

func TestRouteMethodGuards(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "get signup", method: http.MethodGet, target: "/signup", want: http.StatusMethodNotAllowed},
		{name: "get unregister", method: http.MethodGet, target: "/activities/Chess%20Club/unregister", want: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, target: "/nope", want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStaticStylesheetServed(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(&fakeGateway{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/styles.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), ".activity-card") {
		t.Error("stylesheet missing activity card rules")
	}
}
