package web

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mergington/activities-web/internal/catalog"
)

type fakeGateway struct {
	activitiesFunc func(context.Context) (catalog.Catalog, error)
	signupFunc     func(context.Context, string, string) (string, error)
	unregisterFunc func(context.Context, string, string) (string, error)

	activitiesCalls int
	signupCalls     int
	unregisterCalls int
}

func (f *fakeGateway) Activities(ctx context.Context) (catalog.Catalog, error) {
	f.activitiesCalls++
	if f.activitiesFunc == nil {
		return catalog.Catalog{}, nil
	}
	return f.activitiesFunc(ctx)
}

func (f *fakeGateway) Signup(ctx context.Context, activity string, email string) (string, error) {
	f.signupCalls++
	if f.signupFunc == nil {
		return "", nil
	}
	return f.signupFunc(ctx, activity, email)
}

func (f *fakeGateway) Unregister(ctx context.Context, activity string, email string) (string, error) {
	f.unregisterCalls++
	if f.unregisterFunc == nil {
		return "", nil
	}
	return f.unregisterFunc(ctx, activity, email)
}

func mustCatalog(t *testing.T, raw string) catalog.Catalog {
	t.Helper()
	var cat catalog.Catalog
	if err := json.Unmarshal([]byte(raw), &cat); err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func newTestHandler(gateway CatalogGateway) http.Handler {
	return NewHandler(gateway, nil)
}
