package web

import (
	"context"

	"github.com/mergington/activities-web/internal/catalog"
	apperrors "github.com/mergington/activities-web/internal/web/platform/errors"
)

// CatalogGateway performs activity operations against the upstream API.
// *catalog.Client is the production implementation.
type CatalogGateway interface {
	Activities(ctx context.Context) (catalog.Catalog, error)
	Signup(ctx context.Context, activity string, email string) (string, error)
	Unregister(ctx context.Context, activity string, email string) (string, error)
}

type unavailableGateway struct{}

func (unavailableGateway) Activities(context.Context) (catalog.Catalog, error) {
	return catalog.Catalog{}, apperrors.E(apperrors.KindUnavailable, "activities service is not configured")
}

func (unavailableGateway) Signup(context.Context, string, string) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "activities service is not configured")
}

func (unavailableGateway) Unregister(context.Context, string, string) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "activities service is not configured")
}
