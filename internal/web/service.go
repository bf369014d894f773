package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mergington/activities-web/internal/catalog"
	"github.com/mergington/activities-web/internal/telemetry"
	apperrors "github.com/mergington/activities-web/internal/web/platform/errors"
	"github.com/mergington/activities-web/internal/web/platform/metrics"
	"github.com/mergington/activities-web/internal/web/storage"
)

type service struct {
	gateway CatalogGateway
	emitter *telemetry.Emitter
}

func newService(gateway CatalogGateway, emitter *telemetry.Emitter) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, emitter: emitter}
}

func (s service) listActivities(ctx context.Context) (catalog.Catalog, error) {
	cat, err := s.gateway.Activities(ctx)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(metrics.ResultError).Inc()
		s.recordFailure(ctx, storage.OpFetch, "catalog", err)
		log.Printf("catalog fetch failed: %v", err)
		return catalog.Catalog{}, err
	}
	metrics.CatalogFetches.WithLabelValues(metrics.ResultOK).Inc()
	return cat, nil
}

func (s service) signup(ctx context.Context, activity string, email string) (string, error) {
	activity, email, err := requireActivityAndEmail(activity, email)
	if err != nil {
		return "", err
	}
	msg, err := s.gateway.Signup(ctx, activity, email)
	if err != nil {
		metrics.Mutations.WithLabelValues(storage.OpSignup, metrics.ResultError).Inc()
		s.recordFailure(ctx, storage.OpSignup, activity, err)
		log.Printf("signup failed activity=%q email=%q: %v", activity, email, err)
		return "", mapMutationError(err, "Failed to sign up. Please try again.")
	}
	metrics.Mutations.WithLabelValues(storage.OpSignup, metrics.ResultOK).Inc()
	return msg, nil
}

func (s service) unregister(ctx context.Context, activity string, email string) (string, error) {
	activity, email, err := requireActivityAndEmail(activity, email)
	if err != nil {
		return "", err
	}
	msg, err := s.gateway.Unregister(ctx, activity, email)
	if err != nil {
		metrics.Mutations.WithLabelValues(storage.OpUnregister, metrics.ResultError).Inc()
		s.recordFailure(ctx, storage.OpUnregister, activity, err)
		log.Printf("unregister failed activity=%q email=%q: %v", activity, email, err)
		return "", mapMutationError(err, "Failed to unregister. Please try again.")
	}
	metrics.Mutations.WithLabelValues(storage.OpUnregister, metrics.ResultOK).Inc()
	return msg, nil
}

func (s service) recordFailure(ctx context.Context, op string, target string, cause error) {
	err := s.emitter.Emit(ctx, storage.FailureEvent{Op: op, Target: target, Detail: cause.Error()})
	if err != nil {
		log.Printf("record failure event op=%s: %v", op, err)
	}
}

func requireActivityAndEmail(activity string, email string) (string, string, error) {
	activity = strings.TrimSpace(activity)
	email = strings.TrimSpace(email)
	if activity == "" || email == "" {
		return "", "", apperrors.E(apperrors.KindInvalidInput, "Email and activity are required")
	}
	return activity, email, nil
}

// mapMutationError converts an upstream failure into a typed error whose
// message is safe to show. A rejection carries the server's detail text; an
// unreachable upstream carries the operation's retry message.
func mapMutationError(err error, unreachableMessage string) error {
	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) {
		msg := strings.TrimSpace(statusErr.Detail)
		if msg == "" {
			msg = "An error occurred"
		}
		return apperrors.E(kindForStatus(statusErr.StatusCode), msg)
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.E(apperrors.KindUnavailable, unreachableMessage)
}

func kindForStatus(code int) apperrors.Kind {
	switch {
	case code == http.StatusNotFound:
		return apperrors.KindNotFound
	case code == http.StatusConflict:
		return apperrors.KindConflict
	case code >= 400 && code < 500:
		return apperrors.KindInvalidInput
	default:
		return apperrors.KindUnavailable
	}
}
