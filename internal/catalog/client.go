package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// StatusError reports an upstream response outside the 2xx range. Detail
// carries the server's optional `detail` field and may be empty.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error renders the status and any server-supplied detail.
func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Detail)
}

// Client consumes the activities REST API at a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	return &Client{
		baseURL: baseURL,
		// No Timeout on purpose: the upstream contract has no deadline and a
		// hung request must hang the action rather than be cut short. Callers
		// cancel through the context.
		httpClient: &http.Client{},
		tracer:     otel.Tracer("catalog"),
	}, nil
}

// Activities fetches the full catalog. The result replaces any prior state
// wholesale; nothing is cached between calls.
func (c *Client) Activities(ctx context.Context) (Catalog, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.Activities")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("build activities request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return Catalog{}, fmt.Errorf("fetch activities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		span.RecordError(statusErr)
		return Catalog{}, statusErr
	}

	var cat Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		span.RecordError(err)
		return Catalog{}, fmt.Errorf("decode activities: %w", err)
	}
	return cat, nil
}

// Signup registers email for the named activity and returns the server's
// confirmation message.
func (c *Client) Signup(ctx context.Context, activity string, email string) (string, error) {
	return c.mutate(ctx, "catalog.Signup", http.MethodPost, activity, "signup", email)
}

// Unregister removes email from the named activity and returns the server's
// confirmation message.
func (c *Client) Unregister(ctx context.Context, activity string, email string) (string, error) {
	return c.mutate(ctx, "catalog.Unregister", http.MethodDelete, activity, "unregister", email)
}

func (c *Client) mutate(ctx context.Context, spanName string, method string, activity string, action string, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, spanName)
	defer span.End()

	// Both values travel verbatim: the activity name percent-encoded in the
	// path, the email percent-encoded in the query.
	endpoint := c.baseURL + "/activities/" + url.PathEscape(activity) + "/" + action +
		"?" + url.Values{"email": []string{email}}.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", action, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("%s %q: %w", action, activity, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		span.RecordError(statusErr)
		return "", statusErr
	}

	var body struct {
		Message string `json:"message"`
	}
	// A malformed success body yields an empty message, not a failure: the
	// outcome is decided by the status code alone.
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", nil
	}
	return body.Message, nil
}

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

func decodeDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
