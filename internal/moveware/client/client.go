// Package client implements the authenticated HTTP transport for the
// Moveware REST API. It issues one upstream call per invocation, attaches the
// tenant credential headers, and raises a uniform *UpstreamError on any
// non-2xx response. Retry and fallback policy live with the callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	headerCompanyID = "mw-company-id"
	headerUsername  = "mw-username"
	headerPassword  = "mw-password"
)

// Credentials is the per-tenant auth triple plus the base URL scoping a call.
// Values are resolved per request and never held beyond it.
type Credentials struct {
	CompanyID string
	Username  string
	Password  string
	BaseURL   string
}

// UpstreamError is the uniform transport failure for non-2xx responses.
// Body is truncated so errors stay diagnosable without bloating logs.
type UpstreamError struct {
	Status int
	URL    string
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("moveware upstream %d at %s: %s", e.Status, e.URL, e.Body)
}

// Client issues authenticated requests against the Moveware REST API.
// It is safe for concurrent use; credentials are passed per call, never stored.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// New creates a transport client with an explicit per-call timeout and a
// shared upstream rate limiter.
func New(timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		log:     log,
	}
}

// Get issues a GET against path and decodes the JSON object response.
func (c *Client) Get(ctx context.Context, creds Credentials, path string) (map[string]any, error) {
	return c.do(ctx, creds, http.MethodGet, path, nil)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, creds Credentials, path string, body any) (map[string]any, error) {
	return c.do(ctx, creds, http.MethodPatch, path, body)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, creds Credentials, path string, body any) (map[string]any, error) {
	return c.do(ctx, creds, http.MethodPost, path, body)
}

// PostThenPatch creates a resource and immediately patches it. The POST is
// authoritative: its failure propagates. The follow-up PATCH is best-effort:
// when the created id cannot be determined from the response, the PATCH is
// skipped with a warning; when the PATCH itself fails, the failure is logged
// and swallowed. Either way the POST response is returned.
func (c *Client) PostThenPatch(ctx context.Context, creds Credentials, postPath string, postBody any, patchPath func(id string) string, patchBody any) (map[string]any, error) {
	created, err := c.Post(ctx, creds, postPath, postBody)
	if err != nil {
		return nil, err
	}

	id := CreatedID(created)
	if id == "" {
		c.log.Warn("created resource id not found in response, skipping follow-up patch",
			"path", postPath)
		return created, nil
	}

	if _, err := c.Patch(ctx, creds, patchPath(id), patchBody); err != nil {
		c.log.BestEffortFailure("patch "+patchPath(id), err)
	}

	return created, nil
}

// CreatedID extracts the id of a freshly created resource, checking the three
// locations historical API versions have used: a root "id", a nested
// "data.id", and the trailing segment of "links.full".
func CreatedID(created map[string]any) string {
	if id := fields.Str(fields.Pick(created, "id")); id != "" {
		return id
	}
	if id := fields.Str(fields.Pick(fields.AsMap(created["data"]), "id")); id != "" {
		return id
	}
	full := fields.Str(fields.Dig(created, "links", "full"))
	if full == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(full, "/"), "/")
	return parts[len(parts)-1]
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, body any) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := strings.TrimRight(creds.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal moveware payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	// The upstream API authenticates on raw header values, not Basic auth.
	req.Header.Set(headerCompanyID, creds.CompanyID)
	req.Header.Set(headerUsername, creds.Username)
	req.Header.Set(headerPassword, creds.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moveware request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read moveware response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		truncated := logger.TruncateBody(string(data))
		upErr := &UpstreamError{Status: resp.StatusCode, URL: url, Body: truncated}
		c.log.UpstreamError(method+" "+path, url, resp.StatusCode, truncated, nil)
		return nil, upErr
	}

	// 204 or an empty body is a successful call with nothing to decode.
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		// Some endpoints answer with a bare array; re-wrap it so callers
		// always see an object.
		var arr []any
		if arrErr := json.Unmarshal(data, &arr); arrErr == nil {
			return map[string]any{"data": arr}, nil
		}
		return nil, fmt.Errorf("decode moveware response: %w", err)
	}

	return decoded, nil
}
