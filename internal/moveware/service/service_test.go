package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	brandingtransport "moveware_portal_backend/internal/branding/transport"
	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/moveware/transport"
	"moveware_portal_backend/platform/logger"
)

type fakeCall struct {
	method string
	path   string
	body   any
}

// fakeTransport records calls and serves scripted responses per path prefix.
type fakeTransport struct {
	calls     []fakeCall
	responses map[string]map[string]any
	failGet   bool
	failPatch map[string]error
	failPost  error
}

func (f *fakeTransport) Get(ctx context.Context, creds client.Credentials, path string) (map[string]any, error) {
	f.calls = append(f.calls, fakeCall{method: "GET", path: path})
	if f.failGet {
		return nil, &client.UpstreamError{Status: 500, URL: path}
	}
	for prefix, resp := range f.responses {
		if strings.HasPrefix(path, prefix) {
			return resp, nil
		}
	}
	return map[string]any{}, nil
}

func (f *fakeTransport) Patch(ctx context.Context, creds client.Credentials, path string, body any) (map[string]any, error) {
	f.calls = append(f.calls, fakeCall{method: "PATCH", path: path, body: body})
	for prefix, err := range f.failPatch {
		if strings.HasPrefix(path, prefix) {
			return nil, err
		}
	}
	return map[string]any{}, nil
}

func (f *fakeTransport) Post(ctx context.Context, creds client.Credentials, path string, body any) (map[string]any, error) {
	f.calls = append(f.calls, fakeCall{method: "POST", path: path, body: body})
	if f.failPost != nil {
		return nil, f.failPost
	}
	return map[string]any{"id": "ACT-77"}, nil
}

func (f *fakeTransport) PostThenPatch(ctx context.Context, creds client.Credentials, postPath string, postBody any, patchPath func(id string) string, patchBody any) (map[string]any, error) {
	created, err := f.Post(ctx, creds, postPath, postBody)
	if err != nil {
		return nil, err
	}
	if id := client.CreatedID(created); id != "" {
		if _, err := f.Patch(ctx, creds, patchPath(id), patchBody); err != nil {
			// best-effort tail, swallowed like the real client
			_ = err
		}
	}
	return created, nil
}

func (f *fakeTransport) callsTo(method string) []fakeCall {
	var out []fakeCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

type fakeResolver struct {
	creds *client.Credentials
}

func (f *fakeResolver) ResolveCredentials(ctx context.Context, companyID string) *client.Credentials {
	return f.creds
}

type fakeBranding struct{}

func (fakeBranding) Snapshot(ctx context.Context, companyID string) (brandingtransport.BrandingResponse, error) {
	return brandingtransport.BrandingResponse{
		CompanyID:    companyID,
		DisplayName:  "Demo Removals",
		ContactEmail: "office@demo-removals.example",
	}, nil
}

type fakeConfig struct {
	retries int
	taxRate float64
}

func (f fakeConfig) GetMovewareBaseURL() string        { return "https://test.api.moveconnect.com" }
func (f fakeConfig) GetMovewareReadRetries() int       { return f.retries }
func (f fakeConfig) GetMovewareTaxRate() float64       { return f.taxRate }
func (f fakeConfig) GetMovewareTimeout() time.Duration { return time.Second }

func newTestService(ft *fakeTransport, creds *client.Credentials) *Service {
	return New(ft, &fakeResolver{creds: creds}, fakeBranding{}, fakeConfig{taxRate: 0.10}, logger.New("development"))
}

func liveCreds() *client.Credentials {
	return &client.Credentials{CompanyID: "CO1", Username: "api", Password: "secret"}
}

func TestQuotationNoCredentialsServesMock(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, nil)

	resp, err := svc.Quotation(context.Background(), "CO1", "248132")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceMock {
		t.Fatalf("expected mock source, got %q", resp.Source)
	}
	if resp.Job.ID != MockJobID {
		t.Fatalf("expected mock job id %d, got %d", MockJobID, resp.Job.ID)
	}
	if resp.Job.Branding.CompanyName != "Demo Removals" {
		t.Fatalf("mock job should still carry tenant branding, got %q", resp.Job.Branding.CompanyName)
	}
	if len(ft.calls) != 0 {
		t.Fatalf("expected no upstream calls without credentials, got %d", len(ft.calls))
	}
}

func TestQuotationUpstreamFailureDegradesToMock(t *testing.T) {
	ft := &fakeTransport{failGet: true}
	svc := newTestService(ft, liveCreds())

	resp, err := svc.Quotation(context.Background(), "CO1", "248132")
	if err != nil {
		t.Fatalf("read paths must never propagate upstream errors, got %v", err)
	}
	if resp.Source != transport.SourceMock {
		t.Fatalf("expected mock source after failure, got %q", resp.Source)
	}
}

func TestQuotationLiveReadAdaptsPayload(t *testing.T) {
	ft := &fakeTransport{responses: map[string]map[string]any{
		"/CO1/api/jobs/42": {
			"id":        float64(42),
			"firstName": "Jane",
			"lastName":  "Doe",
		},
	}}
	svc := newTestService(ft, liveCreds())

	resp, err := svc.Quotation(context.Background(), "CO1", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceLive {
		t.Fatalf("expected live source, got %q", resp.Source)
	}
	if resp.Job.ID != 42 || resp.Job.FirstName != "Jane" {
		t.Fatalf("unexpected job: %+v", resp.Job)
	}
}

func TestReadRetriesBeforeFallingBack(t *testing.T) {
	ft := &fakeTransport{failGet: true}
	svc := New(ft, &fakeResolver{creds: liveCreds()}, fakeBranding{}, fakeConfig{retries: 2}, logger.New("development"))

	_, err := svc.Inventory(context.Background(), "CO1", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(ft.callsTo("GET")); got != 3 {
		t.Fatalf("expected 3 GET attempts (1 + 2 retries), got %d", got)
	}
}

func TestSummaryCombinesReadPaths(t *testing.T) {
	ft := &fakeTransport{responses: map[string]map[string]any{
		"/CO1/api/jobs/42/options":   {"data": []any{}},
		"/CO1/api/jobs/42/inventory": {"inventoryUsage": []any{}},
		"/CO1/api/jobs/42":           {"id": float64(42)},
	}}
	svc := newTestService(ft, liveCreds())

	resp, err := svc.Summary(context.Background(), "CO1", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceLive {
		t.Fatalf("expected live source, got %q", resp.Source)
	}
	if resp.Job.ID != 42 {
		t.Fatalf("expected job 42, got %d", resp.Job.ID)
	}
}

func TestSubmitReviewMockAcknowledgesWithoutCredentials(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, nil)

	result, err := svc.SubmitReview(context.Background(), "CO1", "42", transport.SubmitReviewRequest{
		Rating: 5, Name: "Jane",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["source"] != transport.SourceMock {
		t.Fatalf("expected mock acknowledgement, got %v", result)
	}
	if len(ft.calls) != 0 {
		t.Fatal("expected no upstream calls without credentials")
	}
}

func TestSubmitReviewPropagatesUpstreamFailure(t *testing.T) {
	ft := &fakeTransport{failPost: errors.New("boom")}
	svc := newTestService(ft, liveCreds())

	if _, err := svc.SubmitReview(context.Background(), "CO1", "42", transport.SubmitReviewRequest{Rating: 4, Name: "Jane"}); err == nil {
		t.Fatal("expected review submission failure to propagate")
	}
}
