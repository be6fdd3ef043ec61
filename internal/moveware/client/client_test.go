package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"moveware_portal_backend/platform/logger"
)

func testCreds(baseURL string) Credentials {
	return Credentials{CompanyID: "acme", Username: "api", Password: "secret", BaseURL: baseURL}
}

func TestGet_AttachesCredentialHeaders(t *testing.T) {
	var gotCompany, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCompany = r.Header.Get("mw-company-id")
		gotUser = r.Header.Get("mw-username")
		gotPass = r.Header.Get("mw-password")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer srv.Close()

	c := New(time.Second, logger.New("development"))
	resp, err := c.Get(context.Background(), testCreds(srv.URL), "/acme/api/jobs/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", resp["id"])
	}
	if gotCompany != "acme" || gotUser != "api" || gotPass != "secret" {
		t.Fatalf("credential headers not attached: %q %q %q", gotCompany, gotUser, gotPass)
	}
}

func TestDo_NonTwoHundredRaisesTruncatedUpstreamError(t *testing.T) {
	longBody := strings.Repeat("x", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv.Close()

	c := New(time.Second, logger.New("development"))
	_, err := c.Get(context.Background(), testCreds(srv.URL), "/acme/api/jobs/1")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upErr.Status != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", upErr.Status)
	}
	if len(upErr.Body) != 300 {
		t.Fatalf("expected body truncated to 300 chars, got %d", len(upErr.Body))
	}
	if !strings.Contains(upErr.URL, "/acme/api/jobs/1") {
		t.Fatalf("expected URL on error, got %q", upErr.URL)
	}
}

func TestDo_EmptyBodyIsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(time.Second, logger.New("development"))
	resp, err := c.Patch(context.Background(), testCreds(srv.URL), "/acme/api/jobs/1", map[string]any{"status": "W"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp) != 0 {
		t.Fatalf("expected empty object for 204, got %v", resp)
	}
}

func TestPostThenPatch_PatchFailureIsSwallowed(t *testing.T) {
	var patchCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data": {"id": 987}}`))
			return
		}
		patchCalled = true
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(time.Second, logger.New("development"))
	created, err := c.PostThenPatch(context.Background(), testCreds(srv.URL),
		"/acme/api/jobs/1/activities", map[string]any{"description": "x"},
		func(id string) string { return "/acme/api/jobs/1/activities/" + id },
		map[string]any{"completed": "Y"})
	if err != nil {
		t.Fatalf("expected patch failure to be swallowed, got %v", err)
	}
	if !patchCalled {
		t.Fatal("expected follow-up patch to be attempted")
	}
	if CreatedID(created) != "987" {
		t.Fatalf("expected created id 987, got %q", CreatedID(created))
	}
}

func TestPostThenPatch_MissingIDSkipsPatch(t *testing.T) {
	var patchCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok": true}`))
			return
		}
		patchCalled = true
	}))
	defer srv.Close()

	c := New(time.Second, logger.New("development"))
	_, err := c.PostThenPatch(context.Background(), testCreds(srv.URL),
		"/acme/api/jobs/1/activities", nil,
		func(id string) string { return "/acme/api/jobs/1/activities/" + id }, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patchCalled {
		t.Fatal("expected patch to be skipped when id is undeterminable")
	}
}

func TestCreatedID_Candidates(t *testing.T) {
	if id := CreatedID(map[string]any{"id": float64(12)}); id != "12" {
		t.Fatalf("expected 12, got %q", id)
	}
	if id := CreatedID(map[string]any{"data": map[string]any{"id": "abc"}}); id != "abc" {
		t.Fatalf("expected abc, got %q", id)
	}
	links := map[string]any{"links": map[string]any{"full": "https://host/api/jobs/1/activities/456"}}
	if id := CreatedID(links); id != "456" {
		t.Fatalf("expected 456, got %q", id)
	}
	if id := CreatedID(map[string]any{}); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}
