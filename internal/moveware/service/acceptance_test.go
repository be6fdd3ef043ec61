package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/moveware/transport"
	"moveware_portal_backend/platform/events"
	"moveware_portal_backend/platform/logger"
)

func acceptReq() transport.AcceptQuoteRequest {
	return transport.AcceptQuoteRequest{OptionID: "OPT-1", MoveDate: "2026-09-15"}
}

func TestAcceptQuoteMockAcknowledgesWithoutCredentials(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, nil)

	resp, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", acceptReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Source != transport.SourceMock || !resp.Accepted {
		t.Fatalf("expected mock acknowledgement, got %+v", resp)
	}
	if len(ft.calls) != 0 {
		t.Fatal("expected no upstream calls without credentials")
	}
}

func TestAcceptQuoteRunsStepsInOrder(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, liveCreds())

	resp, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", acceptReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Accepted || resp.Source != transport.SourceLive {
		t.Fatalf("expected live acceptance, got %+v", resp)
	}
	if resp.ActivityID != "ACT-77" {
		t.Fatalf("expected activity id from POST response, got %q", resp.ActivityID)
	}

	patches := ft.callsTo("PATCH")
	if len(patches) != 3 {
		t.Fatalf("expected quotation, job and activity PATCHes, got %d", len(patches))
	}
	if !strings.Contains(patches[0].path, "/quotations/Q1") {
		t.Fatalf("first patch should hit the quotation, got %s", patches[0].path)
	}
	quoteBody, ok := patches[0].body.(map[string]any)
	if !ok || quoteBody["status"] != "Accepted" {
		t.Fatalf("quotation patch should mark Accepted, got %v", patches[0].body)
	}
	jobBody, ok := patches[1].body.(map[string]any)
	if !ok || jobBody["status"] != "W" {
		t.Fatalf("job patch should set status W, got %v", patches[1].body)
	}
	move, ok := jobBody["estimatedMove"].(map[string]any)
	if !ok || move["date"] != "2026-09-15" {
		t.Fatalf("job patch should carry the move date, got %v", jobBody)
	}
	if !strings.Contains(patches[2].path, "/activities/ACT-77") {
		t.Fatalf("final patch should complete the activity, got %s", patches[2].path)
	}

	posts := ft.callsTo("POST")
	if len(posts) != 1 {
		t.Fatalf("expected one activity POST, got %d", len(posts))
	}
	actBody := posts[0].body.(map[string]any)
	if actBody["description"] != activityDescription {
		t.Fatalf("unexpected activity description: %v", actBody["description"])
	}
}

func TestAcceptQuoteMoveDateOmittedWhenAbsent(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, liveCreds())

	req := acceptReq()
	req.MoveDate = ""
	if _, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jobBody := ft.callsTo("PATCH")[1].body.(map[string]any)
	if _, present := jobBody["estimatedMove"]; present {
		t.Fatal("estimatedMove must be omitted when no date was supplied")
	}
}

func TestAcceptQuoteFirstStepFailureStopsEverything(t *testing.T) {
	ft := &fakeTransport{failPatch: map[string]error{
		"/CO1/api/jobs/42/quotations/Q1": &client.UpstreamError{Status: 500, URL: "/CO1/api/jobs/42/quotations/Q1"},
	}}
	svc := newTestService(ft, liveCreds())

	_, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", acceptReq())
	if err == nil {
		t.Fatal("expected first-step failure to propagate")
	}
	if len(ft.callsTo("POST")) != 0 {
		t.Fatal("no activity may be created after a fatal step failure")
	}
	if got := len(ft.callsTo("PATCH")); got != 1 {
		t.Fatalf("expected only the failing quotation patch, got %d", got)
	}
}

func TestAcceptQuoteActivityCompletionFailureIsSwallowed(t *testing.T) {
	ft := &fakeTransport{failPatch: map[string]error{
		"/CO1/api/jobs/42/activities/": &client.UpstreamError{Status: 500, URL: "activities"},
	}}
	svc := newTestService(ft, liveCreds())

	resp, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", acceptReq())
	if err != nil {
		t.Fatalf("activity completion failure must not fail the acceptance: %v", err)
	}
	if !resp.Accepted {
		t.Fatalf("expected overall success, got %+v", resp)
	}
}

func TestAcceptQuotePublishesEvent(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(ft, liveCreds())

	bus := events.NewInMemoryBus(logger.New("development"))
	svc.SetEventBus(bus)

	var mu sync.Mutex
	var received *QuoteAcceptedEvent
	done := make(chan struct{})
	bus.Subscribe(QuoteAcceptedEvent{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		if evt, ok := e.(QuoteAcceptedEvent); ok {
			received = &evt
			close(done)
		}
		return nil
	}))

	if _, err := svc.AcceptQuote(context.Background(), "CO1", "42", "Q1", acceptReq()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	<-done
	mu.Lock()
	defer mu.Unlock()
	if received == nil || received.QuoteID != "Q1" || received.CompanyID != "CO1" {
		t.Fatalf("unexpected event: %+v", received)
	}
}

func TestAcceptanceNotesRenderChargeLines(t *testing.T) {
	notes := acceptanceNotes(transport.Costing{
		Name: "Full Service Move",
		Charges: []transport.CostingCharge{
			{Heading: "Removal", UnitPrice: 2800, Currency: "AUD"},
			{Heading: "Packing", UnitPrice: 700, Currency: "AUD"},
		},
	}, "OPT-1")

	lines := strings.Split(notes, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two charge lines, got %q", notes)
	}
	if lines[1] != "Removal: 2800.00 AUD" {
		t.Fatalf("unexpected charge line: %q", lines[1])
	}
}

func TestAcceptanceNotesFallbackWithoutCharges(t *testing.T) {
	notes := acceptanceNotes(transport.Costing{}, "OPT-9")
	if !strings.Contains(notes, "OPT-9") {
		t.Fatalf("fallback notes should name the option, got %q", notes)
	}
}
