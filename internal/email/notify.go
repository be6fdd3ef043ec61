package email

import (
	"context"
	"fmt"

	brandingtransport "moveware_portal_backend/internal/branding/transport"
	mwservice "moveware_portal_backend/internal/moveware/service"
	"moveware_portal_backend/platform/events"
	"moveware_portal_backend/platform/logger"
)

// MailboxResolver looks up the tenant's back-office mailbox. Satisfied by
// the branding service.
type MailboxResolver interface {
	Snapshot(ctx context.Context, companyID string) (brandingtransport.BrandingResponse, error)
}

// QuoteAcceptedHandler emails the tenant back office when a customer accepts
// a quote. Delivery is best-effort; a failed send is logged, never retried.
type QuoteAcceptedHandler struct {
	sender    Sender
	mailboxes MailboxResolver
	log       *logger.Logger
}

// NewQuoteAcceptedHandler creates the notification handler.
func NewQuoteAcceptedHandler(sender Sender, mailboxes MailboxResolver, log *logger.Logger) *QuoteAcceptedHandler {
	return &QuoteAcceptedHandler{sender: sender, mailboxes: mailboxes, log: log}
}

// Subscribe registers the handler on the bus.
func (h *QuoteAcceptedHandler) Subscribe(bus events.Bus) {
	bus.Subscribe(mwservice.QuoteAcceptedEvent{}.EventName(), h)
}

// Handle implements events.Handler.
func (h *QuoteAcceptedHandler) Handle(ctx context.Context, event events.Event) error {
	accepted, ok := event.(mwservice.QuoteAcceptedEvent)
	if !ok {
		return nil
	}

	snap, err := h.mailboxes.Snapshot(ctx, accepted.CompanyID)
	if err != nil || snap.ContactEmail == "" {
		h.log.Warn("no notification mailbox for tenant", "company_id", accepted.CompanyID)
		return nil
	}

	total := ""
	if accepted.TotalPrice > 0 {
		total = fmt.Sprintf("%.2f %s", accepted.TotalPrice, accepted.Currency)
	}

	if err := h.sender.SendQuoteAcceptedEmail(ctx, snap.ContactEmail,
		accepted.MoveManager, accepted.JobID, accepted.QuoteID, accepted.OptionName, total); err != nil {
		h.log.BestEffortFailure("quote_accepted_email", err)
	}

	return nil
}

// Compile-time check that the handler implements events.Handler.
var _ events.Handler = (*QuoteAcceptedHandler)(nil)
