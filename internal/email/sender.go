// Package email delivers back-office notification mail for the quoting app.
package email

import "context"

// Sender delivers notification emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendQuoteAcceptedEmail(ctx context.Context, toEmail, moveManager, jobID, quoteID, optionName, totalFormatted string) error
}

// NoopSender is used when email delivery is not configured.
type NoopSender struct{}

func (NoopSender) SendQuoteAcceptedEmail(ctx context.Context, toEmail, moveManager, jobID, quoteID, optionName, totalFormatted string) error {
	return nil
}
