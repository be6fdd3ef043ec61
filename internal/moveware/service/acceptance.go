package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moveware_portal_backend/internal/moveware/adapter"
	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/moveware/transport"
	"moveware_portal_backend/platform/apperr"
	"moveware_portal_backend/platform/events"
)

// activityDescription is the fixed diary entry title written upstream when a
// customer accepts a quote.
const activityDescription = "Online Customer Quote Accepted"

// QuoteAcceptedEvent is published after a successful acceptance.
type QuoteAcceptedEvent struct {
	events.BaseEvent
	CompanyID   string
	JobID       string
	QuoteID     string
	OptionID    string
	OptionName  string
	TotalPrice  float64
	Currency    string
	MoveManager string
	ActivityID  string
}

// EventName returns the event type identifier.
func (e QuoteAcceptedEvent) EventName() string {
	return "moveware.quote.accepted"
}

// acceptanceStep is one sequential upstream write in the acceptance flow.
// Fatal steps propagate their error and stop the run; the composite activity
// step handles its own best-effort tail internally.
type acceptanceStep struct {
	name  string
	fatal bool
	run   func(ctx context.Context) error
}

// AcceptQuote drives the acceptance write-back against the upstream:
// quotation marked accepted, job status updated, a diary activity created
// and best-effort completed. There is no rollback on partial failure; the
// upstream operators reconcile by hand when a later step fails.
func (s *Service) AcceptQuote(ctx context.Context, coID, jobID, quoteID string, req transport.AcceptQuoteRequest) (transport.AcceptanceResponse, error) {
	creds := s.resolve(ctx, coID)
	if creds == nil {
		s.log.MockFallback("accept_quote", coID, "no credentials configured")
		return transport.AcceptanceResponse{
			Source:   transport.SourceMock,
			Accepted: true,
			QuoteID:  quoteID,
		}, nil
	}

	accepted := s.acceptedOption(ctx, *creds, coID, jobID, quoteID, req.OptionID)
	now := time.Now()
	var activityID string

	steps := []acceptanceStep{
		{
			name:  "mark_quotation_accepted",
			fatal: true,
			run: func(ctx context.Context) error {
				_, err := s.transport.Patch(ctx, *creds, quotationPath(coID, jobID, quoteID), map[string]any{
					"quotationDate": now.Format("2006-01-02"),
					"status":        "Accepted",
				})
				return err
			},
		},
		{
			name:  "update_job_status",
			fatal: true,
			run: func(ctx context.Context) error {
				body := map[string]any{"status": "W"}
				if req.MoveDate != "" {
					body["estimatedMove"] = map[string]any{"date": req.MoveDate}
				}
				_, err := s.transport.Patch(ctx, *creds, jobPath(coID, jobID), body)
				return err
			},
		},
		{
			// POST the diary activity, then best-effort PATCH it completed.
			// The upstream ignores a completed flag at creation time, so the
			// follow-up PATCH is the only way to close the entry.
			name:  "post_activity",
			fatal: true,
			run: func(ctx context.Context) error {
				created, err := s.transport.PostThenPatch(ctx, *creds,
					activitiesPath(coID, jobID),
					map[string]any{
						"description": activityDescription,
						"notes":       acceptanceNotes(accepted, req.OptionID),
						"date":        now.Format("2006-01-02"),
						"time":        now.Format("15:04"),
					},
					func(id string) string { return activityPath(coID, jobID, id) },
					map[string]any{"completed": "Y"},
				)
				if err != nil {
					return err
				}
				activityID = client.CreatedID(created)
				return nil
			},
		},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if !step.fatal {
				s.log.BestEffortFailure(step.name, err)
				continue
			}
			return transport.AcceptanceResponse{}, apperr.Upstream(
				fmt.Sprintf("quote acceptance failed at %s", step.name), err)
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, QuoteAcceptedEvent{
			BaseEvent:   events.NewBaseEvent(),
			CompanyID:   coID,
			JobID:       jobID,
			QuoteID:     quoteID,
			OptionID:    req.OptionID,
			OptionName:  accepted.Name,
			TotalPrice:  accepted.TotalPrice,
			Currency:    accepted.Currency,
			MoveManager: s.moveManagerFor(ctx, coID, jobID),
			ActivityID:  activityID,
		})
	}

	return transport.AcceptanceResponse{
		Source:     transport.SourceLive,
		Accepted:   true,
		QuoteID:    quoteID,
		ActivityID: activityID,
	}, nil
}

// acceptedOption loads the accepted option's detail for the activity notes.
// Failures degrade to a bare record; notes enrichment must never block an
// acceptance.
func (s *Service) acceptedOption(ctx context.Context, creds client.Credentials, coID, jobID, quoteID, optionID string) transport.Costing {
	raw, err := s.transport.Get(ctx, creds, quotationOptionsPath(coID, jobID, quoteID))
	if err != nil {
		s.log.Warn("failed to load accepted option detail", "company_id", coID, "job_id", jobID, "error", err.Error())
		return transport.Costing{ID: optionID}
	}

	for _, opt := range adapter.QuotationOptions(raw) {
		if opt.ID == optionID {
			return opt
		}
	}
	return transport.Costing{ID: optionID}
}

// moveManagerFor resolves the job's move manager for the notification email.
func (s *Service) moveManagerFor(ctx context.Context, coID, jobID string) string {
	job, err := s.Quotation(ctx, coID, jobID)
	if err != nil {
		return ""
	}
	return job.Job.MoveManager
}

// acceptanceNotes renders the accepted option's line items as the diary
// entry body, one charge per line, newlines normalized.
func acceptanceNotes(opt transport.Costing, optionID string) string {
	if len(opt.Charges) == 0 {
		return fmt.Sprintf("Option %s accepted online.", optionID)
	}

	lines := make([]string, 0, len(opt.Charges)+1)
	if opt.Name != "" {
		lines = append(lines, fmt.Sprintf("Accepted option: %s", opt.Name))
	}
	for _, ch := range opt.Charges {
		lines = append(lines, fmt.Sprintf("%s: %.2f %s", ch.Heading, ch.UnitPrice, ch.Currency))
	}

	return strings.ReplaceAll(strings.Join(lines, "\n"), "\r\n", "\n")
}
