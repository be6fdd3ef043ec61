// Package service implements the Moveware integration read and write paths:
// credential-scoped upstream calls, adaptation to internal records, and the
// static mock fallback that keeps the customer flow rendering when a tenant
// is unconfigured or the upstream is down.
package service

import (
	"context"
	"fmt"
	"time"

	brandingtransport "moveware_portal_backend/internal/branding/transport"
	"moveware_portal_backend/internal/moveware/adapter"
	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/moveware/transport"
	"moveware_portal_backend/platform/apperr"
	"moveware_portal_backend/platform/events"
	"moveware_portal_backend/platform/logger"
	"moveware_portal_backend/platform/phone"

	"golang.org/x/sync/errgroup"
)

// Transport is the upstream call surface the service needs. Satisfied by
// *client.Client; narrowed for tests.
type Transport interface {
	Get(ctx context.Context, creds client.Credentials, path string) (map[string]any, error)
	Patch(ctx context.Context, creds client.Credentials, path string, body any) (map[string]any, error)
	Post(ctx context.Context, creds client.Credentials, path string, body any) (map[string]any, error)
	PostThenPatch(ctx context.Context, creds client.Credentials, postPath string, postBody any, patchPath func(id string) string, patchBody any) (map[string]any, error)
}

// CredentialResolver resolves a tenant's Moveware credential pair. A nil
// result means "unconfigured, serve mock data" and is never an error.
type CredentialResolver interface {
	ResolveCredentials(ctx context.Context, companyID string) *client.Credentials
}

// BrandingSource provides the tenant branding snapshot embedded in job reads.
type BrandingSource interface {
	Snapshot(ctx context.Context, companyID string) (brandingtransport.BrandingResponse, error)
}

// Config captures the Moveware settings the service needs.
type Config interface {
	GetMovewareBaseURL() string
	GetMovewareReadRetries() int
	GetMovewareTaxRate() float64
}

// Service coordinates the Moveware read and write paths.
type Service struct {
	transport Transport
	creds     CredentialResolver
	branding  BrandingSource
	bus       events.Bus
	cfg       Config
	log       *logger.Logger
}

// New creates a new Moveware service.
func New(t Transport, creds CredentialResolver, branding BrandingSource, cfg Config, log *logger.Logger) *Service {
	return &Service{
		transport: t,
		creds:     creds,
		branding:  branding,
		cfg:       cfg,
		log:       log,
	}
}

// SetEventBus injects the event bus for acceptance notifications.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Upstream path builders, one per operation.

func jobPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s", coID, jobID)
}

func optionsPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/options?include=charges", coID, jobID)
}

func quotationPath(coID, jobID, quoteID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/quotations/%s", coID, jobID, quoteID)
}

func quotationOptionsPath(coID, jobID, quoteID string) string {
	return quotationPath(coID, jobID, quoteID) + "?include=options"
}

func reviewsPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/reviews", coID, jobID)
}

func questionsPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/questions", coID, jobID)
}

func inventoryPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/inventory", coID, jobID)
}

func activitiesPath(coID, jobID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/activities", coID, jobID)
}

func activityPath(coID, jobID, activityID string) string {
	return fmt.Sprintf("/%s/api/jobs/%s/activities/%s", coID, jobID, activityID)
}

// resolve returns upstream-ready credentials for a tenant, with the base URL
// from configuration attached, or nil when the tenant is unconfigured.
func (s *Service) resolve(ctx context.Context, coID string) *client.Credentials {
	creds := s.creds.ResolveCredentials(ctx, coID)
	if creds == nil {
		return nil
	}
	creds.BaseURL = s.cfg.GetMovewareBaseURL()
	return creds
}

// getWithRetry issues a GET, retrying transient failures up to the configured
// read-retry count. Write paths never go through here.
func (s *Service) getWithRetry(ctx context.Context, creds client.Credentials, path string) (map[string]any, error) {
	attempts := s.cfg.GetMovewareReadRetries() + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(200 * time.Millisecond):
			}
		}
		raw, err := s.transport.Get(ctx, creds, path)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// brandingFor loads the tenant branding block for embedding in job reads.
// Failures degrade to an empty block; branding must never break a job read.
func (s *Service) brandingFor(ctx context.Context, coID string) transport.Branding {
	snap, err := s.branding.Snapshot(ctx, coID)
	if err != nil {
		s.log.Warn("branding snapshot failed", "company_id", coID, "error", err.Error())
		return transport.Branding{}
	}
	return transport.Branding{
		CompanyName: snap.DisplayName,
		LogoURL:     snap.LogoURL,
		BannerURL:   snap.BannerURL,
		ColorScheme: snap.ColorScheme,
		Font:        snap.Font,
		Contact: transport.ContactBlock{
			Name:    snap.ContactName,
			Phone:   snap.ContactPhone,
			Email:   snap.ContactEmail,
			Address: snap.ContactAddress,
		},
		WeightUnit: snap.WeightUnit,
	}
}

// fetch runs one read against the upstream, falling back to the mock dataset
// when the tenant is unconfigured or the call fails. The returned source tag
// tells the caller which world the payload came from.
func (s *Service) fetch(ctx context.Context, coID, operation, path string) (map[string]any, string) {
	creds := s.resolve(ctx, coID)
	if creds == nil {
		s.log.MockFallback(operation, coID, "no credentials configured")
		return nil, transport.SourceMock
	}

	raw, err := s.getWithRetry(ctx, *creds, path)
	if err != nil {
		s.log.MockFallback(operation, coID, "upstream call failed: "+err.Error())
		return nil, transport.SourceMock
	}
	return raw, transport.SourceLive
}

// Quotation returns the job record for one move, branded for the tenant.
func (s *Service) Quotation(ctx context.Context, coID, jobID string) (transport.JobResponse, error) {
	branding := s.brandingFor(ctx, coID)

	raw, source := s.fetch(ctx, coID, "fetch_quotation", jobPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.JobResponse{Source: source, Job: mockJob(branding)}, nil
	}

	return transport.JobResponse{Source: source, Job: adapter.Quotation(raw, branding)}, nil
}

// Options returns the legacy pricing options for a job.
func (s *Service) Options(ctx context.Context, coID, jobID string) (transport.OptionsResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_options", optionsPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.OptionsResponse{Source: source, Options: mockOptions()}, nil
	}

	return transport.OptionsResponse{
		Source:  source,
		Options: adapter.Options(raw, s.cfg.GetMovewareTaxRate()),
	}, nil
}

// QuotationOptions returns the pricing options attached to one quotation.
func (s *Service) QuotationOptions(ctx context.Context, coID, jobID, quoteID string) (transport.OptionsResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_quotation_options", quotationOptionsPath(coID, jobID, quoteID))
	if source == transport.SourceMock {
		return transport.OptionsResponse{Source: source, Options: mockOptions()}, nil
	}

	return transport.OptionsResponse{Source: source, Options: adapter.QuotationOptions(raw)}, nil
}

// Inventory returns the inventory usage lines for a job.
func (s *Service) Inventory(ctx context.Context, coID, jobID string) (transport.InventoryResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_inventory", inventoryPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.InventoryResponse{Source: source, Items: mockInventory()}, nil
	}

	items, truncated := adapter.Inventory(raw)
	if truncated {
		s.log.Warn("inventory response truncated by upstream pagination",
			"company_id", coID, "job_id", jobID, "returned", len(items))
	}

	return transport.InventoryResponse{Source: source, Items: items, Truncated: truncated}, nil
}

// Measurements returns the aggregate gross measure block for a job. The
// block rides on the job payload; there is no dedicated upstream endpoint.
func (s *Service) Measurements(ctx context.Context, coID, jobID string) (transport.MeasurementsResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_measurements", jobPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.MeasurementsResponse{Source: source, Measurements: mockMeasurements()}, nil
	}

	return transport.MeasurementsResponse{Source: source, Measurements: adapter.Measurements(raw)}, nil
}

// Reviews returns customer reviews for a job.
func (s *Service) Reviews(ctx context.Context, coID, jobID string) (transport.ReviewsResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_reviews", reviewsPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.ReviewsResponse{Source: source, Reviews: mockReviews()}, nil
	}

	return transport.ReviewsResponse{Source: source, Reviews: adapter.Reviews(raw)}, nil
}

// Questions returns the configured review questions for a job.
func (s *Service) Questions(ctx context.Context, coID, jobID string) (transport.QuestionsResponse, error) {
	raw, source := s.fetch(ctx, coID, "fetch_questions", questionsPath(coID, jobID))
	if source == transport.SourceMock {
		return transport.QuestionsResponse{Source: source, Questions: mockQuestions()}, nil
	}

	return transport.QuestionsResponse{Source: source, Questions: adapter.Questions(raw)}, nil
}

// Summary fans out the job, options and inventory reads for one job in a
// single response. Individual fallbacks still apply per read path.
func (s *Service) Summary(ctx context.Context, coID, jobID string) (transport.SummaryResponse, error) {
	var (
		job       transport.JobResponse
		options   transport.OptionsResponse
		inventory transport.InventoryResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = s.Quotation(gctx, coID, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = s.Options(gctx, coID, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		inventory, err = s.Inventory(gctx, coID, jobID)
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.SummaryResponse{}, apperr.Wrap(apperr.KindInternal, "summary fan-out failed", err)
	}

	return transport.SummaryResponse{
		Source:    job.Source,
		Job:       job.Job,
		Options:   options.Options,
		Inventory: inventory,
	}, nil
}

// SubmitReview posts a customer review upstream. Unconfigured tenants get a
// mock acknowledgement so the review form always completes.
func (s *Service) SubmitReview(ctx context.Context, coID, jobID string, req transport.SubmitReviewRequest) (map[string]any, error) {
	creds := s.resolve(ctx, coID)
	if creds == nil {
		s.log.MockFallback("submit_review", coID, "no credentials configured")
		return map[string]any{"source": transport.SourceMock, "accepted": true}, nil
	}

	body := map[string]any{
		"rating":   req.Rating,
		"comments": req.Comments,
		"name":     req.Name,
		"email":    req.Email,
		"phone":    phone.NormalizeE164(req.Phone),
	}

	result, err := s.transport.Post(ctx, *creds, reviewsPath(coID, jobID), body)
	if err != nil {
		return nil, apperr.Upstream("failed to submit review", err)
	}

	result["source"] = transport.SourceLive
	return result, nil
}
