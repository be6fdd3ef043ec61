// Package moveware provides the Moveware integration domain module: job,
// pricing, inventory and review reads plus the quote-acceptance write path.
package moveware

import (
	"time"

	apphttp "moveware_portal_backend/internal/http"
	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/moveware/handler"
	"moveware_portal_backend/internal/moveware/service"
	"moveware_portal_backend/platform/events"
	"moveware_portal_backend/platform/logger"
	"moveware_portal_backend/platform/validator"
)

// Config captures the configuration the moveware module needs.
type Config interface {
	service.Config
	GetMovewareTimeout() time.Duration
}

// Module represents the Moveware integration module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new moveware module with all dependencies wired.
func NewModule(creds service.CredentialResolver, branding service.BrandingSource, cfg Config, eventBus *events.InMemoryBus, val *validator.Validator, log *logger.Logger) *Module {
	c := client.New(cfg.GetMovewareTimeout(), log)
	svc := service.New(c, creds, branding, cfg, log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "moveware"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Companies)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
