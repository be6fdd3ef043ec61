// Package branding provides the tenant branding domain module: the public
// branding snapshot, asset uploads and Moveware credential management.
package branding

import (
	"moveware_portal_backend/internal/branding/handler"
	"moveware_portal_backend/internal/branding/repository"
	"moveware_portal_backend/internal/branding/service"
	apphttp "moveware_portal_backend/internal/http"
	"moveware_portal_backend/internal/storage"
	"moveware_portal_backend/platform/logger"
	"moveware_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config captures the configuration the branding module needs.
type Config interface {
	service.CryptoConfig
	GetMinioBucketBrandingAssets() string
}

// Module represents the branding domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new branding module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, store storage.Service, cfg Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, cfg.GetMinioBucketBrandingAssets(), cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "branding"
}

// Service returns the service layer for external use. The moveware module
// uses it to resolve per-tenant credentials.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Companies)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
