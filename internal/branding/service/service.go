// Package service implements branding business logic: the public branding
// snapshot served to the quoting front-end and per-request Moveware
// credential resolution.
package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"moveware_portal_backend/internal/branding/repository"
	"moveware_portal_backend/internal/branding/transport"
	"moveware_portal_backend/internal/moveware/client"
	"moveware_portal_backend/internal/storage"
	"moveware_portal_backend/platform/apperr"
	"moveware_portal_backend/platform/logger"
	"moveware_portal_backend/platform/phone"
	"moveware_portal_backend/platform/secrets"
)

// CryptoConfig provides the key used to encrypt stored Moveware passwords.
type CryptoConfig interface {
	GetCredentialsKey() []byte
}

// Service coordinates branding persistence, asset storage and credential
// resolution.
type Service struct {
	repo    *repository.Repository
	storage storage.Service
	bucket  string
	key     []byte
	log     *logger.Logger
}

// New creates a new branding service.
func New(repo *repository.Repository, store storage.Service, bucket string, cfg CryptoConfig, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: store,
		bucket:  bucket,
		key:     cfg.GetCredentialsKey(),
		log:     log,
	}
}

// ResolveCredentials returns the decrypted Moveware credential pair for a
// tenant, or nil when the tenant is unconfigured. Lookup and decryption
// failures are logged and also yield nil: callers treat a nil result as
// "serve mock data", never as a request failure.
func (s *Service) ResolveCredentials(ctx context.Context, companyID string) *client.Credentials {
	b, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		s.log.MockFallback("resolve_credentials", companyID, "branding lookup failed: "+err.Error())
		return nil
	}
	if b == nil || b.MwUsername == nil || b.MwPasswordEnc == nil {
		return nil
	}

	password, err := secrets.Decrypt(*b.MwPasswordEnc, s.key)
	if err != nil {
		s.log.MockFallback("resolve_credentials", companyID, "credential decryption failed")
		return nil
	}

	return &client.Credentials{
		CompanyID: companyID,
		Username:  *b.MwUsername,
		Password:  password,
	}
}

// Snapshot returns the public branding view for a tenant. Unconfigured
// tenants get an empty snapshot rather than an error so the front-end can
// always render.
func (s *Service) Snapshot(ctx context.Context, companyID string) (transport.BrandingResponse, error) {
	resp := transport.BrandingResponse{CompanyID: companyID}

	b, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		return resp, apperr.Wrap(apperr.KindInternal, "failed to load branding", err)
	}
	if b == nil {
		return resp, nil
	}

	resp.DisplayName = b.DisplayName
	resp.ColorScheme = b.ColorScheme
	resp.Font = b.Font
	resp.ContactName = b.ContactName
	resp.ContactPhone = b.ContactPhone
	resp.ContactEmail = b.ContactEmail
	resp.ContactAddress = b.ContactAddress
	resp.WeightUnit = b.WeightUnit
	resp.HasCredentials = b.MwUsername != nil && b.MwPasswordEnc != nil

	if b.LogoKey != "" {
		if url, err := s.storage.DownloadURL(ctx, s.bucket, b.LogoKey); err == nil {
			resp.LogoURL = url
		} else {
			s.log.Warn("failed to presign logo asset", "company_id", companyID, "error", err)
		}
	}
	if b.BannerKey != "" {
		if url, err := s.storage.DownloadURL(ctx, s.bucket, b.BannerKey); err == nil {
			resp.BannerURL = url
		} else {
			s.log.Warn("failed to presign banner asset", "company_id", companyID, "error", err)
		}
	}

	return resp, nil
}

// Update stores the editable branding fields for a tenant.
func (s *Service) Update(ctx context.Context, companyID string, req transport.UpdateBrandingRequest) error {
	existing, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to load branding", err)
	}

	b := repository.Branding{CompanyID: companyID}
	if existing != nil {
		b = *existing
	}

	contactPhone := phone.NormalizeE164(req.ContactPhone)

	b.DisplayName = req.DisplayName
	b.ColorScheme = req.ColorScheme
	b.Font = req.Font
	b.ContactName = req.ContactName
	b.ContactPhone = contactPhone
	b.ContactEmail = req.ContactEmail
	b.ContactAddress = req.ContactAddress
	b.WeightUnit = req.WeightUnit
	if b.WeightUnit == "" {
		b.WeightUnit = "kg"
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save branding", err)
	}

	return nil
}

// UpdateCredentials encrypts and stores a tenant's Moveware credential pair.
// The plaintext password exists only for the duration of this call.
func (s *Service) UpdateCredentials(ctx context.Context, companyID string, req transport.UpdateCredentialsRequest) error {
	encrypted, err := secrets.Encrypt(req.Password, s.key)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encrypt credentials", err)
	}

	if err := s.repo.UpdateCredentials(ctx, companyID, req.Username, encrypted); err != nil {
		// Credentials attach to an existing branding record; create a
		// minimal one on first configuration.
		if upsertErr := s.repo.Upsert(ctx, repository.Branding{CompanyID: companyID, WeightUnit: "kg"}); upsertErr != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to save credentials", upsertErr)
		}
		if err := s.repo.UpdateCredentials(ctx, companyID, req.Username, encrypted); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to save credentials", err)
		}
	}

	return nil
}

// ClearCredentials removes a tenant's stored credential pair.
func (s *Service) ClearCredentials(ctx context.Context, companyID string) error {
	if err := s.repo.ClearCredentials(ctx, companyID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to clear credentials", err)
	}
	return nil
}

// UploadAsset stores a logo or banner image and records its object key on
// the tenant's branding record.
func (s *Service) UploadAsset(ctx context.Context, companyID, kind string, file *multipart.FileHeader) (transport.UploadAssetResponse, error) {
	if kind != "logo" && kind != "banner" {
		return transport.UploadAssetResponse{}, apperr.BadRequest(fmt.Sprintf("unknown asset kind %q", kind))
	}

	existing, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		return transport.UploadAssetResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load branding", err)
	}

	b := repository.Branding{CompanyID: companyID, WeightUnit: "kg"}
	if existing != nil {
		b = *existing
	}

	src, err := file.Open()
	if err != nil {
		return transport.UploadAssetResponse{}, apperr.BadRequest("failed to read uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := s.storage.UploadFile(ctx, s.bucket, companyID+"/"+kind, file.Filename, contentType, src, file.Size)
	if err != nil {
		return transport.UploadAssetResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store asset", err)
	}

	switch kind {
	case "logo":
		b.LogoKey = key
	case "banner":
		b.BannerKey = key
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return transport.UploadAssetResponse{}, apperr.Wrap(apperr.KindInternal, "failed to save branding", err)
	}

	return transport.UploadAssetResponse{Key: key}, nil
}
