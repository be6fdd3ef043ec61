// Package repository provides Postgres persistence for tenant branding
// records, including the tenant's Moveware credential pair.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Branding is one tenant's stored branding record. MwPasswordEnc holds the
// AES-GCM encrypted Moveware password; the plaintext never touches the
// database.
type Branding struct {
	CompanyID      string
	DisplayName    string
	LogoKey        string
	BannerKey      string
	ColorScheme    string
	Font           string
	ContactName    string
	ContactPhone   string
	ContactEmail   string
	ContactAddress string
	WeightUnit     string
	MwUsername     *string
	MwPasswordEnc  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Repository provides access to the branding store.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new branding repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const brandingColumns = `
	company_id, display_name, logo_key, banner_key, color_scheme, font,
	contact_name, contact_phone, contact_email, contact_address,
	weight_unit, mw_username, mw_password_enc, created_at, updated_at`

// GetByCompany returns the branding record for a tenant, or nil when the
// tenant has never been configured.
func (r *Repository) GetByCompany(ctx context.Context, companyID string) (*Branding, error) {
	query := `
		SELECT` + brandingColumns + `
		FROM mw_company_branding
		WHERE company_id = $1`

	var b Branding
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&b.CompanyID,
		&b.DisplayName,
		&b.LogoKey,
		&b.BannerKey,
		&b.ColorScheme,
		&b.Font,
		&b.ContactName,
		&b.ContactPhone,
		&b.ContactEmail,
		&b.ContactAddress,
		&b.WeightUnit,
		&b.MwUsername,
		&b.MwPasswordEnc,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branding: %w", err)
	}

	return &b, nil
}

// Upsert creates or updates a tenant's branding record, leaving the stored
// credential pair untouched.
func (r *Repository) Upsert(ctx context.Context, b Branding) error {
	query := `
		INSERT INTO mw_company_branding (
			company_id, display_name, logo_key, banner_key, color_scheme, font,
			contact_name, contact_phone, contact_email, contact_address,
			weight_unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (company_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			logo_key = EXCLUDED.logo_key,
			banner_key = EXCLUDED.banner_key,
			color_scheme = EXCLUDED.color_scheme,
			font = EXCLUDED.font,
			contact_name = EXCLUDED.contact_name,
			contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			contact_address = EXCLUDED.contact_address,
			weight_unit = EXCLUDED.weight_unit,
			updated_at = now()`

	_, err := r.pool.Exec(ctx, query,
		b.CompanyID,
		b.DisplayName,
		b.LogoKey,
		b.BannerKey,
		b.ColorScheme,
		b.Font,
		b.ContactName,
		b.ContactPhone,
		b.ContactEmail,
		b.ContactAddress,
		b.WeightUnit,
	)
	if err != nil {
		return fmt.Errorf("upsert branding: %w", err)
	}

	return nil
}

// UpdateCredentials stores a tenant's Moveware credential pair. The record
// must already exist; credentials are never created implicitly.
func (r *Repository) UpdateCredentials(ctx context.Context, companyID, username, passwordEnc string) error {
	query := `
		UPDATE mw_company_branding
		SET mw_username = $2,
			mw_password_enc = $3,
			updated_at = now()
		WHERE company_id = $1`

	result, err := r.pool.Exec(ctx, query, companyID, username, passwordEnc)
	if err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// ClearCredentials removes a tenant's stored credential pair, returning the
// tenant to the unconfigured (mock-fallback) state.
func (r *Repository) ClearCredentials(ctx context.Context, companyID string) error {
	query := `
		UPDATE mw_company_branding
		SET mw_username = NULL,
			mw_password_enc = NULL,
			updated_at = now()
		WHERE company_id = $1`

	if _, err := r.pool.Exec(ctx, query, companyID); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	return nil
}
