package transport

// BrandingResponse is the public branding snapshot returned to the quoting
// front-end. Asset URLs are presigned and short-lived.
type BrandingResponse struct {
	CompanyID      string `json:"companyId"`
	DisplayName    string `json:"displayName"`
	LogoURL        string `json:"logoUrl"`
	BannerURL      string `json:"bannerUrl"`
	ColorScheme    string `json:"colorScheme"`
	Font           string `json:"font"`
	ContactName    string `json:"contactName"`
	ContactPhone   string `json:"contactPhone"`
	ContactEmail   string `json:"contactEmail"`
	ContactAddress string `json:"contactAddress"`
	WeightUnit     string `json:"weightUnit"`
	HasCredentials bool   `json:"hasCredentials"`
}

// UpdateBrandingRequest carries editable branding fields. Asset keys are
// managed through the upload endpoint and are not settable here.
type UpdateBrandingRequest struct {
	DisplayName    string `json:"displayName" validate:"required,max=120"`
	ColorScheme    string `json:"colorScheme" validate:"omitempty,max=64"`
	Font           string `json:"font" validate:"omitempty,max=64"`
	ContactName    string `json:"contactName" validate:"omitempty,max=120"`
	ContactPhone   string `json:"contactPhone" validate:"omitempty,max=32"`
	ContactEmail   string `json:"contactEmail" validate:"omitempty,email"`
	ContactAddress string `json:"contactAddress" validate:"omitempty,max=255"`
	WeightUnit     string `json:"weightUnit" validate:"omitempty,oneof=kg lb"`
}

// UpdateCredentialsRequest carries a tenant's Moveware credential pair. The
// password is write-only: it is encrypted at rest and never echoed back.
type UpdateCredentialsRequest struct {
	Username string `json:"username" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=255"`
}

// UploadAssetResponse reports the stored object key for an uploaded asset.
type UploadAssetResponse struct {
	Key string `json:"key"`
}
