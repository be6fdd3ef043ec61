package handler

import (
	"net/http"
	"strings"

	"moveware_portal_backend/internal/branding/service"
	"moveware_portal_backend/internal/branding/transport"
	"moveware_portal_backend/platform/httpkit"
	"moveware_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// maxAssetSize caps branding asset uploads.
const maxAssetSize = 5 << 20

// Handler handles HTTP requests for tenant branding.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new branding handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the branding routes on a company-scoped group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/branding", h.Get)
	rg.PUT("/branding", h.Update)
	rg.PUT("/branding/credentials", h.UpdateCredentials)
	rg.DELETE("/branding/credentials", h.ClearCredentials)
	rg.POST("/branding/assets/:kind", h.UploadAsset)
}

func (h *Handler) Get(c *gin.Context) {
	companyID, ok := mustGetCompanyID(c)
	if !ok {
		return
	}

	result, err := h.svc.Snapshot(c.Request.Context(), companyID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Update(c *gin.Context) {
	companyID, ok := mustGetCompanyID(c)
	if !ok {
		return
	}

	var req transport.UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Update(c.Request.Context(), companyID, req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "updated"})
}

func (h *Handler) UpdateCredentials(c *gin.Context) {
	companyID, ok := mustGetCompanyID(c)
	if !ok {
		return
	}

	var req transport.UpdateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpdateCredentials(c.Request.Context(), companyID, req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "saved"})
}

func (h *Handler) ClearCredentials(c *gin.Context) {
	companyID, ok := mustGetCompanyID(c)
	if !ok {
		return
	}

	if err := h.svc.ClearCredentials(c.Request.Context(), companyID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "cleared"})
}

func (h *Handler) UploadAsset(c *gin.Context) {
	companyID, ok := mustGetCompanyID(c)
	if !ok {
		return
	}
	kind := c.Param("kind")

	file, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if file.Size > maxAssetSize {
		httpkit.Error(c, http.StatusBadRequest, "file exceeds 5MB limit", nil)
		return
	}

	result, err := h.svc.UploadAsset(c.Request.Context(), companyID, kind, file)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// mustGetCompanyID extracts the tenant company id from the route. Writes a
// 400 response and returns false when it is missing.
func mustGetCompanyID(c *gin.Context) (string, bool) {
	companyID := strings.TrimSpace(c.Param("coId"))
	if companyID == "" {
		httpkit.Error(c, http.StatusBadRequest, "company id is required", nil)
		return "", false
	}
	return companyID, true
}
