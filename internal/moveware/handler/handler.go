package handler

import (
	"net/http"
	"strings"

	"moveware_portal_backend/internal/moveware/service"
	"moveware_portal_backend/internal/moveware/transport"
	"moveware_portal_backend/platform/httpkit"
	"moveware_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the Moveware integration.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new Moveware handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the job routes on a company-scoped group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs/:jobId")
	jobs.GET("", h.GetJob)
	jobs.GET("/summary", h.GetSummary)
	jobs.GET("/options", h.GetOptions)
	jobs.GET("/quotations/:quoteId/options", h.GetQuotationOptions)
	jobs.POST("/quotations/:quoteId/accept", h.AcceptQuote)
	jobs.GET("/inventory", h.GetInventory)
	jobs.GET("/measurements", h.GetMeasurements)
	jobs.GET("/reviews", h.GetReviews)
	jobs.POST("/reviews", h.SubmitReview)
	jobs.GET("/questions", h.GetQuestions)
}

func (h *Handler) GetJob(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Quotation(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetSummary(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Summary(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetOptions(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Options(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetQuotationOptions(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}
	quoteID := c.Param("quoteId")

	result, err := h.svc.QuotationOptions(c.Request.Context(), coID, jobID, quoteID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) AcceptQuote(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}
	quoteID := c.Param("quoteId")

	var req transport.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.AcceptQuote(c.Request.Context(), coID, jobID, quoteID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetInventory(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Inventory(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetMeasurements(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Measurements(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetReviews(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Reviews(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	var req transport.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SubmitReview(c.Request.Context(), coID, jobID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) GetQuestions(c *gin.Context) {
	coID, jobID, ok := mustGetJobScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Questions(c.Request.Context(), coID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// mustGetJobScope extracts the tenant and job ids from the route. Writes a
// 400 response and returns false when either is missing.
func mustGetJobScope(c *gin.Context) (string, string, bool) {
	coID := strings.TrimSpace(c.Param("coId"))
	jobID := strings.TrimSpace(c.Param("jobId"))
	if coID == "" || jobID == "" {
		httpkit.Error(c, http.StatusBadRequest, "company id and job id are required", nil)
		return "", "", false
	}
	return coID, jobID, true
}
