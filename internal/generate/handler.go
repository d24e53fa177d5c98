package generate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/apikeys"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/resumes"
	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/respond"
	"jobmaster-backend/internal/usage"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the generation routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate/cover-letter", h.coverLetter)
	rg.POST("/generate/linkedin", h.linkedIn)
	rg.POST("/generate/email", h.email)
	rg.POST("/generate/follow-up", h.followUp)
}

func (h *Handler) coverLetter(c *gin.Context) {
	var in CoverLetterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tagProvider(c, in.Provider)
	userID := middleware.UserIDFromContext(c)

	letter, err := h.Svc.CoverLetter(c.Request.Context(), userID, in)
	if err != nil {
		respondGenerateError(c, err, "company and role are required")
		return
	}
	respond.JSON(c, http.StatusCreated, letter)
}

func (h *Handler) linkedIn(c *gin.Context) {
	var in LinkedInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tagProvider(c, in.Provider)
	userID := middleware.UserIDFromContext(c)

	msg, err := h.Svc.LinkedIn(c.Request.Context(), userID, in)
	if err != nil {
		respondGenerateError(c, err, "recipientName is required")
		return
	}
	respond.JSON(c, http.StatusCreated, msg)
}

func (h *Handler) email(c *gin.Context) {
	var in EmailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tagProvider(c, in.Provider)
	userID := middleware.UserIDFromContext(c)

	email, err := h.Svc.Email(c.Request.Context(), userID, in)
	if err != nil {
		respondGenerateError(c, err, "recipient is required")
		return
	}
	respond.JSON(c, http.StatusCreated, email)
}

func (h *Handler) followUp(c *gin.Context) {
	var in FollowUpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tagProvider(c, in.Provider)
	userID := middleware.UserIDFromContext(c)

	email, err := h.Svc.FollowUp(c.Request.Context(), userID, in)
	if err != nil {
		respondGenerateError(c, err, "recipient is required")
		return
	}
	respond.JSON(c, http.StatusCreated, email)
}

// tagProvider records the provider on the request context for the
// logging middleware.
func tagProvider(c *gin.Context, provider string) {
	if provider == "" {
		provider = apikeys.ProviderOpenAI
	}
	c.Set("llmProvider", provider)
}

func respondGenerateError(c *gin.Context, err error, validationMsg string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", validationMsg, nil)
	case errors.Is(err, apikeys.ErrInvalidProvider):
		respond.Error(c, http.StatusBadRequest, "validation_error", "provider must be one of openai, anthropic, gemini", nil)
	case errors.Is(err, linkedin.ErrMissingRecipient):
		respond.Error(c, http.StatusBadRequest, "validation_error", "recipientProfileUrl is required", nil)
	case errors.Is(err, linkedin.ErrRecipientLimit):
		respond.Error(c, http.StatusConflict, "recipient_limit_reached", "message limit reached for this recipient", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, apikeys.ErrNoKey):
		respond.Error(c, http.StatusPaymentRequired, "no_api_key", "no API key available for this provider", nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached", "monthly usage limit reached", nil)
	case errors.Is(err, ErrProvider):
		respond.Error(c, http.StatusBadGateway, "provider_error", "the AI provider request failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", nil)
	}
}
