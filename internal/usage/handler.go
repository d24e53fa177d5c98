package usage

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the user-facing usage route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.get)
}

// RegisterAdminRoutes attaches usage administration routes. The group
// must already be guarded by RequireAdmin.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/usage-limits/:tier", h.getSettings)
	rg.PUT("/admin/usage-limits/:tier", h.updateSettings)
	rg.POST("/admin/users/:id/usage/reset", h.resetUser)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	snapshot, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load usage", nil)
		return
	}
	respond.OK(c, snapshot)
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.Svc.SettingsFor(c.Request.Context(), c.Param("tier"))
	if err != nil {
		if errors.Is(err, ErrUnknownTier) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown tier", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	respond.OK(c, settings)
}

type updateSettingsRequest struct {
	Enabled                *bool `json:"enabled"`
	MonthlyActivityLimit   *int  `json:"monthlyActivityLimit"`
	MonthlyGenerationLimit *int  `json:"monthlyGenerationLimit"`
	MonthlyFollowUpLimit   *int  `json:"monthlyFollowupLimit"`
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	tier := c.Param("tier")
	settings, err := h.Svc.SettingsFor(c.Request.Context(), tier)
	if err != nil {
		if errors.Is(err, ErrUnknownTier) {
			respond.Error(c, http.StatusNotFound, "not_found", "unknown tier", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}

	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	if req.MonthlyActivityLimit != nil {
		settings.MonthlyActivityLimit = *req.MonthlyActivityLimit
	}
	if req.MonthlyGenerationLimit != nil {
		settings.MonthlyGenerationLimit = *req.MonthlyGenerationLimit
	}
	if req.MonthlyFollowUpLimit != nil {
		settings.MonthlyFollowUpLimit = *req.MonthlyFollowUpLimit
	}

	if err := h.Svc.UpdateSettings(c.Request.Context(), settings); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limits must be non-negative", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update settings", nil)
		return
	}
	respond.OK(c, settings)
}

func (h *Handler) resetUser(c *gin.Context) {
	if err := h.Svc.Reset(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset usage", nil)
		return
	}
	respond.OK(c, gin.H{"reset": true})
}
