package apikeys

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

// RegisterRoutes attaches the user key routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/keys", h.list)
	rg.PUT("/keys/:provider", h.set)
	rg.DELETE("/keys/:provider", h.remove)
}

// RegisterAdminRoutes attaches shared key administration routes. The
// group must already be guarded by RequireAdmin.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/shared-keys", h.listShared)
	rg.POST("/admin/shared-keys", h.createShared)
	rg.PATCH("/admin/shared-keys/:id", h.updateShared)
	rg.DELETE("/admin/shared-keys/:id", h.removeShared)
	rg.GET("/admin/shared-keys/:id/models", h.sharedModels)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	keys, err := h.Svc.ListUserKeys(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list keys", nil)
		return
	}
	if keys == nil {
		keys = []UserKey{}
	}
	respond.OK(c, gin.H{"items": keys})
}

type setKeyRequest struct {
	APIKey string `json:"apiKey"`
}

func (h *Handler) set(c *gin.Context) {
	var req setKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	key, err := h.Svc.SetUserKey(c.Request.Context(), userID, c.Param("provider"), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProvider):
			respond.Error(c, http.StatusBadRequest, "validation_error", "provider must be one of openai, anthropic, gemini", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "apiKey is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store key", nil)
		}
		return
	}
	respond.OK(c, key)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	err := h.Svc.DeleteUserKey(c.Request.Context(), userID, c.Param("provider"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProvider):
			respond.Error(c, http.StatusBadRequest, "validation_error", "provider must be one of openai, anthropic, gemini", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no key stored for provider", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete key", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) listShared(c *gin.Context) {
	keys, err := h.Svc.ListSharedKeys(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list shared keys", nil)
		return
	}
	if keys == nil {
		keys = []SharedKey{}
	}
	respond.OK(c, gin.H{"items": keys})
}

type createSharedRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	Active   bool   `json:"active"`
}

func (h *Handler) createShared(c *gin.Context) {
	var req createSharedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	key, err := h.Svc.CreateSharedKey(c.Request.Context(), req.Name, req.Provider, req.APIKey, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProvider):
			respond.Error(c, http.StatusBadRequest, "validation_error", "provider must be one of openai, anthropic, gemini", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name and apiKey are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create shared key", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, key)
}

type updateSharedRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (h *Handler) updateShared(c *gin.Context) {
	var req updateSharedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	key, err := h.Svc.UpdateSharedKey(c.Request.Context(), c.Param("id"), req.Name, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "shared key not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name must not be empty", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update shared key", nil)
		}
		return
	}
	respond.OK(c, key)
}

func (h *Handler) removeShared(c *gin.Context) {
	if err := h.Svc.DeleteSharedKey(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "shared key not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete shared key", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) sharedModels(c *gin.Context) {
	models, err := h.Svc.SharedKeyModels(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "shared key not found", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "provider_error", "failed to list provider models", nil)
		return
	}
	if models == nil {
		models = []string{}
	}
	respond.OK(c, gin.H{"models": models})
}
