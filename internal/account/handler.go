package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/respond"
	"jobmaster-backend/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the account routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/account/summary", h.summary)
	rg.DELETE("/account", h.remove)
}

func (h *Handler) summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summary, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load account summary", nil)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete account", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
