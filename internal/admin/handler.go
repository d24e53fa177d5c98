package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/account"
	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/paging"
	"jobmaster-backend/internal/shared/server/respond"
	"jobmaster-backend/internal/users"
)

// Handler serves the admin panel endpoints. Routes must be registered
// on a group guarded by RequireAdmin.
type Handler struct {
	Svc      *Service
	Users    *users.Service
	Accounts *account.Service
}

func NewHandler(svc *Service, userSvc *users.Service, accountSvc *account.Service) *Handler {
	return &Handler{Svc: svc, Users: userSvc, Accounts: accountSvc}
}

// RegisterRoutes attaches analytics and user management routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/analytics", h.analytics)
	rg.GET("/admin/users", h.listUsers)
	rg.GET("/admin/users/:id", h.getUser)
	rg.PUT("/admin/users/:id", h.updateUser)
	rg.DELETE("/admin/users/:id", h.deleteUser)
}

func (h *Handler) analytics(c *gin.Context) {
	analytics, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to aggregate analytics", nil)
		return
	}
	respond.OK(c, analytics)
}

func (h *Handler) listUsers(c *gin.Context) {
	limit, offset := paging.FromQuery(c)
	search := c.Query("search")

	items, total, err := h.Users.List(c.Request.Context(), search, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	if items == nil {
		items = []users.User{}
	}
	respond.OK(c, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}

type updateUserRequest struct {
	Role   string `json:"role"`
	Tier   string `json:"tier"`
	Status string `json:"status"`
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Users.AdminUpdate(c.Request.Context(), c.Param("id"), req.Role, req.Tier, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, users.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown role, tier, or status", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update user", nil)
		}
		return
	}
	respond.OK(c, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "admins cannot delete their own account here", nil)
		return
	}

	if err := h.Accounts.Delete(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete user", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
