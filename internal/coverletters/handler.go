package coverletters

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/paging"
	"jobmaster-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter history routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history/cover-letters", h.list)
	rg.GET("/history/cover-letters/:id", h.get)
	rg.PATCH("/history/cover-letters/:id/status", h.updateStatus)
	rg.DELETE("/history/cover-letters/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := paging.FromQuery(c)

	items, total, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cover letters", nil)
		return
	}
	if items == nil {
		items = []CoverLetter{}
	}
	respond.OK(c, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letter, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cover letter", nil)
		return
	}
	respond.OK(c, letter)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	err := h.Svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", "status must be one of generated, sent, replied, archived", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}
	respond.OK(c, gin.H{"status": req.Status})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete cover letter", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
