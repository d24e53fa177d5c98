package activity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/paging"
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

// RegisterRoutes attaches activity routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.list)
	rg.POST("/activity", h.create)
	rg.POST("/activity/backfill", h.backfill)
}

type createRequest struct {
	Kind     string `json:"kind"`
	SourceID string `json:"sourceId"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	idempotencyKey := c.GetHeader("X-Idempotency-Key")

	act, created, err := h.Svc.Record(c.Request.Context(), Activity{
		UserID:   userID,
		Kind:     req.Kind,
		SourceID: req.SourceID,
		Company:  req.Company,
		Role:     req.Role,
		Provider: req.Provider,
		Model:    req.Model,
	}, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "kind and sourceId are required", nil)
		case errors.Is(err, usage.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "monthly activity limit reached", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record activity", nil)
		}
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	respond.JSON(c, status, act)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, offset := paging.FromQuery(c)

	items, total, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list activity", nil)
		return
	}
	if items == nil {
		items = []Activity{}
	}
	respond.OK(c, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *Handler) backfill(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	result, err := h.Svc.Backfill(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to backfill activity", nil)
		return
	}
	respond.OK(c, result)
}
