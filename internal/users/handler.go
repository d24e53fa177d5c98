package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jobmaster-backend/internal/shared/auth"
	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAuthRoutes mounts the unauthenticated signup/login endpoints.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes mounts the authenticated profile endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.POST("/me/password", h.updatePassword)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "email and a password of at least 8 characters are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		}
		return
	}
	token, err := issueToken(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue session", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		case errors.Is(err, ErrSuspended):
			respond.Error(c, http.StatusForbidden, "account_suspended", "account is suspended", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}
	token, err := issueToken(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue session", nil)
		return
	}
	respond.OK(c, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, publicUser(user))
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	err := h.Svc.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "new password must be at least 8 characters", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update password", nil)
		}
		return
	}
	respond.OK(c, gin.H{"updated": true})
}

func issueToken(user User) (string, error) {
	return auth.SignJWT(auth.Claims{
		Email:   user.Email,
		Name:    user.FullName,
		Picture: user.PictureURL,
		Role:    user.Role,
		Tier:    user.Tier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	})
}

func publicUser(user User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
		"role":       user.Role,
		"tier":       user.Tier,
		"status":     user.Status,
		"createdAt":  user.CreatedAt,
	}
}
