package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
)

// AdminSessionCookie is the cookie carrying the signed admin session token.
const AdminSessionCookie = "admin_session"

type AuthHandler struct {
	log         *logger.Logger
	authService services.AdminAuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AdminAuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required", "code": "validation"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("admin login failed", "email", req.Email, "error", err)
		RespondError(c, err)
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdminSessionCookie, token, maxAge, "/", "", false, true)
	RespondOK(c, gin.H{"message": "logged in"})
}

func (h *AuthHandler) AdminLogout(c *gin.Context) {
	token, _ := c.Cookie(AdminSessionCookie)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		RespondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdminSessionCookie, "", -1, "/", "", false, true)
	RespondOK(c, gin.H{"message": "logged out"})
}
