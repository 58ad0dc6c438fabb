package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/auth"
	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service    services.AuthService
	sessions   *auth.SessionStore
	cookieName string
	secure     bool
}

func NewAuthHandler(service services.AuthService, sessions *auth.SessionStore, cookieName string, secure bool, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		sessions:    sessions,
		cookieName:  cookieName,
		secure:      secure,
	}
}

// Login authenticates an admin and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		h.LogError(c, err, "Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": admin})
}

// CheckAuth reports whether the request carries a live session.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	adminID, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	admin, err := h.service.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		h.LogError(c, err, "Failed to load session admin")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": admin})
}

// Logout destroys the server-side session and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.LogError(c, err, "Failed to destroy session")
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// RequireSession guards the admin API. The lookup refreshes the session
// TTL, so activity keeps the session alive.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(h.cookieName)
		adminID, err := h.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			return
		}

		c.Set(utils.ContextAdminIDKey, adminID)
		c.Next()
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secure, true)
}
