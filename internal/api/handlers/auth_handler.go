package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/service"
)

type AuthHandler struct {
	Sessions service.SessionService
}

// bearerToken extracts the session token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

// Login exchanges the admin password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Sessions.Authenticate(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout invalidates the presented session token. Always succeeds for
// well-formed requests.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session token is required"})
		return
	}
	if err := h.Sessions.Invalidate(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session invalidated"})
}

// Extend pushes out the deadline of an active session.
func (h *AuthHandler) Extend(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session token is required"})
		return
	}
	expiresAt, err := h.Sessions.Extend(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expiresAt": expiresAt})
}

// Validate reports whether the presented token is usable without
// consuming or extending it.
func (h *AuthHandler) Validate(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session token is required"})
		return
	}
	resp, err := h.Sessions.Validate(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SessionStats summarizes the session collection for monitoring.
func (h *AuthHandler) SessionStats(c *gin.Context) {
	stats, err := h.Sessions.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CleanupSessions removes expired sessions on demand.
func (h *AuthHandler) CleanupSessions(c *gin.Context) {
	deleted, err := h.Sessions.CleanupExpired(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
