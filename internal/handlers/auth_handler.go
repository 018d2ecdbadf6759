package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"brunch_planner/internal/redis"
	"brunch_planner/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
	redisClient *redis.Client
	sessionTTL  time.Duration
}

func NewAuthHandler(userService services.UserService, redisClient *redis.Client, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		redisClient: redisClient,
		sessionTTL:  sessionTTL,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	sessionID, err := newSessionID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	session := &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := h.redisClient.SetSession(sessionID, session, h.sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"username":   user.Username,
		"role":       user.Role,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := sessionIDFromRequest(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session"})
		return
	}

	if err := h.redisClient.DeleteSession(sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// RequireSession gates the API behind a valid session id, passed either as an
// X-Session-ID header or a session_id cookie.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFromRequest(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := h.redisClient.GetSession(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

func sessionIDFromRequest(c *gin.Context) string {
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return sessionID
	}
	if sessionID, err := c.Cookie("session_id"); err == nil {
		return sessionID
	}
	return ""
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
