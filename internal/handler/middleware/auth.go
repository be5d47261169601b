package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"desayuno/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxDeviceIDKey    = "device_id"
	ctxCafeteriaIDKey = "cafeteria_id"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxDeviceIDKey, claims.DeviceID)
		c.Set(ctxCafeteriaIDKey, claims.CafeteriaID)
		c.Next()
	}
}

func GetDeviceID(c *gin.Context) (uuid.UUID, bool) {
	deviceID, exists := c.Get(ctxDeviceIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := deviceID.(uuid.UUID)
	return id, ok
}

func GetCafeteriaID(c *gin.Context) (uuid.UUID, bool) {
	cafeteriaID, exists := c.Get(ctxCafeteriaIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := cafeteriaID.(uuid.UUID)
	return id, ok
}

// DeviceIDString is a logging helper; returns "-" for unauthenticated requests.
func DeviceIDString(c *gin.Context) string {
	id, ok := GetDeviceID(c)
	if !ok {
		return "-"
	}
	return id.String()
}
