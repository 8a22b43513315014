package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/internal/errors"
	"github.com/mirakh/gallery-backend/pkg/util"
)

// Context keys for authenticated admin information
const (
	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// RequireAdmin validates the bearer token and aborts unauthenticated
// requests. WebSocket clients cannot set headers, so a token query
// parameter is accepted as a fallback.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.Unauthorized(c, "Authentication required")
				c.Abort()
				return
			}
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired, please log in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			log.Warn("Non-admin token on admin route", map[string]interface{}{
				"path": c.Request.URL.Path,
				"role": claims.Role,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthUnauthorized, "Admin access required")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.UserID)
		c.Set(AdminEmailKey, claims.Email)

		log.Debug("Admin authenticated successfully", map[string]interface{}{
			"admin_id": claims.UserID,
		})
		c.Next()
	}
}

// GetAdminID returns the authenticated admin's id, or 0 when missing.
func GetAdminID(c *gin.Context) uint {
	if v, exists := c.Get(AdminIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
