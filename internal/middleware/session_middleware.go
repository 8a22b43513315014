package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/pkg/util"
)

// SessionIDKey is the gin context key holding the anonymous session id.
const SessionIDKey = "session_id"

type SessionMiddleware struct {
	cfg config.SessionConfig
}

func NewSessionMiddleware(cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{cfg: cfg}
}

// Identify attaches an opaque session identity to the request. A valid
// signed cookie is reused; anything else (absent, tampered, expired) gets a
// fresh UUID wrapped in a signed token. The identity is never user-chosen:
// the raw session id only ever travels inside the signature.
func (m *SessionMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		if cookie, err := c.Cookie(m.cfg.CookieName); err == nil {
			if sessionID, err := util.ValidateSessionToken(cookie, m.cfg.Secret); err == nil {
				c.Set(SessionIDKey, sessionID)
				c.Next()
				return
			}
			log.Debug("Invalid session cookie, issuing a new session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
		}

		sessionID := util.NewSessionID()
		token, err := util.GenerateSessionToken(sessionID, m.cfg.Secret, m.cfg.MaxAge)
		if err != nil {
			log.Error("Failed to generate session token", err, nil)
			// Keep the request alive with an unsaved identity; the cart
			// simply will not survive past this response.
			c.Set(SessionIDKey, sessionID)
			c.Next()
			return
		}

		c.SetCookie(m.cfg.CookieName, token, int(m.cfg.MaxAge.Seconds()), "/", "", false, true)
		c.Set(SessionIDKey, sessionID)

		log.Debug("New session issued", map[string]interface{}{
			"session_id": sessionID,
		})
		c.Next()
	}
}

// GetSessionID returns the session id set by Identify, or "" when the
// middleware did not run.
func GetSessionID(c *gin.Context) string {
	if v, exists := c.Get(SessionIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
