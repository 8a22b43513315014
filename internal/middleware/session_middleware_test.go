package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestRouter(cfg config.SessionConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	sessionMiddleware := NewSessionMiddleware(cfg)
	var captured string
	router.GET("/whoami", sessionMiddleware.Identify(), func(c *gin.Context) {
		captured = GetSessionID(c)
		c.JSON(http.StatusOK, gin.H{"session_id": captured})
	})
	return router, &captured
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "session-test-secret",
		CookieName: "gallery_session",
		MaxAge:     24 * time.Hour,
	}
}

func TestSessionMiddleware_IssuesNewSession(t *testing.T) {
	router, captured := sessionTestRouter(testSessionConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, *captured)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "gallery_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	router, captured := sessionTestRouter(testSessionConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	first := *captured
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	// Replay the issued cookie; the same identity comes back and no new
	// cookie is set.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, first, *captured)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddleware_TamperedCookieGetsNewSession(t *testing.T) {
	router, captured := sessionTestRouter(testSessionConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	first := *captured
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	tampered := *cookies[0]
	tampered.Value = tampered.Value + "x"

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&tampered)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, first, *captured)
	// A replacement cookie is issued.
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestSessionMiddleware_DifferentSecretInvalidatesCookie(t *testing.T) {
	router, captured := sessionTestRouter(testSessionConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	first := *captured
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	otherCfg := testSessionConfig()
	otherCfg.Secret = "rotated-secret"
	otherRouter, otherCaptured := sessionTestRouter(otherCfg)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	otherRouter.ServeHTTP(w, req)

	assert.NotEqual(t, first, *otherCaptured)
}

func TestGetSessionID_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetSessionID(c))
}
