package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/mirakh/gallery-backend/internal/errors"
	"github.com/mirakh/gallery-backend/internal/app/service"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

const oauthStateCookie = "oauth_state"

type GoogleAuthController struct {
	customerAuthService service.CustomerAuthService
}

func NewGoogleAuthController(customerAuthService service.CustomerAuthService) *GoogleAuthController {
	return &GoogleAuthController{
		customerAuthService: customerAuthService,
	}
}

// Login starts the Google authorization-code flow. The random state lands
// in a short-lived cookie and must round-trip through the callback.
// GET /api/v1/auth/google/login
func (ctrl *GoogleAuthController) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, ctrl.customerAuthService.AuthCodeURL(state))
}

// Callback completes the Google flow: verify state, exchange the code, and
// issue a customer token
// GET /api/v1/auth/google/callback
func (ctrl *GoogleAuthController) Callback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		log.Warn("OAuth state mismatch", map[string]interface{}{
			"has_cookie": err == nil,
		})
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthStateMismatch, "OAuth state mismatch")
		return
	}
	// One shot per state.
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.AuthOAuthFailed, "Missing authorization code")
		return
	}

	customer, token, err := ctrl.customerAuthService.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrGoogleAuthFailed) {
			log.Warn("Google login failed", nil)
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthOAuthFailed, "Google authentication failed")
			return
		}
		log.Error("Google login failed unexpectedly", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Login failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"customer": customer,
	})
}
