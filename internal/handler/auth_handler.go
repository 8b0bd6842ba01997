package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/url"
	"time"

	"quizlink/internal/config"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"
	"quizlink/internal/middleware"
	"quizlink/internal/service"
	"quizlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	oauthStateCookieName = "oauthstate"
	oauthStateTTL        = 10 * time.Minute
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
	clientURL   string
}

func NewAuthHandler(authService service.AuthService, validator *validation.Validator, serverCfg config.ServerConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		clientURL:   serverCfg.ClientURL,
	}
}

func (h *AuthHandler) setStateCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})
}

func (h *AuthHandler) signinURL(outcome string) string {
	return h.clientURL + "/signin?auth=" + outcome
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Stores a state cookie and redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Router /auth/google [get]
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return domain.NewInternalError("Could not generate state for OAuth flow", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	h.setStateCookie(c, state, time.Now().Add(oauthStateTTL))

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Completes login and redirects to the client with tokens in the URL fragment. Failures redirect with auth=failed.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 302 {string} string "Redirects to the client sign-in page"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)
	h.setStateCookie(c, "", time.Now().Add(-time.Hour))

	if code == "" {
		appLogger.Warn("Authorization code missing in Google OAuth callback", zap.String("error", c.Query("error")))
		return c.Redirect(h.signinURL("failed"), fiber.StatusFound)
	}

	accessToken, refreshToken, user, err := h.authService.HandleGoogleCallback(c.UserContext(), code, receivedState, expectedState)
	if err != nil {
		appLogger.Warn("Google login failed", zap.Error(err))
		return c.Redirect(h.signinURL("failed"), fiber.StatusFound)
	}

	appLogger.Info("Google OAuth callback successful, tokens issued", zap.String("userID", user.ID))
	fragment := url.Values{}
	fragment.Set("access_token", accessToken)
	fragment.Set("refresh_token", refreshToken)
	return c.Redirect(h.signinURL("success")+"#"+fragment.Encode(), fiber.StatusFound)
}

// Profile returns the signed-in user.
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return domain.NewUnauthorizedError("Not signed in")
	}

	profile, err := h.authService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProfileResponse{User: *profile, Authenticated: true})
}

// RefreshToken exchanges a refresh token for a new token pair. The presented token is revoked.
// @Summary Refresh JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	accessToken, refreshToken, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout revokes the presented access token.
// @Summary Logout user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.Claims(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}
