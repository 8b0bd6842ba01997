package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"quizlink/internal/dto"
	"quizlink/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockTokenValidator stubs ValidateJWT for middleware tests.
type ManualMockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func newMockValidator() *ManualMockTokenValidator {
	return &ManualMockTokenValidator{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			switch tokenString {
			case "valid_access_token":
				return &dto.AuthClaims{UserID: "user123", Email: "alice@example.com", TokenType: "access"}, nil
			case "valid_refresh_token":
				return &dto.AuthClaims{UserID: "user456", TokenType: "refresh"}, nil
			default:
				return nil, errors.New("invalid token")
			}
		},
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID string
	}{
		{name: "No Auth Header", expectedStatus: fiber.StatusUnauthorized},
		{name: "Valid Access Token", authHeader: "Bearer valid_access_token", expectedStatus: fiber.StatusOK, expectedUserID: "user123"},
		{name: "Invalid Token", authHeader: "Bearer invalid_token", expectedStatus: fiber.StatusUnauthorized},
		{name: "Refresh Token instead of Access", authHeader: "Bearer valid_refresh_token", expectedStatus: fiber.StatusUnauthorized},
		{name: "Basic Scheme", authHeader: "Basic some_token", expectedStatus: fiber.StatusUnauthorized},
		{name: "Bearer Without Token", authHeader: "Bearer ", expectedStatus: fiber.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			var userID string
			app.Get("/protected", middleware.Protected(newMockValidator()), func(c *fiber.Ctx) error {
				userID = middleware.UserID(c)
				return c.SendString(c.Locals(middleware.EmailKey).(string))
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedUserID, userID)
			body, _ := io.ReadAll(resp.Body)
			if tc.expectedStatus == fiber.StatusUnauthorized {
				assert.Contains(t, string(body), `"code":"UNAUTHORIZED"`)
			} else {
				assert.Equal(t, "alice@example.com", string(body))
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedUserID interface{}
	}{
		{name: "No Auth Header", expectedUserID: nil},
		{name: "Valid Access Token", authHeader: "Bearer valid_access_token", expectedUserID: "user123"},
		{name: "Invalid Token", authHeader: "Bearer invalid_token", expectedUserID: nil},
		{name: "Refresh Token instead of Access", authHeader: "Bearer valid_refresh_token", expectedUserID: nil},
		{name: "Malformed Auth Header", authHeader: "Basic some_token", expectedUserID: nil},
		{name: "Bearer Without Token", authHeader: "Bearer ", expectedUserID: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			nextHandlerCalled := false
			var userIDLocalValue interface{}
			var claims *dto.AuthClaims

			app.Get("/optional", middleware.OptionalAuth(newMockValidator()), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				userIDLocalValue = c.Locals(middleware.UserIDKey)
				claims = middleware.Claims(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/optional", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.True(t, nextHandlerCalled, "Next handler was not called")
			assert.Equal(t, tc.expectedUserID, userIDLocalValue)
			assert.Equal(t, tc.expectedUserID != nil, claims != nil)
		})
	}
}
