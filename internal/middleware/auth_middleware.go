package middleware

import (
	"context"
	"strings"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"
	"quizlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	EmailKey            = "email"
	ClaimsKey           = "claims"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code:    string(domain.CodeUnauthorized),
		Message: message,
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>". ok is false when the
// header is missing, uses another scheme or carries no token.
func bearerToken(c *fiber.Ctx) (token string, ok bool) {
	authHeader := c.Get(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", false
	}
	token = strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	return token, token != ""
}

func setIdentity(c *fiber.Ctx, claims *dto.AuthClaims) {
	c.Locals(UserIDKey, claims.UserID)
	c.Locals(EmailKey, claims.Email)
	c.Locals(ClaimsKey, claims)
}

// Protected requires a valid, unrevoked access token and stores the caller's identity in locals.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(AuthorizationHeader) == "" {
			return unauthorized(c, "Authorization header is missing")
		}
		tokenString, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Authorization header must be a Bearer token")
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("Rejected bearer token", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "Invalid or expired token")
		}
		if claims.TokenType != service.TokenTypeAccess {
			return unauthorized(c, "Access token required")
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalAuth sets the identity when a valid access token is presented and otherwise
// lets the request through anonymously.
func OptionalAuth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}
		if claims.TokenType != service.TokenTypeAccess {
			logger.Get().Debug("OptionalAuth: not an access token, proceeding as anonymous", zap.String("tokenType", claims.TokenType))
			return c.Next()
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// Claims returns the validated token claims, or nil for anonymous requests.
func Claims(c *fiber.Ctx) *dto.AuthClaims {
	claims, _ := c.Locals(ClaimsKey).(*dto.AuthClaims)
	return claims
}
