package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizlink/internal/cache"
	"quizlink/internal/config"
	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"
	"quizlink/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidAuthState = errors.New("invalid oauth state")
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (accessToken string, refreshToken string, user *domain.User, err error)
	// CompleteLogin finds the user by email or creates one from the provider profile.
	CompleteLogin(ctx context.Context, profile *dto.GoogleUserInfo) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
	// Logout revokes the token until it would have expired. Revocation is best-effort.
	Logout(ctx context.Context, claims *dto.AuthClaims) error
}

type authServiceImpl struct {
	userRepo domain.UserRepository
	cache    domain.Cache
	provider GoogleProvider
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new instance of AuthService. cache may be nil, which disables revocation.
func NewAuthService(userRepo domain.UserRepository, cache domain.Cache, provider GoogleProvider, jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo: userRepo,
		cache:    cache,
		provider: provider,
		jwtCfg:   jwtCfg,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *domain.User, error) {
	if receivedState == "" || receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	profile, err := s.provider.FetchProfile(ctx, code)
	if err != nil {
		return "", "", nil, err
	}

	user, err := s.CompleteLogin(ctx, profile)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

func (s *authServiceImpl) CompleteLogin(ctx context.Context, profile *dto.GoogleUserInfo) (*domain.User, error) {
	appLogger := logger.Get()
	email := domain.NormalizeEmail(profile.Email)
	if email == "" {
		return nil, domain.NewInvalidInputError("Provider profile has no email")
	}
	name := strings.TrimSpace(profile.Name)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}

	if user == nil {
		newUser := domain.NewUser(email, name, profile.Picture)
		err := s.userRepo.CreateUser(ctx, newUser)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			// Another login for the same email won the insert.
			user, err = s.userRepo.GetUserByEmail(ctx, email)
			if err != nil || user == nil {
				return nil, domain.NewInternalError("Failed to load user after concurrent create", err)
			}
		case err != nil:
			return nil, domain.NewInternalError("Failed to create user", err)
		default:
			user = newUser
			appLogger.Info("New user created via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
		}
		return user, nil
	}

	if user.Name != name || user.AvatarURL != profile.Picture {
		user.Name = name
		user.AvatarURL = profile.Picture
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return nil, domain.NewInternalError("Failed to update user", err)
		}
	}
	appLogger.Info("User logged in via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user profile", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("User not found")
	}
	return &dto.UserProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL, TokenTypeAccess)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.jwtCfg.RefreshTokenTTL, TokenTypeRefresh)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create refresh token", err)
	}
	return accessToken, refreshToken, nil
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Debug("JWT token expired", zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidJWTToken
	}

	if s.isRevoked(ctx, claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// isRevoked fails open: a cache outage must not lock every user out.
func (s *authServiceImpl) isRevoked(ctx context.Context, tokenID string) bool {
	if s.cache == nil || tokenID == "" {
		return false
	}
	_, err := s.cache.Get(ctx, cache.RevokedTokenKey(tokenID))
	if err == nil {
		return true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Failed to check token revocation", zap.Error(err), zap.String("jti", tokenID))
	}
	return false
}

func (s *authServiceImpl) revoke(ctx context.Context, claims *dto.AuthClaims) {
	if s.cache == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, cache.RevokedTokenKey(claims.ID), claims.TokenType, ttl); err != nil {
		logger.Get().Warn("Failed to revoke token", zap.Error(err), zap.String("jti", claims.ID), zap.String("userID", claims.UserID))
	}
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	appLogger := logger.Get()
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", domain.NewError(domain.CodeUnauthorized, "Invalid refresh token", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", "", domain.NewUnauthorizedError("Not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to load user for refresh token", err)
	}
	if user == nil {
		appLogger.Warn("User not found for refresh token", zap.String("userID", claims.UserID))
		return "", "", domain.NewUnauthorizedError("User no longer exists")
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return "", "", err
	}
	s.revoke(ctx, claims)

	appLogger.Info("JWT token refreshed", zap.String("userID", user.ID))
	return accessToken, refreshToken, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, claims *dto.AuthClaims) error {
	if claims == nil {
		return domain.NewUnauthorizedError("Not signed in")
	}
	s.revoke(ctx, claims)
	logger.Get().Info("User logged out", zap.String("userID", claims.UserID))
	return nil
}
