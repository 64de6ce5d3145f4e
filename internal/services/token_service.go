package services

import (
	"errors"
	"fmt"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/config"
	"drone-survey-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenIssuer = "drone-survey-service"
)

// TokenService issues and verifies the access/refresh token pair. The two
// tokens are signed with distinct secrets.
type TokenService struct {
	accessSecret  string
	refreshSecret string
	now           func() time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, apperr.New(apperr.KindServerConfiguration, "MISSING_SECRET", "JWT signing secrets are not configured")
	}
	return &TokenService{
		accessSecret:  cfg.AccessTokenSecret,
		refreshSecret: cfg.RefreshTokenSecret,
		now:           time.Now,
	}, nil
}

func (s *TokenService) GenerateTokenPair(claims models.Claims) (*models.TokenPair, error) {
	accessToken, err := s.sign(claims, AccessTokenTTL, s.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.sign(claims, RefreshTokenTTL, s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *TokenService) sign(claims models.Claims, ttl time.Duration, secret string) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *TokenService) VerifyAccessToken(tokenString string) (*models.Claims, error) {
	return s.verify(tokenString, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(tokenString string) (*models.Claims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *TokenService) verify(tokenString, secret string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindForbidden, "TOKEN_EXPIRED", "token has expired", err)
		}
		return nil, apperr.Wrap(apperr.KindForbidden, "INVALID_TOKEN", "invalid token", err)
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.KindForbidden, "INVALID_TOKEN", "invalid token claims")
	}
	return claims, nil
}
