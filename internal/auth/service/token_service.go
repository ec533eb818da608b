package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/clinic-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/clinic-service/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	Generate(userID, email string, role domain.Role) (string, string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"token_type"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// Generate issues an access/refresh pair and returns the access token expiry.
// Every token carries a fresh jti so two pairs issued in the same second differ.
func (ts *TokenService) Generate(userID, email string, role domain.Role) (string, string, time.Time, error) {
	now := time.Now()

	accessClaims := ts.claims(userID, email, role, authconstant.TokenTypeAccess, now, ts.AccessTokenExpiry)
	refreshClaims := ts.claims(userID, email, role, authconstant.TokenTypeRefresh, now, ts.RefreshTokenExpiry)

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		refreshClaims).SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, now.Add(ts.AccessTokenExpiry), nil
}

func (ts *TokenService) claims(userID, email string, role domain.Role, tokenType string, now time.Time, ttl time.Duration) JWTCustomClaims {
	return JWTCustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return verify(tokenString, ts.AccessTokenSecret, authconstant.TokenTypeAccess)
}

// VerifyRefreshToken parses and validates the given refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return verify(tokenString, ts.RefreshTokenSecret, authconstant.TokenTypeRefresh)
}

func verify(tokenString, secret, tokenType string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrTokenInvalid
	}

	if !token.Valid || claims.TokenType != tokenType || claims.UserID == "" {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}
