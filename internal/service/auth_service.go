package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"descgate/internal/config"
	"descgate/internal/domain"
)

// Claims represents the JWT claims issued to machine clients.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
}

// Token holds an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenInput is the DTO for token requests.
type TokenInput struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	IssueToken(input TokenInput) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	jwtCfg  config.JWTConfig
	authCfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(jwtCfg config.JWTConfig, authCfg config.AuthConfig) AuthService {
	return &authService{
		jwtCfg:  jwtCfg,
		authCfg: authCfg,
	}
}

func (s *authService) IssueToken(input TokenInput) (*Token, error) {
	if s.authCfg.ClientID == "" || s.authCfg.ClientSecretHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.ClientID != s.authCfg.ClientID {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(s.authCfg.ClientSecretHash), []byte(input.ClientSecret)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(s.jwtCfg.TokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   input.ClientID,
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		ClientID: input.ClientID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &Token{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresAt:   expiry,
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == "access" {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
