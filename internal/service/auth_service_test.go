package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"descgate/internal/config"
	"descgate/internal/domain"
	"descgate/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:      "test-secret-key-for-unit-tests",
		TokenExpiry: time.Hour,
		Issuer:      "descgate-test",
	}
}

func testAuthConfig(secret string) config.AuthConfig {
	hash, _ := bcrypt.GenerateFromPassword([]byte(secret), 10)
	return config.AuthConfig{
		ClientID:         "scanner",
		ClientSecretHash: string(hash),
	}
}

func TestAuthService_IssueToken_Success(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	token, err := svc.IssueToken(service.TokenInput{
		ClientID:     "scanner",
		ClientSecret: "scanner-secret",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestAuthService_IssueToken_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	token, err := svc.IssueToken(service.TokenInput{
		ClientID:     "scanner",
		ClientSecret: "wrong-secret",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, token)
}

func TestAuthService_IssueToken_UnknownClient(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	token, err := svc.IssueToken(service.TokenInput{
		ClientID:     "someone-else",
		ClientSecret: "scanner-secret",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, token)
}

func TestAuthService_IssueToken_NoClientConfigured(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), config.AuthConfig{})

	token, err := svc.IssueToken(service.TokenInput{
		ClientID:     "scanner",
		ClientSecret: "scanner-secret",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, token)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	token, err := svc.IssueToken(service.TokenInput{
		ClientID:     "scanner",
		ClientSecret: "scanner-secret",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "scanner", claims.ClientID)
	assert.Equal(t, "descgate-test", claims.Issuer)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	claims, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := service.NewAuthService(config.JWTConfig{
		Secret:      "other-secret",
		TokenExpiry: time.Hour,
		Issuer:      "descgate-test",
	}, testAuthConfig("scanner-secret"))
	verifier := service.NewAuthService(testJWTConfig(), testAuthConfig("scanner-secret"))

	token, err := issuer.IssueToken(service.TokenInput{
		ClientID:     "scanner",
		ClientSecret: "scanner-secret",
	})
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token.AccessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
