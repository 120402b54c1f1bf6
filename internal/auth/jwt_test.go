// InstaBids | 2026
// jwt_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/config"
	"github.com/instabids/management-api/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "instabids-api",
		Audience:           "instabids-clients",
	}
}

func newTestJWTManager(t *testing.T, cfg config.JWTConfig) *JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	manager, err := NewJWTManagerFromKey(key, cfg)
	require.NoError(t, err)

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, testJWTConfig())

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:         "u-1",
		UserType:       "property_manager",
		OrganizationID: "org-1",
		TokenVersion:   3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "property_manager", claims.UserType)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	manager := newTestJWTManager(t, cfg)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:   "u-1",
		UserType: "tenant",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))
}

func TestVerifyAccessTokenRejectsWrongKey(t *testing.T) {
	manager := newTestJWTManager(t, testJWTConfig())
	other := newTestJWTManager(t, testJWTConfig())

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:   "u-1",
		UserType: "contractor",
	})
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestVerifyAccessTokenRejectsWrongIssuer(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	issueCfg := testJWTConfig()
	issueCfg.Issuer = "someone-else"
	issuer, err := NewJWTManagerFromKey(key, issueCfg)
	require.NoError(t, err)

	verifier, err := NewJWTManagerFromKey(key, testJWTConfig())
	require.NoError(t, err)

	token, err := issuer.CreateAccessToken(AccessTokenClaims{
		UserID:   "u-1",
		UserType: "admin",
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	require.Error(t, err)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	manager := newTestJWTManager(t, testJWTConfig())

	_, err := manager.VerifyAccessToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestCreateRefreshToken(t *testing.T) {
	manager := newTestJWTManager(t, testJWTConfig())

	first, err := manager.CreateRefreshToken("u-1", "")
	require.NoError(t, err)

	assert.NotEmpty(t, first.Token)
	assert.NotEmpty(t, first.FamilyID)
	assert.Equal(t, core.HashToken(first.Token), first.Hash)
	assert.True(t, first.ExpiresAt.After(time.Now()))

	// Rotation keeps the family.
	second, err := manager.CreateRefreshToken("u-1", first.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, first.FamilyID, second.FamilyID)
	assert.NotEqual(t, first.Token, second.Token)

	assert.True(t, manager.VerifyRefreshTokenHash(first.Token, first.Hash))
	assert.False(t, manager.VerifyRefreshTokenHash(second.Token, first.Hash))
}

func TestGetKeyID(t *testing.T) {
	manager := newTestJWTManager(t, testJWTConfig())
	assert.Len(t, manager.GetKeyID(), 8)
}
