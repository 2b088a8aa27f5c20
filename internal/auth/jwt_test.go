// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dwellingly-api/internal/config"
	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-test-secret-test-secret-test",
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		ResetTokenExpire:   10 * time.Minute,
		Issuer:             "dwellingly-api",
		Audience:           "dwellingly",
	}
}

func testJWTManager(t *testing.T, cfg config.JWTConfig) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(cfg)
	require.NoError(t, err)
	return m
}

func TestNewJWTManager_RejectsShortSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = "too-short"

	_, err := NewJWTManager(cfg)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	signed, err := m.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   policy.SomeRole(policy.RoleStaff),
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	require.True(t, claims.Role.Valid)
	assert.Equal(t, policy.RoleStaff, claims.Role.Role)
}

func TestAccessToken_UnassignedRoleOmitsClaim(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: "user-2"})
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)

	assert.Equal(t, "user-2", claims.UserID)
	assert.False(t, claims.Role.Valid)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	m := testJWTManager(t, cfg)

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: "user-3"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), signed)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "another-secret-another-secret-another-se"
	other := testJWTManager(t, otherCfg)

	signed, err := other.CreateAccessToken(AccessTokenClaims{UserID: "user-4"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), signed)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	_, err := m.VerifyAccessToken(context.Background(), "not.a.token")
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

// A reset token must never pass as an access token even though both are
// signed with the same key.
func TestVerifyAccessToken_RejectsResetToken(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	signed, err := m.CreateResetToken("user-5")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), signed)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestResetToken_RoundTrip(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	signed, err := m.CreateResetToken("user-6")
	require.NoError(t, err)

	claims, err := m.ParseResetToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "user-6", claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestParseResetToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ResetTokenExpire = -time.Minute
	m := testJWTManager(t, cfg)

	signed, err := m.CreateResetToken("user-7")
	require.NoError(t, err)

	_, err = m.ParseResetToken(signed)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))
}

func TestParseResetToken_RejectsAccessToken(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	signed, err := m.CreateAccessToken(AccessTokenClaims{UserID: "user-8"})
	require.NoError(t, err)

	_, err = m.ParseResetToken(signed)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestCreateRefreshToken(t *testing.T) {
	m := testJWTManager(t, testJWTConfig())

	data, err := m.CreateRefreshToken("user-9", "")
	require.NoError(t, err)

	assert.NotEmpty(t, data.Token)
	assert.Equal(t, core.HashToken(data.Token), data.Hash)
	assert.NotEmpty(t, data.FamilyID)
	assert.True(t, data.ExpiresAt.After(time.Now()))

	// Rotations within a family keep the family id.
	rotated, err := m.CreateRefreshToken("user-9", data.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, data.FamilyID, rotated.FamilyID)
	assert.NotEqual(t, data.Token, rotated.Token)
}
