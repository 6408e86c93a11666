package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveshgrewal/UCMS/domain"
)

func newTestJWTService() domain.TokenService {
	return NewJWTService("test-secret", "ucms-alumni", 15*time.Minute, 24*time.Hour)
}

func TestJWTServiceImpl_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateAccessToken(21, domain.RoleAlumni, "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(21), claims.IdentityID)
	assert.Equal(t, domain.RoleAlumni, claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestJWTServiceImpl_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTServiceImpl_ValidateRejectsWrongSecret(t *testing.T) {
	other := NewJWTService("other-secret", "ucms-alumni", 15*time.Minute, 24*time.Hour)
	token, err := other.GenerateAccessToken(21, domain.RoleAlumni, "sess-1")
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTServiceImpl_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", "ucms-alumni", -time.Minute, 24*time.Hour)
	token, err := svc.GenerateAccessToken(21, domain.RoleAlumni, "sess-1")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	// jwt.Parse already rejects expired tokens during parsing
	assert.Error(t, err)
}

func TestJWTServiceImpl_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateRefreshToken(21, domain.RoleAlumni, "sess-1")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(21), claims.IdentityID)
}
