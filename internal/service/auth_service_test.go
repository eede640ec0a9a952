package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/config"
)

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{HostUsername: "host", HostPassword: "pw", JWTSecret: "secret"})

	resp, err := svc.Login("host", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.HostID, "host_")

	claims, err := svc.ValidateHostToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.HostID, claims.HostID)
}

func TestAuthService_Rejections(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{HostUsername: "host", HostPassword: "pw", JWTSecret: "secret"})

	_, err := svc.Login("host", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ValidateHostToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(config.AuthConfig{HostUsername: "host", HostPassword: "pw", JWTSecret: "different"})
	resp, err := other.Login("host", "pw")
	require.NoError(t, err)
	_, err = svc.ValidateHostToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "signed with another secret")

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := svc.Login("host", "pw")
	require.NoError(t, err)
	_, err = svc.ValidateHostToken(expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
