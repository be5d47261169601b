//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_TokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	deviceID := uuid.New()
	cafeteriaID := uuid.New()

	token, err := svc.GenerateToken(deviceID, cafeteriaID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, deviceID, claims.DeviceID)
	assert.Equal(t, cafeteriaID, claims.CafeteriaID)
}

func TestService_ValidateToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		other := NewService("another-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
