package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := []byte("k")
	token := uuid.New()

	signed, err := SignSessionToken(token, uuid.New(), time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	got, err := ParseSessionToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestSessionToken_Rejected(t *testing.T) {
	secret := []byte("k")

	signed, err := SignSessionToken(uuid.New(), uuid.New(), time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	_, err = ParseSessionToken(signed, []byte("other"))
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	expired, err := SignSessionToken(uuid.New(), uuid.New(), time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)
	_, err = ParseSessionToken(expired, secret)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = ParseSessionToken("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
