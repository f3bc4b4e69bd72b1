package utils

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtSecret = []byte("test-secret")

func TestJWTRoundTrip(t *testing.T) {
	payload := models.UserPayload{UUID: "u-1", Email: "a@b.c", UserName: "abc"}

	token, err := GenerateJWT(jwtSecret, payload, time.Hour)
	require.NoError(t, err)

	got, err := VerifyJWT(jwtSecret, token)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(jwtSecret, models.UserPayload{UUID: "u-1"}, time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWT([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestVerifyJWTExpired(t *testing.T) {
	token, err := GenerateJWT(jwtSecret, models.UserPayload{UUID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(jwtSecret, token)
	assert.Error(t, err)
}

func TestVerifyJWTGarbage(t *testing.T) {
	_, err := VerifyJWT(jwtSecret, "not.a.token")
	assert.Error(t, err)
}
