package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("acc-1", "patient", time.Hour)
	require.NoError(t, err)

	accountID, role, err := ExtractAccountFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)
	assert.Equal(t, "patient", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("acc-1", "patient", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractAccountFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractAccountFromToken("not.a.token")
	assert.Error(t, err)
}
