package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef" // 16 bytes

func TestEncryptDecryptRequestID(t *testing.T) {
	for _, id := range []uint{1, 42, 99999} {
		token, err := EncryptRequestID(id, testKey)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		got, err := DecryptRequestID(token, testKey)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	a, err := EncryptRequestID(7, testKey)
	require.NoError(t, err)
	b, err := EncryptRequestID(7, testKey)
	require.NoError(t, err)

	// random IV per token
	assert.NotEqual(t, a, b)
}

func TestDecryptPlainNumericFallback(t *testing.T) {
	got, err := DecryptRequestID("123", testKey)
	require.NoError(t, err)
	assert.Equal(t, uint(123), got)
}

func TestBadKeyLength(t *testing.T) {
	_, err := EncryptRequestID(1, "short")
	assert.Error(t, err)
}

func TestDecryptEmpty(t *testing.T) {
	_, err := DecryptRequestID("", testKey)
	assert.Error(t, err)
}
