package crypto_test

import (
	"testing"

	"github.com/recipe-api/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := crypto.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, crypto.CheckPassword("correct horse", hash))
	assert.False(t, crypto.CheckPassword("wrong", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := crypto.HashPassword("same")
	require.NoError(t, err)
	second, err := crypto.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
