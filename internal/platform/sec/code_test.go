// Copyright (c) 2026 YaMDb. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(16)
	require.NoError(t, err)

	// 16 random bytes hex-encode to 32 characters
	assert.Len(t, first, 32)

	second, err := sec.GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

/*
TestCodeHash_RoundTrip verifies that a hashed code verifies against itself
and nothing else.
*/
func TestCodeHash_RoundTrip(t *testing.T) {
	code, err := sec.GenerateSecureToken(16)
	require.NoError(t, err)

	hash, err := sec.HashCode(code)
	require.NoError(t, err)

	// The hash must not contain the plain code
	assert.NotContains(t, hash, code)

	assert.True(t, sec.CheckCodeHash(code, hash))
	assert.False(t, sec.CheckCodeHash("wrong-code", hash))
	assert.False(t, sec.CheckCodeHash(code, "not-a-bcrypt-hash"))
}
