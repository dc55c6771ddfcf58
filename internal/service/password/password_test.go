package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/service/password"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := password.Hash("pw1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "pw1", digest)

	assert.True(t, password.Verify("pw1", digest))
	assert.False(t, password.Verify("wrong", digest))
	assert.False(t, password.Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	a, err := password.Hash("pw1")
	require.NoError(t, err)
	b, err := password.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyGarbageDigest(t *testing.T) {
	assert.False(t, password.Verify("pw1", "not-a-bcrypt-digest"))
}
