package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibulhaque/trendibay-backend/pkg/config"
)

func testHasher() *Hasher {
	// Small params keep the test fast; production values come from env.
	return NewHasher(config.Password{
		ArgonMemoryKiB:   8 * 1024,
		ArgonIterations:  1,
		ArgonParallelism: 1,
		ArgonSaltLength:  16,
		ArgonKeyLength:   32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("anything", "not-a-hash")
	assert.Error(t, err)

	_, err = h.Verify("anything", "$bcrypt$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
