package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err, "mismatch is not an error")
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashUsesCost(t *testing.T) {
	hash, err := New(DefaultCost).Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestHashLongPassword(t *testing.T) {
	h := New(bcrypt.MinCost)
	long := strings.Repeat("a", MaxLength) + "tail"

	hash, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// bytes past the limit do not count
	ok, err = h.Verify(strings.Repeat("a", MaxLength)+"other", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(strings.Repeat("a", MaxLength-1)+"b", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyLongPasswordAgainstPrefixHash(t *testing.T) {
	h := New(bcrypt.MinCost)
	prefix := strings.Repeat("p", MaxLength)

	hash, err := bcrypt.GenerateFromPassword([]byte(prefix), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify(prefix+"extra", string(hash))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	ok, err := h.Verify("secret1", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}
