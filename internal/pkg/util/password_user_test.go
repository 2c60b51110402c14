package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Params{SaltLength: 16, Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32}

func TestArgon2Password_HashAndCompare(t *testing.T) {
	p := NewArgon2Password(fastParams)

	hash, err := p.Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.NoError(t, p.Compare(hash, "pw"))
	assert.ErrorIs(t, p.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestArgon2Password_SaltIsRandom(t *testing.T) {
	p := NewArgon2Password(fastParams)

	h1, err := p.Hash("pw")
	require.NoError(t, err)
	h2, err := p.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestArgon2Password_CompareReadsParamsFromHash(t *testing.T) {
	hash, err := NewArgon2Password(fastParams).Hash("pw")
	require.NoError(t, err)

	assert.NoError(t, UsePassword().Compare(hash, "pw"))
}

func TestArgon2Password_InvalidHash(t *testing.T) {
	p := NewArgon2Password(fastParams)

	for _, hash := range []string{
		"",
		"$bcrypt$v=19$m=1,t=1,p=1$salt$hash",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=4194304,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		err := p.Compare(hash, "pw")
		assert.ErrorIs(t, err, ErrMalformedHash, hash)
		assert.NotErrorIs(t, err, ErrPasswordMismatch, hash)
	}
}

func TestDecodeHash_RoundTripsParams(t *testing.T) {
	hash, err := NewArgon2Password(fastParams).Hash("pw")
	require.NoError(t, err)

	h, err := decodeHash(hash)
	require.NoError(t, err)
	assert.Equal(t, fastParams, h.params)
}
