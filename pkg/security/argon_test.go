package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonHashAndVerify(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.Hash("password123")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")

	ok, err := a.Verify("password123", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Verify("password124", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonHashIsSalted(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	first, err := a.Hash("same-secret")
	require.NoError(t, err)

	second, err := a.Hash("same-secret")
	require.NoError(t, err)

	// Fresh salt per call, equal inputs must not collide
	assert.NotEqual(t, first, second)

	ok, err := a.Verify("same-secret", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Verify("same-secret", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgonVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	_, err := a.Verify("whatever", "not-a-phc-hash")
	assert.Error(t, err)

	_, err = a.Verify("whatever", "$argon2id$v=19$m=bad$salt$hash")
	assert.Error(t, err)
}

func TestFingerprintIsDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fingerprint("tok"), Fingerprint("tok"))
	assert.NotEqual(t, Fingerprint("tok"), Fingerprint("tok2"))
	assert.Len(t, Fingerprint("tok"), 64)
}
