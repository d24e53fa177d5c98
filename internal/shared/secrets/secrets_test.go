package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	for _, key := range []string{
		"sk-proj-abcdef1234567890",
		"short",
		"",
		strings.Repeat("x", 300),
	} {
		enc, err := box.Encrypt(key)
		require.NoError(t, err)
		assert.NotEqual(t, key, enc)

		dec, err := box.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, key, dec)
	}
}

func TestEncryptProducesFreshIV(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	a, err := box.Encrypt("sk-proj-abcdef1234567890")
	require.NoError(t, err)
	b, err := box.Encrypt("sk-proj-abcdef1234567890")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	for _, bad := range []string{"", "not-base64!!", "YWJj", strings.Repeat("A", 44)} {
		_, err := box.Decrypt(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDecryptWithWrongSecretFails(t *testing.T) {
	boxA, err := NewBox("secret-a")
	require.NoError(t, err)
	boxB, err := NewBox("secret-b")
	require.NoError(t, err)

	enc, err := boxA.Encrypt("sk-proj-abcdef1234567890")
	require.NoError(t, err)

	dec, err := boxB.Decrypt(enc)
	if err == nil {
		// CBC with wrong key usually fails padding; if padding happens to
		// parse, the plaintext still must not match.
		assert.NotEqual(t, "sk-proj-abcdef1234567890", dec)
	}
}

func TestNewBoxRequiresSecret(t *testing.T) {
	_, err := NewBox("   ")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "sk-pr...wxyz", Mask("sk-proj-abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "****", Mask("tiny"))
	assert.Equal(t, "****", Mask(""))
}
