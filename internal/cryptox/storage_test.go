package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageCipher_SealOpen(t *testing.T) {
	c := NewStorageCipher("secretKey", 42)

	sealed, err := c.Seal("secretA\nsecretB")
	require.NoError(t, err)

	got, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secretA\nsecretB", got)
}

func TestStorageCipher_LayerOrder(t *testing.T) {
	c := NewStorageCipher("secretKey", 42)

	sealed, err := c.Seal("payload")
	require.NoError(t, err)

	// The outer layer opens with the secret key and yields the inner blob,
	// which in turn opens with the owner id.
	inner, err := Decrypt("secretKey", sealed)
	require.NoError(t, err)
	text, err := Decrypt("42", inner)
	require.NoError(t, err)
	assert.Equal(t, "payload", text)
}

func TestStorageCipher_OtherOwnerFails(t *testing.T) {
	sealed, err := NewStorageCipher("secretKey", 42).Seal("payload that is long enough to fail reliably")
	require.NoError(t, err)

	_, err = NewStorageCipher("secretKey", 43).Open(sealed)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestStorageCipher_OtherSecretFails(t *testing.T) {
	sealed, err := NewStorageCipher("secretKey", 42).Seal("payload")
	require.NoError(t, err)

	_, err = NewStorageCipher("anotherKey", 42).Open(sealed)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestWipe(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	Wipe(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	Wipe(nil)
}
