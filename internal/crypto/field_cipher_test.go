package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) *SessionKey {
	t.Helper()

	material := make([]byte, SessionKeySize)
	_, err := rand.Read(material)
	require.NoError(t, err)

	key, err := NewSessionKey(material)
	require.NoError(t, err)
	return key
}

func TestEncryptDecryptField_RoundTrip(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	tests := []string{
		"a",
		"serial number 8839-AA",
		"safe combination: 12-34-56",
		"unicode: ключ от сейфа 🔑",
		"long " + string(bytes.Repeat([]byte("x"), 4096)),
	}

	for _, plaintext := range tests {
		encrypted, err := cipher.EncryptField(plaintext, key)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := cipher.DecryptField(encrypted, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptField_NonDeterministic(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	first, err := cipher.EncryptField("same plaintext", key)
	require.NoError(t, err)
	second, err := cipher.EncryptField("same plaintext", key)
	require.NoError(t, err)

	// Fresh nonce per call: equal plaintexts must not produce equal blobs.
	assert.NotEqual(t, first, second)
}

func TestDecryptField_WrongKey(t *testing.T) {
	cipher := NewFieldCipher()
	key1 := newTestKey(t)
	key2 := newTestKey(t)

	encrypted, err := cipher.EncryptField("secret", key1)
	require.NoError(t, err)

	_, err = cipher.DecryptField(encrypted, key2)
	assert.ErrorIs(t, err, ErrCiphertextAuthentication)
}

func TestDecryptField_Tampered(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	encrypted, err := cipher.EncryptField("secret", key)
	require.NoError(t, err)

	// Flip one character of the base64 payload.
	raw := []byte(encrypted)
	if raw[5] == 'A' {
		raw[5] = 'B'
	} else {
		raw[5] = 'A'
	}

	_, err = cipher.DecryptField(string(raw), key)
	assert.Error(t, err)
}

func TestDecryptField_NotEncryptedData(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	// Legacy plain values are not valid blobs; they must fail cleanly,
	// never decrypt into garbage.
	_, err := cipher.DecryptField("plain legacy value", key)
	assert.Error(t, err)
}

func TestFieldOps_DestroyedKey(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	encrypted, err := cipher.EncryptField("secret", key)
	require.NoError(t, err)

	key.Destroy()

	_, err = cipher.EncryptField("other", key)
	assert.ErrorIs(t, err, ErrSessionKeyDestroyed)

	_, err = cipher.DecryptField(encrypted, key)
	assert.ErrorIs(t, err, ErrSessionKeyDestroyed)
}

func TestDecryptRecord_IsolatesFieldFailures(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	goodA, err := cipher.EncryptField("value-a", key)
	require.NoError(t, err)
	goodB, err := cipher.EncryptField("value-b", key)
	require.NoError(t, err)

	fields := map[string]string{
		"a":      goodA,
		"b":      goodB,
		"legacy": "unencrypted legacy value",
	}

	decrypted, failed, err := cipher.DecryptRecord(fields, key)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "value-a", "b": "value-b"}, decrypted)
	assert.Equal(t, []string{"legacy"}, failed)
}

func TestDecryptRecord_DestroyedKeyAbortsWholeRecord(t *testing.T) {
	cipher := NewFieldCipher()
	key := newTestKey(t)

	encrypted, err := cipher.EncryptField("value", key)
	require.NoError(t, err)
	key.Destroy()

	_, _, err = cipher.DecryptRecord(map[string]string{"f": encrypted}, key)
	assert.ErrorIs(t, err, ErrSessionKeyDestroyed)
}

func TestSessionKey_InvalidMaterial(t *testing.T) {
	_, err := NewSessionKey([]byte("too short"))
	assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
}

func TestSessionKey_DestroyIdempotent(t *testing.T) {
	key := newTestKey(t)

	key.Destroy()
	key.Destroy()

	assert.True(t, key.Destroyed())
}

func TestSessionKey_IndependentCopies(t *testing.T) {
	material := make([]byte, SessionKeySize)
	_, err := rand.Read(material)
	require.NoError(t, err)

	// Two tabs of the same owner: two handles over the same material.
	first, err := NewSessionKey(material)
	require.NoError(t, err)
	second, err := NewSessionKey(material)
	require.NoError(t, err)

	cipher := NewFieldCipher()
	encrypted, err := cipher.EncryptField("shared vault", first)
	require.NoError(t, err)

	// Destroying one handle must not invalidate the other.
	first.Destroy()

	decrypted, err := cipher.DecryptField(encrypted, second)
	require.NoError(t, err)
	assert.Equal(t, "shared vault", decrypted)
}

func TestSessionKey_RefusesSerialization(t *testing.T) {
	key := newTestKey(t)

	_, err := json.Marshal(key)
	assert.Error(t, err, "a session key must never serialize")

	assert.Equal(t, "SessionKey(redacted)", key.String())
}
