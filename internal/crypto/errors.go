package crypto

import "errors"

// Sentinel errors returned by the cryptographic engine. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCiphertextAuthentication is returned when an AES-GCM open fails:
	// the ciphertext was tampered with or a wrong key was used. It is a
	// data-integrity failure, deliberately distinct from a password
	// mismatch so callers can tell "wrong password" from "corrupted data".
	ErrCiphertextAuthentication = errors.New("ciphertext authentication failed")

	// ErrSessionKeyDestroyed is returned when an operation is attempted
	// with a session key whose material has already been zeroized.
	ErrSessionKeyDestroyed = errors.New("session key has been destroyed")

	// ErrInvalidKeyMaterial is returned when supplied key bytes do not
	// have the required 256-bit length.
	ErrInvalidKeyMaterial = errors.New("invalid key material length")

	// ErrCiphertextTooShort is returned when a blob is shorter than the
	// GCM nonce and therefore cannot contain a valid ciphertext.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrInvalidDelegateKey is returned when a delegate X25519 key is not
	// exactly 32 bytes, or when opening a sealed key with it fails.
	ErrInvalidDelegateKey = errors.New("invalid delegate key")
)
