// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/argon2"
)

// verifierSalt domain-separates the device-local verifier hash from the KEK
// itself, ensuring the two values have different purposes even though both
// derive from the same material.
const verifierSalt = "vaultcore/verifier/v1"

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChain constructs a [KeyChain] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChain() KeyChain {
	return &keyChain{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateEncryptionSalt implements [KeyChain]. It reads 16 random bytes
// from the OS CSPRNG and returns them as the encryption salt. Returns an
// error if the random read fails.
func (k *keyChain) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateDEK implements [KeyChain]. It reads 32 random bytes from the OS
// CSPRNG and returns them as the data-encryption key. Returns an error if
// the random read fails.
func (k *keyChain) GenerateDEK() ([]byte, error) {
	dek := make([]byte, SessionKeySize)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, err
	}
	return dek, nil
}

// DeriveKEK implements [KeyChain]. It derives a 256-bit key-encryption key
// from masterPassword and salt using Argon2id with the parameters stored in
// the receiver. The result exists only in process memory and is never
// transmitted or persisted.
func (k *keyChain) DeriveKEK(masterPassword string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(masterPassword),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
}

// WrapDEK implements [KeyChain]. It wraps the DEK with the KEK using
// AES-256-GCM. A random 12-byte nonce is prepended to the ciphertext so that
// the unwrap side can locate it: blob = nonce ‖ ciphertext. Returns an error
// if cipher creation or the random nonce read fails.
func (k *keyChain) WrapDEK(dek, kek []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend the nonce so UnwrapDEK can split it out without side-channel.
	wrapped := gcm.Seal(nil, nonce, dek, nil)
	return append(nonce, wrapped...), nil
}

// UnwrapDEK implements [KeyChain]. It unwraps the blob produced by
// [keyChain.WrapDEK] using the KEK and AES-256-GCM. The blob must be at
// least as long as the GCM nonce (12 bytes). Returns the plaintext DEK, or
// an error if the blob is too short, or ErrCiphertextAuthentication if the
// KEK is wrong or the ciphertext is corrupted (authentication-tag mismatch).
func (k *keyChain) UnwrapDEK(wrappedDEK, kek []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(wrappedDEK) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	// Split the blob into nonce and actual ciphertext.
	nonce, ciphertext := wrappedDEK[:nonceSize], wrappedDEK[nonceSize:]

	// Decrypt and verify auth tag. An error here almost always means the
	// user entered the wrong master password, producing a wrong KEK.
	dek, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrCiphertextAuthentication
	}

	return dek, nil
}

// VerifierHash implements [KeyChain]. It computes
// SHA-256(KEK ‖ verifierSalt) and returns the digest. The fixed salt
// domain-separates this hash from the KEK; the hash is one-way, so holding
// the verifier does not reveal the KEK.
func (k *keyChain) VerifierHash(kek []byte) []byte {
	h := sha256.New()
	h.Write(kek)
	h.Write([]byte(verifierSalt))
	return h.Sum(nil)
}
