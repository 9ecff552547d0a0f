// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// fieldCipher is the private implementation of [FieldCipher].
type fieldCipher struct{}

// NewFieldCipher constructs the AES-256-GCM [FieldCipher]. The returned
// value is stateless and safe for concurrent use.
func NewFieldCipher() FieldCipher {
	return &fieldCipher{}
}

// EncryptField implements [FieldCipher]. It encrypts plaintext with the
// session key using AES-256-GCM. The output is a Base64 (standard encoding)
// string of the blob: nonce (12 bytes) ‖ ciphertext. Returns
// ErrSessionKeyDestroyed if the key handle has been destroyed, or an error
// if cipher creation or nonce generation fails.
func (f *fieldCipher) EncryptField(plaintext string, key *SessionKey) (string, error) {
	var encoded string

	err := key.use(func(material []byte) error {
		block, err := aes.NewCipher(material)
		if err != nil {
			return fmt.Errorf("create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return fmt.Errorf("create gcm: %w", err)
		}

		nonce := make([]byte, gcm.NonceSize())
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return fmt.Errorf("generate nonce: %w", err)
		}

		// Encrypt: nonce || ciphertext
		ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)
		blob := append(nonce, ciphertext...)

		encoded = base64.StdEncoding.EncodeToString(blob)
		return nil
	})
	if err != nil {
		return "", err
	}

	return encoded, nil
}

// DecryptField implements [FieldCipher]. It Base64-decodes ciphertext,
// splits out the nonce, and decrypts with the session key via AES-256-GCM.
// An authentication-tag mismatch (tampered blob or wrong key) is surfaced as
// ErrCiphertextAuthentication, never as garbage plaintext.
func (f *fieldCipher) DecryptField(ciphertext string, key *SessionKey) (string, error) {
	var plaintext string

	err := key.use(func(material []byte) error {
		blob, err := base64.StdEncoding.DecodeString(ciphertext)
		if err != nil {
			return fmt.Errorf("decode base64: %w", err)
		}

		block, err := aes.NewCipher(material)
		if err != nil {
			return fmt.Errorf("create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return fmt.Errorf("create gcm: %w", err)
		}

		nonceSize := gcm.NonceSize()
		if len(blob) < nonceSize {
			return ErrCiphertextTooShort
		}
		nonce, sealed := blob[:nonceSize], blob[nonceSize:]

		opened, err := gcm.Open(nil, nonce, sealed, nil)
		if err != nil {
			return ErrCiphertextAuthentication
		}

		plaintext = string(opened)
		return nil
	})
	if err != nil {
		return "", err
	}

	return plaintext, nil
}

// DecryptRecord implements [FieldCipher]. Fields decrypt independently:
// every field that authenticates is returned in the result map, and the
// names of fields that failed (tampered, wrong key, or legacy unencrypted
// data mixed in) are collected in failed. The whole-record error is non-nil
// only when the session key itself is unusable.
func (f *fieldCipher) DecryptRecord(fields map[string]string, key *SessionKey) (map[string]string, []string, error) {
	decrypted := make(map[string]string, len(fields))
	var failed []string

	for name, ciphertext := range fields {
		plaintext, err := f.DecryptField(ciphertext, key)
		if err != nil {
			if errors.Is(err, ErrSessionKeyDestroyed) {
				return nil, nil, err
			}
			failed = append(failed, name)
			continue
		}
		decrypted[name] = plaintext
	}

	return decrypted, failed, nil
}
