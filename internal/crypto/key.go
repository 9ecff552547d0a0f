// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package crypto

import (
	"errors"
	"sync"
)

// SessionKeySize is the required key length: 256 bits.
const SessionKeySize = 32

// SessionKey is a memory-only handle over the unwrapped vault data-encryption
// key. It exists exactly for the lifetime of one unlocked session: it is
// never written to durable storage, never logged, and has no serializable
// representation. Destroy zeroizes the material in place; every subsequent
// use fails with [ErrSessionKeyDestroyed].
//
// Each unlocked session owns its own handle. Two tabs of the same owner hold
// two independent copies of the material, so destroying one does not affect
// the other.
type SessionKey struct {
	mu        sync.Mutex
	material  []byte
	destroyed bool
}

// NewSessionKey wraps a copy of material in a fresh handle. The caller's
// slice is not retained. Returns [ErrInvalidKeyMaterial] if material is not
// exactly [SessionKeySize] bytes.
func NewSessionKey(material []byte) (*SessionKey, error) {
	if len(material) != SessionKeySize {
		return nil, ErrInvalidKeyMaterial
	}

	copied := make([]byte, SessionKeySize)
	copy(copied, material)

	return &SessionKey{material: copied}, nil
}

// Destroy zeroizes the key material. It is idempotent and synchronous: once
// it returns, no operation can succeed with this handle.
func (k *SessionKey) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.destroyed {
		return
	}

	for i := range k.material {
		k.material[i] = 0
	}
	k.material = nil
	k.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (k *SessionKey) Destroyed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.destroyed
}

// use hands a private copy of the live material to fn while holding the
// handle lock, so a concurrent Destroy cannot zeroize the bytes mid-use.
func (k *SessionKey) use(fn func(material []byte) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.destroyed {
		return ErrSessionKeyDestroyed
	}

	return fn(k.material)
}

// String implements fmt.Stringer and always redacts the material.
func (k *SessionKey) String() string {
	return "SessionKey(redacted)"
}

// MarshalJSON refuses serialization: a session key must never cross the
// process boundary in any encoded form.
func (k *SessionKey) MarshalJSON() ([]byte, error) {
	return nil, errors.New("session key is not serializable")
}

// MarshalText refuses serialization for text-based encoders.
func (k *SessionKey) MarshalText() ([]byte, error) {
	return nil, errors.New("session key is not serializable")
}
