// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"
)

// Delegate key escrow.
//
// At delegate assignment time the vault DEK is sealed to a delegate-held
// X25519 public key with an anonymous NaCl box. The sealed blob is safe to
// store server-side: only the matching private key, which never leaves the
// delegate, can open it. After a recovery request is approved the delegate
// opens the blob and obtains a session key — a key-establishment path that
// never involves the owner's master password.

// delegateKeySize is the X25519 key length.
const delegateKeySize = 32

// GenerateDelegateKeyPair creates a fresh X25519 key pair for a delegate.
// The private key is returned to the caller and is never stored server-side.
func GenerateDelegateKeyPair() (publicKey, privateKey []byte, err error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return pub[:], priv[:], nil
}

// SealKeyToDelegate seals the session key's material to the delegate public
// key with box.SealAnonymous. The key handle stays live; only a copy of the
// material enters the box.
func SealKeyToDelegate(key *SessionKey, delegatePublicKey []byte) ([]byte, error) {
	if len(delegatePublicKey) != delegateKeySize {
		return nil, ErrInvalidDelegateKey
	}

	var pub [delegateKeySize]byte
	copy(pub[:], delegatePublicKey)

	var sealed []byte
	err := key.use(func(material []byte) error {
		var sealErr error
		sealed, sealErr = box.SealAnonymous(nil, material, &pub, rand.Reader)
		return sealErr
	})
	if err != nil {
		return nil, err
	}

	return sealed, nil
}

// OpenSealedKey opens a blob produced by SealKeyToDelegate with the
// delegate's key pair and wraps the recovered material in a fresh session
// key handle. Returns ErrInvalidDelegateKey if the keys are malformed or the
// box does not authenticate.
func OpenSealedKey(sealed, delegatePublicKey, delegatePrivateKey []byte) (*SessionKey, error) {
	if len(delegatePublicKey) != delegateKeySize || len(delegatePrivateKey) != delegateKeySize {
		return nil, ErrInvalidDelegateKey
	}

	var pub, priv [delegateKeySize]byte
	copy(pub[:], delegatePublicKey)
	copy(priv[:], delegatePrivateKey)

	material, ok := box.OpenAnonymous(nil, sealed, &pub, &priv)
	if !ok {
		return nil, ErrInvalidDelegateKey
	}

	key, err := NewSessionKey(material)
	// Drop the intermediate copy regardless of outcome.
	for i := range material {
		material[i] = 0
	}
	if err != nil {
		return nil, err
	}

	return key, nil
}
