// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package session

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
)

// SetupResult is the outcome of first-time key establishment. Salt and
// WrappedDEK are durable, non-secret artifacts for the vault configuration;
// Key is the live session key for the freshly unlocked vault.
type SetupResult struct {
	Salt       []byte
	WrappedDEK []byte
	Key        *crypto.SessionKey
}

// Manager implements the session-key lifecycle over a [crypto.KeyChain] and
// a device-scoped [VerifierStore].
type Manager struct {
	keyChain  crypto.KeyChain
	verifiers VerifierStore
	logger    *logger.Logger
}

// NewManager constructs a Manager. The verifier store is an explicit
// collaborator so tests and alternative device backends can substitute it.
func NewManager(keyChain crypto.KeyChain, verifiers VerifierStore, logger *logger.Logger) *Manager {
	logger.Debug().Msg("creating session key manager")
	return &Manager{
		keyChain:  keyChain,
		verifiers: verifiers,
		logger:    logger,
	}
}

// Setup performs first-time key establishment for an owner: it generates the
// salt and the random DEK, derives the KEK from the master password, wraps
// the DEK, and persists the device-local verifier. All derivation happens in
// memory; the verifier write is the only durable effect and it is committed
// last, so an abandoned setup leaves no partial state.
//
// The derivation step is deliberately slow; ctx is checked before the
// durable write so a cancelled caller never commits.
func (m *Manager) Setup(ctx context.Context, ownerID int64, masterPassword string) (SetupResult, error) {
	log := logger.FromContext(ctx)

	salt, err := m.keyChain.GenerateEncryptionSalt()
	if err != nil {
		return SetupResult{}, fmt.Errorf("generate salt: %w", err)
	}

	dek, err := m.keyChain.GenerateDEK()
	if err != nil {
		return SetupResult{}, fmt.Errorf("generate data encryption key: %w", err)
	}
	defer zero(dek)

	kek := m.keyChain.DeriveKEK(masterPassword, salt)
	defer zero(kek)

	wrapped, err := m.keyChain.WrapDEK(dek, kek)
	if err != nil {
		return SetupResult{}, fmt.Errorf("wrap data encryption key: %w", err)
	}

	key, err := crypto.NewSessionKey(dek)
	if err != nil {
		return SetupResult{}, fmt.Errorf("create session key: %w", err)
	}

	if err := ctx.Err(); err != nil {
		key.Destroy()
		return SetupResult{}, err
	}

	if err := m.verifiers.SaveVerifier(ctx, ownerID, m.keyChain.VerifierHash(kek)); err != nil {
		key.Destroy()
		log.Err(err).Int64("owner_id", ownerID).Msg("saving master secret verifier failed")
		return SetupResult{}, fmt.Errorf("save verifier: %w", err)
	}

	return SetupResult{Salt: salt, WrappedDEK: wrapped, Key: key}, nil
}

// Derive attempts to establish a session key from a master password. The KEK
// is derived and, when a device-local verifier exists, tested against it
// first: a mismatch fails fast with ErrVerifierMismatch before the wrapped
// DEK is even touched. The unwrap itself authenticates too, so a wrong
// password can never yield a usable key.
//
// Derive performs no durable writes at all; an abandoned attempt leaves the
// vault exactly as it was.
func (m *Manager) Derive(ctx context.Context, ownerID int64, masterPassword string, salt, wrappedDEK []byte) (*crypto.SessionKey, error) {
	kek := m.keyChain.DeriveKEK(masterPassword, salt)
	defer zero(kek)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verifier, err := m.verifiers.LoadVerifier(ctx, ownerID)
	switch {
	case err == nil:
		if !hmac.Equal(verifier, m.keyChain.VerifierHash(kek)) {
			return nil, ErrVerifierMismatch
		}
	case errors.Is(err, ErrVerifierNotFound):
		// First unlock on a fresh device: the unwrap below authenticates
		// on its own.
	default:
		return nil, fmt.Errorf("load verifier: %w", err)
	}

	dek, err := m.keyChain.UnwrapDEK(wrappedDEK, kek)
	if err != nil {
		return nil, err
	}
	defer zero(dek)

	key, err := crypto.NewSessionKey(dek)
	if err != nil {
		return nil, fmt.Errorf("create session key: %w", err)
	}

	return key, nil
}

// VerifyAgainstStored tests a master password against the device-local
// verifier without establishing a key. Returns ErrVerifierNotFound when
// setup has not run on this device.
func (m *Manager) VerifyAgainstStored(ctx context.Context, ownerID int64, masterPassword string, salt []byte) (bool, error) {
	verifier, err := m.verifiers.LoadVerifier(ctx, ownerID)
	if err != nil {
		return false, err
	}

	kek := m.keyChain.DeriveKEK(masterPassword, salt)
	defer zero(kek)

	return hmac.Equal(verifier, m.keyChain.VerifierHash(kek)), nil
}

// Destroy zeroizes a session key immediately and synchronously.
func (m *Manager) Destroy(key *crypto.SessionKey) {
	if key != nil {
		key.Destroy()
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
