// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

// Package vault implements the per-session lock state machine governing
// whether an owner's encrypted fields are readable. Each unlocked session
// owns exactly one session key; locking one session never touches another
// session's key. All sessions gate against the same durable vault
// configuration.
package vault

import (
	"context"
	"errors"
	"sync"

	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/session"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/models"
)

// State is the lock state of one vault session.
type State string

const (
	// StateUninitialized means encryption setup has never run for the owner.
	StateUninitialized State = "uninitialized"

	// StateLocked means the vault is encrypted and the session holds no key.
	StateLocked State = "locked"

	// StateUnlocked means the session holds a live key.
	StateUnlocked State = "unlocked"
)

// Session is one actor's view of a vault's lock state plus, while unlocked,
// the live session key. Sessions are independent: two sessions for the same
// owner each hold their own key and lock separately.
type Session struct {
	mu      sync.Mutex
	ownerID int64
	state   State
	key     *crypto.SessionKey
}

// OwnerID returns the vault owner the session is bound to.
func (s *Session) OwnerID() int64 {
	return s.ownerID
}

// State returns the session's current lock state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Key returns the live session key, or ErrVaultLocked when the session holds
// none.
func (s *Session) Key() (*crypto.SessionKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnlocked || s.key == nil {
		return nil, ErrVaultLocked
	}
	return s.key, nil
}

// Lock destroys the session key immediately and synchronously and moves the
// session to Locked. Locking an already-locked session is a no-op.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		s.key.Destroy()
		s.key = nil
	}
	if s.state == StateUnlocked {
		s.state = StateLocked
	}
}

// Machine drives vault lock transitions. It never caches vault
// configurations across calls: durable state is re-read on every transition
// so concurrent sessions observe each other's committed writes.
type Machine struct {
	sessions *session.Manager
	configs  store.VaultConfigRepository
	logger   *logger.Logger
}

// NewMachine constructs a vault lock state machine over the given session
// key manager and vault config store.
func NewMachine(sessions *session.Manager, configs store.VaultConfigRepository, logger *logger.Logger) *Machine {
	logger.Debug().Msg("creating vault lock state machine")
	return &Machine{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// Begin opens a session against the owner's vault, reading durable state to
// decide the starting lock state. A vault with no configuration, or one that
// has never completed encryption setup, starts Uninitialized.
func (m *Machine) Begin(ctx context.Context, ownerID int64) (*Session, error) {
	cfg, err := m.configs.Load(ctx, ownerID)
	switch {
	case errors.Is(err, store.ErrVaultConfigNotFound):
		return &Session{ownerID: ownerID, state: StateUninitialized}, nil
	case err != nil:
		return nil, err
	}

	state := StateLocked
	if !cfg.Encrypted {
		state = StateUninitialized
	}
	return &Session{ownerID: ownerID, state: state}, nil
}

// Setup runs first-time encryption setup: it derives fresh key material,
// persists the wrapped key and salt, marks the vault encrypted and leaves
// the session Unlocked. The durable write happens only after derivation
// succeeds, so a cancelled setup commits nothing.
//
// Returns ErrVaultAlreadyInitialized when the vault is already encrypted.
func (m *Machine) Setup(ctx context.Context, s *Session, masterPassword string, gracePeriodDays uint32) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return ErrVaultAlreadyInitialized
	}

	result, err := m.sessions.Setup(ctx, s.ownerID, masterPassword)
	if err != nil {
		return err
	}

	cfg := models.VaultConfig{
		OwnerID:         s.ownerID,
		EncryptionSalt:  result.Salt,
		EncryptedDEK:    result.WrappedDEK,
		GracePeriodDays: gracePeriodDays,
		RecoveryStatus:  models.RecoveryStatusNone,
	}
	cfg.MarkEncrypted()

	if _, err := m.configs.Save(ctx, cfg); err != nil {
		log.Err(err).Str("func", "*Machine.Setup").Msg("saving vault config failed, destroying derived key")
		m.sessions.Destroy(result.Key)
		return err
	}

	s.key = result.Key
	s.state = StateUnlocked
	return nil
}

// Unlock verifies the master password and, on success, moves the session to
// Unlocked with a live key. On mismatch the session stays Locked and
// ErrAuthenticationFailed is returned; nothing about the vault's content is
// revealed either way. The verifier is never destroyed by a failed attempt.
func (m *Machine) Unlock(ctx context.Context, s *Session, masterPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateUninitialized:
		return ErrVaultNotInitialized
	case StateUnlocked:
		return ErrVaultAlreadyUnlocked
	}

	cfg, err := m.configs.Load(ctx, s.ownerID)
	if err != nil {
		if errors.Is(err, store.ErrVaultConfigNotFound) {
			return ErrVaultNotInitialized
		}
		return err
	}

	key, err := m.sessions.Derive(ctx, s.ownerID, masterPassword, cfg.EncryptionSalt, cfg.EncryptedDEK)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrVerifierMismatch),
			errors.Is(err, crypto.ErrCiphertextAuthentication):
			return ErrAuthenticationFailed
		default:
			return err
		}
	}

	s.key = key
	s.state = StateUnlocked
	return nil
}

// UnlockViaRecovery installs a key established through the recovery
// delegation path, bypassing password verification entirely. Reachable only
// through the recovery protocol, which is responsible for having verified
// the approved request before opening the escrowed key.
func (m *Machine) UnlockViaRecovery(ctx context.Context, s *Session, key *crypto.SessionKey) error {
	if key == nil || key.Destroyed() {
		return ErrAuthenticationFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateUninitialized:
		return ErrVaultNotInitialized
	case StateUnlocked:
		return ErrVaultAlreadyUnlocked
	}

	if _, err := m.configs.Load(ctx, s.ownerID); err != nil {
		if errors.Is(err, store.ErrVaultConfigNotFound) {
			return ErrVaultNotInitialized
		}
		return err
	}

	s.key = key
	s.state = StateUnlocked
	return nil
}
