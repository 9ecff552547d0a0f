// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
	"github.com/evermark-app/vaultcore/models"
)

// vaultService is the concrete implementation of VaultService. It holds the
// process-wide session registry and puts the second-factor gate in front of
// every operation that could expose or produce key material.
type vaultService struct {
	sessions *sessionRegistry
	machine  *vault.Machine
	gate     *secondfactor.Gate
	cipher   crypto.FieldCipher

	users   store.UserRepository
	configs store.VaultConfigRepository

	// defaultGracePeriodDays applies when the owner does not choose a
	// recovery grace period at setup.
	defaultGracePeriodDays uint32

	logger *logger.Logger
}

// NewVaultService wires the vault lifecycle service. The returned service is
// safe for concurrent use.
func NewVaultService(
	sessions *sessionRegistry,
	machine *vault.Machine,
	gate *secondfactor.Gate,
	cipher crypto.FieldCipher,
	users store.UserRepository,
	configs store.VaultConfigRepository,
	defaultGracePeriodDays uint32,
	logger *logger.Logger,
) VaultService {
	return &vaultService{
		sessions:               sessions,
		machine:                machine,
		gate:                   gate,
		cipher:                 cipher,
		users:                  users,
		configs:                configs,
		defaultGracePeriodDays: defaultGracePeriodDays,
		logger:                 logger,
	}
}

// Setup turns on field encryption for the caller's vault. The second factor
// must have been verified within this session first; the master password is
// used for in-memory key derivation only.
func (v *vaultService) Setup(ctx context.Context, userID int64, sessionID, masterPassword string) error {
	if masterPassword == "" {
		return ErrInvalidDataProvided
	}

	if err := v.gate.Require(ctx, userID, sessionID); err != nil {
		return err
	}

	s, err := v.sessions.get(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("starting vault session: %w", err)
	}

	return v.machine.Setup(ctx, s, masterPassword, v.defaultGracePeriodDays)
}

// Unlock attempts a password unlock of the caller's vault within this
// session. Failures are uniform: a wrong password and a tampered key blob
// both surface as vault.ErrAuthenticationFailed.
func (v *vaultService) Unlock(ctx context.Context, userID int64, sessionID, masterPassword string) error {
	if masterPassword == "" {
		return ErrInvalidDataProvided
	}

	if err := v.gate.Require(ctx, userID, sessionID); err != nil {
		return err
	}

	s, err := v.sessions.get(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("starting vault session: %w", err)
	}

	return v.machine.Unlock(ctx, s, masterPassword)
}

// Lock discards the session key immediately. Locking a session that never
// unlocked is a no-op.
func (v *vaultService) Lock(ctx context.Context, userID int64, sessionID string) error {
	s, ok := v.sessions.lookup(sessionID, userID)
	if !ok {
		return nil
	}

	s.Lock()
	return nil
}

// Status reports the caller-visible vault state. A vault that never ran
// setup reports as unencrypted rather than erroring.
func (v *vaultService) Status(ctx context.Context, userID int64, sessionID string) (models.VaultStatusResponse, error) {
	var status models.VaultStatusResponse

	cfg, err := v.configs.Load(ctx, userID)
	switch {
	case errors.Is(err, store.ErrVaultConfigNotFound):
		status.RecoveryStatus = models.RecoveryStatusNone
		return status, nil
	case err != nil:
		return models.VaultStatusResponse{}, fmt.Errorf("loading vault config: %w", err)
	}

	status.Encrypted = cfg.Encrypted
	status.AllowAdminAccess = cfg.AllowAdminAccess
	status.RecoveryStatus = cfg.RecoveryStatus
	status.HasDelegate = cfg.HasDelegate()

	if s, ok := v.sessions.lookup(sessionID, userID); ok {
		status.Unlocked = s.State() == vault.StateUnlocked
	}

	return status, nil
}

// EncryptFields encrypts a batch of named fields under the session key.
// The whole batch fails when the session is locked.
func (v *vaultService) EncryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) ([]models.FieldPayload, error) {
	key, err := v.sessionKey(sessionID, userID)
	if err != nil {
		return nil, err
	}

	encrypted := make([]models.FieldPayload, 0, len(fields))
	for _, field := range fields {
		ciphertext, err := v.cipher.EncryptField(field.Value, key)
		if err != nil {
			return nil, fmt.Errorf("encrypting field %q: %w", field.Name, err)
		}
		encrypted = append(encrypted, models.FieldPayload{Name: field.Name, Value: ciphertext})
	}

	return encrypted, nil
}

// DecryptFields decrypts a batch of named fields under the session key.
// Fields whose ciphertext does not authenticate are reported by name in the
// response; one corrupted field never aborts the rest of the record.
func (v *vaultService) DecryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) (models.FieldsResponse, error) {
	key, err := v.sessionKey(sessionID, userID)
	if err != nil {
		return models.FieldsResponse{}, err
	}

	record := make(map[string]string, len(fields))
	for _, field := range fields {
		record[field.Name] = field.Value
	}

	decrypted, failed, err := v.cipher.DecryptRecord(record, key)
	if err != nil {
		return models.FieldsResponse{}, fmt.Errorf("decrypting fields: %w", err)
	}

	response := models.FieldsResponse{Failed: failed}
	for _, field := range fields {
		plaintext, ok := decrypted[field.Name]
		if !ok {
			continue
		}
		response.Fields = append(response.Fields, models.FieldPayload{Name: field.Name, Value: plaintext})
	}

	return response, nil
}

// Challenge issues a second-factor challenge for the caller's session. For
// accounts that have not enrolled yet this doubles as the enrollment
// challenge.
func (v *vaultService) Challenge(ctx context.Context, userID int64, sessionID string) (string, error) {
	user, err := v.users.FindUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("loading user: %w", err)
	}

	if !user.SecondFactorEnrolled {
		return v.gate.BeginEnrollment(ctx, userID, sessionID)
	}

	return v.gate.Challenge(ctx, userID, sessionID)
}

// VerifySecondFactor submits the one-time code for a challenge. The first
// successful verification also completes enrollment for accounts that have
// not enrolled yet.
func (v *vaultService) VerifySecondFactor(ctx context.Context, userID int64, sessionID, challengeID, code string) error {
	log := logger.FromContext(ctx)

	if err := v.gate.Verify(ctx, sessionID, challengeID, code); err != nil {
		return err
	}

	user, err := v.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user after verification: %w", err)
	}

	if !user.SecondFactorEnrolled {
		if err := v.users.SetSecondFactorEnrolled(ctx, userID, true); err != nil {
			return fmt.Errorf("recording second-factor enrollment: %w", err)
		}
		log.Info().Int64("user_id", userID).Msg("second factor enrolled")
	}

	return nil
}

// sessionKey returns the live session key, or vault.ErrVaultLocked when the
// session does not exist or is not unlocked.
func (v *vaultService) sessionKey(sessionID string, ownerID int64) (*crypto.SessionKey, error) {
	s, ok := v.sessions.lookup(sessionID, ownerID)
	if !ok {
		return nil, vault.ErrVaultLocked
	}

	return s.Key()
}
