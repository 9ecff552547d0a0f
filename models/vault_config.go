// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package models

import (
	"errors"
	"time"
)

// RecoveryStatus is the per-vault phase of the recovery-delegation protocol.
// It is stored explicitly rather than re-derived from unrelated fields so that
// every consumer observes the same protocol state.
type RecoveryStatus string

const (
	// RecoveryStatusNone means no delegate is assigned, or a prior recovery
	// cycle has been fully reset.
	RecoveryStatusNone RecoveryStatus = "none"

	// RecoveryStatusGracePeriodActive means a delegate was assigned recently
	// and the initial protection window has not elapsed yet. The delegate
	// cannot submit a recovery request during this window.
	RecoveryStatusGracePeriodActive RecoveryStatus = "grace_period_active"

	// RecoveryStatusPending means a recovery request is in flight and the
	// owner may still approve or reject it.
	RecoveryStatusPending RecoveryStatus = "pending"

	// RecoveryStatusApproved means the in-flight request was approved,
	// either explicitly by the owner or by timeout auto-grant.
	RecoveryStatusApproved RecoveryStatus = "approved"
)

// ErrEncryptionIrreversible is returned when a mutation would clear the
// Encrypted flag of a vault configuration. Once a vault is encrypted it stays
// encrypted; there is no supported downgrade path.
var ErrEncryptionIrreversible = errors.New("vault encryption cannot be disabled")

// VaultConfig is the one-per-owner durable record governing encrypted vault
// access and recovery delegation.
type VaultConfig struct {
	// OwnerID is the account that owns the vault.
	OwnerID int64 `json:"owner_id"`

	// Encrypted reports whether field encryption has been set up. The flag is
	// monotonic: once true it can never be set back to false.
	Encrypted bool `json:"encrypted"`

	// AllowAdminAccess is the owner-controlled veto over administrator
	// access to encrypted content. It is layered on top of role grants:
	// an accepted Administrator grant is not sufficient when this is false.
	AllowAdminAccess bool `json:"allow_admin_access"`

	// EncryptionSalt is the public Argon2id salt for the owner's
	// key-encryption key. Not a secret.
	EncryptionSalt []byte `json:"-"`

	// EncryptedDEK is the vault data-encryption key wrapped under the
	// owner's password-derived key (AES-256-GCM, nonce ‖ ciphertext).
	// Useless without the master password.
	EncryptedDEK []byte `json:"-"`

	// DelegateID is the account designated to request emergency access,
	// nil when no delegate is assigned.
	DelegateID *int64 `json:"delegate_id,omitempty"`

	// DelegatePublicKey is the delegate's X25519 public key registered at
	// assignment time. Public by definition.
	DelegatePublicKey []byte `json:"-"`

	// DelegateSealedKey is the vault DEK sealed to DelegatePublicKey at
	// assignment time. Opened only after an approved recovery request;
	// cleared when the delegate is removed.
	DelegateSealedKey []byte `json:"-"`

	// GracePeriodDays is the owner-chosen response window, used both for
	// the initial assignment protection window and for request deadlines.
	GracePeriodDays uint32 `json:"grace_period_days"`

	// RecoveryStatus is the current protocol phase. Invariant: any value
	// other than RecoveryStatusNone implies DelegateID != nil.
	RecoveryStatus RecoveryStatus `json:"recovery_status"`

	// RecoveryRequestedAt anchors the current phase in time: the delegate
	// assignment instant while the initial grace window runs, or the
	// request submission instant once a request is pending.
	RecoveryRequestedAt *time.Time `json:"recovery_requested_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultConfig model.
func (v VaultConfig) TableName() string {
	return "vault_configs"
}

// MarkEncrypted sets the monotonic Encrypted flag.
func (v *VaultConfig) MarkEncrypted() {
	v.Encrypted = true
}

// SetEncrypted applies a requested value of the Encrypted flag, rejecting any
// attempt to clear it once set.
func (v *VaultConfig) SetEncrypted(encrypted bool) error {
	if v.Encrypted && !encrypted {
		return ErrEncryptionIrreversible
	}
	v.Encrypted = encrypted
	return nil
}

// HasDelegate reports whether a delegate is currently assigned.
func (v *VaultConfig) HasDelegate() bool {
	return v.DelegateID != nil
}

// IsDelegate reports whether userID is the currently assigned delegate.
func (v *VaultConfig) IsDelegate(userID int64) bool {
	return v.DelegateID != nil && *v.DelegateID == userID
}

// AssignmentWindowOpen reports whether the delegate's initial protection
// window is still running at the given instant. While it runs, the delegate
// may not submit a recovery request.
func (v *VaultConfig) AssignmentWindowOpen(now time.Time) bool {
	if v.RecoveryStatus != RecoveryStatusGracePeriodActive || v.RecoveryRequestedAt == nil {
		return false
	}
	return now.Before(v.RecoveryRequestedAt.Add(time.Duration(v.GracePeriodDays) * 24 * time.Hour))
}
