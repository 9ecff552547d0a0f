// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package service

import (
	"context"
	"testing"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assignFixture walks owner registration, setup and delegate assignment, and
// returns the delegate key pair.
func assignFixture(t *testing.T, f *fixture) (owner, delegate models.User, delegatePriv []byte) {
	t.Helper()
	ctx := context.Background()

	owner = f.registerUser(t, "owner")
	delegate = f.registerUser(t, "delegate")

	f.passSecondFactor(t, owner.UserID, "owner-session")
	require.NoError(t, f.services.VaultService.Setup(ctx, owner.UserID, "owner-session", "master password"))

	pub, priv, err := crypto.GenerateDelegateKeyPair()
	require.NoError(t, err)

	require.NoError(t, f.services.RecoveryService.AssignDelegate(ctx, owner.UserID, "owner-session", models.DelegateAssignRequest{
		DelegateID:        delegate.UserID,
		DelegatePublicKey: pub,
	}))

	return owner, delegate, priv
}

func TestRecoveryService_AssignDelegate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, _ := assignFixture(t, f)

	cfg, err := f.configs.Load(ctx, owner.UserID)
	require.NoError(t, err)
	assert.True(t, cfg.IsDelegate(delegate.UserID))
	assert.NotEmpty(t, cfg.DelegateSealedKey)
	assert.Equal(t, models.RecoveryStatusGracePeriodActive, cfg.RecoveryStatus)
}

func TestRecoveryService_AssignDelegate_UnknownAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")
	f.passSecondFactor(t, owner.UserID, "owner-session")
	require.NoError(t, f.services.VaultService.Setup(ctx, owner.UserID, "owner-session", "master password"))

	pub, _, err := crypto.GenerateDelegateKeyPair()
	require.NoError(t, err)

	err = f.services.RecoveryService.AssignDelegate(ctx, owner.UserID, "owner-session", models.DelegateAssignRequest{
		DelegateID:        999,
		DelegatePublicKey: pub,
	})
	require.Error(t, err)
}

func TestRecoveryService_AssignDelegate_UnlocksWithPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")
	delegate := f.registerUser(t, "delegate")
	f.passSecondFactor(t, owner.UserID, "owner-session")
	require.NoError(t, f.services.VaultService.Setup(ctx, owner.UserID, "owner-session", "master password"))
	require.NoError(t, f.services.VaultService.Lock(ctx, owner.UserID, "owner-session"))

	pub, _, err := crypto.GenerateDelegateKeyPair()
	require.NoError(t, err)

	// a locked session plus the master password in the request still works
	require.NoError(t, f.services.RecoveryService.AssignDelegate(ctx, owner.UserID, "owner-session", models.DelegateAssignRequest{
		DelegateID:        delegate.UserID,
		DelegatePublicKey: pub,
		MasterPassword:    "master password",
	}))
}

func TestRecoveryService_SubmitBlockedDuringAssignmentWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, _ := assignFixture(t, f)

	f.passSecondFactor(t, delegate.UserID, "delegate-session")
	_, err := f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	assert.ErrorIs(t, err, recovery.ErrAssignmentWindowActive)
}

func TestRecoveryService_FullCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, delegatePriv := assignFixture(t, f)

	f.closeAssignmentWindow(t, owner.UserID)

	f.passSecondFactor(t, delegate.UserID, "delegate-session")
	request, err := f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
		Relationship: "spouse",
		Reason:       "hospitalized",
	})
	require.NoError(t, err)
	require.NotEmpty(t, request.ID)

	require.NoError(t, f.services.RecoveryService.Approve(ctx, owner.UserID, request.ID))

	// the delegate unlocks the owner's vault inside their own session and
	// can read the owner's encrypted fields
	require.NoError(t, f.services.RecoveryService.Unlock(ctx, delegate.UserID, "delegate-session", models.RecoveryUnlockRequest{
		RequestID:          request.ID,
		DelegatePrivateKey: delegatePriv,
	}))

	encrypted, err := f.services.VaultService.EncryptFields(ctx, owner.UserID, "owner-session", []models.FieldPayload{
		{Name: "note", Value: "insurance policy 8841"},
	})
	require.NoError(t, err)

	decrypted, err := f.services.VaultService.DecryptFields(ctx, owner.UserID, "delegate-session", encrypted)
	require.NoError(t, err)
	require.Len(t, decrypted.Fields, 1)
	assert.Equal(t, "insurance policy 8841", decrypted.Fields[0].Value)

	// the approval is consume-once
	f.passSecondFactor(t, delegate.UserID, "another-session")
	err = f.services.RecoveryService.Unlock(ctx, delegate.UserID, "another-session", models.RecoveryUnlockRequest{
		RequestID:          request.ID,
		DelegatePrivateKey: delegatePriv,
	})
	assert.ErrorIs(t, err, recovery.ErrApprovalConsumed)
}

func TestRecoveryService_RejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, delegatePriv := assignFixture(t, f)

	f.closeAssignmentWindow(t, owner.UserID)

	f.passSecondFactor(t, delegate.UserID, "delegate-session")
	request, err := f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	require.NoError(t, err)

	require.NoError(t, f.services.RecoveryService.Reject(ctx, owner.UserID, request.ID))

	err = f.services.RecoveryService.Unlock(ctx, delegate.UserID, "delegate-session", models.RecoveryUnlockRequest{
		RequestID:          request.ID,
		DelegatePrivateKey: delegatePriv,
	})
	assert.ErrorIs(t, err, recovery.ErrRequestNotApproved)

	// a rejection spends the assignment: no fresh request can be filed
	// until the owner re-assigns the delegate
	_, err = f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	assert.ErrorIs(t, err, recovery.ErrDelegateReassignmentRequired)
}

func TestRecoveryService_SubmitNeedsSecondFactor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, _ := assignFixture(t, f)
	f.closeAssignmentWindow(t, owner.UserID)

	// the delegate never set up a second factor
	_, err := f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	assert.ErrorIs(t, err, secondfactor.ErrEnrollmentRequired)
}

func TestRecoveryService_UnlockNeedsSecondFactor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, delegatePriv := assignFixture(t, f)
	f.closeAssignmentWindow(t, owner.UserID)

	f.passSecondFactor(t, delegate.UserID, "delegate-enrollment")
	request, err := f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-enrollment", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	require.NoError(t, err)
	require.NoError(t, f.services.RecoveryService.Approve(ctx, owner.UserID, request.ID))

	// a session without a proven factor never reaches the vault, even with
	// an approved request and the right private key in hand
	err = f.services.RecoveryService.Unlock(ctx, delegate.UserID, "delegate-session", models.RecoveryUnlockRequest{
		RequestID:          request.ID,
		DelegatePrivateKey: delegatePriv,
	})
	require.ErrorIs(t, err, secondfactor.ErrVerificationRequired)

	// the refusal happened before the approval could be spent
	f.passSecondFactor(t, delegate.UserID, "delegate-session")
	require.NoError(t, f.services.RecoveryService.Unlock(ctx, delegate.UserID, "delegate-session", models.RecoveryUnlockRequest{
		RequestID:          request.ID,
		DelegatePrivateKey: delegatePriv,
	}))
}

func TestRecoveryService_RemoveDelegate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, _ := assignFixture(t, f)

	require.NoError(t, f.services.RecoveryService.RemoveDelegate(ctx, owner.UserID))

	cfg, err := f.configs.Load(ctx, owner.UserID)
	require.NoError(t, err)
	assert.False(t, cfg.HasDelegate())
	assert.Empty(t, cfg.DelegateSealedKey)

	// without the delegation the recovery path is gone entirely
	_, err = f.services.RecoveryService.SubmitRequest(ctx, delegate.UserID, "delegate-session", models.RecoverySubmitRequest{
		VaultOwnerID: owner.UserID,
	})
	assert.ErrorIs(t, err, access.ErrAccessDenied)
}

func TestRecoveryService_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.services.RecoveryService.AssignDelegate(ctx, 1, "s", models.DelegateAssignRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = f.services.RecoveryService.SubmitRequest(ctx, 1, "s", models.RecoverySubmitRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = f.services.RecoveryService.Approve(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = f.services.RecoveryService.Unlock(ctx, 1, "s", models.RecoveryUnlockRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
