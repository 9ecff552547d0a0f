package service

import (
	"context"
	"testing"

	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantService_InviteAcceptRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")
	viewer := f.registerUser(t, "viewer")

	grant, err := f.services.GrantService.Invite(ctx, owner.UserID, viewer.UserID, models.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, models.GrantStatusInvited, grant.Status)

	// an invited grant confers nothing
	acc, err := f.services.GrantService.Access(ctx, viewer.UserID, owner.UserID)
	require.NoError(t, err)
	assert.True(t, acc.Denied())

	require.NoError(t, f.services.GrantService.Accept(ctx, viewer.UserID, owner.UserID))

	acc, err = f.services.GrantService.Access(ctx, viewer.UserID, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, acc.Role)
	assert.True(t, acc.CanSeeUnencryptedVault)
	assert.False(t, acc.CanSeeEncryptedVault)

	require.NoError(t, f.services.GrantService.Revoke(ctx, owner.UserID, viewer.UserID))

	// revocation is observed on the next evaluation
	acc, err = f.services.GrantService.Access(ctx, viewer.UserID, owner.UserID)
	require.NoError(t, err)
	assert.True(t, acc.Denied())
}

func TestGrantService_Invite_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")

	_, err := f.services.GrantService.Invite(ctx, owner.UserID, owner.UserID, models.RoleViewer)
	assert.ErrorIs(t, err, ErrSelfGrant)

	_, err = f.services.GrantService.Invite(ctx, owner.UserID, 2, models.RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.services.GrantService.Invite(ctx, owner.UserID, 2, models.RoleNone)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.services.GrantService.Invite(ctx, owner.UserID, 999, models.RoleViewer)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestGrantService_Accept_UnknownGrant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.services.GrantService.Accept(ctx, 2, 1)
	assert.ErrorIs(t, err, store.ErrRoleGrantNotFound)
}

func TestGrantService_AdminToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")
	admin := f.registerUser(t, "admin")

	f.passSecondFactor(t, owner.UserID, "owner-session")
	require.NoError(t, f.services.VaultService.Setup(ctx, owner.UserID, "owner-session", "master password"))

	_, err := f.services.GrantService.Invite(ctx, owner.UserID, admin.UserID, models.RoleAdministrator)
	require.NoError(t, err)
	require.NoError(t, f.services.GrantService.Accept(ctx, admin.UserID, owner.UserID))

	// the owner veto holds by default
	acc, err := f.services.GrantService.Access(ctx, admin.UserID, owner.UserID)
	require.NoError(t, err)
	assert.False(t, acc.CanSeeEncryptedVault)

	require.NoError(t, f.services.GrantService.SetAdminAccess(ctx, owner.UserID, true))

	// the flip is observed without re-authentication
	acc, err = f.services.GrantService.Access(ctx, admin.UserID, owner.UserID)
	require.NoError(t, err)
	assert.True(t, acc.CanSeeEncryptedVault)

	require.NoError(t, f.services.GrantService.SetAdminAccess(ctx, owner.UserID, false))

	acc, err = f.services.GrantService.Access(ctx, admin.UserID, owner.UserID)
	require.NoError(t, err)
	assert.False(t, acc.CanSeeEncryptedVault)
}

func TestGrantService_SetAdminAccess_BeforeSetup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")

	// toggling before vault setup creates the config without touching the
	// encryption flag
	require.NoError(t, f.services.GrantService.SetAdminAccess(ctx, owner.UserID, true))

	cfg, err := f.configs.Load(ctx, owner.UserID)
	require.NoError(t, err)
	assert.True(t, cfg.AllowAdminAccess)
	assert.False(t, cfg.Encrypted)
}

func TestGrantService_SetAdminAccess_PreservesRecoveryState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, delegate, _ := assignFixture(t, f)

	require.NoError(t, f.services.GrantService.SetAdminAccess(ctx, owner.UserID, true))

	// the toggle touches nothing but its own column
	cfg, err := f.configs.Load(ctx, owner.UserID)
	require.NoError(t, err)
	assert.True(t, cfg.AllowAdminAccess)
	assert.True(t, cfg.IsDelegate(delegate.UserID))
	assert.Equal(t, models.RecoveryStatusGracePeriodActive, cfg.RecoveryStatus)
}

func TestGrantService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner")
	a := f.registerUser(t, "a")
	b := f.registerUser(t, "b")

	_, err := f.services.GrantService.Invite(ctx, owner.UserID, a.UserID, models.RoleViewer)
	require.NoError(t, err)
	_, err = f.services.GrantService.Invite(ctx, owner.UserID, b.UserID, models.RoleContributor)
	require.NoError(t, err)

	grants, err := f.services.GrantService.List(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Len(t, grants, 2)
}
