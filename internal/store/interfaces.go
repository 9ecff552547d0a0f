package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/evermark-app/vaultcore/models"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrLoginAlreadyExists on a login collision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves an account by login.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID retrieves an account by its identifier.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetSecondFactorEnrolled records completion (or revocation) of
	// second-factor enrollment.
	SetSecondFactorEnrolled(ctx context.Context, userID int64, enrolled bool) error
}

// VaultConfigRepository is the persistence contract for per-owner vault
// configurations.
type VaultConfigRepository interface {
	// Load returns the owner's vault configuration.
	// Returns ErrVaultConfigNotFound when setup has never run.
	Load(ctx context.Context, ownerID int64) (models.VaultConfig, error)

	// Save upserts the configuration. The is_encrypted flag is monotonic:
	// a save that would clear it fails with ErrEncryptionDowngrade and
	// writes nothing.
	Save(ctx context.Context, cfg models.VaultConfig) (models.VaultConfig, error)

	// SetAdminAccess writes the owner's administrator-access toggle and
	// nothing else, creating the row if setup never ran. The narrow write
	// cannot stomp a recovery status moved by a concurrent CAS.
	SetAdminAccess(ctx context.Context, ownerID int64, allow bool) error

	// CompareAndSetRecoveryStatus atomically moves the owner's vault from
	// the expected recovery status to the new one. Returns false without
	// error when the current status does not match expected — another
	// writer won.
	CompareAndSetRecoveryStatus(ctx context.Context, ownerID int64, expected, next models.RecoveryStatus) (bool, error)
}

// RoleGrantRepository is the persistence contract for role grants.
type RoleGrantRepository interface {
	// ListByOwner returns every grant issued by the owner, optionally
	// filtered to the given statuses.
	ListByOwner(ctx context.Context, ownerID int64, statuses ...models.GrantStatus) ([]models.RoleGrant, error)

	// Find returns the grant for an (owner, grantee) pair.
	// Returns ErrRoleGrantNotFound when none exists.
	Find(ctx context.Context, ownerID, granteeID int64) (models.RoleGrant, error)

	// Upsert creates or replaces the grant for its (owner, grantee) pair,
	// keeping at most one grant per pair.
	Upsert(ctx context.Context, grant models.RoleGrant) (models.RoleGrant, error)

	// UpdateStatus moves a grant to the given status (e.g. invite
	// acceptance). Returns ErrRoleGrantNotFound when no grant exists.
	UpdateStatus(ctx context.Context, ownerID, granteeID int64, status models.GrantStatus) error

	// Delete revokes the grant for an (owner, grantee) pair. Deleting a
	// missing grant is not an error.
	Delete(ctx context.Context, ownerID, granteeID int64) error
}

// RecoveryRequestRepository is the persistence contract for recovery
// requests. Status transitions are single authoritative compare-and-sets;
// there is deliberately no unconditional status setter.
type RecoveryRequestRepository interface {
	// Create persists a new pending request. Returns
	// ErrPendingRequestExists when the vault already has a pending
	// request; the partial unique index makes this race-safe.
	Create(ctx context.Context, request models.RecoveryRequest) (models.RecoveryRequest, error)

	// Load returns a request by ID.
	// Returns ErrRecoveryRequestNotFound when none exists.
	Load(ctx context.Context, requestID string) (models.RecoveryRequest, error)

	// LoadPending returns the vault's single pending request.
	// Returns ErrRecoveryRequestNotFound when none is pending.
	LoadPending(ctx context.Context, vaultOwnerID int64) (models.RecoveryRequest, error)

	// ListDuePending returns every pending request whose grace period ended
	// at or before now, oldest deadline first.
	ListDuePending(ctx context.Context, now time.Time) ([]models.RecoveryRequest, error)

	// CompareAndSetStatus atomically moves the request from the expected
	// status to the new one, stamping decided_at for terminal targets.
	// Returns false without error when the current status does not match
	// expected — another evaluator won the race.
	CompareAndSetStatus(ctx context.Context, requestID string, expected, next models.RequestStatus) (bool, error)

	// MarkConsumed records the single permitted recovery unlock. Returns
	// false without error when the request was already consumed.
	MarkConsumed(ctx context.Context, requestID string) (bool, error)
}

// Repositories bundles every repository implementation behind one
// constructor for wiring convenience.
type Repositories struct {
	Users            UserRepository
	VaultConfigs     VaultConfigRepository
	RoleGrants       RoleGrantRepository
	RecoveryRequests RecoveryRequestRepository
}
