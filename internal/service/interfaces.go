package service

import (
	"context"

	"github.com/evermark-app/vaultcore/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService drives the owner-facing vault lifecycle: setup, lock state,
// field encryption, and the second-factor flow in front of it. Every
// operation is scoped to a session identity (the token's jti claim) so that
// two tokens for the same user hold independent lock state.
type VaultService interface {
	Setup(ctx context.Context, userID int64, sessionID, masterPassword string) error
	Unlock(ctx context.Context, userID int64, sessionID, masterPassword string) error
	Lock(ctx context.Context, userID int64, sessionID string) error
	Status(ctx context.Context, userID int64, sessionID string) (models.VaultStatusResponse, error)

	EncryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) ([]models.FieldPayload, error)
	DecryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) (models.FieldsResponse, error)

	Challenge(ctx context.Context, userID int64, sessionID string) (string, error)
	VerifySecondFactor(ctx context.Context, userID int64, sessionID, challengeID, code string) error
}

// RecoveryService drives delegate assignment and the recovery request
// lifecycle on top of the delegation protocol.
type RecoveryService interface {
	AssignDelegate(ctx context.Context, ownerID int64, sessionID string, request models.DelegateAssignRequest) error
	RemoveDelegate(ctx context.Context, ownerID int64) error

	SubmitRequest(ctx context.Context, delegateID int64, sessionID string, request models.RecoverySubmitRequest) (models.RecoveryRequest, error)
	Approve(ctx context.Context, ownerID int64, requestID string) error
	Reject(ctx context.Context, ownerID int64, requestID string) error

	// Unlock consumes an approved request and opens the owner's vault
	// inside the delegate's session.
	Unlock(ctx context.Context, delegateID int64, sessionID string, request models.RecoveryUnlockRequest) error
}

// GrantService administers role grants and the owner's administrator-access
// veto, and exposes access evaluation for other parties.
type GrantService interface {
	Invite(ctx context.Context, ownerID, granteeID int64, role models.Role) (models.RoleGrant, error)
	Accept(ctx context.Context, granteeID, ownerID int64) error
	Revoke(ctx context.Context, ownerID, granteeID int64) error
	List(ctx context.Context, ownerID int64) ([]models.RoleGrant, error)

	SetAdminAccess(ctx context.Context, ownerID int64, allow bool) error
	Access(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error)
}
