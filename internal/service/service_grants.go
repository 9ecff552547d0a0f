package service

import (
	"context"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/models"
)

// grantService is the concrete implementation of GrantService.
type grantService struct {
	grants    store.RoleGrantRepository
	configs   store.VaultConfigRepository
	users     store.UserRepository
	evaluator *access.Evaluator

	logger *logger.Logger
}

// NewGrantService wires the role-grant administration service.
func NewGrantService(
	grants store.RoleGrantRepository,
	configs store.VaultConfigRepository,
	users store.UserRepository,
	evaluator *access.Evaluator,
	logger *logger.Logger,
) GrantService {
	return &grantService{
		grants:    grants,
		configs:   configs,
		users:     users,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Invite issues (or re-issues) a role grant to another account. The grant
// confers nothing until the grantee accepts it.
func (g *grantService) Invite(ctx context.Context, ownerID, granteeID int64, role models.Role) (models.RoleGrant, error) {
	log := logger.FromContext(ctx)

	switch role {
	case models.RoleAdministrator, models.RoleContributor, models.RoleViewer:
	default:
		return models.RoleGrant{}, ErrInvalidRole
	}

	if granteeID == ownerID {
		return models.RoleGrant{}, ErrSelfGrant
	}

	if _, err := g.users.FindUserByID(ctx, granteeID); err != nil {
		return models.RoleGrant{}, fmt.Errorf("looking up grantee account: %w", err)
	}

	grant, err := g.grants.Upsert(ctx, models.RoleGrant{
		OwnerID:   ownerID,
		GranteeID: granteeID,
		Role:      role,
		Status:    models.GrantStatusInvited,
	})
	if err != nil {
		return models.RoleGrant{}, fmt.Errorf("saving role grant: %w", err)
	}

	log.Info().
		Int64("owner_id", ownerID).
		Int64("grantee_id", granteeID).
		Str("role", string(role)).
		Msg("role grant invited")

	return grant, nil
}

// Accept turns the grantee's invitation into a live grant.
func (g *grantService) Accept(ctx context.Context, granteeID, ownerID int64) error {
	if _, err := g.grants.Find(ctx, ownerID, granteeID); err != nil {
		return fmt.Errorf("looking up grant: %w", err)
	}

	return g.grants.UpdateStatus(ctx, ownerID, granteeID, models.GrantStatusAccepted)
}

// Revoke removes the grant. Revocation takes effect on the next access
// evaluation; there is no session to invalidate.
func (g *grantService) Revoke(ctx context.Context, ownerID, granteeID int64) error {
	return g.grants.Delete(ctx, ownerID, granteeID)
}

// List returns every grant the owner has issued, invited and accepted alike.
func (g *grantService) List(ctx context.Context, ownerID int64) ([]models.RoleGrant, error) {
	return g.grants.ListByOwner(ctx, ownerID)
}

// SetAdminAccess flips the owner's administrator-access veto. The toggle is
// observed by the next evaluation without any re-authentication. The write
// is a single-column upsert: reading and re-saving the whole config here
// could revert a recovery status moved by a concurrent writer.
func (g *grantService) SetAdminAccess(ctx context.Context, ownerID int64, allow bool) error {
	if err := g.configs.SetAdminAccess(ctx, ownerID, allow); err != nil {
		return fmt.Errorf("saving admin access toggle: %w", err)
	}

	return nil
}

// Access evaluates the actor's effective access toward the owner's vault.
func (g *grantService) Access(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error) {
	return g.evaluator.Evaluate(ctx, actorID, ownerID)
}
