// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

// Package access resolves the effective role and capabilities of an actor
// toward a vault owner. Evaluation reads durable state fresh every time:
// a revoked grant or a flipped admin toggle is observed on the next
// evaluation, never deferred to the next login.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/models"
)

// ErrAccessDenied is returned by helpers that require a minimum capability.
// Not retryable and not transient; the actor simply lacks the role.
var ErrAccessDenied = errors.New("access denied")

// Evaluator computes EffectiveAccess for (actor, owner) pairs.
type Evaluator struct {
	configs store.VaultConfigRepository
	grants  store.RoleGrantRepository
	logger  *logger.Logger
}

// NewEvaluator constructs an access-control evaluator over the given stores.
func NewEvaluator(configs store.VaultConfigRepository, grants store.RoleGrantRepository, logger *logger.Logger) *Evaluator {
	logger.Debug().Msg("creating access control evaluator")
	return &Evaluator{
		configs: configs,
		grants:  grants,
		logger:  logger,
	}
}

// Evaluate resolves the actor's effective access toward the owner's vault.
//
// Rules, applied in order:
//  1. The owner always holds full access to their own vault.
//  2. Otherwise the actor needs an accepted role grant; an invited or
//     missing grant confers nothing.
//  3. Viewers and contributors never see encrypted content of an encrypted
//     vault and never reach the unlock flow.
//  4. Administrators see encrypted content only while the owner's
//     AllowAdminAccess toggle is on. The toggle vetoes the role.
//  5. The assigned delegate additionally gains the recovery path, and only
//     that: a delegate with no separate grant sees no content at all.
func (e *Evaluator) Evaluate(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error) {
	if actorID == ownerID {
		return models.EffectiveAccess{
			Role:                   models.RoleOwner,
			CanAttemptUnlock:       true,
			CanSeeEncryptedVault:   true,
			CanSeeUnencryptedVault: true,
		}, nil
	}

	cfg, err := e.configs.Load(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrVaultConfigNotFound) {
		return models.EffectiveAccess{}, fmt.Errorf("loading vault config: %w", err)
	}
	// a missing config means the vault was never encrypted and has no delegate
	hasConfig := err == nil

	role := models.RoleNone
	grant, err := e.grants.Find(ctx, ownerID, actorID)
	switch {
	case err == nil:
		if grant.Active() {
			role = grant.Role
		}
	case errors.Is(err, store.ErrRoleGrantNotFound):
		// no grant, role stays none
	default:
		return models.EffectiveAccess{}, fmt.Errorf("loading role grant: %w", err)
	}

	result := models.EffectiveAccess{Role: role}

	switch role {
	case models.RoleAdministrator:
		result.CanSeeUnencryptedVault = true
		result.CanSeeEncryptedVault = hasConfig && cfg.AllowAdminAccess
	case models.RoleContributor, models.RoleViewer:
		result.CanSeeUnencryptedVault = true
		result.CanSeeEncryptedVault = false
	case models.RoleNone:
		// nothing granted
	case models.RoleOwner:
		// owners are resolved by identity above, an owner grant is never stored
	}

	if hasConfig && cfg.IsDelegate(actorID) {
		result.RecoveryPath = true
	}

	return result, nil
}

// RequireRecoveryPath evaluates and returns ErrAccessDenied unless the actor
// is the vault's assigned delegate.
func (e *Evaluator) RequireRecoveryPath(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error) {
	result, err := e.Evaluate(ctx, actorID, ownerID)
	if err != nil {
		return models.EffectiveAccess{}, err
	}
	if !result.RecoveryPath {
		return models.EffectiveAccess{}, ErrAccessDenied
	}
	return result, nil
}
