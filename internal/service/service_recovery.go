// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package service

import (
	"context"
	"fmt"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
	"github.com/evermark-app/vaultcore/models"
)

// recoveryService is the concrete implementation of RecoveryService. It
// fronts the delegation protocol with session plumbing: assignment needs the
// owner's unlocked session, and a consumed approval opens the owner's vault
// inside the delegate's session.
type recoveryService struct {
	sessions  *sessionRegistry
	machine   *vault.Machine
	protocol  *recovery.Protocol
	gate      *secondfactor.Gate
	evaluator *access.Evaluator

	users    store.UserRepository
	requests store.RecoveryRequestRepository

	defaultGracePeriodDays uint32

	logger *logger.Logger
}

// NewRecoveryService wires the recovery delegation service.
func NewRecoveryService(
	sessions *sessionRegistry,
	machine *vault.Machine,
	protocol *recovery.Protocol,
	gate *secondfactor.Gate,
	evaluator *access.Evaluator,
	users store.UserRepository,
	requests store.RecoveryRequestRepository,
	defaultGracePeriodDays uint32,
	logger *logger.Logger,
) RecoveryService {
	return &recoveryService{
		sessions:               sessions,
		machine:                machine,
		protocol:               protocol,
		gate:                   gate,
		evaluator:              evaluator,
		users:                  users,
		requests:               requests,
		defaultGracePeriodDays: defaultGracePeriodDays,
		logger:                 logger,
	}
}

// AssignDelegate designates a recovery delegate for the owner's vault. The
// owner's session must hold the vault key so it can be sealed to the
// delegate; a master password in the request unlocks the session in place
// when it is still locked.
func (r *recoveryService) AssignDelegate(ctx context.Context, ownerID int64, sessionID string, request models.DelegateAssignRequest) error {
	if request.DelegateID == 0 || len(request.DelegatePublicKey) == 0 {
		return ErrInvalidDataProvided
	}

	if err := r.gate.Require(ctx, ownerID, sessionID); err != nil {
		return err
	}

	if _, err := r.users.FindUserByID(ctx, request.DelegateID); err != nil {
		return fmt.Errorf("looking up delegate account: %w", err)
	}

	s, err := r.sessions.get(ctx, sessionID, ownerID)
	if err != nil {
		return fmt.Errorf("starting vault session: %w", err)
	}

	if s.State() != vault.StateUnlocked && request.MasterPassword != "" {
		if err := r.machine.Unlock(ctx, s, request.MasterPassword); err != nil {
			return err
		}
	}

	days := request.GracePeriodDays
	if days == 0 {
		days = r.defaultGracePeriodDays
	}

	return r.protocol.AssignDelegate(ctx, s, request.DelegateID, request.DelegatePublicKey, days)
}

// RemoveDelegate clears the owner's delegate designation and expires any
// pending request.
func (r *recoveryService) RemoveDelegate(ctx context.Context, ownerID int64) error {
	return r.protocol.RemoveDelegate(ctx, ownerID)
}

// SubmitRequest files the delegate's emergency access request against the
// named vault. The delegate clears the access evaluator and the session's
// second-factor gate before the protocol runs.
func (r *recoveryService) SubmitRequest(ctx context.Context, delegateID int64, sessionID string, request models.RecoverySubmitRequest) (models.RecoveryRequest, error) {
	if request.VaultOwnerID == 0 {
		return models.RecoveryRequest{}, ErrInvalidDataProvided
	}

	if _, err := r.evaluator.RequireRecoveryPath(ctx, delegateID, request.VaultOwnerID); err != nil {
		return models.RecoveryRequest{}, err
	}

	if err := r.gate.Require(ctx, delegateID, sessionID); err != nil {
		return models.RecoveryRequest{}, err
	}

	return r.protocol.SubmitRequest(ctx, delegateID, request.VaultOwnerID, request.Relationship, request.Reason)
}

// Approve records the owner's approval of a pending request.
func (r *recoveryService) Approve(ctx context.Context, ownerID int64, requestID string) error {
	if requestID == "" {
		return ErrInvalidDataProvided
	}

	return r.protocol.Approve(ctx, ownerID, requestID)
}

// Reject records the owner's rejection of a pending request. Rejection is
// terminal: the deadline passing later never resurrects the request.
func (r *recoveryService) Reject(ctx context.Context, ownerID int64, requestID string) error {
	if requestID == "" {
		return ErrInvalidDataProvided
	}

	return r.protocol.Reject(ctx, ownerID, requestID)
}

// Unlock consumes an approved request: the delegate's private key opens the
// escrowed vault key, and the owner's vault unlocks inside the delegate's
// session. Each approval admits exactly one consume.
//
// The unlock moves the vault into Unlocked, so it sits behind the same
// second-factor gate as a password unlock. The delegate proves a factor for
// their session before the approval is spent.
func (r *recoveryService) Unlock(ctx context.Context, delegateID int64, sessionID string, request models.RecoveryUnlockRequest) error {
	log := logger.FromContext(ctx)

	if request.RequestID == "" || len(request.DelegatePrivateKey) == 0 {
		return ErrInvalidDataProvided
	}

	req, err := r.requests.Load(ctx, request.RequestID)
	if err != nil {
		return fmt.Errorf("loading recovery request: %w", err)
	}

	if _, err := r.evaluator.RequireRecoveryPath(ctx, delegateID, req.VaultOwnerID); err != nil {
		return err
	}

	if err := r.gate.Require(ctx, delegateID, sessionID); err != nil {
		return err
	}

	key, err := r.protocol.Consume(ctx, delegateID, request.RequestID, request.DelegatePrivateKey)
	if err != nil {
		return err
	}

	s, err := r.sessions.get(ctx, sessionID, req.VaultOwnerID)
	if err != nil {
		key.Destroy()
		return fmt.Errorf("starting recovery session: %w", err)
	}

	if err := r.machine.UnlockViaRecovery(ctx, s, key); err != nil {
		key.Destroy()
		return err
	}

	log.Info().
		Str("request_id", req.ID).
		Int64("vault_owner_id", req.VaultOwnerID).
		Int64("delegate_id", delegateID).
		Msg("vault unlocked via recovery")

	return nil
}
