// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

// Package recovery implements the dead-man's-switch recovery delegation
// protocol: delegate assignment with an initial protection window, a single
// in-flight recovery request per vault, owner approval or rejection before a
// deadline, timestamp-derived auto-grant on timeout and a consume-once
// approved unlock.
//
// Every contended transition is one compare-and-set against durable storage.
// Losing a compare-and-set is never an error here; the loser re-reads the
// winner's outcome and proceeds idempotently.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/notify"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
	"github.com/evermark-app/vaultcore/models"
	"github.com/google/uuid"
)

const day = 24 * time.Hour

// Protocol drives the recovery delegation state machine for all vaults.
type Protocol struct {
	configs  store.VaultConfigRepository
	requests store.RecoveryRequestRepository
	notifier notify.Notifier
	logger   *logger.Logger

	// now is replaceable in tests; everything protocol-temporal is derived
	// from timestamps through it, never from cached elapsed-time flags.
	now func() time.Time
}

// NewProtocol constructs the recovery delegation protocol over the given
// stores and notification collaborator.
func NewProtocol(configs store.VaultConfigRepository, requests store.RecoveryRequestRepository, notifier notify.Notifier, logger *logger.Logger) *Protocol {
	logger.Debug().Msg("creating recovery delegation protocol")
	return &Protocol{
		configs:  configs,
		requests: requests,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// AssignDelegate designates a delegate for the owner's vault and escrows the
// vault key to the delegate's public key. The owner's session must be
// unlocked: sealing needs the live vault key, and this is also what proves
// the assigning actor knows the master password.
//
// Assignment starts the initial protection window; the delegate cannot
// submit a request until gracePeriodDays have elapsed.
func (p *Protocol) AssignDelegate(ctx context.Context, ownerSession *vault.Session, delegateID int64, delegatePublicKey []byte, gracePeriodDays uint32) error {
	key, err := ownerSession.Key()
	if err != nil {
		return err
	}

	ownerID := ownerSession.OwnerID()
	if delegateID == ownerID {
		return fmt.Errorf("%w: owner cannot be their own delegate", ErrNotDelegate)
	}

	cfg, err := p.configs.Load(ctx, ownerID)
	if err != nil {
		return err
	}
	if !cfg.Encrypted {
		return ErrVaultNotEncrypted
	}
	if cfg.RecoveryStatus != models.RecoveryStatusNone {
		return ErrDelegateAlreadyAssigned
	}

	sealed, err := crypto.SealKeyToDelegate(key, delegatePublicKey)
	if err != nil {
		return err
	}

	now := p.now()
	cfg.DelegateID = &delegateID
	cfg.DelegatePublicKey = delegatePublicKey
	cfg.DelegateSealedKey = sealed
	if gracePeriodDays > 0 {
		cfg.GracePeriodDays = gracePeriodDays
	}
	cfg.RecoveryStatus = models.RecoveryStatusGracePeriodActive
	cfg.RecoveryRequestedAt = &now

	_, err = p.configs.Save(ctx, cfg)
	return err
}

// RemoveDelegate clears the vault's delegate, wipes the escrowed key and
// resets the recovery status. A pending request, if any, is expired and the
// delegate is notified of the withdrawal.
func (p *Protocol) RemoveDelegate(ctx context.Context, ownerID int64) error {
	log := logger.FromContext(ctx)

	cfg, err := p.configs.Load(ctx, ownerID)
	if err != nil {
		return err
	}
	if !cfg.HasDelegate() {
		return nil
	}
	delegateID := *cfg.DelegateID

	if pending, err := p.requests.LoadPending(ctx, ownerID); err == nil {
		won, casErr := p.requests.CompareAndSetStatus(ctx, pending.ID, models.RequestStatusPending, models.RequestStatusExpired)
		if casErr != nil {
			return casErr
		}
		if won {
			pending.Status = models.RequestStatusExpired
			p.notifier.NotifyDelegateOfDecision(ctx, delegateID, pending)
		}
	} else if !errors.Is(err, store.ErrRecoveryRequestNotFound) {
		log.Err(err).Str("func", "*Protocol.RemoveDelegate").Msg("loading pending request failed")
		return err
	}

	cfg.DelegateID = nil
	cfg.DelegatePublicKey = nil
	cfg.DelegateSealedKey = nil
	cfg.RecoveryStatus = models.RecoveryStatusNone
	cfg.RecoveryRequestedAt = nil

	_, err = p.configs.Save(ctx, cfg)
	return err
}

// SubmitRequest lets the assigned delegate open a recovery request against
// the vault. Exactly one request may be pending per vault; the store's
// unique index makes the conflict check race-safe, so two tabs submitting
// simultaneously yield one request and one ErrPendingRequestExists.
//
// Submission requires a live assignment: the vault must be in
// GracePeriodActive. A concluded cycle — rejection or approval — spends the
// assignment, so a rejected delegate cannot simply re-request and wait out
// the deadline; the owner has to assign them afresh.
func (p *Protocol) SubmitRequest(ctx context.Context, delegateID, ownerID int64, relationship, reason string) (models.RecoveryRequest, error) {
	log := logger.FromContext(ctx)

	cfg, err := p.configs.Load(ctx, ownerID)
	if err != nil {
		return models.RecoveryRequest{}, err
	}
	if !cfg.Encrypted {
		return models.RecoveryRequest{}, ErrVaultNotEncrypted
	}
	if !cfg.IsDelegate(delegateID) {
		return models.RecoveryRequest{}, ErrNotDelegate
	}

	switch cfg.RecoveryStatus {
	case models.RecoveryStatusGracePeriodActive:
	case models.RecoveryStatusPending:
		return models.RecoveryRequest{}, store.ErrPendingRequestExists
	default:
		return models.RecoveryRequest{}, ErrDelegateReassignmentRequired
	}

	now := p.now()
	if cfg.AssignmentWindowOpen(now) {
		return models.RecoveryRequest{}, ErrAssignmentWindowActive
	}

	request := models.RecoveryRequest{
		ID:                uuid.NewString(),
		VaultOwnerID:      ownerID,
		DelegateID:        delegateID,
		Relationship:      relationship,
		Reason:            reason,
		RequestedAt:       now,
		GracePeriodEndsAt: now.Add(time.Duration(cfg.GracePeriodDays) * day),
		Status:            models.RequestStatusPending,
	}

	created, err := p.requests.Create(ctx, request)
	if err != nil {
		return models.RecoveryRequest{}, err
	}

	won, err := p.configs.CompareAndSetRecoveryStatus(ctx, ownerID, models.RecoveryStatusGracePeriodActive, models.RecoveryStatusPending)
	if err != nil {
		return models.RecoveryRequest{}, err
	}
	if !won {
		// the vault moved between the load and the write (delegate removal,
		// a concurrent decision). Withdraw the request instead of leaving a
		// pending row against a vault that no longer expects one.
		if _, casErr := p.requests.CompareAndSetStatus(ctx, created.ID, models.RequestStatusPending, models.RequestStatusExpired); casErr != nil {
			log.Err(casErr).Str("func", "*Protocol.SubmitRequest").Str("request_id", created.ID).Msg("withdrawing request failed")
		}
		return models.RecoveryRequest{}, ErrRecoveryStateChanged
	}

	p.notifier.NotifyOwnerOfRecoveryRequest(ctx, ownerID, created)
	return created, nil
}

// Approve records the owner's explicit approval of a pending request.
// Racing against the timeout auto-grant is benign: both transitions target
// Approved, so a lost compare-and-set against an approved request still
// succeeds from the caller's point of view.
func (p *Protocol) Approve(ctx context.Context, ownerID int64, requestID string) error {
	return p.decide(ctx, ownerID, requestID, models.RequestStatusApproved)
}

// Reject records the owner's explicit rejection. Rejection is terminal: the
// same request can never be approved later, by owner or by timeout. If the
// timeout auto-grant was durably recorded first, the rejection fails with
// ErrRequestAlreadyDecided.
func (p *Protocol) Reject(ctx context.Context, ownerID int64, requestID string) error {
	return p.decide(ctx, ownerID, requestID, models.RequestStatusRejected)
}

func (p *Protocol) decide(ctx context.Context, ownerID int64, requestID string, decision models.RequestStatus) error {
	request, err := p.requests.Load(ctx, requestID)
	if err != nil {
		return err
	}
	if request.VaultOwnerID != ownerID {
		return store.ErrRecoveryRequestNotFound
	}

	won, err := p.requests.CompareAndSetStatus(ctx, requestID, models.RequestStatusPending, decision)
	if err != nil {
		return err
	}
	if !won {
		// another writer decided first; re-read and judge the outcome
		current, err := p.requests.Load(ctx, requestID)
		if err != nil {
			return err
		}
		if current.Status == decision {
			return nil
		}
		return ErrRequestAlreadyDecided
	}

	vaultStatus := models.RecoveryStatusApproved
	if decision == models.RequestStatusRejected {
		vaultStatus = models.RecoveryStatusNone
	}
	if _, err := p.configs.CompareAndSetRecoveryStatus(ctx, ownerID, models.RecoveryStatusPending, vaultStatus); err != nil {
		return err
	}

	request.Status = decision
	p.notifier.NotifyDelegateOfDecision(ctx, request.DelegateID, request)
	return nil
}

// EvaluateTimeout applies the dead-man's-switch rule to one request: a
// pending request past its deadline becomes Approved without owner action.
// The decision is re-derived from GracePeriodEndsAt on every call. The
// transition is idempotent under concurrency: of N simultaneous evaluators
// exactly one wins the compare-and-set, notifies the delegate and the rest
// observe the already-approved request.
func (p *Protocol) EvaluateTimeout(ctx context.Context, requestID string) (models.RecoveryRequest, error) {
	request, err := p.requests.Load(ctx, requestID)
	if err != nil {
		return models.RecoveryRequest{}, err
	}

	if request.Status != models.RequestStatusPending || !request.Overdue(p.now()) {
		return request, nil
	}

	won, err := p.requests.CompareAndSetStatus(ctx, request.ID, models.RequestStatusPending, models.RequestStatusApproved)
	if err != nil {
		return models.RecoveryRequest{}, err
	}
	if won {
		if _, err := p.configs.CompareAndSetRecoveryStatus(ctx, request.VaultOwnerID, models.RecoveryStatusPending, models.RecoveryStatusApproved); err != nil {
			return models.RecoveryRequest{}, err
		}
		request.Status = models.RequestStatusApproved
		p.notifier.NotifyDelegateOfDecision(ctx, request.DelegateID, request)
		return request, nil
	}

	// lost the race; the winner's terminal status is authoritative
	return p.requests.Load(ctx, request.ID)
}

// EvaluatePending runs EvaluateTimeout against the vault's pending request,
// if any. Used by the periodic sweep and by the delegate's lazy access path.
func (p *Protocol) EvaluatePending(ctx context.Context, ownerID int64) (models.RecoveryRequest, error) {
	pending, err := p.requests.LoadPending(ctx, ownerID)
	if err != nil {
		return models.RecoveryRequest{}, err
	}
	return p.EvaluateTimeout(ctx, pending.ID)
}

// Consume spends an approved request on a recovery unlock, opening the
// escrowed vault key with the delegate's private key. Each approved request
// is consumable exactly once; the consumed marker is a conditional update,
// so two concurrent consumers yield one key and one ErrApprovalConsumed.
//
// The returned key is established from the assignment-time escrow; the
// owner's master password is never transmitted or reconstructed.
func (p *Protocol) Consume(ctx context.Context, delegateID int64, requestID string, delegatePrivateKey []byte) (*crypto.SessionKey, error) {
	request, err := p.EvaluateTimeout(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.DelegateID != delegateID {
		return nil, ErrNotDelegate
	}
	if request.Status != models.RequestStatusApproved {
		return nil, ErrRequestNotApproved
	}

	cfg, err := p.configs.Load(ctx, request.VaultOwnerID)
	if err != nil {
		return nil, err
	}
	if !cfg.IsDelegate(delegateID) {
		return nil, ErrNotDelegate
	}

	key, err := crypto.OpenSealedKey(cfg.DelegateSealedKey, cfg.DelegatePublicKey, delegatePrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecoveryKeyMismatch, err)
	}

	won, err := p.requests.MarkConsumed(ctx, request.ID)
	if err != nil {
		key.Destroy()
		return nil, err
	}
	if !won {
		key.Destroy()
		return nil, ErrApprovalConsumed
	}

	return key, nil
}
