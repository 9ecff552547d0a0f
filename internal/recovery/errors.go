package recovery

import "errors"

var (
	// ErrNotDelegate is returned when the actor is not the vault's assigned
	// delegate.
	ErrNotDelegate = errors.New("actor is not the assigned delegate")

	// ErrVaultNotEncrypted is returned when the protocol runs against a
	// vault that never completed encryption setup.
	ErrVaultNotEncrypted = errors.New("vault is not encrypted")

	// ErrDelegateAlreadyAssigned is returned when assignment runs while a
	// recovery cycle is in progress. The delegate must be removed, or the
	// cycle must finish, before a new assignment.
	ErrDelegateAlreadyAssigned = errors.New("a delegate is already assigned")

	// ErrAssignmentWindowActive is returned when the delegate submits a
	// request before the initial protection window has elapsed.
	ErrAssignmentWindowActive = errors.New("delegate assignment grace window is still active")

	// ErrRequestAlreadyDecided is returned when an owner decision targets a
	// request that already reached a terminal status.
	ErrRequestAlreadyDecided = errors.New("recovery request was already decided")

	// ErrDelegateReassignmentRequired is returned when the delegate submits
	// a request after the previous recovery cycle concluded. A rejection or
	// a finished approval spends the assignment; only a fresh assignment by
	// the owner re-opens the path.
	ErrDelegateReassignmentRequired = errors.New("recovery assignment is spent, delegate must be re-assigned")

	// ErrRecoveryStateChanged is returned when the vault's recovery state
	// moved concurrently while a request was being submitted. The request
	// is withdrawn; the caller must re-read the vault state.
	ErrRecoveryStateChanged = errors.New("vault recovery state changed concurrently")

	// ErrRequestNotApproved is returned when a delegate tries to consume a
	// request that is not approved.
	ErrRequestNotApproved = errors.New("recovery request is not approved")

	// ErrApprovalConsumed is returned when an approved request has already
	// been spent on a recovery unlock.
	ErrApprovalConsumed = errors.New("recovery approval was already consumed")

	// ErrRecoveryKeyMismatch is returned when the delegate's private key
	// cannot open the escrowed vault key.
	ErrRecoveryKeyMismatch = errors.New("recovery key mismatch")
)
