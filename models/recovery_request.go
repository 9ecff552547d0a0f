// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package models

import "time"

// RequestStatus is the lifecycle state of a recovery request. Approved,
// Rejected and Expired are terminal: once reached, no further transition is
// legal and the persistence layer enforces this with conditional updates.
type RequestStatus string

const (
	// RequestStatusPending means the owner may still approve or reject.
	RequestStatusPending RequestStatus = "pending"

	// RequestStatusApproved means the delegate may consume the request to
	// unlock the vault, exactly once. Reached by explicit owner approval
	// or by timeout auto-grant.
	RequestStatusApproved RequestStatus = "approved"

	// RequestStatusRejected means the owner declined. Terminal: the same
	// request can never be re-submitted or re-approved.
	RequestStatusRejected RequestStatus = "rejected"

	// RequestStatusExpired means the request was withdrawn by delegate
	// removal before any decision.
	RequestStatusExpired RequestStatus = "expired"
)

// Terminal reports whether s is a terminal status.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusExpired
}

// RecoveryRequest is one delegate-initiated emergency access request.
// At most one pending request exists per vault at any time.
type RecoveryRequest struct {
	// ID uniquely identifies the request (UUID).
	ID string `json:"id"`

	// VaultOwnerID is the owner of the vault the request targets.
	VaultOwnerID int64 `json:"vault_owner_id"`

	// DelegateID is the requesting delegate.
	DelegateID int64 `json:"delegate_id"`

	// Relationship is the delegate's stated relationship to the owner
	// ("spouse", "executor", ...). Informational, shown to the owner.
	Relationship string `json:"relationship"`

	// Reason is the delegate's free-form justification.
	Reason string `json:"reason"`

	// RequestedAt is the submission instant.
	RequestedAt time.Time `json:"requested_at"`

	// GracePeriodEndsAt is the deadline for an owner response. Past it, an
	// unanswered request is treated as approved. The deadline is always
	// re-derived from this timestamp, never from a cached flag.
	GracePeriodEndsAt time.Time `json:"grace_period_ends_at"`

	// Status is the current lifecycle state.
	Status RequestStatus `json:"status"`

	// DecidedAt records when a terminal status was reached, nil while pending.
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	// ConsumedAt records the single permitted recovery unlock, nil before it.
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the RecoveryRequest model.
func (r RecoveryRequest) TableName() string {
	return "recovery_requests"
}

// Overdue reports whether the owner-response deadline has passed at the given
// instant. It is a pure timestamp comparison; callers still have to win the
// status compare-and-set before acting on it.
func (r *RecoveryRequest) Overdue(now time.Time) bool {
	return !now.Before(r.GracePeriodEndsAt)
}

// Consumed reports whether the request's approval has already been spent on a
// recovery unlock.
func (r *RecoveryRequest) Consumed() bool {
	return r.ConsumedAt != nil
}
