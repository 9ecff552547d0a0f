package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidRole is returned when a grant names a role that is never
	// stored (owner, none) or unknown.
	ErrInvalidRole = errors.New("invalid role for a grant")

	// ErrSelfGrant is returned when an owner tries to grant a role to
	// themselves. Owner access is derived, not granted.
	ErrSelfGrant = errors.New("cannot grant a role to yourself")
)
