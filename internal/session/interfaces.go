// Package session owns the ephemeral session-key lifecycle: deriving key
// material from a verified master password, testing unlock attempts against
// the device-local verifier, and destroying keys on lock or logout.
//
// Nothing in this package ever persists key material. The only durable
// artifact is the one-way master-secret verifier, kept in a device-scoped
// store that is passed in as an explicit collaborator, never a hidden
// singleton.
package session

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

import "context"

// VerifierStore is the device-scoped persistence contract for master-secret
// verifiers. Exactly one verifier exists per owner per device profile; it is
// created at encryption setup and consulted on later unlock attempts before
// any expensive derivation output is trusted.
type VerifierStore interface {
	// LoadVerifier returns the stored verifier for the owner, or
	// ErrVerifierNotFound when setup has not run on this device.
	LoadVerifier(ctx context.Context, ownerID int64) ([]byte, error)

	// SaveVerifier stores the verifier, replacing any previous value.
	SaveVerifier(ctx context.Context, ownerID int64, verifier []byte) error

	// DeleteVerifier removes the owner's verifier, e.g. on account
	// deletion or device unlink.
	DeleteVerifier(ctx context.Context, ownerID int64) error
}
