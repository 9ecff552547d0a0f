package session

import "errors"

var (
	// ErrVerifierNotFound is returned when no master-secret verifier
	// exists for the owner on this device.
	ErrVerifierNotFound = errors.New("no master secret verifier stored")

	// ErrVerifierMismatch is returned when the derived key material does
	// not match the stored verifier: the master password is wrong.
	ErrVerifierMismatch = errors.New("master password does not match stored verifier")
)
