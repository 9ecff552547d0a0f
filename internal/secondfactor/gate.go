// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

// Package secondfactor gates first use of the vault unlock flow behind a
// verified one-time code. The code primitive itself is a black-box
// collaborator with standard time-based semantics; this package owns
// enrollment checks, challenge bookkeeping and the per-session verification
// cache.
package secondfactor

import (
	"context"
	"errors"
	"sync"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/store"
)

var (
	// ErrEnrollmentRequired is returned when the actor has no second factor
	// enrolled. Not retryable as-is: enrollment happens out-of-band.
	ErrEnrollmentRequired = errors.New("second factor enrollment required")

	// ErrVerificationRequired is returned when the actor is enrolled but has
	// not verified a code in this session yet.
	ErrVerificationRequired = errors.New("second factor verification required")

	// ErrChallengeExpired is returned when a verification references an
	// unknown or already-spent challenge. A fresh challenge must be issued.
	ErrChallengeExpired = errors.New("second factor challenge expired")

	// ErrCodeRejected is returned when the code does not verify against the
	// challenge. The spent challenge cannot be retried.
	ErrCodeRejected = errors.New("second factor code rejected")
)

//go:generate mockgen -source=gate.go -destination=../mock/secondfactor_mock.go -package=mock

// Verifier is the black-box one-time-code collaborator. Implementations are
// expected to satisfy standard time-based one-time-code semantics: a
// 30-second validity window and a 6-digit code.
type Verifier interface {
	// IssueChallenge starts a verification attempt for the user and returns
	// an opaque challenge handle.
	IssueChallenge(ctx context.Context, userID int64) (string, error)

	// VerifyChallenge checks the code against the challenge handle.
	VerifyChallenge(ctx context.Context, handle, code string) (bool, error)
}

// Gate enforces the second-factor requirement in front of vault unlock
// transitions. Verification success is cached per session ID, so the factor
// is proven once per session, not once per operation. Challenges are single
// use: any verification attempt spends the handle, and a failed attempt
// requires a fresh challenge.
type Gate struct {
	users    store.UserRepository
	verifier Verifier
	logger   *logger.Logger

	mu         sync.Mutex
	verified   map[string]struct{} // session IDs with a proven factor
	challenges map[string]string   // open challenge handle -> session ID
}

// NewGate constructs a second-factor gate over the given user store and
// code verifier.
func NewGate(users store.UserRepository, verifier Verifier, logger *logger.Logger) *Gate {
	logger.Debug().Msg("creating second factor gate")
	return &Gate{
		users:      users,
		verifier:   verifier,
		logger:     logger,
		verified:   make(map[string]struct{}),
		challenges: make(map[string]string),
	}
}

// Require reports whether the session may proceed into the unlock flow.
// Returns nil when the session has a proven factor, ErrEnrollmentRequired
// when the user never enrolled, and ErrVerificationRequired when a code
// still has to be verified this session.
func (g *Gate) Require(ctx context.Context, userID int64, sessionID string) error {
	g.mu.Lock()
	_, ok := g.verified[sessionID]
	g.mu.Unlock()
	if ok {
		return nil
	}

	user, err := g.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.SecondFactorEnrolled {
		return ErrEnrollmentRequired
	}

	return ErrVerificationRequired
}

// Challenge issues a fresh challenge for the session. Only one challenge is
// open per session; issuing a new one invalidates the previous handle.
func (g *Gate) Challenge(ctx context.Context, userID int64, sessionID string) (string, error) {
	user, err := g.users.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.SecondFactorEnrolled {
		return "", ErrEnrollmentRequired
	}

	return g.issue(ctx, userID, sessionID)
}

// BeginEnrollment issues a challenge for an account that has not enrolled
// yet. Verifying this challenge proves possession of the factor; the caller
// records enrollment on success.
func (g *Gate) BeginEnrollment(ctx context.Context, userID int64, sessionID string) (string, error) {
	if _, err := g.users.FindUserByID(ctx, userID); err != nil {
		return "", err
	}

	return g.issue(ctx, userID, sessionID)
}

func (g *Gate) issue(ctx context.Context, userID int64, sessionID string) (string, error) {
	handle, err := g.verifier.IssueChallenge(ctx, userID)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	for h, sid := range g.challenges {
		if sid == sessionID {
			delete(g.challenges, h)
		}
	}
	g.challenges[handle] = sessionID
	g.mu.Unlock()

	return handle, nil
}

// Verify spends the challenge handle against the supplied code. On success
// the session is marked verified for its remainder. On failure the handle is
// spent anyway and ErrCodeRejected is returned; the caller must request a
// fresh challenge. A handle from another session, or one already spent,
// yields ErrChallengeExpired.
func (g *Gate) Verify(ctx context.Context, sessionID, handle, code string) error {
	log := logger.FromContext(ctx)

	g.mu.Lock()
	owner, ok := g.challenges[handle]
	if ok {
		delete(g.challenges, handle)
	}
	g.mu.Unlock()

	if !ok || owner != sessionID {
		return ErrChallengeExpired
	}

	ok, err := g.verifier.VerifyChallenge(ctx, handle, code)
	if err != nil {
		log.Err(err).Str("func", "*Gate.Verify").Msg("code verification failed")
		return err
	}
	if !ok {
		return ErrCodeRejected
	}

	g.mu.Lock()
	g.verified[sessionID] = struct{}{}
	g.mu.Unlock()

	return nil
}

// Forget drops the session's verification cache and any open challenge,
// typically on logout.
func (g *Gate) Forget(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.verified, sessionID)
	for h, sid := range g.challenges {
		if sid == sessionID {
			delete(g.challenges, h)
		}
	}
}
