// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package secondfactor

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/utils"
)

const (
	remoteVerifierTimeout = 10 * time.Second

	// logVerifierTTL bounds how long a logged dev code stays redeemable.
	logVerifierTTL = 5 * time.Minute
)

// remoteVerifier delegates code generation and delivery to an external
// provider over HTTP. The provider owns the code channel (SMS, authenticator
// push, email); this side only holds the opaque challenge handle.
type remoteVerifier struct {
	client  *utils.HTTPClient
	baseURL string
	logger  *logger.Logger
}

// NewRemoteVerifier constructs a Verifier backed by the delivery provider at
// baseURL.
func NewRemoteVerifier(baseURL string, logger *logger.Logger) Verifier {
	logger.Debug().Str("base_url", baseURL).Msg("creating remote second factor verifier")
	client := utils.NewHTTPClient()
	client.SetTimeout(remoteVerifierTimeout)
	return &remoteVerifier{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

type issueChallengeRequest struct {
	UserID int64 `json:"user_id"`
}

type issueChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}

type verifyChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

type verifyChallengeResponse struct {
	Valid bool `json:"valid"`
}

func (v *remoteVerifier) IssueChallenge(ctx context.Context, userID int64) (string, error) {
	var result issueChallengeResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(issueChallengeRequest{UserID: userID}).
		SetResult(&result).
		Post(v.baseURL + "/challenge")
	if err != nil {
		return "", fmt.Errorf("second factor provider unreachable: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("second factor provider returned status %d", resp.StatusCode())
	}

	return result.ChallengeID, nil
}

func (v *remoteVerifier) VerifyChallenge(ctx context.Context, handle, code string) (bool, error) {
	var result verifyChallengeResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(verifyChallengeRequest{ChallengeID: handle, Code: code}).
		SetResult(&result).
		Post(v.baseURL + "/verify")
	if err != nil {
		return false, fmt.Errorf("second factor provider unreachable: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("second factor provider returned status %d", resp.StatusCode())
	}

	return result.Valid, nil
}

// logVerifier generates codes locally and prints them to the server log.
// Development fallback only: anyone who can read the log can pass the
// factor.
type logVerifier struct {
	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	mu    sync.Mutex
	codes map[string]logChallenge
}

type logChallenge struct {
	code     string
	issuedAt time.Time
}

// NewLogVerifier returns a Verifier that logs codes instead of delivering
// them. Used when no provider URL is configured.
func NewLogVerifier(logger *logger.Logger) Verifier {
	logger.Warn().Msg("no second factor provider configured, codes will be written to the log")
	return &logVerifier{
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
		codes:  make(map[string]logChallenge),
	}
}

func (v *logVerifier) IssueChallenge(_ context.Context, userID int64) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	handle := v.uuid.Generate()

	v.mu.Lock()
	v.codes[handle] = logChallenge{code: code, issuedAt: time.Now()}
	v.mu.Unlock()

	v.logger.Info().Int64("user_id", userID).Str("challenge_id", handle).Str("code", code).Msg("second factor code issued")
	return handle, nil
}

func (v *logVerifier) VerifyChallenge(_ context.Context, handle, code string) (bool, error) {
	v.mu.Lock()
	challenge, ok := v.codes[handle]
	delete(v.codes, handle)
	v.mu.Unlock()

	if !ok || time.Since(challenge.issuedAt) > logVerifierTTL {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(challenge.code), []byte(code)) == 1, nil
}

// generateCode produces a 6-digit code with crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("error generating second factor code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
