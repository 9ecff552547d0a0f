// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package workers

import (
	"context"
	"time"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/store"
)

// recoverySweeper periodically re-evaluates pending recovery requests
// against their grace period deadlines. A request whose deadline has passed
// is auto-approved by the timeout evaluator even if no party ever touches it
// again, so the dead-man's-switch fires without waiting for a delegate to
// poll.
//
// The sweep is an acceleration, not a correctness requirement: the same
// evaluation runs lazily on every delegate access. Losing a race with a lazy
// evaluator is therefore harmless and logged at debug level only.
type recoverySweeper struct {
	protocol *recovery.Protocol
	requests store.RecoveryRequestRepository

	interval time.Duration
	stop     chan struct{}

	logger *logger.Logger
}

func newRecoverySweeper(protocol *recovery.Protocol, requests store.RecoveryRequestRepository, interval time.Duration, logger *logger.Logger) *recoverySweeper {
	return &recoverySweeper{
		protocol: protocol,
		requests: requests,
		interval: interval,
		stop:     make(chan struct{}),
		logger:   logger,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately.
func (s *recoverySweeper) Run() {
	s.logger.Info().Dur("interval", s.interval).Msg("starting recovery sweep worker")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(context.Background())
			case <-s.stop:
				s.logger.Info().Msg("recovery sweep worker stopped")
				return
			}
		}
	}()
}

// Shutdown stops the sweep loop. Safe to call once.
func (s *recoverySweeper) Shutdown() {
	close(s.stop)
}

// sweep runs one pass: list every overdue pending request and push each
// through the timeout evaluator. Failures on one request do not abort the
// pass.
func (s *recoverySweeper) sweep(ctx context.Context) {
	due, err := s.requests.ListDuePending(ctx, time.Now())
	if err != nil {
		s.logger.Err(err).Msg("recovery sweep: listing due requests failed")
		return
	}

	for _, request := range due {
		evaluated, err := s.protocol.EvaluateTimeout(ctx, request.ID)
		if err != nil {
			s.logger.Err(err).Str("request_id", request.ID).Msg("recovery sweep: timeout evaluation failed")
			continue
		}
		if evaluated.Status != request.Status {
			s.logger.Info().
				Str("request_id", request.ID).
				Int64("vault_owner_id", request.VaultOwnerID).
				Str("status", string(evaluated.Status)).
				Msg("recovery request auto-approved after grace period")
		}
	}
}
