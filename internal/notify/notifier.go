// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

// Package notify delivers recovery-protocol notifications to an external
// webhook endpoint. Delivery is fire-and-forget: a failed delivery is
// logged and dropped, never allowed to block or roll back the state
// transition that triggered it.
package notify

import (
	"context"
	"time"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/utils"
	"github.com/evermark-app/vaultcore/models"
)

//go:generate mockgen -source=notifier.go -destination=../mock/notify_mock.go -package=mock

// Notifier is the outbound notification collaborator of the recovery
// protocol.
type Notifier interface {
	// NotifyOwnerOfRecoveryRequest tells the owner a recovery request was
	// submitted against their vault.
	NotifyOwnerOfRecoveryRequest(ctx context.Context, ownerID int64, request models.RecoveryRequest)

	// NotifyDelegateOfDecision tells the delegate their request reached a
	// terminal status.
	NotifyDelegateOfDecision(ctx context.Context, delegateID int64, request models.RecoveryRequest)
}

const deliveryTimeout = 5 * time.Second

// webhookNotifier POSTs JSON events to a configured base URL.
type webhookNotifier struct {
	client  *utils.HTTPClient
	baseURL string
	logger  *logger.Logger
}

// NewWebhookNotifier constructs a Notifier delivering to baseURL.
func NewWebhookNotifier(baseURL string, logger *logger.Logger) Notifier {
	logger.Debug().Str("base_url", baseURL).Msg("creating webhook notifier")
	client := utils.NewHTTPClient()
	client.SetTimeout(deliveryTimeout)
	return &webhookNotifier{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

type recoveryEvent struct {
	UserID  int64                  `json:"user_id"`
	Request models.RecoveryRequest `json:"request"`
}

func (n *webhookNotifier) NotifyOwnerOfRecoveryRequest(ctx context.Context, ownerID int64, request models.RecoveryRequest) {
	n.deliver(ctx, "/recovery/requested", recoveryEvent{UserID: ownerID, Request: request})
}

func (n *webhookNotifier) NotifyDelegateOfDecision(ctx context.Context, delegateID int64, request models.RecoveryRequest) {
	n.deliver(ctx, "/recovery/decided", recoveryEvent{UserID: delegateID, Request: request})
}

func (n *webhookNotifier) deliver(ctx context.Context, path string, event recoveryEvent) {
	log := logger.FromContext(ctx)

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(n.baseURL + path)
	if err != nil {
		log.Err(err).Str("func", "*webhookNotifier.deliver").Str("path", path).Msg("notification delivery failed")
		return
	}
	if resp.IsError() {
		log.Warn().Str("func", "*webhookNotifier.deliver").Str("path", path).Int("status", resp.StatusCode()).Msg("notification endpoint returned an error")
	}
}

// nopNotifier drops every notification. Used when no webhook is configured.
type nopNotifier struct{}

// NewNopNotifier returns a Notifier that discards everything.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) NotifyOwnerOfRecoveryRequest(context.Context, int64, models.RecoveryRequest) {}

func (nopNotifier) NotifyDelegateOfDecision(context.Context, int64, models.RecoveryRequest) {}
