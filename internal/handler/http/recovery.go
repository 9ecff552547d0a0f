// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
)

func (h *Handler) delegateAssign(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.DelegateAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.RecoveryService.AssignDelegate(r.Context(), userID, sessionID, request); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) delegateRemove(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.services.RecoveryService.RemoveDelegate(r.Context(), userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) recoverySubmit(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.RecoverySubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.RecoveryService.SubmitRequest(r.Context(), userID, sessionID, request)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, created, http.StatusCreated)
}

func (h *Handler) recoveryApprove(w http.ResponseWriter, r *http.Request) {
	h.recoveryDecide(w, r, h.services.RecoveryService.Approve)
}

func (h *Handler) recoveryReject(w http.ResponseWriter, r *http.Request) {
	h.recoveryDecide(w, r, h.services.RecoveryService.Reject)
}

func (h *Handler) recoveryDecide(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, ownerID int64, requestID string) error) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.RecoveryDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := decide(r.Context(), userID, request.RequestID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) recoveryUnlock(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.RecoveryUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.RecoveryService.Unlock(r.Context(), userID, sessionID, request); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
