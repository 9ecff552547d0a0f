// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package http

import (
	"encoding/json"
	"net/http"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/models"
)

func (h *Handler) vaultSetup(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.VaultSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.Setup(r.Context(), userID, sessionID, request.MasterPassword); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) vaultUnlock(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.VaultUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.Unlock(r.Context(), userID, sessionID, request.MasterPassword); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) vaultLock(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.Lock(r.Context(), userID, sessionID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) vaultStatus(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	status, err := h.services.VaultService.Status(r.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, status, http.StatusOK)
}

func (h *Handler) vaultEncryptFields(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.FieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	encrypted, err := h.services.VaultService.EncryptFields(r.Context(), userID, sessionID, request.Fields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, models.FieldsResponse{Fields: encrypted}, http.StatusOK)
}

func (h *Handler) vaultDecryptFields(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.FieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	decrypted, err := h.services.VaultService.DecryptFields(r.Context(), userID, sessionID, request.Fields)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, decrypted, http.StatusOK)
}

func (h *Handler) secondFactorChallenge(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	challengeID, err := h.services.VaultService.Challenge(r.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, models.ChallengeResponse{ChallengeID: challengeID}, http.StatusOK)
}

func (h *Handler) secondFactorVerify(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.ChallengeVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.VerifySecondFactor(r.Context(), userID, sessionID, request.ChallengeID, request.Code); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
