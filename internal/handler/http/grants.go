package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/service"
	"github.com/evermark-app/vaultcore/models"
)

func (h *Handler) grantInvite(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.GrantInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	grant, err := h.services.GrantService.Invite(r.Context(), userID, request.GranteeID, request.Role)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, grant, http.StatusCreated)
}

func (h *Handler) grantAccept(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.GrantAcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.GrantService.Accept(r.Context(), userID, request.OwnerID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) grantRevoke(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.GrantRevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.GrantService.Revoke(r.Context(), userID, request.GranteeID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) grantList(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	grants, err := h.services.GrantService.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, models.GrantsResponse{Grants: grants}, http.StatusOK)
}

func (h *Handler) adminAccess(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var request models.AdminAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.GrantService.SetAdminAccess(r.Context(), userID, request.Allow); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// access answers the caller's effective access on another owner's vault. The
// owner is passed as a query parameter so viewers can probe without a body.
func (h *Handler) access(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}

	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		handleServiceError(w, r, service.ErrInvalidDataProvided)
		return
	}

	evaluated, err := h.services.GrantService.Access(r.Context(), userID, ownerID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, evaluated, http.StatusOK)
}
