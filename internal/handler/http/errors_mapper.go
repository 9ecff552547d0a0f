package http

import (
	"errors"
	"net/http"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/service"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidRole:             http.StatusBadRequest,
	service.ErrSelfGrant:               http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	vault.ErrAuthenticationFailed:    http.StatusUnauthorized,
	vault.ErrVaultLocked:             http.StatusLocked,
	vault.ErrVaultNotInitialized:     http.StatusConflict,
	vault.ErrVaultAlreadyInitialized: http.StatusConflict,
	vault.ErrVaultAlreadyUnlocked:    http.StatusConflict,

	secondfactor.ErrEnrollmentRequired:   http.StatusForbidden,
	secondfactor.ErrVerificationRequired: http.StatusForbidden,
	secondfactor.ErrChallengeExpired:     http.StatusGone,
	secondfactor.ErrCodeRejected:         http.StatusUnauthorized,

	access.ErrAccessDenied: http.StatusForbidden,

	recovery.ErrNotDelegate:                  http.StatusForbidden,
	recovery.ErrVaultNotEncrypted:            http.StatusConflict,
	recovery.ErrDelegateAlreadyAssigned:      http.StatusConflict,
	recovery.ErrAssignmentWindowActive:       http.StatusConflict,
	recovery.ErrRequestAlreadyDecided:        http.StatusConflict,
	recovery.ErrDelegateReassignmentRequired: http.StatusConflict,
	recovery.ErrRecoveryStateChanged:         http.StatusConflict,
	recovery.ErrRequestNotApproved:           http.StatusConflict,
	recovery.ErrApprovalConsumed:             http.StatusConflict,
	recovery.ErrRecoveryKeyMismatch:          http.StatusUnprocessableEntity,

	crypto.ErrCiphertextAuthentication: http.StatusUnprocessableEntity,

	store.ErrLoginAlreadyExists:      http.StatusConflict,
	store.ErrNoUserWasFound:          http.StatusNotFound,
	store.ErrVaultConfigNotFound:     http.StatusNotFound,
	store.ErrRoleGrantNotFound:       http.StatusNotFound,
	store.ErrRecoveryRequestNotFound: http.StatusNotFound,
	store.ErrPendingRequestExists:    http.StatusConflict,
	store.ErrEncryptionDowngrade:     http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
