// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/service"
	"github.com/evermark-app/vaultcore/internal/utils"
	"github.com/evermark-app/vaultcore/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockVaultService implements service.VaultService for unit tests.
type mockVaultService struct {
	setupFn         func(ctx context.Context, userID int64, sessionID, masterPassword string) error
	unlockFn        func(ctx context.Context, userID int64, sessionID, masterPassword string) error
	lockFn          func(ctx context.Context, userID int64, sessionID string) error
	statusFn        func(ctx context.Context, userID int64, sessionID string) (models.VaultStatusResponse, error)
	encryptFieldsFn func(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) ([]models.FieldPayload, error)
	decryptFieldsFn func(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) (models.FieldsResponse, error)
	challengeFn     func(ctx context.Context, userID int64, sessionID string) (string, error)
	verifyFn        func(ctx context.Context, userID int64, sessionID, challengeID, code string) error
}

func (m *mockVaultService) Setup(ctx context.Context, userID int64, sessionID, masterPassword string) error {
	return m.setupFn(ctx, userID, sessionID, masterPassword)
}

func (m *mockVaultService) Unlock(ctx context.Context, userID int64, sessionID, masterPassword string) error {
	return m.unlockFn(ctx, userID, sessionID, masterPassword)
}

func (m *mockVaultService) Lock(ctx context.Context, userID int64, sessionID string) error {
	return m.lockFn(ctx, userID, sessionID)
}

func (m *mockVaultService) Status(ctx context.Context, userID int64, sessionID string) (models.VaultStatusResponse, error) {
	return m.statusFn(ctx, userID, sessionID)
}

func (m *mockVaultService) EncryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) ([]models.FieldPayload, error) {
	return m.encryptFieldsFn(ctx, userID, sessionID, fields)
}

func (m *mockVaultService) DecryptFields(ctx context.Context, userID int64, sessionID string, fields []models.FieldPayload) (models.FieldsResponse, error) {
	return m.decryptFieldsFn(ctx, userID, sessionID, fields)
}

func (m *mockVaultService) Challenge(ctx context.Context, userID int64, sessionID string) (string, error) {
	return m.challengeFn(ctx, userID, sessionID)
}

func (m *mockVaultService) VerifySecondFactor(ctx context.Context, userID int64, sessionID, challengeID, code string) error {
	return m.verifyFn(ctx, userID, sessionID, challengeID, code)
}

// mockRecoveryService implements service.RecoveryService for unit tests.
type mockRecoveryService struct {
	assignDelegateFn func(ctx context.Context, ownerID int64, sessionID string, request models.DelegateAssignRequest) error
	removeDelegateFn func(ctx context.Context, ownerID int64) error
	submitRequestFn  func(ctx context.Context, delegateID int64, sessionID string, request models.RecoverySubmitRequest) (models.RecoveryRequest, error)
	approveFn        func(ctx context.Context, ownerID int64, requestID string) error
	rejectFn         func(ctx context.Context, ownerID int64, requestID string) error
	unlockFn         func(ctx context.Context, delegateID int64, sessionID string, request models.RecoveryUnlockRequest) error
}

func (m *mockRecoveryService) AssignDelegate(ctx context.Context, ownerID int64, sessionID string, request models.DelegateAssignRequest) error {
	return m.assignDelegateFn(ctx, ownerID, sessionID, request)
}

func (m *mockRecoveryService) RemoveDelegate(ctx context.Context, ownerID int64) error {
	return m.removeDelegateFn(ctx, ownerID)
}

func (m *mockRecoveryService) SubmitRequest(ctx context.Context, delegateID int64, sessionID string, request models.RecoverySubmitRequest) (models.RecoveryRequest, error) {
	return m.submitRequestFn(ctx, delegateID, sessionID, request)
}

func (m *mockRecoveryService) Approve(ctx context.Context, ownerID int64, requestID string) error {
	return m.approveFn(ctx, ownerID, requestID)
}

func (m *mockRecoveryService) Reject(ctx context.Context, ownerID int64, requestID string) error {
	return m.rejectFn(ctx, ownerID, requestID)
}

func (m *mockRecoveryService) Unlock(ctx context.Context, delegateID int64, sessionID string, request models.RecoveryUnlockRequest) error {
	return m.unlockFn(ctx, delegateID, sessionID, request)
}

// mockGrantService implements service.GrantService for unit tests.
type mockGrantService struct {
	inviteFn         func(ctx context.Context, ownerID, granteeID int64, role models.Role) (models.RoleGrant, error)
	acceptFn         func(ctx context.Context, granteeID, ownerID int64) error
	revokeFn         func(ctx context.Context, ownerID, granteeID int64) error
	listFn           func(ctx context.Context, ownerID int64) ([]models.RoleGrant, error)
	setAdminAccessFn func(ctx context.Context, ownerID int64, allow bool) error
	accessFn         func(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error)
}

func (m *mockGrantService) Invite(ctx context.Context, ownerID, granteeID int64, role models.Role) (models.RoleGrant, error) {
	return m.inviteFn(ctx, ownerID, granteeID, role)
}

func (m *mockGrantService) Accept(ctx context.Context, granteeID, ownerID int64) error {
	return m.acceptFn(ctx, granteeID, ownerID)
}

func (m *mockGrantService) Revoke(ctx context.Context, ownerID, granteeID int64) error {
	return m.revokeFn(ctx, ownerID, granteeID)
}

func (m *mockGrantService) List(ctx context.Context, ownerID int64) ([]models.RoleGrant, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockGrantService) SetAdminAccess(ctx context.Context, ownerID int64, allow bool) error {
	return m.setAdminAccessFn(ctx, ownerID, allow)
}

func (m *mockGrantService) Access(ctx context.Context, actorID, ownerID int64) (models.EffectiveAccess, error) {
	return m.accessFn(ctx, actorID, ownerID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks. Nil mocks
// are fine for tests that never touch the corresponding service.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// authedRequest builds a request carrying an authenticated identity in its
// context, the way the auth middleware would after validating a token.
func authedRequest(method, target string, body string, userID int64, sessionID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.SessionIDCtxKey, sessionID)
	return r.WithContext(ctx)
}
