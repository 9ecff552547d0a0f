// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evermark-app/vaultcore/internal/service"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			registerUserFn: func(ctx context.Context, user models.User) (models.User, error) {
				user.UserID = 42
				return user, nil
			},
			createTokenFn: func(ctx context.Context, user models.User) (models.Token, error) {
				return models.Token{SignedString: "signed-jwt"}, nil
			},
		},
	})

	body := jsonBody(t, models.RegisterRequest{Login: "alice", AuthHash: "client-hash"})
	r := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.register(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-jwt", resp.Token)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			registerUserFn: func(ctx context.Context, user models.User) (models.User, error) {
				return models.User{}, store.ErrLoginAlreadyExists
			},
		},
	})

	body := jsonBody(t, models.RegisterRequest{Login: "alice", AuthHash: "client-hash"})
	r := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})

	r := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{broken"))
	w := httptest.NewRecorder()

	h.register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, user models.User) (models.User, error) {
				return models.User{}, service.ErrWrongPassword
			},
		},
	})

	body := jsonBody(t, models.LoginRequest{Login: "alice", AuthHash: "bad-hash"})
	r := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid login/password")
}

func TestLogin_UnknownUserSameResponseAsWrongPassword(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, user models.User) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
		},
	})

	body := jsonBody(t, models.LoginRequest{Login: "nobody", AuthHash: "hash"})
	r := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid login/password")
}

func TestLogin_TokenCreationFailure(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(ctx context.Context, user models.User) (models.User, error) {
				user.UserID = 42
				return user, nil
			},
			createTokenFn: func(ctx context.Context, user models.User) (models.Token, error) {
				return models.Token{}, errors.New("signer unavailable")
			},
		},
	})

	body := jsonBody(t, models.LoginRequest{Login: "alice", AuthHash: "client-hash"})
	r := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
