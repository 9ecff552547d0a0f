package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/evermark-app/vaultcore/internal/access"
	"github.com/evermark-app/vaultcore/internal/config"
	"github.com/evermark-app/vaultcore/internal/crypto"
	"github.com/evermark-app/vaultcore/internal/logger"
	"github.com/evermark-app/vaultcore/internal/notify"
	"github.com/evermark-app/vaultcore/internal/recovery"
	"github.com/evermark-app/vaultcore/internal/secondfactor"
	"github.com/evermark-app/vaultcore/internal/session"
	"github.com/evermark-app/vaultcore/internal/store"
	"github.com/evermark-app/vaultcore/internal/vault"
	"github.com/evermark-app/vaultcore/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// In-memory fakes shared by the service tests
// ─────────────────────────────────────────────

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == user.Login {
			return models.User{}, store.ErrLoginAlreadyExists
		}
	}
	m.nextID++
	user.UserID = m.nextID
	m.users[user.UserID] = user
	return user, nil
}

func (m *memUsers) FindUserByLogin(_ context.Context, login string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memUsers) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (m *memUsers) SetSecondFactorEnrolled(_ context.Context, userID int64, enrolled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	u.SecondFactorEnrolled = enrolled
	m.users[userID] = u
	return nil
}

type memConfigs struct {
	mu      sync.Mutex
	configs map[int64]models.VaultConfig
}

func newMemConfigs() *memConfigs {
	return &memConfigs{configs: make(map[int64]models.VaultConfig)}
}

func (m *memConfigs) Load(_ context.Context, ownerID int64) (models.VaultConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[ownerID]
	if !ok {
		return models.VaultConfig{}, store.ErrVaultConfigNotFound
	}
	return cfg, nil
}

func (m *memConfigs) Save(_ context.Context, cfg models.VaultConfig) (models.VaultConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.configs[cfg.OwnerID]; ok && existing.Encrypted && !cfg.Encrypted {
		return models.VaultConfig{}, store.ErrEncryptionDowngrade
	}
	m.configs[cfg.OwnerID] = cfg
	return cfg, nil
}

func (m *memConfigs) SetAdminAccess(_ context.Context, ownerID int64, allow bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[ownerID]
	if !ok {
		cfg = models.VaultConfig{OwnerID: ownerID, RecoveryStatus: models.RecoveryStatusNone, GracePeriodDays: 7}
	}
	cfg.AllowAdminAccess = allow
	m.configs[ownerID] = cfg
	return nil
}

func (m *memConfigs) CompareAndSetRecoveryStatus(_ context.Context, ownerID int64, expected, next models.RecoveryStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[ownerID]
	if !ok || cfg.RecoveryStatus != expected {
		return false, nil
	}
	cfg.RecoveryStatus = next
	m.configs[ownerID] = cfg
	return true, nil
}

type grantKey struct{ ownerID, granteeID int64 }

type memGrants struct {
	mu     sync.Mutex
	grants map[grantKey]models.RoleGrant
}

func newMemGrants() *memGrants {
	return &memGrants{grants: make(map[grantKey]models.RoleGrant)}
}

func (m *memGrants) ListByOwner(_ context.Context, ownerID int64, statuses ...models.GrantStatus) ([]models.RoleGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RoleGrant
	for k, g := range m.grants {
		if k.ownerID != ownerID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if g.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *memGrants) Find(_ context.Context, ownerID, granteeID int64) (models.RoleGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grants[grantKey{ownerID, granteeID}]
	if !ok {
		return models.RoleGrant{}, store.ErrRoleGrantNotFound
	}
	return g, nil
}

func (m *memGrants) Upsert(_ context.Context, grant models.RoleGrant) (models.RoleGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[grantKey{grant.OwnerID, grant.GranteeID}] = grant
	return grant, nil
}

func (m *memGrants) UpdateStatus(_ context.Context, ownerID, granteeID int64, status models.GrantStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grants[grantKey{ownerID, granteeID}]
	if !ok {
		return store.ErrRoleGrantNotFound
	}
	g.Status = status
	m.grants[grantKey{ownerID, granteeID}] = g
	return nil
}

func (m *memGrants) Delete(_ context.Context, ownerID, granteeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.grants, grantKey{ownerID, granteeID})
	return nil
}

type memRequests struct {
	mu       sync.Mutex
	requests map[string]models.RecoveryRequest
}

func newMemRequests() *memRequests {
	return &memRequests{requests: make(map[string]models.RecoveryRequest)}
}

func (m *memRequests) Create(_ context.Context, request models.RecoveryRequest) (models.RecoveryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.VaultOwnerID == request.VaultOwnerID && r.Status == models.RequestStatusPending {
			return models.RecoveryRequest{}, store.ErrPendingRequestExists
		}
	}
	m.requests[request.ID] = request
	return request, nil
}

func (m *memRequests) Load(_ context.Context, requestID string) (models.RecoveryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok {
		return models.RecoveryRequest{}, store.ErrRecoveryRequestNotFound
	}
	return r, nil
}

func (m *memRequests) LoadPending(_ context.Context, vaultOwnerID int64) (models.RecoveryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.VaultOwnerID == vaultOwnerID && r.Status == models.RequestStatusPending {
			return r, nil
		}
	}
	return models.RecoveryRequest{}, store.ErrRecoveryRequestNotFound
}

func (m *memRequests) ListDuePending(_ context.Context, now time.Time) ([]models.RecoveryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var due []models.RecoveryRequest
	for _, r := range m.requests {
		if r.Status == models.RequestStatusPending && !r.GracePeriodEndsAt.After(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].GracePeriodEndsAt.Before(due[j].GracePeriodEndsAt) })
	return due, nil
}

func (m *memRequests) CompareAndSetStatus(_ context.Context, requestID string, expected, next models.RequestStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok || r.Status != expected {
		return false, nil
	}
	r.Status = next
	m.requests[requestID] = r
	return true, nil
}

func (m *memRequests) MarkConsumed(_ context.Context, requestID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok || r.ConsumedAt != nil {
		return false, nil
	}
	now := r.RequestedAt
	r.ConsumedAt = &now
	m.requests[requestID] = r
	return true, nil
}

type memVerifiers struct {
	mu        sync.Mutex
	verifiers map[int64][]byte
}

func newMemVerifiers() *memVerifiers {
	return &memVerifiers{verifiers: make(map[int64][]byte)}
}

func (m *memVerifiers) LoadVerifier(_ context.Context, ownerID int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.verifiers[ownerID]
	if !ok {
		return nil, session.ErrVerifierNotFound
	}
	return v, nil
}

func (m *memVerifiers) SaveVerifier(_ context.Context, ownerID int64, verifier []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifiers[ownerID] = append([]byte(nil), verifier...)
	return nil
}

func (m *memVerifiers) DeleteVerifier(_ context.Context, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.verifiers, ownerID)
	return nil
}

// scriptedVerifier issues sequential challenge handles and accepts a single
// known code.
type scriptedVerifier struct {
	mu     sync.Mutex
	issued int
}

func (s *scriptedVerifier) IssueChallenge(_ context.Context, _ int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return fmt.Sprintf("challenge-%d", s.issued), nil
}

func (s *scriptedVerifier) VerifyChallenge(_ context.Context, _, code string) (bool, error) {
	return code == "123456", nil
}

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

type fixture struct {
	services *Services
	users    *memUsers
	configs  *memConfigs
	grants   *memGrants
	requests *memRequests
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.Nop()
	users := newMemUsers()
	configs := newMemConfigs()
	grants := newMemGrants()
	requests := newMemRequests()

	manager := session.NewManager(crypto.NewKeyChain(), newMemVerifiers(), log)
	machine := vault.NewMachine(manager, configs, log)
	evaluator := access.NewEvaluator(configs, grants, log)
	gate := secondfactor.NewGate(users, &scriptedVerifier{}, log)
	protocol := recovery.NewProtocol(configs, requests, notify.NewNopNotifier(), log)

	cfg := config.StructuredConfig{
		App: config.App{
			PasswordHashKey:        "test hash key",
			TokenSignKey:           "test sign key",
			TokenIssuer:            "vaultcore-test",
			TokenDuration:          3600000000000,
			DefaultGracePeriodDays: 7,
		},
	}

	repos := store.Repositories{
		Users:            users,
		VaultConfigs:     configs,
		RoleGrants:       grants,
		RecoveryRequests: requests,
	}

	services := NewServices(repos, machine, evaluator, gate, protocol, crypto.NewFieldCipher(), cfg, log)

	return &fixture{
		services: services,
		users:    users,
		configs:  configs,
		grants:   grants,
		requests: requests,
	}
}

// closeAssignmentWindow backdates the delegate assignment so the initial
// protection window has elapsed.
func (f *fixture) closeAssignmentWindow(t *testing.T, ownerID int64) {
	t.Helper()
	ctx := context.Background()

	cfg, err := f.configs.Load(ctx, ownerID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Duration(cfg.GracePeriodDays+1) * 24 * time.Hour)
	cfg.RecoveryRequestedAt = &past
	_, err = f.configs.Save(ctx, cfg)
	require.NoError(t, err)
}

// registerUser creates an account directly in the fake store and returns it.
func (f *fixture) registerUser(t *testing.T, login string) models.User {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), models.User{
		Login:    login,
		AuthHash: "auth-hash-" + login,
	})
	require.NoError(t, err)
	return user
}

// passSecondFactor walks the challenge/verify flow for the session, which
// also enrolls the account on first success.
func (f *fixture) passSecondFactor(t *testing.T, userID int64, sessionID string) {
	t.Helper()
	ctx := context.Background()

	handle, err := f.services.VaultService.Challenge(ctx, userID, sessionID)
	require.NoError(t, err)
	require.NoError(t, f.services.VaultService.VerifySecondFactor(ctx, userID, sessionID, handle, "123456"))
}
