package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/evermark-app/vaultcore/internal/vault"
)

// sessionRegistry holds the live vault sessions of the process, keyed by
// (session ID, vault owner) pair. A session for someone else's vault exists
// only on the recovery path. Keys live exclusively inside the sessions;
// nothing here survives a restart.
type sessionRegistry struct {
	machine *vault.Machine

	mu       sync.Mutex
	sessions map[string]*vault.Session
}

func newSessionRegistry(machine *vault.Machine) *sessionRegistry {
	return &sessionRegistry{
		machine:  machine,
		sessions: make(map[string]*vault.Session),
	}
}

func registryKey(sessionID string, ownerID int64) string {
	return sessionID + "/" + strconv.FormatInt(ownerID, 10)
}

// get returns the live session for the pair, starting one from durable
// state on first use. Concurrent first uses collapse to a single session.
func (r *sessionRegistry) get(ctx context.Context, sessionID string, ownerID int64) (*vault.Session, error) {
	key := registryKey(sessionID, ownerID)

	r.mu.Lock()
	s, ok := r.sessions[key]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	s, err := r.machine.Begin(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[key]; ok {
		return existing, nil
	}
	r.sessions[key] = s
	return s, nil
}

// lookup returns the live session for the pair without starting one.
func (r *sessionRegistry) lookup(sessionID string, ownerID int64) (*vault.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[registryKey(sessionID, ownerID)]
	return s, ok
}
