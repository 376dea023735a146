// Package authstate mirrors server-side session validity on the client: a
// small state machine that owns the stored token and the current user.
package authstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"nasa-mission-control/app/client/api"
	"nasa-mission-control/app/client/storage"
	"nasa-mission-control/app/server/jwt"
)

type Status string

const (
	StatusLoading         Status = "loading"         // initial, or a round trip is pending
	StatusAuthenticated   Status = "authenticated"   // user and token present
	StatusUnauthenticated Status = "unauthenticated" // no valid token
	StatusError           Status = "error"           // last operation failed, message retained
)

type State struct {
	Status Status
	User   *api.User
	Token  string
	Err    string
}

type Manager struct {
	c     *api.Client
	store storage.TokenStore
	l     *zap.Logger

	mu    sync.Mutex
	state State
	gen   uint64 // bumped per operation; stale round trips must not commit
}

func New(c *api.Client, store storage.TokenStore, l *zap.Logger) *Manager {
	return &Manager{
		c:     c,
		store: store,
		l:     l,
		state: State{Status: StatusLoading},
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Init restores a session from the stored token. A missing or locally invalid
// token lands in unauthenticated; a token that looks valid but fails the
// profile fetch lands in error.
func (m *Manager) Init(ctx context.Context) State {
	gen := m.begin()

	token, err := m.store.Load()
	if err != nil {
		m.l.Error("failed to load stored token", zap.Error(err))
		return m.commit(gen, State{Status: StatusUnauthenticated})
	}
	if token == "" {
		return m.commit(gen, State{Status: StatusUnauthenticated})
	}

	// Local check first: no point in a round trip with an expired token
	if err := checkLocal(token); err != nil {
		m.l.Debug("stored token is invalid", zap.Error(err))
		m.clearStored()
		return m.commit(gen, State{Status: StatusUnauthenticated})
	}

	user, err := m.c.Profile(ctx, token)
	if err != nil {
		m.clearStored()
		return m.commit(gen, State{Status: StatusError, Err: fmt.Sprintf("failed to fetch profile: %v", err)})
	}

	return m.commit(gen, State{Status: StatusAuthenticated, User: user, Token: token})
}

// Login performs the issuer round trip. The token is only persisted once the
// whole flow succeeds, so a failed login leaves no partial state behind.
func (m *Manager) Login(ctx context.Context, email string, password string) (State, error) {
	gen := m.begin()

	token, err := m.c.Login(ctx, email, password)
	if err != nil {
		return m.commit(gen, State{Status: StatusError, Err: err.Error()}), err
	}

	if err := checkLocal(token); err != nil {
		err = fmt.Errorf("received invalid token from server: %w", err)
		return m.commit(gen, State{Status: StatusError, Err: err.Error()}), err
	}

	user, err := m.c.Profile(ctx, token)
	if err != nil {
		err = fmt.Errorf("failed to fetch profile after login: %w", err)
		return m.commit(gen, State{Status: StatusError, Err: err.Error()}), err
	}

	// Persist and commit under the same generation check, so a superseded
	// login can neither flip the state nor leave a token behind.
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return m.state, nil
	}

	if err := m.store.Save(token); err != nil {
		err = fmt.Errorf("failed to store token: %w", err)
		m.state = State{Status: StatusError, Err: err.Error()}
		return m.state, err
	}

	m.state = State{Status: StatusAuthenticated, User: user, Token: token}
	return m.state, nil
}

// Logout clears the stored token synchronously. The token is stateless, so
// there is no server call to make.
func (m *Manager) Logout() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.clearStored()
	m.state = State{Status: StatusUnauthenticated}
	return m.state
}

// begin marks the start of an operation: state goes to loading and a new
// generation is issued.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.state = State{Status: StatusLoading}
	return m.gen
}

// commit applies the operation's result unless it has been superseded.
func (m *Manager) commit(gen uint64, s State) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		// a newer operation owns the state now
		return m.state
	}

	m.state = s
	return s
}

func (m *Manager) clearStored() {
	if err := m.store.Clear(); err != nil {
		m.l.Error("failed to clear stored token", zap.Error(err))
	}
}

// checkLocal decodes the token without verifying the signature (the client
// has no key) and rejects anything expired or malformed.
func checkLocal(token string) error {
	user, err := jwt.DecodeUnverified(token)
	if err != nil {
		return err
	}

	if user.Expires < time.Now().Unix() {
		return fmt.Errorf("token expired")
	}

	return nil
}
