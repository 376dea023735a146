package authstate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nasa-mission-control/app/client/api"
	"nasa-mission-control/app/server/jwt"
)

// memStore keeps the token in memory, standing in for the file store.
type memStore struct {
	mu    sync.Mutex
	token string
}

func (s *memStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

type fixture struct {
	manager *Manager
	store   *memStore
	jwt     *jwt.JWT
	server  *httptest.Server

	profileHook func(w http.ResponseWriter, r *http.Request) bool // optional, returns true when handled
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	j, err := jwt.New("test-secret")
	require.NoError(t, err)

	f := &fixture{store: &memStore{}, jwt: j}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}

		token, err := j.SignToken(&jwt.User{
			ID:      1,
			Email:   req.Email,
			Role:    "ADMIN",
			Expires: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if f.profileHook != nil && f.profileHook(w, r) {
			return
		}

		_ = json.NewEncoder(w).Encode(api.User{
			ID:    1,
			Name:  "Mission Control Admin",
			Email: "admin@nasa.com",
			Role:  "ADMIN",
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	f.manager = New(api.New(f.server.URL), f.store, zap.NewNop())
	return f
}

func (f *fixture) signToken(t *testing.T, expires time.Time) string {
	t.Helper()

	token, err := f.jwt.SignToken(&jwt.User{
		ID:      1,
		Email:   "admin@nasa.com",
		Role:    "ADMIN",
		Expires: expires.Unix(),
	})
	require.NoError(t, err)
	return token
}

func TestInitialStateIsLoading(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StatusLoading, f.manager.State().Status)
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)

	state, err := f.manager.Login(context.Background(), "admin@nasa.com", "admin123")
	require.NoError(t, err)

	assert.Equal(t, StatusAuthenticated, state.Status)
	require.NotNil(t, state.User)
	assert.Equal(t, "admin@nasa.com", state.User.Email)
	assert.NotEmpty(t, state.Token)

	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, state.Token, stored)
}

func TestLoginFailureStoresNothing(t *testing.T) {
	f := newFixture(t)

	state, err := f.manager.Login(context.Background(), "admin@nasa.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, StatusError, state.Status)
	assert.Contains(t, state.Err, "invalid credentials")
	assert.Nil(t, state.User)

	// no partial mutation on failure
	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLoginProfileFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	f.profileHook = func(w http.ResponseWriter, r *http.Request) bool {
		w.WriteHeader(http.StatusInternalServerError)
		return true
	}

	state, err := f.manager.Login(context.Background(), "admin@nasa.com", "admin123")
	require.Error(t, err)

	assert.Equal(t, StatusError, state.Status)

	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), "admin@nasa.com", "admin123")
	require.NoError(t, err)

	state := f.manager.Logout()
	assert.Equal(t, StatusUnauthenticated, state.Status)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)

	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// a fresh init after logout stays unauthenticated
	state = f.manager.Init(context.Background())
	assert.Equal(t, StatusUnauthenticated, state.Status)
}

func TestInitWithoutToken(t *testing.T) {
	f := newFixture(t)

	state := f.manager.Init(context.Background())
	assert.Equal(t, StatusUnauthenticated, state.Status)
}

func TestInitWithValidToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(f.signToken(t, time.Now().Add(time.Hour))))

	state := f.manager.Init(context.Background())
	assert.Equal(t, StatusAuthenticated, state.Status)
	require.NotNil(t, state.User)
	assert.Equal(t, "admin@nasa.com", state.User.Email)
}

func TestInitWithExpiredToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(f.signToken(t, time.Now().Add(-time.Minute))))

	state := f.manager.Init(context.Background())
	assert.Equal(t, StatusUnauthenticated, state.Status)

	// the dead token is gone
	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestInitProfileFetchFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(f.signToken(t, time.Now().Add(time.Hour))))
	f.profileHook = func(w http.ResponseWriter, r *http.Request) bool {
		w.WriteHeader(http.StatusInternalServerError)
		return true
	}

	state := f.manager.Init(context.Background())
	assert.Equal(t, StatusError, state.Status)
	assert.NotEmpty(t, state.Err)

	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStaleLoginDoesNotOverrideLogout(t *testing.T) {
	f := newFixture(t)

	profileStarted := make(chan struct{})
	release := make(chan struct{})
	f.profileHook = func(w http.ResponseWriter, r *http.Request) bool {
		close(profileStarted)
		<-release
		return false // continue with the normal profile response
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.manager.Login(context.Background(), "admin@nasa.com", "admin123")
	}()

	// log out while the login's profile fetch is still in flight
	<-profileStarted
	f.manager.Logout()
	close(release)
	<-done

	// the superseded login result must not win, and must leave no token behind
	assert.Equal(t, StatusUnauthenticated, f.manager.State().Status)
	stored, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
