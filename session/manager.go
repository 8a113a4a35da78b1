// Package session owns the authenticated (token, user) pair: restoring it
// from local storage at startup, replacing it on sign-in, tearing it down
// on sign-out, and keeping the API client's bearer credential in step with
// it the whole time.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"trimly/models"
	"trimly/storage"
)

// Authenticator is the slice of the API client the manager needs: the
// sign-in endpoint and control over the bearer credential.
type Authenticator interface {
	CreateSession(ctx context.Context, email, password string) (*models.Session, error)
	SetToken(token string)
	ClearToken()
}

// Store is the durable local key-value storage holding the persisted
// session under storage.TokenKey and storage.UserKey.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	MultiSet(ctx context.Context, pairs map[string]string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// Manager is the single source of truth for who is signed in. All state
// transitions push the token into the Authenticator before they return,
// so no API call can observe a session whose credential is not installed.
type Manager struct {
	api    Authenticator
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	session models.Session
	active  bool
	loading bool
}

// New creates a Manager. The loading flag starts true and stays true
// until Restore has run, so the UI can tell "still determining session"
// from "confirmed logged out".
func New(api Authenticator, store Store, logger *zap.Logger) *Manager {
	return &Manager{
		api:     api,
		store:   store,
		logger:  logger,
		loading: true,
	}
}

// Restore loads the persisted session, if any. A session is restored only
// when both keys are present and the user record decodes; any storage or
// decode failure degrades to the logged-out state. The loading flag is
// cleared on every path.
func (m *Manager) Restore(ctx context.Context) {
	defer m.setLoading(false)

	token, found, err := m.store.Get(ctx, storage.TokenKey)
	if err != nil {
		m.logger.Warn("Failed to read persisted token; treating as logged out", zap.Error(err))
		return
	}
	if !found {
		return
	}

	rawUser, found, err := m.store.Get(ctx, storage.UserKey)
	if err != nil {
		m.logger.Warn("Failed to read persisted user; treating as logged out", zap.Error(err))
		return
	}
	if !found {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		m.logger.Warn("Persisted user record is corrupt; treating as logged out", zap.Error(err))
		return
	}

	m.api.SetToken(token)
	m.mu.Lock()
	m.session = models.Session{Token: token, User: user}
	m.active = true
	m.mu.Unlock()

	m.logger.Debug("Session restored", zap.String("user_id", user.ID))
}

// SignIn authenticates against the API, persists the session atomically,
// installs the bearer token, and replaces the in-memory state. Network
// and credential errors propagate untouched for the caller to surface.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	session, err := m.api.CreateSession(ctx, email, password)
	if err != nil {
		return err
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encoding user record: %w", err)
	}
	if err := m.store.MultiSet(ctx, map[string]string{
		storage.TokenKey: session.Token,
		storage.UserKey:  string(rawUser),
	}); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	m.api.SetToken(session.Token)
	m.mu.Lock()
	m.session = *session
	m.active = true
	m.mu.Unlock()

	m.logger.Info("Signed in", zap.String("user_id", session.User.ID))
	return nil
}

// SignOut removes the persisted session and clears the in-memory state
// and bearer token. Memory is cleared even when storage removal fails;
// the error comes back only so the caller can log it.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.store.MultiRemove(ctx, storage.TokenKey, storage.UserKey)
	if err != nil {
		m.logger.Warn("Failed to remove persisted session; clearing memory anyway", zap.Error(err))
	}

	m.api.ClearToken()
	m.mu.Lock()
	m.session = models.Session{}
	m.active = false
	m.mu.Unlock()

	m.logger.Info("Signed out")
	return err
}

// UpdateUser replaces the user half of the session after a profile edit.
// The token is untouched. The update is in-memory only: the persisted
// record keeps its old value until the next sign-in.
func (m *Manager) UpdateUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	m.session.User = user
}

// CurrentUser returns the signed-in user, if any.
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.User, m.active
}

// CurrentToken returns the active bearer token, or "" when logged out.
func (m *Manager) CurrentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token
}

// Loading reports whether session restoration has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
