package session

import (
	"context"
	"sync"

	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/provider/identity"
)

// Manager tracks one live Session per authenticated identity. It owns the
// single pair of event subscriptions and fans catalog and profile changes
// out to every attached session, so per-request sessions never leak
// subscriptions on the bus.
type Manager struct {
	svc *Service

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(svc *Service) *Manager {
	m := &Manager{svc: svc, sessions: make(map[string]*Session)}
	svc.bus.Subscribe(domain.CatalogChangedEvent{}.Type(), func(ctx context.Context, _ domain.Event) {
		for _, sess := range m.attached() {
			if err := sess.refreshCatalog(ctx); err != nil {
				svc.logger.Error("catalog snapshot refresh failed", "error", err)
			}
		}
	})
	svc.bus.Subscribe(domain.ProfileChangedEvent{}.Type(), func(ctx context.Context, e domain.Event) {
		changed, ok := e.(domain.ProfileChangedEvent)
		if !ok {
			return
		}
		for _, sess := range m.attached() {
			sess.reloadProfileIfCurrent(ctx, changed.UserID)
		}
	})
	return m
}

func (m *Manager) attached() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess)
	}
	return out
}

// Login authenticates against the identity provider and attaches the
// resulting session under its identity id, replacing any previous session
// for the same identity.
func (m *Manager) Login(ctx context.Context, email, password string) (string, *Session, error) {
	sess, err := m.svc.NewSession(ctx)
	if err != nil {
		return "", nil, err
	}
	token, err := sess.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if id := sess.IdentityID(); id != "" {
		m.mu.Lock()
		m.sessions[id] = sess
		m.mu.Unlock()
	}
	return token, sess, nil
}

// Register runs the registration flow on a throwaway session; the caller
// logs in afterwards.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	sess, err := m.svc.NewSession(ctx)
	if err != nil {
		return err
	}
	return sess.Register(ctx, username, email, password)
}

// Resolve returns the live session for an identity, rebuilding and binding
// one when the server restarted under a still-valid token.
func (m *Manager) Resolve(ctx context.Context, identityID string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[identityID]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	sess, err := m.svc.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.HandleAuthChange(ctx, &identity.Identity{ID: identityID})
	m.mu.Lock()
	m.sessions[identityID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Logout signs the identity out and detaches its session.
func (m *Manager) Logout(ctx context.Context, identityID string) {
	m.mu.Lock()
	sess, ok := m.sessions[identityID]
	delete(m.sessions, identityID)
	m.mu.Unlock()
	if ok {
		sess.Logout(ctx)
	}
}
