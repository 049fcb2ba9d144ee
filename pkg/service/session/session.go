// Package session implements the storefront controller. A Service holds the
// shared stores; each connected client gets its own Session object owning
// the current view, the cached profile and the catalog snapshot. Sessions
// react to auth-state changes and catalog events, and expose every mutation
// the presentation layer may invoke.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/dto"
	"github.com/kingstore/api/pkg/eventbus"
	"github.com/kingstore/api/pkg/provider/identity"
	"github.com/kingstore/api/pkg/repository/offer"
	"github.com/kingstore/api/pkg/repository/transaction"
	"github.com/kingstore/api/pkg/repository/user"
)

// View is the screen the presentation layer should render.
type View string

const (
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewUserDashboard  View = "user_dashboard"
	ViewAdminDashboard View = "admin_dashboard"
	ViewSettings       View = "settings"
)

// Service owns the shared dependencies behind every session.
type Service struct {
	provider identity.Provider
	users    user.Repository
	offers   offer.Repository
	ledger   transaction.Repository
	bus      eventbus.EventBus
	cfg      *config.Auth
	logger   *slog.Logger
}

func New(
	provider identity.Provider,
	users user.Repository,
	offers offer.Repository,
	ledger transaction.Repository,
	bus eventbus.EventBus,
	cfg *config.Auth,
	logger *slog.Logger,
) *Service {
	return &Service{
		provider: provider,
		users:    users,
		offers:   offers,
		ledger:   ledger,
		bus:      bus,
		cfg:      cfg,
		logger:   logger,
	}
}

// Session is the per-connection controller state. Only Session methods
// mutate its fields; the mutex exists because catalog events arrive on the
// publisher's goroutine.
type Session struct {
	svc *Service

	mu         sync.RWMutex
	identityID string
	view       View
	profile    *dto.UserRead
	offers     []*dto.OfferRead
	loading    bool
}

// NewSession creates a session at the login view with a fresh catalog
// snapshot, seeding the catalog first if it has never been populated.
// Sessions created through a Manager additionally react to catalog and
// profile change events for as long as they stay attached.
func (s *Service) NewSession(ctx context.Context) (*Session, error) {
	sess := &Session{svc: s, view: ViewLogin}
	if err := s.EnsureCatalog(ctx); err != nil {
		return nil, fmt.Errorf("ensure catalog: %w", err)
	}
	if err := sess.refreshCatalog(ctx); err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	return sess, nil
}

// IdentityID returns the bound identity-provider account id, or "".
func (sess *Session) IdentityID() string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.identityID
}

// View returns the screen derived from the current auth state.
func (sess *Session) View() View {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.view
}

// SetView lets the presentation layer navigate between screens that need no
// derivation, e.g. opening settings from a dashboard.
func (sess *Session) SetView(v View) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.view = v
}

// Profile returns a copy of the cached authenticated profile, or nil.
func (sess *Session) Profile() *dto.UserRead {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	if sess.profile == nil {
		return nil
	}
	p := *sess.profile
	return &p
}

// IsLoading reports whether a profile load is in flight (or stuck, for the
// documented identity-without-profile case).
func (sess *Session) IsLoading() bool {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.loading
}

// Login delegates to the identity provider and, on success, binds the
// session to the identity: the profile is loaded and the view derived from
// its admin flag. The returned token authenticates subsequent requests.
func (sess *Session) Login(ctx context.Context, email, password string) (string, error) {
	log := sess.svc.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	token, err := sess.svc.provider.SignIn(ctx, email, password)
	if err != nil {
		log.Info("Login failed", "error", err)
		return "", err
	}
	id, err := sess.svc.provider.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	sess.HandleAuthChange(ctx, id)
	log.Info("Login successful", "userID", id.ID)
	return token, nil
}

// Register creates the identity-provider account and its paired profile.
// The username check runs first: a taken username fails the registration
// before the provider is touched. If the profile write fails after account
// creation succeeded, the orphaned account is left behind.
func (sess *Session) Register(ctx context.Context, username, email, password string) error {
	log := sess.svc.logger.With("context", "Register", "username", username, "email", email)
	log.Debug("Register called")

	existing, err := sess.svc.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		log.Info("Register rejected, username taken")
		return domain.ErrUsernameTaken
	}

	id, err := sess.svc.provider.CreateAccount(ctx, email, password)
	if err != nil {
		log.Info("Register failed at provider", "error", err)
		return err
	}

	isAdmin := strings.EqualFold(strings.TrimSpace(email), sess.svc.cfg.AdminEmail)
	profile, err := domain.NewUserProfile(id.ID, username, isAdmin)
	if err != nil {
		return err
	}
	create := &dto.UserCreate{
		ID:       profile.ID,
		Username: profile.Username,
		Balance:  profile.Balance,
		IsAdmin:  profile.IsAdmin,
	}
	if err := sess.svc.users.Create(ctx, create); err != nil {
		sess.svc.publishPermissionError(ctx, "create", "users/"+id.ID, create, err)
		return fmt.Errorf("create profile: %w", err)
	}
	if isAdmin {
		if err := sess.svc.users.CreateAdminRole(ctx, id.ID); err != nil {
			sess.svc.publishPermissionError(ctx, "create", "roles_admin/"+id.ID, nil, err)
			return fmt.Errorf("create admin role: %w", err)
		}
	}
	log.Info("Register successful", "userID", id.ID, "isAdmin", isAdmin)
	return nil
}

// Logout signs the identity out; the auth-state reaction clears the local
// state and resets the view to login.
func (sess *Session) Logout(ctx context.Context) {
	sess.mu.RLock()
	profile := sess.profile
	sess.mu.RUnlock()
	if profile != nil {
		sess.svc.provider.SignOut(ctx, profile.ID)
	}
	sess.HandleAuthChange(ctx, nil)
}

// ChangePassword delegates to the identity provider for the authenticated
// identity.
func (sess *Session) ChangePassword(ctx context.Context, newPassword string) error {
	sess.mu.RLock()
	profile := sess.profile
	sess.mu.RUnlock()
	if profile == nil {
		return domain.ErrNotAuthenticated
	}
	return sess.svc.provider.ChangePassword(ctx, profile.ID, newPassword)
}

// HandleAuthChange is the session's auth-state listener. A nil identity
// resets to the login view and drops the cached profile and catalog
// snapshot. An identity with no matching profile record is an inconsistent
// state: it is logged and the session stays loading, with no automatic
// recovery.
func (sess *Session) HandleAuthChange(ctx context.Context, id *identity.Identity) {
	if id == nil {
		sess.mu.Lock()
		sess.identityID = ""
		sess.profile = nil
		sess.offers = nil
		sess.view = ViewLogin
		sess.loading = false
		sess.mu.Unlock()
		return
	}

	sess.mu.Lock()
	sess.identityID = id.ID
	sess.loading = true
	sess.mu.Unlock()

	profile, err := sess.svc.users.Get(ctx, id.ID)
	if err != nil {
		sess.svc.publishPermissionError(ctx, "get", "users/"+id.ID, nil, err)
		sess.mu.Lock()
		sess.loading = false
		sess.mu.Unlock()
		return
	}
	if profile == nil {
		sess.svc.logger.Error("authenticated identity has no profile record", "userID", id.ID)
		return
	}

	view := ViewUserDashboard
	if profile.IsAdmin {
		view = ViewAdminDashboard
	}
	sess.mu.Lock()
	sess.profile = profile
	sess.view = view
	sess.loading = false
	sess.mu.Unlock()

	if err := sess.refreshCatalog(ctx); err != nil {
		sess.svc.logger.Error("catalog snapshot load failed", "error", err)
	}
}

// reloadProfileIfCurrent refreshes the cached profile after an external
// profile write, so a user sees an admin top-up without re-authenticating.
func (sess *Session) reloadProfileIfCurrent(ctx context.Context, userID string) {
	sess.mu.RLock()
	current := sess.profile
	sess.mu.RUnlock()
	if current == nil || current.ID != userID {
		return
	}
	profile, err := sess.svc.users.Get(ctx, userID)
	if err != nil || profile == nil {
		return
	}
	sess.mu.Lock()
	sess.profile = profile
	sess.mu.Unlock()
}

func (s *Service) publishPermissionError(ctx context.Context, operation, path string, payload any, err error) {
	s.logger.Error("store write rejected", "operation", operation, "path", path, "error", err)
	_ = s.bus.Publish(ctx, domain.PermissionErrorEvent{
		Operation:  operation,
		Path:       path,
		Payload:    payload,
		Err:        err,
		OccurredAt: time.Now().UTC(),
	})
}
