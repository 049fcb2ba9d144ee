package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingstore/api/internal/fixtures/memory"
	"github.com/kingstore/api/internal/fixtures/seed"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/eventbus"
	"github.com/kingstore/api/pkg/service/session"
)

type fixture struct {
	users    *memory.UserRepo
	offers   *memory.OfferRepo
	ledger   *memory.LedgerRepo
	provider *memory.IdentityFake
	bus      *eventbus.SimpleEventBus
	svc      *session.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepo(),
		offers:   memory.NewOfferRepo(),
		ledger:   memory.NewLedgerRepo(),
		provider: memory.NewIdentityFake(),
		bus:      eventbus.NewSimpleEventBus(),
	}
	cfg := &config.Auth{
		AdminEmail:        "admin@king.store",
		MinPasswordLength: 6,
		Jwt:               &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
	}
	f.svc = session.New(f.provider, f.users, f.offers, f.ledger, f.bus, cfg, slog.Default())
	return f
}

func (f *fixture) newSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := f.svc.NewSession(context.Background())
	require.NoError(t, err)
	return sess
}

// registerAndLogin creates an account plus profile and signs it in.
func (f *fixture) registerAndLogin(t *testing.T, username, email string) *session.Session {
	t.Helper()
	ctx := context.Background()
	sess := f.newSession(t)
	require.NoError(t, sess.Register(ctx, username, email, "secret123"))
	_, err := sess.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return sess
}

// setBalance writes a balance directly through the profile store and
// refreshes the session cache the way an admin top-up would.
func (f *fixture) setBalance(t *testing.T, sess *session.Session, balance int64) {
	t.Helper()
	profile := sess.Profile()
	require.NotNil(t, profile)
	require.NoError(t, sess.UpdateBalance(context.Background(), profile.ID, balance))
}

func (f *fixture) permissionErrors() *[]domain.PermissionErrorEvent {
	events := &[]domain.PermissionErrorEvent{}
	f.bus.Subscribe(domain.PermissionErrorEvent{}.Type(), func(_ context.Context, e domain.Event) {
		if pe, ok := e.(domain.PermissionErrorEvent); ok {
			*events = append(*events, pe)
		}
	})
	return events
}

func TestNewSession_SeedsCatalogOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.newSession(t)
	assert.Len(t, sess.Offers(), len(seed.Offers))

	// A second session must not duplicate the catalog.
	sess2 := f.newSession(t)
	assert.Len(t, sess2.Offers(), len(seed.Offers))

	count, err := f.offers.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed.Offers)), count)
}

func TestNewSession_StartsAtLogin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.newSession(t)
	assert.Equal(t, session.ViewLogin, sess.View())
	assert.Nil(t, sess.Profile())
	assert.False(t, sess.IsLoading())
}

func TestRegister_ThenLogin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.registerAndLogin(t, "alice", "alice@example.com")

	profile := sess.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "alice", profile.Username)
	assert.EqualValues(t, 0, profile.Balance)
	assert.False(t, profile.IsAdmin)
	assert.Equal(t, session.ViewUserDashboard, sess.View())
}

func TestRegister_AdminEmailGetsAdminRole(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.registerAndLogin(t, "boss", "admin@king.store")

	profile := sess.Profile()
	require.NotNil(t, profile)
	assert.True(t, profile.IsAdmin)
	assert.Equal(t, session.ViewAdminDashboard, sess.View())

	hasRole, err := f.users.HasAdminRole(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.True(t, hasRole)
}

func TestRegister_UsernameTakenBeforeProviderTouched(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.newSession(t)
	require.NoError(t, sess.Register(ctx, "alice", "alice@example.com", "secret123"))

	err := sess.Register(ctx, "alice", "second@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// No provider account was created for the rejected registration: the
	// same email still registers cleanly with a free username.
	require.NoError(t, sess.Register(ctx, "bob", "second@example.com", "secret123"))
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.newSession(t)
	err := sess.Register(context.Background(), "carol", "carol@example.com", "short")
	require.Error(t, err)
	assert.Equal(t, "كلمة المرور ضعيفة جدًا (6+ أحرف).", session.Localize(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.newSession(t)
	require.NoError(t, sess.Register(ctx, "alice", "alice@example.com", "secret123"))

	_, err := sess.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, session.ViewLogin, sess.View())
	assert.Nil(t, sess.Profile())
}

func TestLogin_UnknownEmailSameMessageAsWrongPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.newSession(t)
	require.NoError(t, sess.Register(ctx, "alice", "alice@example.com", "secret123"))

	_, errUnknown := sess.Login(ctx, "nobody@example.com", "secret123")
	_, errWrong := sess.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, session.Localize(errWrong), session.Localize(errUnknown))
}

func TestLogout_ResetsSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.registerAndLogin(t, "alice", "alice@example.com")

	sess.Logout(context.Background())
	assert.Equal(t, session.ViewLogin, sess.View())
	assert.Nil(t, sess.Profile())
	assert.Empty(t, sess.Offers())
	assert.False(t, sess.IsLoading())
}

func TestPurchase_HappyPath(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 5000)

	result, err := sess.PurchaseOffer(ctx, "pubg-1", "player-77")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, result.NewBalance)
	assert.Empty(t, result.FailedWrites)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "pubg-1", result.Receipt.GameOfferID)
	assert.Equal(t, "player-77", result.Receipt.PlayerID)
	assert.EqualValues(t, 3500, result.Receipt.Amount)

	// Cached profile reflects the debit without a reload.
	profile := sess.Profile()
	require.NotNil(t, profile)
	assert.EqualValues(t, 1500, profile.Balance)

	// Both ledger collections got exactly one record.
	assert.Equal(t, 1, f.ledger.GlobalWrites)
	assert.Equal(t, 1, f.ledger.ForUserWrites)

	stored, err := f.users.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1500, stored.Balance)
}

func TestPurchase_InsufficientBalanceWritesNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 1000)

	_, err := sess.PurchaseOffer(ctx, "pubg-1", "player-77")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assert.Equal(t, 0, f.ledger.GlobalWrites)
	assert.Equal(t, 0, f.ledger.ForUserWrites)
	assert.EqualValues(t, 1000, sess.Profile().Balance)
}

func TestPurchase_UnknownOffer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 100000)

	_, err := sess.PurchaseOffer(context.Background(), "no-such-offer", "player-77")
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestPurchase_NotAuthenticated(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.newSession(t)
	_, err := sess.PurchaseOffer(context.Background(), "pubg-1", "player-77")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestPurchase_LedgerFailureStillSucceeds(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 5000)
	events := f.permissionErrors()

	f.ledger.FailGlobal = errors.New("permission denied")
	result, err := sess.PurchaseOffer(ctx, "pubg-1", "player-77")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, result.NewBalance)
	assert.Equal(t, []string{"global_ledger"}, result.FailedWrites)
	require.NotNil(t, result.Receipt)

	// The debit and the per-user record still landed.
	assert.Equal(t, 1, f.ledger.ForUserWrites)
	assert.EqualValues(t, 1500, sess.Profile().Balance)

	// The rejected write was surfaced on the diagnostic bus.
	require.Len(t, *events, 1)
	assert.Equal(t, "create", (*events)[0].Operation)
	assert.Equal(t, "transactions", (*events)[0].Path)
}

func TestPurchase_BalanceWriteFailureReported(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 5000)
	events := f.permissionErrors()

	f.users.FailUpdate = errors.New("permission denied")
	result, err := sess.PurchaseOffer(ctx, "pubg-1", "player-77")
	require.NoError(t, err)
	assert.Contains(t, result.FailedWrites, "balance")

	// Ledger writes proceeded regardless; no rollback exists.
	assert.Equal(t, 1, f.ledger.GlobalWrites)
	assert.Equal(t, 1, f.ledger.ForUserWrites)
	require.Len(t, *events, 1)

	// The cached balance was left untouched by the failed write.
	assert.EqualValues(t, 5000, sess.Profile().Balance)
}

func TestTransactions_NewestFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")
	f.setBalance(t, sess, 10000)

	_, err := sess.PurchaseOffer(ctx, "pubg-1", "p1")
	require.NoError(t, err)
	_, err = sess.PurchaseOffer(ctx, "ff-1", "p1")
	require.NoError(t, err)

	txs, err := sess.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "ff-1", txs[0].GameOfferID)
	assert.Equal(t, "pubg-1", txs[1].GameOfferID)
}

func TestUpdateBalance_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "boss", "admin@king.store")

	err := sess.UpdateBalance(ctx, "whoever", -1)
	assert.ErrorIs(t, err, domain.ErrBalanceMustBeNonNegative)

	err = sess.UpdateBalance(ctx, "missing-user", 100)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateBalance_RefreshesOwnProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "boss", "admin@king.store")

	require.NoError(t, sess.UpdateBalance(ctx, sess.Profile().ID, 7500))
	assert.EqualValues(t, 7500, sess.Profile().Balance)
}

func TestDeleteUser_LeavesProviderAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.registerAndLogin(t, "boss", "admin@king.store")
	user := f.registerAndLogin(t, "alice", "alice@example.com")
	userID := user.Profile().ID

	require.NoError(t, admin.DeleteUser(ctx, userID))

	gone, err := f.users.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// The identity account still authenticates; the profile is what's gone.
	_, err = f.provider.SignIn(ctx, "alice@example.com", "secret123")
	assert.NoError(t, err)
}

func TestChangePassword_RequiresAuth(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.newSession(t)
	err := sess.ChangePassword(context.Background(), "newsecret")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestChangePassword_OldPasswordStopsWorking(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "alice", "alice@example.com")

	require.NoError(t, sess.ChangePassword(ctx, "newsecret"))

	_, err := f.provider.SignIn(ctx, "alice@example.com", "secret123")
	assert.Error(t, err)
	_, err = f.provider.SignIn(ctx, "alice@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestSetView_Navigation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	sess := f.registerAndLogin(t, "alice", "alice@example.com")

	sess.SetView(session.ViewSettings)
	assert.Equal(t, session.ViewSettings, sess.View())
}

func TestAuthChange_MissingProfileStaysLoading(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "ghost", "ghost@example.com")
	require.NoError(t, f.users.Delete(ctx, sess.Profile().ID))

	// A valid account whose profile record is gone: the session must
	// stay loading with no profile and no derived view.
	orphan := f.newSession(t)
	_, err := orphan.Login(ctx, "ghost@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, orphan.IsLoading())
	assert.Nil(t, orphan.Profile())
	assert.Equal(t, session.ViewLogin, orphan.View())
}

func TestDeleteUser_LeavesAdminRoleRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.registerAndLogin(t, "boss", "admin@king.store")
	id := admin.Profile().ID

	require.NoError(t, admin.DeleteUser(ctx, id))

	has, err := f.users.HasAdminRole(ctx, id)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPurchaseAndTopUpConcurrently(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	sess := f.registerAndLogin(t, "racer", "racer@example.com")
	f.setBalance(t, sess, 1_000_000)
	userID := sess.Profile().ID

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = sess.PurchaseOffer(ctx, "pubg-1", "player-1")
		}()
		go func() {
			defer wg.Done()
			_ = sess.UpdateBalance(ctx, userID, 1_000_000)
		}()
	}
	wg.Wait()

	// The cached profile must stay readable and track the store.
	profile := sess.Profile()
	require.NotNil(t, profile)
	stored, err := f.users.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.GreaterOrEqual(t, stored.Balance, int64(0))
}
