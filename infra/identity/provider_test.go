package identity

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kingstore/api/pkg/config"
	identitycontract "github.com/kingstore/api/pkg/provider/identity"
)

func newTestProvider(t *testing.T) (*Provider, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	cfg := &config.Auth{
		MinPasswordLength: 6,
		Jwt:               &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
	}
	return New(db, cfg, slog.Default()), mock
}

func accountRow(t *testing.T, id, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(id, email, string(hash), time.Now(), time.Now())
}

func TestCreateAccount_MalformedEmail(t *testing.T) {
	p, _ := newTestProvider(t)
	_, err := p.CreateAccount(context.Background(), "not-an-email", "secret123")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeInvalidCredentials, ae.Code)
}

func TestCreateAccount_WeakPassword(t *testing.T) {
	p, _ := newTestProvider(t)
	_, err := p.CreateAccount(context.Background(), "alice@example.com", "short")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeWeakPassword, ae.Code)
}

func TestCreateAccount_EmailAlreadyInUse(t *testing.T) {
	p, mock := newTestProvider(t)
	mock.ExpectQuery(`SELECT count(.+) FROM "identity_accounts" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := p.CreateAccount(context.Background(), "Alice@Example.com", "secret123")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeEmailAlreadyInUse, ae.Code)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	p, mock := newTestProvider(t)
	mock.ExpectQuery(`SELECT (.+) FROM "identity_accounts" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := p.SignIn(context.Background(), "nobody@example.com", "secret123")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeInvalidCredentials, ae.Code)
}

func TestSignIn_WrongPassword(t *testing.T) {
	p, mock := newTestProvider(t)
	mock.ExpectQuery(`SELECT (.+) FROM "identity_accounts" WHERE email = (.+)`).
		WillReturnRows(accountRow(t, "uid-1", "alice@example.com", "secret123"))

	_, err := p.SignIn(context.Background(), "alice@example.com", "wrong")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeInvalidCredentials, ae.Code)
}

func TestSignIn_TokenVerifiesBack(t *testing.T) {
	p, mock := newTestProvider(t)
	mock.ExpectQuery(`SELECT (.+) FROM "identity_accounts" WHERE email = (.+)`).
		WillReturnRows(accountRow(t, "uid-1", "alice@example.com", "secret123"))

	var observed *identitycontract.Identity
	p.OnAuthStateChange(func(id *identitycontract.Identity) { observed = id })

	token, err := p.SignIn(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Listeners were notified with the signed-in identity.
	require.NotNil(t, observed)
	assert.Equal(t, "uid-1", observed.ID)

	id, err := p.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.ID)
	assert.Equal(t, "alice@example.com", id.Email)
}

func TestSignOut_NotifiesNil(t *testing.T) {
	p, _ := newTestProvider(t)
	called := false
	p.OnAuthStateChange(func(id *identitycontract.Identity) {
		called = true
		assert.Nil(t, id)
	})
	p.SignOut(context.Background(), "uid-1")
	assert.True(t, called)
}

func TestChangePassword_UnknownAccount(t *testing.T) {
	p, mock := newTestProvider(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "identity_accounts" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := p.ChangePassword(context.Background(), "missing", "newsecret")
	ae, ok := identitycontract.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, identitycontract.CodeInvalidCredentials, ae.Code)
}

func TestVerify_RejectsGarbageAndForeignTokens(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := p.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	foreign, _ := newTestProvider(t)
	foreign.cfg.Jwt.Secret = "another-secret"
	foreignToken, err := foreign.generateToken(&Account{ID: "uid-9", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), foreignToken)
	assert.Error(t, err)
}
