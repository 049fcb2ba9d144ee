// Package identity is the local implementation of the identity provider
// contract: accounts in Postgres, bcrypt password hashes, HS256 JWT session
// tokens and a listener fan-out for auth-state changes.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/provider/identity"
	"github.com/kingstore/api/pkg/utils"
	"gorm.io/gorm"
)

// Provider implements identity.Provider against the identity_accounts table.
type Provider struct {
	db     *gorm.DB
	cfg    *config.Auth
	logger *slog.Logger

	mu        sync.RWMutex
	listeners []identity.StateListener
}

func New(db *gorm.DB, cfg *config.Auth, logger *slog.Logger) *Provider {
	return &Provider{db: db, cfg: cfg, logger: logger}
}

func (p *Provider) CreateAccount(ctx context.Context, email, password string) (*identity.Identity, error) {
	log := p.logger.With("context", "CreateAccount", "email", email)
	log.Debug("CreateAccount called")

	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsEmail(email) {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials, Err: errors.New("malformed email")}
	}
	if len(password) < p.cfg.MinPasswordLength {
		return nil, &identity.AuthError{Code: identity.CodeWeakPassword}
	}

	var count int64
	if err := p.db.WithContext(ctx).Model(&Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		log.Info("CreateAccount rejected, email in use")
		return nil, &identity.AuthError{Code: identity.CodeEmailAlreadyInUse}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &Account{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	if err := p.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	log.Info("CreateAccount successful", "accountID", account.ID)
	return &identity.Identity{ID: account.ID, Email: account.Email}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (string, error) {
	log := p.logger.With("context", "SignIn", "email", email)
	log.Debug("SignIn called")

	email = strings.ToLower(strings.TrimSpace(email))
	var account Account
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison anyway so lookup misses and password
			// mismatches take the same time.
			const dummyHash = "$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Info("SignIn failed, unknown email")
			return "", &identity.AuthError{Code: identity.CodeInvalidCredentials}
		}
		return "", fmt.Errorf("lookup account: %w", err)
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		log.Info("SignIn failed, wrong password")
		return "", &identity.AuthError{Code: identity.CodeInvalidCredentials}
	}

	token, err := p.generateToken(&account)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	p.notify(&identity.Identity{ID: account.ID, Email: account.Email})
	log.Info("SignIn successful", "accountID", account.ID)
	return token, nil
}

func (p *Provider) SignOut(_ context.Context, id string) {
	p.logger.Info("SignOut", "accountID", id)
	p.notify(nil)
}

func (p *Provider) ChangePassword(ctx context.Context, id, newPassword string) error {
	log := p.logger.With("context", "ChangePassword", "accountID", id)
	log.Debug("ChangePassword called")

	if len(newPassword) < p.cfg.MinPasswordLength {
		return &identity.AuthError{Code: identity.CodeWeakPassword}
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := p.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &identity.AuthError{Code: identity.CodeInvalidCredentials, Err: errors.New("unknown account")}
	}
	log.Info("ChangePassword successful")
	return nil
}

func (p *Provider) Verify(_ context.Context, tokenString string) (*identity.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.cfg.Jwt.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials, Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials}
	}
	id, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if id == "" {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials}
	}
	return &identity.Identity{ID: id, Email: email}, nil
}

func (p *Provider) OnAuthStateChange(listener identity.StateListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, listener)
}

func (p *Provider) generateToken(account *Account) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = account.ID
	claims["email"] = account.Email
	claims["exp"] = time.Now().Add(p.cfg.Jwt.Expiry).Unix()
	return token.SignedString([]byte(p.cfg.Jwt.Secret))
}

func (p *Provider) notify(id *identity.Identity) {
	p.mu.RLock()
	listeners := make([]identity.StateListener, len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.RUnlock()
	for _, l := range listeners {
		l(id)
	}
}
