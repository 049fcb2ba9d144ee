// Package memory provides in-memory store and provider implementations for
// tests: deterministic, no database, with per-call failure injection so
// rejected-write paths can be exercised.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kingstore/api/pkg/dto"
	"github.com/kingstore/api/pkg/provider/identity"
)

// UserRepo is an in-memory Profile Store. Setting FailCreate, FailUpdate or
// FailGet makes the matching call return that error.
type UserRepo struct {
	mu         sync.Mutex
	users      map[string]dto.UserRead
	admins     map[string]bool
	FailCreate error
	FailUpdate error
	FailGet    error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:  make(map[string]dto.UserRead),
		admins: make(map[string]bool),
	}
}

func (r *UserRepo) Create(_ context.Context, create *dto.UserCreate) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[create.ID] = dto.UserRead{
		ID:       create.ID,
		Username: create.Username,
		Balance:  create.Balance,
		IsAdmin:  create.IsAdmin,
	}
	return nil
}

func (r *UserRepo) Get(_ context.Context, id string) (*dto.UserRead, error) {
	if r.FailGet != nil {
		return nil, r.FailGet
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*dto.UserRead, 0, len(r.users))
	for _, u := range r.users {
		found := u
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, id string, update *dto.UserUpdate) error {
	if r.FailUpdate != nil {
		return r.FailUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Balance != nil {
		u.Balance = *update.Balance
	}
	r.users[id] = u
	return nil
}

// Delete removes only the profile row. Any roles_admin record stays
// behind, like the production store.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *UserRepo) CreateAdminRole(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[userID] = true
	return nil
}

func (r *UserRepo) HasAdminRole(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admins[userID], nil
}

// OfferRepo is an in-memory Catalog Store.
type OfferRepo struct {
	mu     sync.Mutex
	offers map[string]dto.OfferRead
}

func NewOfferRepo() *OfferRepo {
	return &OfferRepo{offers: make(map[string]dto.OfferRead)}
}

func (r *OfferRepo) Create(_ context.Context, create *dto.OfferCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[create.ID] = dto.OfferRead{
		ID:          create.ID,
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		ImageURL:    create.ImageURL,
	}
	return nil
}

func (r *OfferRepo) Get(_ context.Context, id string) (*dto.OfferRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OfferRepo) List(_ context.Context) ([]*dto.OfferRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*dto.OfferRead, 0, len(r.offers))
	for _, o := range r.offers {
		found := o
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Price < out[j].Price
	})
	return out, nil
}

func (r *OfferRepo) Update(_ context.Context, id string, update *dto.OfferUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil
	}
	if update.Price != nil {
		o.Price = *update.Price
	}
	if update.ImageURL != nil {
		o.ImageURL = *update.ImageURL
	}
	r.offers[id] = o
	return nil
}

func (r *OfferRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.offers, id)
	return nil
}

func (r *OfferRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.offers)), nil
}

// LedgerRepo is an in-memory Ledger Store with independent global and
// per-user collections, mirroring the production shape.
type LedgerRepo struct {
	mu            sync.Mutex
	global        []*dto.TransactionRead
	perUser       map[string][]*dto.TransactionRead
	FailGlobal    error
	FailForUser   error
	GlobalWrites  int
	ForUserWrites int
}

func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{perUser: make(map[string][]*dto.TransactionRead)}
}

func record(create *dto.TransactionCreate) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                   uuid.NewString(),
		UserID:               create.UserID,
		Username:             create.Username,
		GameOfferID:          create.GameOfferID,
		GameOfferName:        create.GameOfferName,
		GameOfferDescription: create.GameOfferDescription,
		Amount:               create.Amount,
		PlayerID:             create.PlayerID,
		TransactionDate:      time.Now().UTC(),
	}
}

func (r *LedgerRepo) CreateGlobal(_ context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error) {
	if r.FailGlobal != nil {
		return nil, r.FailGlobal
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := record(create)
	r.global = append([]*dto.TransactionRead{tx}, r.global...)
	r.GlobalWrites++
	return tx, nil
}

func (r *LedgerRepo) CreateForUser(_ context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error) {
	if r.FailForUser != nil {
		return nil, r.FailForUser
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := record(create)
	r.perUser[create.UserID] = append([]*dto.TransactionRead{tx}, r.perUser[create.UserID]...)
	r.ForUserWrites++
	return tx, nil
}

func (r *LedgerRepo) ListGlobal(_ context.Context) ([]*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*dto.TransactionRead, len(r.global))
	copy(out, r.global)
	return out, nil
}

func (r *LedgerRepo) ListForUser(_ context.Context, userID string) ([]*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txs := r.perUser[userID]
	out := make([]*dto.TransactionRead, len(txs))
	copy(out, txs)
	return out, nil
}

type account struct {
	id       string
	email    string
	password string
}

// IdentityFake implements the identity provider contract over a map. It
// signs real HS256 tokens so fake-backed requests pass the JWT middleware,
// but tracks issued tokens itself, so SignOut revokes them.
type IdentityFake struct {
	// Secret signs issued tokens; it must match the JWT middleware config
	// when the fake backs an HTTP test.
	Secret string

	mu        sync.Mutex
	accounts  map[string]account
	tokens    map[string]string
	listeners []identity.StateListener
	nextID    int
}

func NewIdentityFake() *IdentityFake {
	return &IdentityFake{
		Secret:   "test-secret",
		accounts: make(map[string]account),
		tokens:   make(map[string]string),
	}
}

func (f *IdentityFake) CreateAccount(_ context.Context, email, password string) (*identity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[email]; ok {
		return nil, &identity.AuthError{Code: identity.CodeEmailAlreadyInUse}
	}
	if len(password) < 6 {
		return nil, &identity.AuthError{Code: identity.CodeWeakPassword}
	}
	f.nextID++
	acct := account{id: "uid-" + strconv.Itoa(f.nextID), email: email, password: password}
	f.accounts[email] = acct
	return &identity.Identity{ID: acct.id, Email: acct.email}, nil
}

func (f *IdentityFake) SignIn(_ context.Context, email, password string) (string, error) {
	f.mu.Lock()
	acct, ok := f.accounts[email]
	if !ok || acct.password != password {
		f.mu.Unlock()
		return "", &identity.AuthError{Code: identity.CodeInvalidCredentials}
	}
	jwtToken := jwt.New(jwt.SigningMethodHS256)
	claims := jwtToken.Claims.(jwt.MapClaims)
	claims["user_id"] = acct.id
	claims["email"] = acct.email
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	token, err := jwtToken.SignedString([]byte(f.Secret))
	if err != nil {
		f.mu.Unlock()
		return "", err
	}
	f.tokens[token] = acct.id
	listeners := append([]identity.StateListener(nil), f.listeners...)
	f.mu.Unlock()

	for _, l := range listeners {
		l(&identity.Identity{ID: acct.id, Email: acct.email})
	}
	return token, nil
}

func (f *IdentityFake) SignOut(_ context.Context, id string) {
	f.mu.Lock()
	for token, owner := range f.tokens {
		if owner == id {
			delete(f.tokens, token)
		}
	}
	listeners := append([]identity.StateListener(nil), f.listeners...)
	f.mu.Unlock()

	for _, l := range listeners {
		l(nil)
	}
}

func (f *IdentityFake) ChangePassword(_ context.Context, id, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(newPassword) < 6 {
		return &identity.AuthError{Code: identity.CodeWeakPassword}
	}
	for email, acct := range f.accounts {
		if acct.id == id {
			acct.password = newPassword
			f.accounts[email] = acct
			return nil
		}
	}
	return &identity.AuthError{Code: identity.CodeInvalidCredentials}
}

func (f *IdentityFake) Verify(_ context.Context, token string) (*identity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	if !ok {
		return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials}
	}
	for _, acct := range f.accounts {
		if acct.id == id {
			return &identity.Identity{ID: acct.id, Email: acct.email}, nil
		}
	}
	return nil, &identity.AuthError{Code: identity.CodeInvalidCredentials}
}

func (f *IdentityFake) OnAuthStateChange(listener identity.StateListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, listener)
}
