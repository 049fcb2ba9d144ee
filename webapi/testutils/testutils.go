// Package testutils spins up a full Fiber app over in-memory stores for
// handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	infracache "github.com/kingstore/api/infra/cache"
	"github.com/kingstore/api/internal/fixtures/memory"
	"github.com/kingstore/api/pkg/app"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/eventbus"
	"github.com/kingstore/api/webapi"
)

// Env bundles the running test app with its backing fakes so tests can
// inspect and prime state directly.
type Env struct {
	App    *fiber.App
	Deps   *app.Deps
	Users  *memory.UserRepo
	Offers *memory.OfferRepo
	Ledger *memory.LedgerRepo
}

// NewConfig returns a config that does not read the environment.
func NewConfig() *config.App {
	return &config.App{
		Env: "test",
		Auth: &config.Auth{
			AdminEmail:        "admin@king.store",
			MinPasswordLength: 6,
			Jwt:               &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		},
		Redis:     &config.Redis{KeyPrefix: "test:", ListingTTL: time.Minute},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Server:    &config.Server{Host: "localhost", Port: 3000},
	}
}

// New builds a full app over in-memory stores.
func New(t *testing.T) *Env {
	t.Helper()
	users := memory.NewUserRepo()
	offers := memory.NewOfferRepo()
	ledger := memory.NewLedgerRepo()
	deps := &app.Deps{
		IdentityProvider: memory.NewIdentityFake(),
		Users:            users,
		Offers:           offers,
		Ledger:           ledger,
		EventBus:         eventbus.NewSimpleEventBus(),
		Cache:            infracache.NewMemoryCache(),
		Logger:           slog.Default(),
	}
	a := app.New(deps, NewConfig())
	return &Env{
		App:    webapi.SetupApp(a),
		Deps:   deps,
		Users:  users,
		Offers: offers,
		Ledger: ledger,
	}
}

// DoJSON performs a request with an optional JSON body and bearer token and
// decodes the response body into a generic envelope.
func (e *Env) DoJSON(t *testing.T, method, target, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// Register creates an account through the API.
func (e *Env) Register(t *testing.T, username, email, password string) {
	t.Helper()
	resp, _ := e.DoJSON(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

// Login authenticates through the API and returns the bearer token.
func (e *Env) Login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := e.DoJSON(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	return token
}
