package store_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingstore/api/internal/fixtures/seed"
	"github.com/kingstore/api/webapi/testutils"
)

// topUp drives the admin balance endpoint so the whole flow stays on the
// HTTP surface.
func topUp(t *testing.T, env *testutils.Env, userID string, balance int64) {
	t.Helper()
	env.Register(t, "boss", "admin@king.store", "secret123")
	adminToken := env.Login(t, "admin@king.store", "secret123")
	resp, _ := env.DoJSON(t, http.MethodPut, "/admin/users/"+userID+"/balance", adminToken, fiber.Map{
		"balance": balance,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func userID(t *testing.T, env *testutils.Env, token string) string {
	t.Helper()
	resp, body := env.DoJSON(t, http.MethodGet, "/session", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	profile := data["profile"].(map[string]any)
	return profile["id"].(string)
}

func TestGetSession(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")

	resp, body := env.DoJSON(t, http.MethodGet, "/session", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "user_dashboard", data["view"])
	assert.Equal(t, false, data["loading"])
	profile := data["profile"].(map[string]any)
	assert.Equal(t, "alice", profile["username"])
	assert.EqualValues(t, 0, profile["balance"])
}

func TestSetView(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")

	resp, body := env.DoJSON(t, http.MethodPut, "/session/view", token, fiber.Map{
		"view": "settings",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "settings", data["view"])

	resp, _ = env.DoJSON(t, http.MethodPut, "/session/view", token, fiber.Map{
		"view": "not-a-view",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListOffers_SeededCatalog(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")

	resp, body := env.DoJSON(t, http.MethodGet, "/offers", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	offers := body["data"].([]any)
	assert.Len(t, offers, len(seed.Offers))
}

func TestPurchase_HappyPath(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")
	topUp(t, env, userID(t, env, token), 5000)

	resp, body := env.DoJSON(t, http.MethodPost, "/purchase", token, fiber.Map{
		"gameOfferId": "pubg-1",
		"playerId":    "player-77",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "تمت عملية الشراء بنجاح! سيقوم الأدمن بشحن حسابك قريباً.", body["message"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1500, data["NewBalance"])

	// The purchase shows up in the caller's history.
	resp, body = env.DoJSON(t, http.MethodGet, "/transactions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	txs := body["data"].([]any)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	assert.Equal(t, "pubg-1", tx["gameOfferId"])
	assert.Equal(t, "player-77", tx["playerId"])
}

func TestPurchase_InsufficientBalance(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")

	resp, body := env.DoJSON(t, http.MethodPost, "/purchase", token, fiber.Map{
		"gameOfferId": "pubg-1",
		"playerId":    "player-77",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "رصيدك غير كافٍ لإتمام عملية الشراء.", body["title"])
	assert.Equal(t, 0, env.Ledger.GlobalWrites)
}

func TestPurchase_UnknownOffer(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)
	env.Register(t, "alice", "alice@example.com", "secret123")
	token := env.Login(t, "alice@example.com", "secret123")
	topUp(t, env, userID(t, env, token), 100000)

	resp, _ := env.DoJSON(t, http.MethodPost, "/purchase", token, fiber.Map{
		"gameOfferId": "no-such-offer",
		"playerId":    "player-77",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStoreRoutes_RequireToken(t *testing.T) {
	t.Parallel()
	env := testutils.New(t)

	for _, target := range []string{"/session", "/offers", "/transactions"} {
		resp, _ := env.DoJSON(t, http.MethodGet, target, "", nil)
		assert.NotEqual(t, fiber.StatusOK, resp.StatusCode, target)
	}
}
