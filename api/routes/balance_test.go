package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/api/routes"
	"lumen/api/types"
	"lumen/balance"
)

type stubProvider struct {
	fail map[string]bool
}

func (s *stubProvider) Balances(ctx context.Context, wallets []string) []balance.Result {
	results := make([]balance.Result, len(wallets))
	for i, w := range wallets {
		if s.fail[w] {
			results[i] = balance.Result{
				Address: w,
				Err:     &balance.Error{Kind: balance.KindTransport, Reason: "unreachable"},
			}
			continue
		}
		results[i] = balance.Result{Address: w, Lamports: 1_500_000_000}
	}
	return results
}

func newApp(svc routes.BalanceProvider, maxWallets int) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h := routes.NewHandler(svc, maxWallets)
	app.Post("/api/balances", h.GetBalances)
	return app
}

func postBalances(t *testing.T, app *fiber.App, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/api/balances", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func TestGetBalances_OrderedResponse(t *testing.T) {
	app := newApp(&stubProvider{fail: map[string]bool{"w2": true}}, 100)

	body, _ := json.Marshal(types.BalanceRequest{Wallets: []string{"w1", "w2", "w3"}})
	resp := postBalances(t, app, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out types.BalanceResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))

	require.True(t, out.Success)
	require.Len(t, out.Data, 3)

	assert.Equal(t, "w1", out.Data[0].Address)
	assert.Equal(t, uint64(1_500_000_000), out.Data[0].Lamports)
	assert.Equal(t, "1.500000000", out.Data[0].SOL)
	assert.Empty(t, out.Data[0].Error)

	assert.Equal(t, "w2", out.Data[1].Address)
	assert.Equal(t, "unreachable", out.Data[1].Error)
	assert.Zero(t, out.Data[1].Lamports)

	assert.Equal(t, "w3", out.Data[2].Address)
}

func TestGetBalances_InvalidBody(t *testing.T) {
	app := newApp(&stubProvider{}, 100)

	resp := postBalances(t, app, []byte("{not json"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetBalances_NoWallets(t *testing.T) {
	app := newApp(&stubProvider{}, 100)

	body, _ := json.Marshal(types.BalanceRequest{Wallets: nil})
	resp := postBalances(t, app, body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetBalances_BlankWalletsOnly(t *testing.T) {
	app := newApp(&stubProvider{}, 100)

	body, _ := json.Marshal(types.BalanceRequest{Wallets: []string{"", "   "}})
	resp := postBalances(t, app, body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetBalances_TooManyWallets(t *testing.T) {
	app := newApp(&stubProvider{}, 2)

	body, _ := json.Marshal(types.BalanceRequest{Wallets: []string{"w1", "w2", "w3"}})
	resp := postBalances(t, app, body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
