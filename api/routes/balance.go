package routes

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lumen/api/types"
	"lumen/balance"
	"lumen/report"
)

// BalanceProvider answers an ordered batch balance query.
type BalanceProvider interface {
	Balances(ctx context.Context, wallets []string) []balance.Result
}

// Handler holds the dependencies of the balance endpoint.
type Handler struct {
	svc        BalanceProvider
	maxWallets int
}

func NewHandler(svc BalanceProvider, maxWallets int) *Handler {
	return &Handler{svc: svc, maxWallets: maxWallets}
}

// GetBalances handles POST /api/balances. The response entries are in the
// same order as the submitted wallet list.
func (h *Handler) GetBalances(ctx *fiber.Ctx) error {
	var request types.BalanceRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if len(request.Wallets) == 0 {
		return badRequest(ctx, "No wallets provided")
	}
	if len(request.Wallets) > h.maxWallets {
		return badRequest(ctx, "Too many wallets")
	}

	wallets := make([]string, 0, len(request.Wallets))
	for _, wallet := range request.Wallets {
		if wallet = strings.TrimSpace(wallet); wallet != "" {
			wallets = append(wallets, wallet)
		}
	}
	if len(wallets) == 0 {
		return badRequest(ctx, "No valid wallets provided")
	}

	results := h.svc.Balances(ctx.Context(), wallets)

	data := make([]types.WalletBalance, len(results))
	for i, res := range results {
		data[i] = types.WalletBalance{Address: res.Address}
		if res.OK() {
			data[i].Lamports = res.Lamports
			data[i].SOL = report.LamportsToSOL(res.Lamports).StringFixed(9)
		} else {
			data[i].Error = res.Err.Reason
		}
	}

	return ctx.JSON(types.BalanceResponse{
		Success: true,
		Data:    data,
	})
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Success: false,
		Message: msg,
	})
}
