package types

// BalanceRequest is the body of POST /api/balances.
type BalanceRequest struct {
	Wallets []string `json:"wallets" validate:"required"`
}

// WalletBalance is one per-wallet entry of the response. Entries come back
// in the order the wallets were submitted. Lamports carries the raw amount;
// SOL is the human-readable conversion.
type WalletBalance struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	SOL      string `json:"sol,omitempty"`
	Error    string `json:"error,omitempty"`
}
