package types

// BalanceResponse is the envelope of a successful balance call. Data holds
// one entry per submitted wallet, in submission order.
type BalanceResponse struct {
	Success bool            `json:"success"`
	Data    []WalletBalance `json:"data"`
	Message string          `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
