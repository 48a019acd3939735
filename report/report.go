// Package report renders the ordered outcome of a balance run for humans.
// It owns unit conversion: the fetcher speaks lamports, the report speaks SOL.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"lumen/balance"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// LamportsToSOL converts a lamport amount to SOL exactly. decimal keeps
// amounts above 2^53 lamports precise, where a float64 would not.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-9)
}

// Render writes the balance report to w, one block per wallet, in the order
// the results were produced.
func Render(w io.Writer, results []balance.Result) {
	header := color.New(color.Bold)
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)

	header.Fprintln(w, "=== Solana Wallet Balances ===")
	fmt.Fprintln(w)

	failed := 0
	for _, res := range results {
		fmt.Fprintf(w, "Wallet: %s\n", res.Address)
		if res.OK() {
			okColor.Fprintf(w, "Balance: %d lamports (%s SOL)\n",
				res.Lamports, LamportsToSOL(res.Lamports).StringFixed(9))
		} else {
			failed++
			errColor.Fprintf(w, "Error: %s\n", res.Err.Reason)
		}
		fmt.Fprintln(w, "---")
	}

	fmt.Fprintf(w, "%d wallets, %d failed\n", len(results), failed)
}
