package cmd

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lumen/balance"
	"lumen/config"
	"lumen/report"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and report balances for the configured wallets",
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if len(cfg.Wallets) == 0 {
		return fmt.Errorf("no wallets configured in %s", cfgPath)
	}

	log.Debug("starting balance run",
		zap.String("endpoint", cfg.RPCURL),
		zap.Int("wallets", len(cfg.Wallets)),
		zap.Int("max_concurrent", cfg.MaxConcurrent))

	client := balance.NewClient(cfg.RPCURL, rpc.CommitmentType(cfg.Commitment), cfg.RequestTimeout())
	fetcher := balance.NewFetcher(client, cfg.MaxConcurrent, log)

	results := fetcher.FetchAll(cmd.Context(), cfg.Wallets)

	report.Render(os.Stdout, results)
	return nil
}
