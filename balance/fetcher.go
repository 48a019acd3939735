package balance

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BalanceClient is the single-wallet query the fetcher fans out over.
type BalanceClient interface {
	Fetch(ctx context.Context, address string) Result
}

// Fetcher runs one concurrent balance query per wallet and reassembles the
// outcomes in input order.
type Fetcher struct {
	client      BalanceClient
	maxInFlight int
	log         *zap.Logger
}

// NewFetcher wraps a client. maxInFlight bounds the number of queries in
// flight at once; zero or negative means unbounded.
func NewFetcher(client BalanceClient, maxInFlight int, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, maxInFlight: maxInFlight, log: log}
}

// FetchAll queries every address concurrently and returns one Result per
// address, in the same order as the input. Each query writes into its own
// pre-allocated slot, so completion order never shows in the output.
// Duplicate addresses are queried independently. An empty input returns an
// empty slice without touching the network. FetchAll itself never fails;
// per-wallet failures are carried in the results.
func (f *Fetcher) FetchAll(ctx context.Context, addresses []string) []Result {
	results := make([]Result, len(addresses))
	if len(addresses) == 0 {
		return results
	}

	f.log.Debug("fetching balances", zap.Int("wallets", len(addresses)))

	var g errgroup.Group
	if f.maxInFlight > 0 {
		g.SetLimit(f.maxInFlight)
	}

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			results[i] = f.client.Fetch(ctx, address)
			return nil
		})
	}

	// The goroutines report failures through their result slot, never as an
	// error, so Wait is purely a join.
	_ = g.Wait()

	for _, res := range results {
		if !res.OK() {
			f.log.Debug("balance fetch failed",
				zap.String("address", res.Address),
				zap.String("kind", string(res.Err.Kind)),
				zap.String("reason", res.Err.Reason))
		}
	}

	return results
}
