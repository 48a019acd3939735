package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/api/services"
	"lumen/balance"
)

type stubFetcher struct {
	mu      sync.Mutex
	batches [][]string
	fail    map[string]bool
}

func (s *stubFetcher) FetchAll(ctx context.Context, addresses []string) []balance.Result {
	s.mu.Lock()
	s.batches = append(s.batches, append([]string(nil), addresses...))
	s.mu.Unlock()

	results := make([]balance.Result, len(addresses))
	for i, addr := range addresses {
		if s.fail[addr] {
			results[i] = balance.Result{
				Address: addr,
				Err:     &balance.Error{Kind: balance.KindProtocol, Reason: "rpc error"},
			}
			continue
		}
		results[i] = balance.Result{Address: addr, Lamports: 100}
	}
	return results
}

func (s *stubFetcher) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func TestBalances_CachesSuccesses(t *testing.T) {
	stub := &stubFetcher{}
	svc := services.NewBalanceService(stub, nil, time.Hour, nil)

	wallets := []string{"w1", "w2"}

	first := svc.Balances(context.Background(), wallets)
	require.Len(t, first, 2)
	assert.Equal(t, 1, stub.batchCount())

	second := svc.Balances(context.Background(), wallets)
	require.Len(t, second, 2)
	assert.Equal(t, 1, stub.batchCount(), "warm cache must not refetch")
	assert.Equal(t, first, second)
}

func TestBalances_DoesNotCacheFailures(t *testing.T) {
	stub := &stubFetcher{fail: map[string]bool{"bad": true}}
	svc := services.NewBalanceService(stub, nil, time.Hour, nil)

	svc.Balances(context.Background(), []string{"bad"})
	svc.Balances(context.Background(), []string{"bad"})

	assert.Equal(t, 2, stub.batchCount(), "failures must be retried on the next call")
}

func TestBalances_OrderWithMixedHitsAndMisses(t *testing.T) {
	stub := &stubFetcher{}
	svc := services.NewBalanceService(stub, nil, time.Hour, nil)

	// Warm w2 only, then ask for a batch around it.
	svc.Balances(context.Background(), []string{"w2"})

	results := svc.Balances(context.Background(), []string{"w1", "w2", "w3"})

	require.Len(t, results, 3)
	assert.Equal(t, "w1", results[0].Address)
	assert.Equal(t, "w2", results[1].Address)
	assert.Equal(t, "w3", results[2].Address)

	// Only the misses went to the fetcher, in their relative order.
	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.batches, 2)
	assert.Equal(t, []string{"w1", "w3"}, stub.batches[1])
}

func TestBalances_ExpiredEntriesRefetch(t *testing.T) {
	stub := &stubFetcher{}
	svc := services.NewBalanceService(stub, nil, 10*time.Millisecond, nil)

	svc.Balances(context.Background(), []string{"w1"})
	time.Sleep(20 * time.Millisecond)
	svc.Balances(context.Background(), []string{"w1"})

	assert.Equal(t, 2, stub.batchCount())
}
