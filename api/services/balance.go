// Package services layers a TTL cache over the core balance fetcher for the
// HTTP surface. The fetcher itself never caches; repeated CLI runs and
// duplicate addresses within one batch always hit the endpoint.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lumen/balance"
)

const sweepInterval = 5 * time.Minute

// Fetcher is the ordered batch query the service delegates cache misses to.
type Fetcher interface {
	FetchAll(ctx context.Context, addresses []string) []balance.Result
}

type cacheEntry struct {
	lamports uint64
	storedAt time.Time
}

// BalanceService answers batch balance queries, serving recently fetched
// amounts from an in-process cache. Successful fetches are mirrored to Redis
// with the same TTL for external consumers. Failures are never cached.
type BalanceService struct {
	fetcher Fetcher
	redis   *redis.Client
	ttl     time.Duration
	log     *zap.Logger

	cache     sync.Map
	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewBalanceService builds the service. redisClient may be nil, in which
// case only the in-process cache is used.
func NewBalanceService(fetcher Fetcher, redisClient *redis.Client, ttl time.Duration, log *zap.Logger) *BalanceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BalanceService{
		fetcher:   fetcher,
		redis:     redisClient,
		ttl:       ttl,
		log:       log,
		lastSweep: time.Now(),
	}
}

// Balances returns one result per wallet, in input order. Wallets with a
// fresh cached amount skip the network; the rest go through the fetcher in a
// single batch.
func (s *BalanceService) Balances(ctx context.Context, wallets []string) []balance.Result {
	s.sweepIfDue()

	results := make([]balance.Result, len(wallets))
	var missIdx []int
	var missAddrs []string

	for i, wallet := range wallets {
		if lamports, ok := s.cached(wallet); ok {
			results[i] = balance.Result{Address: wallet, Lamports: lamports}
			continue
		}
		missIdx = append(missIdx, i)
		missAddrs = append(missAddrs, wallet)
	}

	if len(missAddrs) > 0 {
		s.log.Debug("cache misses", zap.Int("count", len(missAddrs)))
		for j, res := range s.fetcher.FetchAll(ctx, missAddrs) {
			results[missIdx[j]] = res
			if res.OK() {
				s.store(res.Address, res.Lamports)
			}
		}
	}

	return results
}

func (s *BalanceService) cached(wallet string) (uint64, bool) {
	entryInterface, exists := s.cache.Load(wallet)
	if !exists {
		return 0, false
	}
	entry := entryInterface.(*cacheEntry)
	if time.Since(entry.storedAt) >= s.ttl {
		return 0, false
	}
	return entry.lamports, true
}

func (s *BalanceService) store(wallet string, lamports uint64) {
	s.cache.Store(wallet, &cacheEntry{lamports: lamports, storedAt: time.Now()})

	if s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.redis.Set(ctx, "balance:"+wallet, fmt.Sprintf("%d", lamports), s.ttl).Err(); err != nil {
		s.log.Warn("redis cache write failed", zap.String("wallet", wallet), zap.Error(err))
	}
}

// sweepIfDue drops expired entries so addresses queried once do not pin
// memory forever.
func (s *BalanceService) sweepIfDue() {
	s.sweepMu.Lock()
	if time.Since(s.lastSweep) < sweepInterval {
		s.sweepMu.Unlock()
		return
	}
	s.lastSweep = time.Now()
	s.sweepMu.Unlock()

	s.cache.Range(func(key, value interface{}) bool {
		if time.Since(value.(*cacheEntry).storedAt) >= s.ttl {
			s.cache.Delete(key)
		}
		return true
	})
}
