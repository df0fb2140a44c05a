package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/pkg/chainrpc"
	"golang.org/x/exp/slog"
)

// BalanceService is a read-through cache over the chain RPC client. A cache
// miss fetches from the node and stores the result for the configured TTL;
// an upstream failure propagates to the caller.
type BalanceService struct {
	rpc   *chainrpc.Client
	cache *redis.Client
	cfg   *config.Config
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(rpc *chainrpc.Client, cache *redis.Client, cfg *config.Config) *BalanceService {
	return &BalanceService{
		rpc:   rpc,
		cache: cache,
		cfg:   cfg,
	}
}

// Get returns the token balance for an address, served from cache when fresh
func (s *BalanceService) Get(ctx context.Context, address string) (*chainrpc.BalanceResponse, error) {
	key := fmt.Sprintf(KeyTokenBalance, address)

	if data, err := s.cache.Get(ctx, key).Result(); err == nil {
		var cached chainrpc.BalanceResponse
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return &cached, nil
		}
		// Unreadable cache entries fall through to a fresh fetch.
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("balance cache read failed", "error", err)
	}

	balance, err := s.rpc.GetTokenBalance(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	if data, err := json.Marshal(balance); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cfg.Chain.CacheTTL).Err(); err != nil {
			slog.Warn("balance cache write failed", "error", err)
		}
	}
	return balance, nil
}
