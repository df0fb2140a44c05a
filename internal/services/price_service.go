package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/pkg/priceoracle"
	"golang.org/x/exp/slog"
)

// PriceService is a read-through cache over the price oracle
type PriceService struct {
	oracle priceoracle.Oracle
	cache  *redis.Client
	cfg    *config.Config
}

// NewPriceService creates a new PriceService
func NewPriceService(oracle priceoracle.Oracle, cache *redis.Client, cfg *config.Config) *PriceService {
	return &PriceService{
		oracle: oracle,
		cache:  cache,
		cfg:    cfg,
	}
}

// Get returns the current token quote, served from cache when fresh
func (s *PriceService) Get(ctx context.Context) (*priceoracle.Quote, error) {
	key := fmt.Sprintf(KeyTokenPrice, s.cfg.Price.PairID)

	if data, err := s.cache.Get(ctx, key).Result(); err == nil {
		var cached priceoracle.Quote
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("price cache read failed", "error", err)
	}

	quote, err := s.oracle.GetPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price: %w", err)
	}

	if data, err := json.Marshal(quote); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cfg.Price.CacheTTL).Err(); err != nil {
			slog.Warn("price cache write failed", "error", err)
		}
	}
	return quote, nil
}
