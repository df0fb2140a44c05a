package priceoracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Oracle represents a token price source
type Oracle interface {
	GetPrice(ctx context.Context) (*Quote, error)
}

// Quote is one price observation for the configured pair
type Quote struct {
	PairID    string    `json:"pairId"`
	PriceUsd  float64   `json:"priceUsd"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// HTTPOracle fetches quotes from an external price API
type HTTPOracle struct {
	BaseURL string
	PairID  string
	client  *http.Client
}

// MockOracle serves a fixed quote for development and tests
type MockOracle struct {
	PairID   string
	PriceUsd float64
}

// NewHTTPOracle creates a new HTTP-backed price oracle
func NewHTTPOracle(baseURL, pairID string) Oracle {
	return &HTTPOracle{
		BaseURL: baseURL,
		PairID:  pairID,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewMockOracle creates a mock oracle
func NewMockOracle(pairID string) Oracle {
	return &MockOracle{PairID: pairID, PriceUsd: 0.042}
}

// GetPrice fetches the current quote for the configured pair
func (o *HTTPOracle) GetPrice(ctx context.Context) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/pairs/%s", o.BaseURL, url.PathEscape(o.PairID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price oracle returned status %d", resp.StatusCode)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	if quote.PairID == "" {
		quote.PairID = o.PairID
	}
	quote.FetchedAt = time.Now()
	return &quote, nil
}

// GetPrice returns the fixed mock quote
func (o *MockOracle) GetPrice(ctx context.Context) (*Quote, error) {
	return &Quote{
		PairID:    o.PairID,
		PriceUsd:  o.PriceUsd,
		FetchedAt: time.Now(),
	}, nil
}
