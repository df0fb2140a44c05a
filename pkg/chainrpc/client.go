package chainrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches on-chain token balances over the node's HTTP RPC. With
// MockRPC set it serves deterministic fake balances instead, so local
// development needs no node.
type Client struct {
	RPCURL        string
	TokenContract string
	MockRPC       bool
	client        *http.Client
}

// BalanceResponse is the RPC payload for a token balance query
type BalanceResponse struct {
	Address   string    `json:"address"`
	Balance   float64   `json:"balance"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// NewClient creates a new chain RPC client
func NewClient(rpcURL, tokenContract string, mockRPC bool) *Client {
	return &Client{
		RPCURL:        rpcURL,
		TokenContract: tokenContract,
		MockRPC:       mockRPC,
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// GetTokenBalance retrieves the token balance held by an address
func (c *Client) GetTokenBalance(ctx context.Context, address string) (*BalanceResponse, error) {
	if c.MockRPC {
		return c.mockGetTokenBalance(address)
	}

	endpoint := fmt.Sprintf("%s/token/%s/balance/%s",
		c.RPCURL, url.PathEscape(c.TokenContract), url.PathEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("balance rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("balance rpc returned status %d", resp.StatusCode)
	}

	var balance BalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return nil, fmt.Errorf("failed to decode balance response: %w", err)
	}
	balance.FetchedAt = time.Now()
	return &balance, nil
}

// mockGetTokenBalance derives a stable fake balance from the address bytes
func (c *Client) mockGetTokenBalance(address string) (*BalanceResponse, error) {
	var sum int
	for _, b := range []byte(address) {
		sum += int(b)
	}
	return &BalanceResponse{
		Address:   address,
		Balance:   float64(sum%10000) + 0.5,
		FetchedAt: time.Now(),
	}, nil
}
