package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: client,
			URL:    url,
		},
		Error: nil,
	}
}

// Wrap adopts an already dialled ethclient
func Wrap(c *ethclient.Client, url string) *Client {
	return &Client{Client: c, URL: url}
}

// ChainIDHex returns eth_chainId in the 0x-prefixed form wallets report
func (c *Client) ChainIDHex(ctx context.Context) (string, error) {
	if c == nil || c.Client == nil {
		return "", fmt.Errorf("no RPC client")
	}
	id, err := c.ChainID(ctx)
	if err != nil {
		return "", err
	}
	return "0x" + id.Text(16), nil
}

// Balance returns the native balance of addr at the latest block
func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	if c == nil || c.Client == nil {
		return nil, fmt.Errorf("no RPC client")
	}
	return c.BalanceAt(ctx, addr, nil)
}
