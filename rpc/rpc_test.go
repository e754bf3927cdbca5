package rpc

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"bns-tui/domains/domainstest"

	"github.com/ethereum/go-ethereum/common"
)

func TestConnect(t *testing.T) {
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set, skipping connection test")
	}

	t.Run("successful connection", func(t *testing.T) {
		result := ConnectWithTimeout(rpcURL, 10*time.Second)
		if result.Error != nil {
			t.Fatalf("Failed to connect to RPC: %v", result.Error)
		}
		defer result.Client.Close()

		if result.Client.URL != rpcURL {
			t.Errorf("Expected URL %s, got %s", rpcURL, result.Client.URL)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := result.Client.ChainIDHex(ctx)
		if err != nil {
			t.Errorf("Failed to get chain ID: %v", err)
		} else {
			t.Logf("Connected to chain %s", id)
		}
	})
}

func TestChainIDHex(t *testing.T) {
	node := domainstest.NewNode(80001)
	defer node.Close()
	c := Wrap(node.Client(), "inproc")
	defer c.Close()

	id, err := c.ChainIDHex(context.Background())
	if err != nil {
		t.Fatalf("ChainIDHex: %v", err)
	}
	if id != "0x13881" {
		t.Errorf("Expected 0x13881, got %s", id)
	}
}

func TestBalance(t *testing.T) {
	node := domainstest.NewNode(1)
	defer node.Close()
	c := Wrap(node.Client(), "inproc")
	defer c.Close()

	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	node.Fund(addr, big.NewInt(42))

	got, err := c.Balance(context.Background(), addr)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got.Int64() != 42 {
		t.Errorf("Expected 42 wei, got %s", got)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.ChainIDHex(context.Background()); err == nil {
		t.Error("Expected an error from a nil client")
	}
	if _, err := c.Balance(context.Background(), common.Address{}); err == nil {
		t.Error("Expected an error from a nil client")
	}
}
