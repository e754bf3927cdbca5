package config

import (
	"encoding/json"
	"os"
	"strings"
)

// Page identifies the active screen
type Page int

const (
	PageHome Page = iota
	PageAccount
	PageNetworks
)

// Config represents the application configuration
type Config struct {
	Networks    []Network `json:"networks"`
	ActiveChain string    `json:"active_chain"`
	Contract    string    `json:"contract"`
	TLD         string    `json:"tld"`
	Keystore    string    `json:"keystore,omitempty"`
	Authorized  bool      `json:"authorized"`
	Logger      bool      `json:"logger"`
}

// Currency describes the native currency of a network
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Network is everything a wallet needs to add and reach a chain
type Network struct {
	ChainID  string   `json:"chain_id"` // hex, e.g. 0x13881
	Name     string   `json:"name"`
	RPCURL   string   `json:"rpc_url"`
	Currency Currency `json:"currency"`
	Explorer string   `json:"explorer,omitempty"`
}

const (
	// ContractAddress is the deployed Domains registry on Mumbai
	ContractAddress = "0xfFE93e0CF56402ddE5eE3f1fB96601367d9CbA9F"
	// TLD is the top level domain the registry was deployed with
	TLD = ".ac"
)

// Mumbai is the only network the mint form accepts
var Mumbai = Network{
	ChainID: "0x13881",
	Name:    "Polygon Mumbai Testnet",
	RPCURL:  "https://rpc-mumbai.maticvigil.com/",
	Currency: Currency{
		Name:     "Mumbai Matic",
		Symbol:   "MATIC",
		Decimals: 18,
	},
	Explorer: "https://mumbai.polygonscan.com/",
}

// networkNames maps chain ids as returned by eth_chainId to display names
var networkNames = map[string]string{
	"0x1":     "Mainnet",
	"0x3":     "Ropsten",
	"0x2a":    "Kovan",
	"0x4":     "Rinkeby",
	"0x5":     "Goerli",
	"0x61":    "BSC Testnet",
	"0x38":    "BSC Mainnet",
	"0x89":    "Polygon Mainnet",
	"0x13881": "Polygon Mumbai Testnet",
	"0xa86a":  "AVAX Mainnet",
	"0x7a69":  "Hardhat",
}

// NetworkName returns the display name for a chain id, or "" if unknown
func NetworkName(chainID string) string {
	return networkNames[strings.ToLower(chainID)]
}

// FindNetwork looks up a configured network by chain id
func (c Config) FindNetwork(chainID string) (Network, bool) {
	for _, n := range c.Networks {
		if strings.EqualFold(n.ChainID, chainID) {
			return n, true
		}
	}
	return Network{}, false
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults.
// Mumbai is not preconfigured; the first switch to it adds it.
func DefaultConfig() Config {
	return Config{
		Networks: []Network{
			{
				ChainID:  "0x1",
				Name:     "Mainnet",
				RPCURL:   "https://ethereum-rpc.publicnode.com",
				Currency: Currency{Name: "Ether", Symbol: "ETH", Decimals: 18},
				Explorer: "https://etherscan.io/",
			},
		},
		ActiveChain: "0x1",
		Contract:    ContractAddress,
		TLD:         TLD,
		Logger:      false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	if cfg.Contract == "" {
		cfg.Contract = ContractAddress
	}
	if cfg.TLD == "" {
		cfg.TLD = TLD
	}

	return cfg
}
