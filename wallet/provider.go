package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"bns-tui/config"
	"bns-tui/rpc"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EIP-1193 / EIP-3326 error codes
const (
	CodeUserRejected      = 4001
	CodeUnrecognizedChain = 4902
	CodeInvalidParams     = -32602
)

// ErrNoProvider means no wallet is configured
var ErrNoProvider = errors.New("no wallet provider")

// ProviderError is an error returned by a wallet request, carrying its RPC code
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// Provider is the wallet surface the app talks to. Each method maps to
// one injected-provider request.
type Provider interface {
	// Accounts returns already authorised accounts (eth_accounts)
	Accounts(ctx context.Context) ([]common.Address, error)
	// ChainID returns the active chain id in hex (eth_chainId)
	ChainID(ctx context.Context) (string, error)
	// RequestAccounts asks the user to authorise the app (eth_requestAccounts)
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// SwitchChain changes the active network (wallet_switchEthereumChain)
	SwitchChain(ctx context.Context, chainID string) error
	// AddChain registers a network and switches to it (wallet_addEthereumChain)
	AddChain(ctx context.Context, n config.Network) error
	// OnChainChanged subscribes to chainChanged notifications
	OnChainChanged(fn func(chainID string))

	// Backend returns a client for the active network
	Backend(ctx context.Context) (*rpc.Client, error)
	// Signer returns transaction options signing for the authorised account
	Signer(ctx context.Context) (*bind.TransactOpts, error)
}

// Dialer opens a client for an RPC URL
type Dialer func(url string) rpc.ConnectResult

// LocalProvider is a Provider backed by a private key held in memory
type LocalProvider struct {
	mu         sync.Mutex
	key        *ecdsa.PrivateKey
	address    common.Address
	authorized bool
	networks   []config.Network
	active     string
	client     *rpc.Client
	dial       Dialer
	listeners  []func(string)
}

var _ Provider = (*LocalProvider)(nil)

// Option configures a LocalProvider
type Option func(*LocalProvider)

// WithDialer replaces rpc.Connect
func WithDialer(d Dialer) Option {
	return func(p *LocalProvider) { p.dial = d }
}

// WithAuthorized marks the account as already connected to this app
func WithAuthorized(authorized bool) Option {
	return func(p *LocalProvider) { p.authorized = authorized }
}

// NewLocalProvider creates a provider for key knowing networks, with active selected
func NewLocalProvider(key *ecdsa.PrivateKey, networks []config.Network, active string, opts ...Option) *LocalProvider {
	p := &LocalProvider{
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		networks: append([]config.Network(nil), networks...),
		active:   strings.ToLower(active),
		dial:     rpc.Connect,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// LoadKey reads the signing key. A hex key wins over a keystore file.
func LoadKey(hexKey, keystorePath, passphrase string) (*ecdsa.PrivateKey, error) {
	if hexKey = strings.TrimSpace(hexKey); hexKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return key, nil
	}
	if keystorePath == "" {
		return nil, ErrNoProvider
	}
	data, err := os.ReadFile(keystorePath)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	k, err := keystore.DecryptKey(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	return k.PrivateKey, nil
}

// Address returns the account the key controls
func (p *LocalProvider) Address() common.Address { return p.address }

// Networks returns the networks the wallet knows, including added ones
func (p *LocalProvider) Networks() []config.Network {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]config.Network(nil), p.networks...)
}

// ActiveChain returns the chain id the wallet is pointed at
func (p *LocalProvider) ActiveChain() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *LocalProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized {
		return []common.Address{}, nil
	}
	return []common.Address{p.address}, nil
}

func (p *LocalProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorized = true
	return []common.Address{p.address}, nil
}

func (p *LocalProvider) ChainID(ctx context.Context) (string, error) {
	c, err := p.Backend(ctx)
	if err != nil {
		return "", err
	}
	return c.ChainIDHex(ctx)
}

func (p *LocalProvider) Backend(ctx context.Context) (*rpc.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	n, ok := p.find(p.active)
	if !ok {
		return nil, &ProviderError{Code: CodeUnrecognizedChain, Message: fmt.Sprintf("no network configured for chain %s", p.active)}
	}
	res := p.dial(n.RPCURL)
	if res.Error != nil {
		return nil, fmt.Errorf("connect %s: %w", n.Name, res.Error)
	}
	p.client = res.Client
	return p.client, nil
}

func (p *LocalProvider) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	c, err := p.Backend(ctx)
	if err != nil {
		return nil, err
	}
	id, err := c.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	return bind.NewKeyedTransactorWithChainID(p.key, id)
}

func (p *LocalProvider) SwitchChain(ctx context.Context, chainID string) error {
	chainID = strings.ToLower(chainID)

	p.mu.Lock()
	n, ok := p.find(chainID)
	if !ok {
		p.mu.Unlock()
		return &ProviderError{
			Code:    CodeUnrecognizedChain,
			Message: fmt.Sprintf("Unrecognized chain ID %q. Try adding the chain using wallet_addEthereumChain first.", chainID),
		}
	}
	if chainID == p.active && p.client != nil {
		p.mu.Unlock()
		return nil
	}
	res := p.dial(n.RPCURL)
	if res.Error != nil {
		p.mu.Unlock()
		return fmt.Errorf("connect %s: %w", n.Name, res.Error)
	}
	if p.client != nil {
		p.client.Close()
	}
	p.client = res.Client
	p.active = chainID
	listeners := append([]func(string){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(chainID)
	}
	return nil
}

func (p *LocalProvider) AddChain(ctx context.Context, n config.Network) error {
	if err := validateNetwork(n); err != nil {
		return err
	}
	n.ChainID = strings.ToLower(n.ChainID)

	p.mu.Lock()
	replaced := false
	for i := range p.networks {
		if strings.EqualFold(p.networks[i].ChainID, n.ChainID) {
			p.networks[i] = n
			replaced = true
		}
	}
	if !replaced {
		p.networks = append(p.networks, n)
	}
	p.mu.Unlock()

	return p.SwitchChain(ctx, n.ChainID)
}

func (p *LocalProvider) OnChainChanged(fn func(chainID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Close releases the active client
func (p *LocalProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}

func (p *LocalProvider) find(chainID string) (config.Network, bool) {
	for _, n := range p.networks {
		if strings.EqualFold(n.ChainID, chainID) {
			return n, true
		}
	}
	return config.Network{}, false
}

func validateNetwork(n config.Network) error {
	id, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(n.ChainID), "0x"), 16)
	switch {
	case !strings.HasPrefix(n.ChainID, "0x") || !ok || id.Sign() <= 0:
		return &ProviderError{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid chain id %q", n.ChainID)}
	case n.RPCURL == "":
		return &ProviderError{Code: CodeInvalidParams, Message: "rpcUrls must not be empty"}
	case n.Currency.Symbol == "" || n.Currency.Decimals != 18:
		return &ProviderError{Code: CodeInvalidParams, Message: "nativeCurrency must have a symbol and 18 decimals"}
	}
	return nil
}
