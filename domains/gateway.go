package domains

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrNoSigner = errors.New("gateway has no signer")
	ErrReverted = errors.New("transaction reverted")
)

// Backend is what a gateway needs from a node: calls, transactions and receipts.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Registry is the subset of the Domains contract the UI reads and writes
type Registry interface {
	Register(ctx context.Context, name string, value *big.Int) (*types.Receipt, error)
	SetRecord(ctx context.Context, name, record string) (*types.Receipt, error)
	GetAllNames(ctx context.Context) ([]string, error)
	GetRecord(ctx context.Context, name string) (string, error)
	GetAddress(ctx context.Context, name string) (common.Address, error)
}

// Gateway is a client bound to one deployed Domains contract.
// Writes wait until the transaction is mined and return its receipt.
type Gateway struct {
	address  common.Address
	backend  Backend
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

var _ Registry = (*Gateway)(nil)

// NewGateway binds the Domains ABI at address. opts may be nil for a read-only gateway.
func NewGateway(address common.Address, backend Backend, opts *bind.TransactOpts) *Gateway {
	return &Gateway{
		address:  address,
		backend:  backend,
		contract: bind.NewBoundContract(address, ParsedABI, backend, backend, backend),
		opts:     opts,
	}
}

// Address returns the contract address
func (g *Gateway) Address() common.Address { return g.address }

// Register mints name paying value wei
func (g *Gateway) Register(ctx context.Context, name string, value *big.Int) (*types.Receipt, error) {
	return g.transact(ctx, value, "register", name)
}

// SetRecord replaces the text record of name
func (g *Gateway) SetRecord(ctx context.Context, name, record string) (*types.Receipt, error) {
	return g.transact(ctx, nil, "setRecord", name, record)
}

// Withdraw moves the contract balance to its owner. Reverts for anyone else.
func (g *Gateway) Withdraw(ctx context.Context) (*types.Receipt, error) {
	return g.transact(ctx, nil, "withdraw")
}

// GetAllNames enumerates every registered name in mint order
func (g *Gateway) GetAllNames(ctx context.Context) ([]string, error) {
	out, err := g.call(ctx, "getAllNames")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]string)).(*[]string), nil
}

// GetRecord returns the text record of name
func (g *Gateway) GetRecord(ctx context.Context, name string) (string, error) {
	out, err := g.call(ctx, "getRecord", name)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// GetAddress returns the owner of name
func (g *Gateway) GetAddress(ctx context.Context, name string) (common.Address, error) {
	out, err := g.call(ctx, "getAddress", name)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Owner returns the contract owner
func (g *Gateway) Owner(ctx context.Context) (common.Address, error) {
	out, err := g.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Price asks the contract what it charges for name
func (g *Gateway) Price(ctx context.Context, name string) (*big.Int, error) {
	out, err := g.call(ctx, "price", name)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (g *Gateway) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if g.opts != nil {
		opts.From = g.opts.From
	}
	if err := g.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return out, nil
}

func (g *Gateway) transact(ctx context.Context, value *big.Int, method string, params ...interface{}) (*types.Receipt, error) {
	if g.opts == nil {
		return nil, ErrNoSigner
	}
	opts := *g.opts
	opts.Context = ctx
	opts.Value = value

	tx, err := g.contract.Transact(&opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: waiting for %s: %w", method, tx.Hash().Hex(), err)
	}
	return receipt, nil
}

// RequireSuccess turns a failed receipt into ErrReverted
func RequireSuccess(receipt *types.Receipt) error {
	if receipt == nil {
		return fmt.Errorf("no receipt")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s", ErrReverted, receipt.TxHash.Hex())
	}
	return nil
}
