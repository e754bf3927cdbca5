// Package scripts holds the development flows that deploy the Domains
// registry and exercise it end to end.
package scripts

import (
	"context"
	"fmt"
	"math/big"

	"bns-tui/domains"
	"bns-tui/helpers"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	// SeedName is the domain both flows mint
	SeedName = "ezio"
	// SeedRecord is the record the deploy flow sets on SeedName
	SeedRecord = "Nothing Is True, Everything Is Permitted."
	// SecondName is minted by the run flow after the withdrawal
	SecondName = "amunet"
)

// SeedPayment is what the flows pay per registration, above every price tier
var SeedPayment = decimal.RequireFromString("0.1")

// Chain is the node the flows talk to
type Chain interface {
	domains.Backend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Env is what a flow needs
type Env struct {
	Chain    Chain
	Owner    *bind.TransactOpts
	Other    *bind.TransactOpts // second account for the withdrawal check
	Artifact *domains.Artifact
	TLD      string
	Logger   *log.Logger
}

// DeployReport summarises a deploy run
type DeployReport struct {
	Contract   common.Address
	SeedOwner  common.Address
	SeedRecord string
	Balance    *big.Int
}

// RunReport summarises a run of the full exercise
type RunReport struct {
	Contract      common.Address
	Deployer      common.Address
	RobFailed     bool
	ContractAfter *big.Int
	OwnerBefore   *big.Int
	OwnerAfter    *big.Int
	Names         []string
}

func (e Env) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e Env) tld() string {
	if e.TLD == "" {
		return "ac"
	}
	return e.TLD
}

func (e Env) balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	b, err := e.Chain.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", addr.Hex(), err)
	}
	return b, nil
}

func ether(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -18).String()
}

func register(ctx context.Context, gw *domains.Gateway, name string) error {
	receipt, err := gw.Register(ctx, name, SeedPayment.Shift(18).BigInt())
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return domains.RequireSuccess(receipt)
}

// Deploy deploys the registry, mints the seed domain and sets its record
func Deploy(ctx context.Context, env Env) (DeployReport, error) {
	l := env.logger()
	var rep DeployReport

	gw, _, err := domains.Deploy(ctx, env.Owner, env.Chain, env.Artifact, env.tld())
	if err != nil {
		return rep, err
	}
	rep.Contract = gw.Address()
	l.Info("Contract deployed to", "address", rep.Contract.Hex())

	if price, err := gw.Price(ctx, SeedName); err == nil {
		l.Debug("Price of "+SeedName, "value", ether(price))
	}
	if err := register(ctx, gw, SeedName); err != nil {
		return rep, err
	}
	l.Info("Minted domain " + SeedName + "." + env.tld())

	receipt, err := gw.SetRecord(ctx, SeedName, SeedRecord)
	if err != nil {
		return rep, fmt.Errorf("set record: %w", err)
	}
	if err := domains.RequireSuccess(receipt); err != nil {
		return rep, err
	}
	l.Info("Set record for " + SeedName + "." + env.tld())

	if rep.SeedOwner, err = gw.GetAddress(ctx, SeedName); err != nil {
		return rep, err
	}
	l.Info("Owner of domain "+SeedName, "address", rep.SeedOwner.Hex())

	if rep.SeedRecord, err = gw.GetRecord(ctx, SeedName); err != nil {
		return rep, err
	}

	if rep.Balance, err = env.balance(ctx, rep.Contract); err != nil {
		return rep, err
	}
	l.Info("Contract balance", "value", ether(rep.Balance))
	return rep, nil
}

// Run deploys a fresh registry and walks it through registration, a
// forbidden withdrawal and the owner's withdrawal.
func Run(ctx context.Context, env Env) (RunReport, error) {
	l := env.logger()
	var rep RunReport

	owner, _, err := domains.Deploy(ctx, env.Owner, env.Chain, env.Artifact, env.tld())
	if err != nil {
		return rep, err
	}
	rep.Contract = owner.Address()
	if rep.Deployer, err = owner.Owner(ctx); err != nil {
		return rep, err
	}
	l.Info("Contract deployed to", "address", rep.Contract.Hex())
	l.Info("Contract deployed by", "address", rep.Deployer.Hex())

	bal, err := env.balance(ctx, rep.Contract)
	if err != nil {
		return rep, err
	}
	l.Info("Contract balance", "value", ether(bal))

	if err := register(ctx, owner, SeedName); err != nil {
		return rep, err
	}
	names, err := owner.GetAllNames(ctx)
	if err != nil {
		return rep, err
	}
	l.Debug("Registered names", "names", names)

	seedOwner, err := owner.GetAddress(ctx, SeedName)
	if err != nil {
		return rep, err
	}
	l.Info("Owner of domain", "address", seedOwner.Hex())

	if bal, err = env.balance(ctx, rep.Contract); err != nil {
		return rep, err
	}
	l.Info("Contract balance", "value", ether(bal))

	if env.Other != nil {
		other := domains.NewGateway(rep.Contract, env.Chain, env.Other)
		receipt, err := other.Withdraw(ctx)
		if err == nil {
			err = domains.RequireSuccess(receipt)
		}
		if err != nil {
			rep.RobFailed = true
			l.Info("Could not rob contract")
			l.Debug("withdraw from "+helpers.ShortenAddr(env.Other.From.Hex()), "err", err)
		} else {
			l.Warn("Contract was robbed by " + env.Other.From.Hex())
		}
	}

	if rep.OwnerBefore, err = env.balance(ctx, rep.Deployer); err != nil {
		return rep, err
	}
	l.Info("Balance of owner before withdrawal", "value", ether(rep.OwnerBefore))

	receipt, err := owner.Withdraw(ctx)
	if err != nil {
		return rep, fmt.Errorf("withdraw: %w", err)
	}
	if err := domains.RequireSuccess(receipt); err != nil {
		return rep, err
	}

	if rep.ContractAfter, err = env.balance(ctx, rep.Contract); err != nil {
		return rep, err
	}
	if rep.OwnerAfter, err = env.balance(ctx, rep.Deployer); err != nil {
		return rep, err
	}
	l.Info("Contract balance after withdrawal", "value", ether(rep.ContractAfter))
	l.Info("Balance of owner after withdrawal", "value", ether(rep.OwnerAfter))

	if err := register(ctx, owner, SecondName); err != nil {
		return rep, err
	}
	if rep.Names, err = owner.GetAllNames(ctx); err != nil {
		return rep, err
	}
	l.Debug("Registered names", "names", rep.Names)
	return rep, nil
}
