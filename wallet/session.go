package wallet

import (
	"context"
	"fmt"
	"strings"

	"bns-tui/config"

	"github.com/ethereum/go-ethereum/common"
)

// Session is what the app knows about the connected wallet
type Session struct {
	Account common.Address
	ChainID string
	Network string
}

// Connected reports whether an account has been authorised
func (s Session) Connected() bool {
	return s.Account != (common.Address{})
}

// CheckConnected reads the already authorised account and the active
// network without prompting the user.
func CheckConnected(ctx context.Context, p Provider) (Session, error) {
	if p == nil {
		return Session{}, ErrNoProvider
	}

	var s Session
	accounts, err := p.Accounts(ctx)
	if err != nil {
		return s, fmt.Errorf("eth_accounts: %w", err)
	}
	if len(accounts) > 0 {
		s.Account = accounts[0]
	}

	id, err := p.ChainID(ctx)
	if err != nil {
		return s, fmt.Errorf("eth_chainId: %w", err)
	}
	s.ChainID = strings.ToLower(id)
	s.Network = config.NetworkName(s.ChainID)
	return s, nil
}

// Connect asks the wallet for authorisation and returns the first account
func Connect(ctx context.Context, p Provider) (common.Address, error) {
	if p == nil {
		return common.Address{}, ErrNoProvider
	}
	accounts, err := p.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("eth_requestAccounts: %w", err)
	}
	if len(accounts) == 0 {
		return common.Address{}, &ProviderError{Code: CodeUserRejected, Message: "no account authorised"}
	}
	return accounts[0], nil
}
