package main

import (
	"math/big"

	"bns-tui/domains"
	"bns-tui/wallet"

	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// sessionCheckedMsg carries the wallet state found at start-up
type sessionCheckedMsg struct {
	session wallet.Session
	err     error
}

// connectedMsg is the answer to an authorisation request
type connectedMsg struct {
	account common.Address
	err     error
}

// chainChangedMsg is a chainChanged notification from the wallet
type chainChangedMsg struct {
	chainID string
}

// networkSwitchedMsg reports the outcome of a switch or add request
type networkSwitchedMsg struct {
	name string
	err  error
}

// mintsFetchedMsg carries a freshly rebuilt listing
type mintsFetchedMsg struct {
	mints []domains.Mint
	err   error
}

// mintedMsg reports the outcome of the mint workflow
type mintedMsg struct {
	res domains.MintResult
	err error
}

// recordUpdatedMsg reports the outcome of a record update
type recordUpdatedMsg struct {
	name string
	tx   common.Hash
	err  error
}

// balanceLoadedMsg carries the native balance of the account
type balanceLoadedMsg struct {
	wei *big.Int
	err error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// clearCopiedMsg clears clipboard feedback
type clearCopiedMsg struct{}
