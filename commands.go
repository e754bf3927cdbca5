package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bns-tui/config"
	"bns-tui/domains"
	"bns-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

const readTimeout = 30 * time.Second

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// checkConnected looks for an already authorised account
func checkConnected(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		s, err := wallet.CheckConnected(ctx, p)
		return sessionCheckedMsg{session: s, err: err}
	}
}

// connectWallet asks the wallet to authorise the app
func connectWallet(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		account, err := wallet.Connect(context.Background(), p)
		return connectedMsg{account: account, err: err}
	}
}

// switchNetwork moves the wallet to n, adding it if needed
func switchNetwork(p wallet.Provider, n config.Network) tea.Cmd {
	return func() tea.Msg {
		err := wallet.SwitchNetwork(context.Background(), p, n)
		return networkSwitchedMsg{name: n.Name, err: err}
	}
}

// waitForChainChange blocks until the wallet reports a chain change
func waitForChainChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return chainChangedMsg{chainID: id}
	}
}

// gateway binds the registry to the wallet's active network. A fresh one
// is built for every operation.
func gateway(ctx context.Context, p wallet.Provider, contract string, write bool) (*domains.Gateway, error) {
	if p == nil {
		return nil, wallet.ErrNoProvider
	}
	backend, err := p.Backend(ctx)
	if err != nil {
		return nil, err
	}
	if !write {
		return domains.NewGateway(common.HexToAddress(contract), backend, nil), nil
	}
	opts, err := p.Signer(ctx)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}
	return domains.NewGateway(common.HexToAddress(contract), backend, opts), nil
}

// fetchMints rebuilds the listing from the contract
func fetchMints(p wallet.Provider, contract string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		gw, err := gateway(ctx, p, contract, false)
		if err != nil {
			return mintsFetchedMsg{err: err}
		}
		mints, err := domains.FetchMints(ctx, gw)
		return mintsFetchedMsg{mints: mints, err: err}
	}
}

// mintDomain runs the register then set-record workflow
func mintDomain(p wallet.Provider, contract string, d domains.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		gw, err := gateway(ctx, p, contract, true)
		if err != nil {
			return mintedMsg{res: domains.MintResult{Name: d.Name}, err: err}
		}
		res, err := domains.MintDomain(ctx, gw, d)
		return mintedMsg{res: res, err: err}
	}
}

// updateRecord sets a new record on an owned domain
func updateRecord(p wallet.Provider, contract string, d domains.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		gw, err := gateway(ctx, p, contract, true)
		if err != nil {
			return recordUpdatedMsg{name: d.Name, err: err}
		}
		tx, err := domains.Update(ctx, gw, d)
		return recordUpdatedMsg{name: d.Name, tx: tx, err: err}
	}
}

// loadBalance reads the native balance of account
func loadBalance(p wallet.Provider, account common.Address) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return balanceLoadedMsg{err: wallet.ErrNoProvider}
		}
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		c, err := p.Backend(ctx)
		if err != nil {
			return balanceLoadedMsg{err: err}
		}
		wei, err := c.Balance(ctx, account)
		return balanceLoadedMsg{wei: wei, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return nil
		}
		return clipboardCopiedMsg{what: what}
	}
}

// clearCopied waits 2 seconds then clears clipboard feedback
func clearCopied() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// logError logs err, expanding wallet error codes
func (m *model) logError(what string, err error) {
	var perr *wallet.ProviderError
	switch {
	case errors.Is(err, wallet.ErrNoProvider):
		m.addLog("error", "Make sure you have a wallet configured!")
	case errors.As(err, &perr) && perr.Code == wallet.CodeUserRejected:
		m.addLog("warning", what+": request rejected")
	default:
		m.addLog("error", fmt.Sprintf("%s: %s", what, err))
	}
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}
