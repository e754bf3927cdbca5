package main

import (
	"errors"
	"fmt"

	"bns-tui/config"
	"bns-tui/domains"
	"bns-tui/helpers"
	"bns-tui/views/home"
	"bns-tui/views/mints"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.formActive() {
		return m, m.updateFormKey(keyMsg)
	}

	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case sessionCheckedMsg:
		m.checking = false
		if msg.err != nil {
			m.logError("Wallet check failed", msg.err)
			return m, nil
		}
		m.addLog("debug", "We have the wallet object")
		m.session = msg.session
		if !m.session.Connected() {
			m.addLog("info", "No authorized account found")
			return m, nil
		}
		m.addLog("success", "Found an authorized account: "+m.session.Account.Hex())
		return m, m.afterConnect()

	case connectedMsg:
		if msg.err != nil {
			m.logError("Connect failed", msg.err)
			return m, nil
		}
		m.addLog("success", "Connected "+msg.account.Hex())
		m.session.Account = msg.account
		m.cfg.Authorized = true
		m.saveConfig()
		return m, m.afterConnect()

	case chainChangedMsg:
		m.addLog("info", fmt.Sprintf("Chain changed to %s, reloading", msg.chainID))
		return m, m.reload()

	case networkSwitchedMsg:
		if msg.err != nil {
			m.logError("Network switch failed", msg.err)
			return m, nil
		}
		m.addLog("success", "Switched to "+msg.name)
		m.saveConfig()
		return m, nil

	case mintsFetchedMsg:
		if msg.err != nil {
			m.logError("Fetching domains failed", msg.err)
			return m, nil
		}
		m.mints = msg.mints
		if m.selectedMint >= len(m.mints) {
			m.selectedMint = helpers.Max(0, len(m.mints)-1)
		}
		m.addLog("debug", fmt.Sprintf("Fetched %d domains", len(m.mints)))
		return m, nil

	case mintedMsg:
		return m, m.handleMinted(msg)

	case recordUpdatedMsg:
		m.loading = false
		defer m.resetForm()
		if msg.err != nil {
			m.logError("Setting record for "+msg.name+m.tld()+" failed", msg.err)
			return m, nil
		}
		m.lastTx = msg.tx
		m.addLog("success", "Record set! "+m.txURL(msg.tx))
		m.draft.Clear()
		return m, tea.Batch(fetchMints(m.provider, m.cfg.Contract), loadBalance(m.provider, m.session.Account))

	case balanceLoadedMsg:
		m.balanceLoading = false
		if msg.err != nil {
			m.balanceErr = "Failed to load balance."
			m.logError("Balance", msg.err)
			return m, nil
		}
		m.balanceErr = ""
		m.balance = msg.wei
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "✓ " + msg.what + " copied"
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return m, clearCopied()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = helpers.Max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m, m.updateKey(msg)
	}

	// huh sends itself internal messages (field focus, dynamic descriptions)
	if m.form != nil && m.formVisible() {
		return m, m.forwardToForm(msg)
	}
	return m, nil
}

// afterConnect loads everything that depends on an authorised account
func (m *model) afterConnect() tea.Cmd {
	m.balanceLoading = true
	if m.form == nil {
		m.form = home.CreateForm(m.draft, m.tld())
		m.formFocused = true
	}
	return tea.Batch(fetchMints(m.provider, m.cfg.Contract), loadBalance(m.provider, m.session.Account))
}

func (m *model) handleMinted(msg mintedMsg) tea.Cmd {
	m.loading = false
	defer m.resetForm()

	if msg.err != nil {
		var recErr *domains.RecordError
		switch {
		case errors.Is(msg.err, domains.ErrRegistrationFailed):
			m.alert = "Transaction failed! Please try again"
			m.addLog("error", "Registration of "+msg.res.Name+m.tld()+" reverted")
			return nil
		case errors.As(msg.err, &recErr):
			m.lastTx = msg.res.RegisterTx
			m.addLog("success", "Domain minted! "+m.txURL(msg.res.RegisterTx))
			m.logError("Domain "+recErr.Name+m.tld()+" minted but record not set", recErr.Err)
			return tea.Batch(fetchMints(m.provider, m.cfg.Contract), loadBalance(m.provider, m.session.Account))
		default:
			m.logError("Mint failed", msg.err)
			return nil
		}
	}

	m.addLog("success", "Domain minted! "+m.txURL(msg.res.RegisterTx))
	m.addLog("success", "Record set! "+m.txURL(msg.res.RecordTx))
	m.lastTx = msg.res.RecordTx
	m.draft.Clear()
	return tea.Batch(fetchMints(m.provider, m.cfg.Contract), loadBalance(m.provider, m.session.Account))
}

// resetForm rebuilds the form from the current draft
func (m *model) resetForm() {
	if !m.session.Connected() {
		return
	}
	m.form = home.CreateForm(m.draft, m.tld())
}

func (m *model) txURL(h common.Hash) string {
	return helpers.ExplorerTxURL(m.activeNetwork().Explorer, h.Hex())
}

// updateFormKey routes a key to the focused form
func (m *model) updateFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		if m.draft.Editing {
			m.draft.Cancel()
			m.addLog("info", "Edit cancelled")
			m.resetForm()
			return nil
		}
		m.formFocused = false
		return nil
	}
	return m.forwardToForm(msg)
}

func (m *model) forwardToForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.form.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return cmd
	}
	m.form = f

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.resetForm()
		return nil
	}
	return cmd
}

// submitForm starts the mint or update workflow from the completed form
func (m *model) submitForm() tea.Cmd {
	editing := m.draft.Editing
	d := home.Draft(editing)
	if editing {
		d.Name = m.draft.Name
	}

	if !home.TempSubmit {
		if editing {
			m.draft.Cancel()
			m.addLog("info", "Edit cancelled")
		} else {
			m.draft.Clear()
		}
		m.resetForm()
		return nil
	}

	if m.loading {
		m.addLog("warning", "A transaction is already pending")
		m.resetForm()
		return nil
	}

	m.draft = d
	m.loading = true
	if editing {
		m.addLog("info", fmt.Sprintf("Setting record for %s%s", d.Name, m.tld()))
		return tea.Batch(m.spin.Tick, updateRecord(m.provider, m.cfg.Contract, d))
	}
	m.addLog("info", fmt.Sprintf("Minting domain %s%s with price %s", d.Name, m.tld(), domains.Price(d.Name).String()))
	return tea.Batch(m.spin.Tick, mintDomain(m.provider, m.cfg.Contract, d))
}

// entries is the listing as the current account sees it
func (m model) entries() []mints.Entry {
	return mints.Entries(m.mints, m.session.Account)
}

// startEdit seeds the draft with the selected domain if the viewer owns it
func (m *model) startEdit() {
	entries := m.entries()
	if m.selectedMint < 0 || m.selectedMint >= len(entries) {
		return
	}
	e := entries[m.selectedMint]
	if !e.Editable {
		m.addLog("warning", "You can only edit domains you own")
		return
	}
	m.draft.Edit(e.Name)
	m.resetForm()
	m.formFocused = true
}

// updateKey handles keys when the form does not have focus
func (m *model) updateKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if key == "ctrl+c" {
		return tea.Quit
	}

	// the alert swallows everything until dismissed
	if m.alert != "" {
		switch key {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return nil
	}

	if m.showQR {
		switch key {
		case "enter", "esc", "t":
			m.showQR = false
		case "y":
			return copyToClipboard(m.lastTx.Hex(), "transaction hash")
		}
		return nil
	}

	switch key {
	case "q":
		return tea.Quit

	case "l", "L":
		m.logEnabled = !m.logEnabled
		m.saveConfig()
		if m.logEnabled {
			if m.w > 0 {
				m.logViewport.Width = m.w - 6
			}
			m.logReady = false
			return tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		m.logBuffer.Reset()
		m.logger = nil
		m.logReady = false
		return nil

	case "pgup", "pgdown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
		return nil

	case "n":
		if m.provider != nil {
			m.activePage = config.PageNetworks
		}
		return nil

	case "a":
		if m.session.Connected() {
			m.activePage = config.PageAccount
		}
		return nil
	}

	switch m.activePage {
	case config.PageAccount:
		return m.updateAccountKey(key)
	case config.PageNetworks:
		return m.updateNetworksKey(key)
	}
	return m.updateHomeKey(key)
}

func (m *model) updateHomeKey(key string) tea.Cmd {
	if !m.session.Connected() {
		if (key == "enter" || key == " ") && !m.checking {
			m.addLog("info", "Requesting accounts")
			return connectWallet(m.provider)
		}
		return nil
	}

	if !m.onRequiredNetwork() {
		if key == "enter" || key == " " {
			req := m.requiredNetwork()
			m.addLog("info", "Requesting switch to "+req.Name)
			return switchNetwork(m.provider, req)
		}
		return nil
	}

	cols := helpers.Max(1, (m.w-8)/34)
	switch key {
	case "left", "h":
		if m.selectedMint > 0 {
			m.selectedMint--
		}
	case "right":
		if m.selectedMint < len(m.mints)-1 {
			m.selectedMint++
		}
	case "up", "k":
		m.selectedMint = helpers.Max(0, m.selectedMint-cols)
	case "down", "j":
		m.selectedMint = helpers.Min(helpers.Max(0, len(m.mints)-1), m.selectedMint+cols)
	case "e":
		if !m.loading {
			m.startEdit()
		}
	case "f", "i", "tab":
		m.formFocused = true
	case "r":
		m.balanceLoading = true
		return tea.Batch(fetchMints(m.provider, m.cfg.Contract), loadBalance(m.provider, m.session.Account))
	case "t":
		if m.lastTx != (common.Hash{}) {
			m.showQR = true
		}
	case "y":
		if m.lastTx != (common.Hash{}) {
			return copyToClipboard(m.lastTx.Hex(), "transaction hash")
		}
	case "c":
		return copyToClipboard(m.session.Account.Hex(), "address")
	}
	return nil
}

func (m *model) updateAccountKey(key string) tea.Cmd {
	switch key {
	case "esc":
		m.activePage = config.PageHome
	case "c":
		return copyToClipboard(m.session.Account.Hex(), "address")
	case "r":
		m.balanceLoading = true
		return loadBalance(m.provider, m.session.Account)
	}
	return nil
}

func (m *model) updateNetworksKey(key string) tea.Cmd {
	nets := m.networks()
	switch key {
	case "esc":
		m.activePage = config.PageHome
	case "up", "k":
		if m.selectedNetwork > 0 {
			m.selectedNetwork--
		}
	case "down", "j":
		if m.selectedNetwork < len(nets)-1 {
			m.selectedNetwork++
		}
	case "enter":
		if m.selectedNetwork < len(nets) {
			n := nets[m.selectedNetwork]
			m.addLog("info", "Requesting switch to "+n.Name)
			return switchNetwork(m.provider, n)
		}
	case "m":
		req := m.requiredNetwork()
		m.addLog("info", "Requesting switch to "+req.Name)
		return switchNetwork(m.provider, req)
	}
	return nil
}
