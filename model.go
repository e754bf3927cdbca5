package main

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"bns-tui/config"
	"bns-tui/domains"
	"bns-tui/helpers"
	"bns-tui/styles"
	"bns-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	cfg        config.Config
	configPath string

	// wallet
	provider    wallet.Provider
	chainEvents chan string
	session     wallet.Session
	checking    bool // start-up account check in flight

	// mint / record form
	draft       domains.Draft
	form        *huh.Form
	formFocused bool
	loading     bool // a write is in flight
	spin        spinner.Model

	// listing
	mints        []domains.Mint
	selectedMint int

	// account panel
	balance        *big.Int
	balanceErr     string
	balanceLoading bool

	// networks page
	selectedNetwork int

	// blocking alert, swallows keys until dismissed
	alert string

	// last mined transaction
	lastTx common.Hash
	showQR bool

	// clipboard feedback
	copiedMsg string

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// networkBook is implemented by providers that expose their network table
type networkBook interface {
	Networks() []config.Network
	ActiveChain() string
}

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from disk
func newModel() model {
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".bns-config.json")

	cfg := config.LoadOrCreate(configPath)
	if c := strings.TrimSpace(os.Getenv("BNS_CONTRACT")); helpers.IsValidEthAddress(c) {
		cfg.Contract = c
	}
	if ks := strings.TrimSpace(os.Getenv("BNS_KEYSTORE")); ks != "" {
		cfg.Keystore = ks
	}

	var p wallet.Provider
	if key, err := wallet.LoadKey(os.Getenv("BNS_PRIVATE_KEY"), cfg.Keystore, os.Getenv("BNS_PASSPHRASE")); err == nil {
		p = wallet.NewLocalProvider(key, cfg.Networks, cfg.ActiveChain, wallet.WithAuthorized(cfg.Authorized))
	}

	return newModelWith(cfg, configPath, p)
}

// newModelWith builds a model around an explicit config and provider. A
// nil provider behaves like a browser without a wallet.
func newModelWith(cfg config.Config, configPath string, p wallet.Provider) model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 20)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		activePage:  config.PageHome,
		cfg:         cfg,
		configPath:  configPath,
		provider:    p,
		checking:    true,
		spin:        sp,
		logEnabled:  cfg.Logger,
		logViewport: vp,
		logBuffer:   &strings.Builder{},
		logSpinner:  logSpin,
	}

	if p != nil {
		events := make(chan string, 4)
		p.OnChainChanged(func(id string) {
			select {
			case events <- id:
			default:
			}
		})
		m.chainEvents = events
	}
	return m
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForChainChange(m.chainEvents)}
	if m.logEnabled {
		cmds = append(cmds, m.logSpinner.Tick, tea.Sequence(initLogViewport(), checkConnected(m.provider)))
	} else {
		cmds = append(cmds, checkConnected(m.provider))
	}
	return tea.Batch(cmds...)
}

// reload discards everything derived from the wallet and starts over
func (m *model) reload() tea.Cmd {
	m.activePage = config.PageHome
	m.session = wallet.Session{}
	m.checking = true
	m.draft = domains.Draft{}
	m.form = nil
	m.formFocused = false
	m.loading = false
	m.mints = nil
	m.selectedMint = 0
	m.balance = nil
	m.balanceErr = ""
	m.alert = ""
	m.lastTx = common.Hash{}
	m.showQR = false
	return tea.Batch(checkConnected(m.provider), waitForChainChange(m.chainEvents))
}

// requiredNetwork is the network the registry is deployed on
func (m model) requiredNetwork() config.Network {
	if n, ok := m.cfg.FindNetwork(config.Mumbai.ChainID); ok {
		return n
	}
	return config.Mumbai
}

// activeNetwork returns the wallet's current network metadata
func (m model) activeNetwork() config.Network {
	if n, ok := m.networks().find(m.session.ChainID); ok {
		return n
	}
	return config.Network{ChainID: m.session.ChainID, Name: m.session.Network}
}

type networkList []config.Network

func (l networkList) find(chainID string) (config.Network, bool) {
	return config.Config{Networks: l}.FindNetwork(chainID)
}

// networks returns the wallet's network table, falling back to config
func (m model) networks() networkList {
	if b, ok := m.provider.(networkBook); ok {
		return b.Networks()
	}
	return m.cfg.Networks
}

func (m model) onRequiredNetwork() bool {
	return wallet.OnRequiredNetwork(m.session, m.requiredNetwork())
}

// formVisible reports whether the mint/record form is on screen
func (m model) formVisible() bool {
	return m.activePage == config.PageHome && m.session.Connected() && m.onRequiredNetwork()
}

// formActive reports whether keys go to the form
func (m model) formActive() bool {
	return m.formVisible() && m.formFocused && m.form != nil && !m.loading && m.alert == "" && !m.showQR
}

// tld returns the configured top level domain with its leading dot
func (m model) tld() string {
	t := m.cfg.TLD
	if t == "" {
		t = config.TLD
	}
	if !strings.HasPrefix(t, ".") {
		t = "." + t
	}
	return t
}

// saveConfig persists the wallet state worth keeping between runs
func (m *model) saveConfig() {
	if b, ok := m.provider.(networkBook); ok {
		m.cfg.Networks = b.Networks()
		m.cfg.ActiveChain = b.ActiveChain()
	}
	m.cfg.Logger = m.logEnabled
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", "Failed to save config: "+err.Error())
	}
}
