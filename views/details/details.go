package details

import (
	"math/big"
	"strings"

	"bns-tui/config"
	"bns-tui/helpers"
	"bns-tui/styles"
	"bns-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the account view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("c") + " copy address",
		styles.Key("r") + " refresh",
		styles.Key("n") + " networks",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the connected account with its native balance
func Render(s wallet.Session, network config.Network, balance *big.Int, balanceErr string, loading bool, copiedMsg string, spinnerView string) string {
	h := styles.TitleStyle.Render("Account")

	if !s.Connected() {
		return h + "\n\n" + styles.MutedStyle.Render("Not connected.")
	}

	addr := s.Account.Hex()
	addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := addrStyle.Render(addr)
	if network.Explorer != "" {
		sub = helpers.Hyperlink(strings.TrimSuffix(network.Explorer, "/")+"/address/"+addr, sub)
	}
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	netName := s.Network
	if netName == "" {
		netName = "chain " + s.ChainID
	}
	netLine := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Network  ") +
		lipgloss.NewStyle().Foreground(styles.CText).Render(netName)

	if loading {
		return h + "\n" + sub + "\n\n" + netLine + "\n\n" + spinnerView + " fetching balance…"
	}
	if balanceErr != "" {
		msg := lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ " + balanceErr)
		return h + "\n" + sub + "\n\n" + netLine + "\n\n" + msg
	}

	symbol := network.Currency.Symbol
	if symbol == "" {
		symbol = "ETH"
	}
	balLine := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Balance  ") +
		lipgloss.NewStyle().Foreground(styles.CText).Render(helpers.FormatEther(balance, symbol))

	return strings.Join([]string{h, sub, "", netLine, balLine}, "\n")
}
