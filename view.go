package main

import (
	"strings"

	"bns-tui/config"
	"bns-tui/helpers"
	"bns-tui/styles"
	"bns-tui/views/details"
	"bns-tui/views/home"
	logview "bns-tui/views/log"
	"bns-tui/views/mints"
	"bns-tui/views/settings"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m model) renderAlert() string {
	dialogBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cBorder).
		Padding(1, 2)

	msg := helpers.FadeString(m.alert, "#FF7B5C", "#E8C46B")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)
	button := lipgloss.NewStyle().MarginTop(1).Render(styles.Button("OK", true))
	dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, question, button))

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m model) renderQRPanel() string {
	url := m.txURL(m.lastTx)
	content := styles.TitleStyle.Render("Last transaction") + "\n\n" +
		helpers.QRCode(url) + "\n" +
		helpers.Hyperlink(url, lipgloss.NewStyle().Foreground(cAccent2).Render(url)) + "\n\n" +
		styles.MutedStyle.Render("y copy hash • Esc close")
	if m.copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}

	centered := lipgloss.NewStyle().Width(helpers.Max(0, m.w-8)).Align(lipgloss.Center).Render(content)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		panelStyle.Width(helpers.Max(0, m.w-4)).Render(centered),
	))
}

// networkLogo returns the glyph shown next to the network name
func networkLogo(name string) string {
	if strings.Contains(name, "Polygon") {
		return lipgloss.NewStyle().Foreground(styles.CPolygon).Render("⬡")
	}
	return lipgloss.NewStyle().Foreground(cAccent2).Render("⟠")
}

func (m model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8)

	var walletLine string
	if m.session.Connected() {
		walletLine = lipgloss.NewStyle().Foreground(cAccent2).Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(m.session.Account.Hex()), "#A3262A", "#E8C46B"))
	} else {
		walletLine = lipgloss.NewStyle().Foreground(cMuted).Render("Not connected")
	}

	var netLine string
	switch {
	case m.provider == nil:
		netLine = lipgloss.NewStyle().Foreground(cError).Render("○ No wallet")
	case m.checking:
		netLine = lipgloss.NewStyle().Foreground(cMuted).Render("○ Checking…")
	case m.session.Network != "":
		netLine = networkLogo(m.session.Network) + " " + lipgloss.NewStyle().Foreground(cText).Bold(true).Render(m.session.Network)
	case m.session.ChainID != "":
		netLine = networkLogo("") + " " + lipgloss.NewStyle().Foreground(cText).Render("Chain "+m.session.ChainID)
	default:
		netLine = lipgloss.NewStyle().Foreground(cError).Render("○ Unknown network")
	}

	title := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("🐱‍👤 Brotherhood Name Service", "#A3262A", "#E8C46B"))

	total := lipgloss.Width(walletLine) + lipgloss.Width(title) + lipgloss.Width(netLine)

	var headerLine string
	if total+4 > availableWidth {
		headerLine = title + "\n" + walletLine + "\n" + netLine
	} else {
		remaining := availableWidth - total
		left := remaining / 2
		headerLine = walletLine +
			strings.Repeat(" ", helpers.Max(1, left)) + title +
			strings.Repeat(" ", helpers.Max(1, remaining-left)) + netLine
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// homeContent renders the connect prompt, or the network prompt or form
// above the listing.
func (m model) homeContent() string {
	if m.provider == nil {
		return styles.WarnStyle.Render("Make sure you have a wallet configured!") + "\n\n" +
			styles.MutedStyle.Render("Set BNS_PRIVATE_KEY, or BNS_KEYSTORE and BNS_PASSPHRASE, then restart.")
	}
	if !m.session.Connected() {
		if m.checking {
			return m.spin.View() + " looking for an authorized account…"
		}
		return home.RenderConnect(true)
	}
	var top string
	if m.onRequiredNetwork() {
		top = home.Render(m.form, m.draft.Editing, m.loading, m.spin.View())
	} else {
		top = home.RenderSwitch(m.session.Network, m.requiredNetwork().Name)
	}
	if len(m.mints) == 0 {
		return top
	}
	listing := mints.Render(m.entries(), m.selectedMint, m.cfg.Contract, m.tld(), helpers.Max(0, m.w-8))
	return top + "\n\n" + listing
}

func (m *model) View() string {
	if m.alert != "" {
		return m.renderAlert()
	}
	if m.showQR {
		return m.renderQRPanel()
	}

	header := panelStyle.Width(helpers.Max(0, m.w-2)).Render(m.globalHeader())

	var content, nav string
	navWidth := helpers.Max(0, m.w-2)
	switch m.activePage {
	case config.PageAccount:
		content = details.Render(m.session, m.activeNetwork(), m.balance, m.balanceErr, m.balanceLoading, m.copiedMsg, m.spin.View())
		nav = details.Nav(navWidth)
	case config.PageNetworks:
		content = settings.Render(m.networks(), m.session.ChainID, m.requiredNetwork(), m.selectedNetwork)
		nav = settings.Nav(navWidth)
	default:
		content = m.homeContent()
		nav = home.Nav(navWidth, m.session.Connected(), m.onRequiredNetwork(), m.formFocused && m.form != nil, m.draft.Editing)
	}
	body := panelStyle.Width(helpers.Max(0, m.w-2)).Render(content)

	parts := []string{header, body}
	if m.logEnabled {
		parts = append(parts, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	parts = append(parts, nav)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
