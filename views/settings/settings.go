package settings

import (
	"strings"

	"bns-tui/config"
	"bns-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the networks view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " switch",
		styles.Key("m") + " add " + config.Mumbai.Name,
		styles.Key("l") + " logger",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render lists the networks the wallet knows
func Render(networks []config.Network, activeChain string, required config.Network, selectedIdx int) string {
	h := styles.TitleStyle.Render("Networks")

	lines := []string{h, ""}
	if len(networks) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("The wallet knows no networks."))
		return strings.Join(lines, "\n")
	}

	for i, n := range networks {
		var marker string
		if strings.EqualFold(n.ChainID, activeChain) {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)
		if i == selectedIdx {
			nameStyle = nameStyle.Foreground(styles.CAccent2).Bold(true)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		name := nameStyle.Render(n.Name)
		if strings.EqualFold(n.ChainID, required.ChainID) {
			name += lipgloss.NewStyle().Foreground(styles.CPolygon).Render("  required")
		}

		lines = append(lines, marker+name)
		lines = append(lines, "  "+urlStyle.Render(n.ChainID+"  "+n.RPCURL))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
