package log

import (
	"fmt"

	"bns-tui/helpers"
	"bns-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height returns the viewport height for a screen of the given height
func Height(screen int) int {
	// header, nav, panel borders and title
	available := helpers.Max(5, screen-10)
	return helpers.Min(available, helpers.Min(screen/3, 15))
}

// Render renders the console panel
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Console")

	vp.Height = Height(height)

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(vp.Height + 2)

	if !ready {
		return border.Render(title + "\n\n" + spinnerView + " starting…")
	}

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n\n" + vp.View())
}
