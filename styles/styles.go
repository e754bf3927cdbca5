package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0D0B0B") // ash black
	CPanel   = lipgloss.Color("#171213") // slightly lighter
	CBorder  = lipgloss.Color("#A3262A") // creed red
	CMuted   = lipgloss.Color("#9A8F8C")
	CText    = lipgloss.Color("#EDE6E3")
	CAccent  = lipgloss.Color("#E8C46B") // gold
	CAccent2 = lipgloss.Color("#C9D6E3") // steel
	CWarn    = lipgloss.Color("#FF7B5C") // ember
	CError   = lipgloss.Color("#FF3B3B")
	CPolygon = lipgloss.Color("#8247E5")
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	WarnStyle = lipgloss.NewStyle().
			Foreground(CWarn).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#5C4F4D")).
			Padding(0, 3)

	ActiveButtonStyle = ButtonStyle.
				Background(CBorder).
				Underline(true)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Button renders a button, highlighted when focused
func Button(label string, focused bool) string {
	if focused {
		return ActiveButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}
