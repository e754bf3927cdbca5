package mints

import (
	"fmt"
	"strings"

	"bns-tui/domains"
	"bns-tui/helpers"
	"bns-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// OpenSeaURL is where a minted domain can be viewed
const OpenSeaURL = "https://testnets.opensea.io/assets/mumbai/%s/%d"

// Entry is one rendered domain
type Entry struct {
	domains.Mint
	Editable bool
}

// Entries pairs every mint with whether account may edit it
func Entries(list []domains.Mint, account common.Address) []Entry {
	out := make([]Entry, 0, len(list))
	for _, m := range list {
		out = append(out, Entry{
			Mint:     m,
			Editable: account != (common.Address{}) && helpers.SameAddress(m.Owner.Hex(), account.Hex()),
		})
	}
	return out
}

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Width(30).
		Height(5).
		Background(styles.CPanel).
		Padding(0, 1).
		BorderStyle(lipgloss.HiddenBorder())
}

func cardFocusedStyle() lipgloss.Style {
	return cardStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CAccent)
}

func renderCard(e Entry, contract, tld string, focused bool) string {
	link := fmt.Sprintf(OpenSeaURL, contract, e.ID)
	name := lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(e.Name + tld)
	name = helpers.Hyperlink(link, name)

	if e.Editable {
		name += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render("✎")
	}

	record := e.Record
	if record == "" {
		record = "no record"
	}

	content := name + "\n" +
		lipgloss.NewStyle().Foreground(styles.CAccent2).Width(28).MaxHeight(2).Render(record) + "\n" +
		helpers.FadeString(helpers.ShortenAddr(e.Owner.Hex()), "#A3262A", "#E8C46B")

	if focused {
		return cardFocusedStyle().Render(content)
	}
	return cardStyle().Render(content)
}

// Render renders the recently minted domains in a grid
func Render(entries []Entry, selectedIdx int, contract, tld string, width int) string {
	h := styles.TitleStyle.Render("Recently minted domains!")

	columnsPerRow := helpers.Max(1, width/34)
	var rows []string
	for i := 0; i < len(entries); i += columnsPerRow {
		var rowCards []string
		for j := 0; j < columnsPerRow && i+j < len(entries); j++ {
			idx := i + j
			rowCards = append(rowCards, renderCard(entries[idx], contract, tld, idx == selectedIdx))
			if j < columnsPerRow-1 && idx+1 < len(entries) {
				rowCards = append(rowCards, "  ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return h + "\n\n" + strings.Join(rows, "\n")
}
