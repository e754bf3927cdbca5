package home

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"bns-tui/domains"
	"bns-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Form field storage (package-level to avoid pointer-to-copy issues)
var (
	TempName   string
	TempRecord string
	TempSubmit bool
)

// CreateForm builds the mint form, or the record form when d.Editing
func CreateForm(d domains.Draft, tld string) *huh.Form {
	TempName = d.Name
	TempRecord = d.Record
	TempSubmit = true

	record := huh.NewInput().
		Title("Record").
		Placeholder("Whats ur assassin power?").
		Value(&TempRecord)

	var group *huh.Group
	if d.Editing {
		record = record.
			Description("New record for " + d.Name + tld).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return domains.ErrEmptyRecord
				}
				return nil
			})
		group = huh.NewGroup(
			record,
			huh.NewConfirm().
				Affirmative("Set record").
				Negative("Cancel").
				Value(&TempSubmit),
		)
	} else {
		group = huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Placeholder("domain").
				DescriptionFunc(func() string { return priceLine(TempName, tld) }, &TempName).
				Value(&TempName).
				Validate(domains.ValidateName),
			record,
			huh.NewConfirm().
				Affirmative("Mint").
				Negative("Clear").
				Value(&TempSubmit),
		)
	}

	form := huh.NewForm(group).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
	form.Init()
	return form
}

// Draft returns what the completed form holds
func Draft(editing bool) domains.Draft {
	return domains.Draft{
		Name:    strings.TrimSpace(TempName),
		Record:  TempRecord,
		Editing: editing,
	}
}

func priceLine(name, tld string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name" + tld
	}
	return fmt.Sprintf("%s%s · %d chars · %s MATIC", name, tld, utf8.RuneCountInString(name), domains.Price(name).String())
}

// Render renders the form panel
func Render(form *huh.Form, editing, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Mint a domain")
	if editing {
		h = styles.TitleStyle.Render("Update record")
	}
	if loading {
		return h + "\n\n" + spinnerView + " waiting for the transaction to be mined…"
	}
	if form == nil {
		return h
	}
	return h + "\n\n" + form.View()
}

// RenderConnect renders the prompt shown until a wallet is authorised
func RenderConnect(focused bool) string {
	h := styles.TitleStyle.Render("Welcome, brother")
	sub := styles.MutedStyle.Render("Connect a wallet to mint and browse domains.")
	return h + "\n\n" + sub + "\n\n" + styles.Button("Connect Wallet", focused)
}

// RenderSwitch renders the prompt shown on the wrong network
func RenderSwitch(current, required string) string {
	if current == "" {
		current = "an unknown network"
	}
	msg := styles.WarnStyle.Render("Please connect to " + required)
	sub := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Your wallet is on " + current + ".")
	return msg + "\n" + sub + "\n\n" + styles.Button("Click here to switch", true)
}

// Nav returns the navigation bar for home view
func Nav(width int, connected, onNetwork, formFocused, editing bool) string {
	var keys []string
	switch {
	case !connected:
		keys = []string{
			styles.Key("Enter") + " connect",
		}
	case !onNetwork:
		keys = []string{
			styles.Key("Enter") + " switch network",
			styles.Key("n") + " networks",
		}
	case formFocused && editing:
		keys = []string{
			styles.Key("Tab") + " next",
			styles.Key("Esc") + " cancel edit",
		}
	case formFocused:
		keys = []string{
			styles.Key("Tab") + " next",
			styles.Key("Esc") + " to list",
		}
	default:
		keys = []string{
			styles.Key("↑/↓") + " select",
			styles.Key("e") + " edit",
			styles.Key("f") + " form",
			styles.Key("r") + " refresh",
			styles.Key("t") + " last tx",
			styles.Key("a") + " account",
			styles.Key("n") + " networks",
		}
	}
	if !formFocused || !connected || !onNetwork {
		keys = append(keys, styles.Key("l")+" logger", styles.Key("q")+" quit")
	}
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}
