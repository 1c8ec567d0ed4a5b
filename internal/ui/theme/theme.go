package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: parchment and ink with an imperial gold accent.
var (
	Primary   = lipgloss.Color("#D4A017") // Imperial Gold
	Secondary = lipgloss.Color("#7FB3D5") // Faded Lapis
	Error     = lipgloss.Color("#E74C3C") // Vermilion
	Text      = lipgloss.Color("#F5EBDC") // Parchment
	TextDim   = lipgloss.Color("#A39887") // Aged Paper
	BgDark    = lipgloss.Color("#1B1410") // Ink
	BgCard    = lipgloss.Color("#2B211A") // Walnut
	Border    = lipgloss.Color("#5D4A3A") // Bronze
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Quote = lipgloss.NewStyle().
		Foreground(Text).
		Italic(true)
)

// Frame
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Footer = Header

	Brand = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	KeyName = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Loading = lipgloss.NewStyle().
		Foreground(Primary).
		Italic(true)
)

// Chat
var (
	StudentName = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PersonaName = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unreachable = lipgloss.NewStyle().
			Foreground(Error).
			Italic(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
