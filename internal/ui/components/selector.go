package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/ui/theme"
)

// SelectorOption is one choice in a Selector.
type SelectorOption struct {
	Label string
	Value string
}

// Selector is a labelled single-choice row cycled with left/right.
type Selector struct {
	Label    string
	Options  []SelectorOption
	Selected int
	Focused  bool
}

// NewSelector creates a selector with the option whose Value equals value
// selected, or the first option if none matches.
func NewSelector(label string, options []SelectorOption, value string) Selector {
	s := Selector{Label: label, Options: options}
	s.SetValue(value)
	return s
}

// Init returns nil (no initial command).
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Options) == 0 {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
	}

	return s, nil
}

// Value returns the selected option's value.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected].Value
}

// SetValue selects the option with the given value, if present.
func (s *Selector) SetValue(value string) {
	for i, o := range s.Options {
		if o.Value == value {
			s.Selected = i
			return
		}
	}
}

// View renders the selector.
func (s Selector) View() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = theme.Label
	}
	b.WriteString(labelStyle.Render(s.Label))
	b.WriteString("\n")

	parts := make([]string, 0, len(s.Options))
	for i, o := range s.Options {
		if i == s.Selected {
			style := theme.Unselected.Bold(true)
			if s.Focused {
				style = theme.Selected
			}
			parts = append(parts, style.Render("▸ "+o.Label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+o.Label))
		}
	}
	b.WriteString(strings.Join(parts, "  "))

	return b.String()
}
