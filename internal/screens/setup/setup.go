// Package setup implements the session setup form.
package setup

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
	"github.com/abhisek/eternal/internal/ui/components"
	"github.com/abhisek/eternal/internal/ui/layout"
	"github.com/abhisek/eternal/internal/ui/theme"
)

const formWidth = 64

type field int

const (
	fieldPerson field = iota
	fieldGrade
	fieldLanguage
	fieldBegin
	fieldCount
)

// SetupScreen collects the simulation settings and opens the chat.
type SetupScreen struct {
	person   components.TextInput
	grade    components.Selector
	language components.Selector
	begin    components.Button
	focus    field
	formErr  string
	openChat func(domain.Settings) screen.Screen
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup form prefilled with initial. openChat builds the
// chat screen for validated settings.
func New(initial domain.Settings, openChat func(domain.Settings) screen.Screen) *SetupScreen {
	s := &SetupScreen{
		person:   components.NewTextInput("e.g. Qin Shi Huang, Cleopatra, Leonardo da Vinci", 80),
		grade:    components.NewSelector("Student grade", gradeOptions(), initial.StudentGrade),
		language: components.NewSelector("Reply language", languageOptions(), initial.Language),
		openChat: openChat,
	}
	s.person.SetValue(initial.TargetPerson)
	s.person.SetWidth(formWidth - 4)
	s.begin = components.NewButton("Begin Dialogue", s.submit)
	s.setFocus(fieldPerson)
	return s
}

func gradeOptions() []components.SelectorOption {
	opts := make([]components.SelectorOption, 0, len(domain.Grades))
	for _, g := range domain.Grades {
		opts = append(opts, components.SelectorOption{Label: g, Value: g})
	}
	return opts
}

func languageOptions() []components.SelectorOption {
	opts := make([]components.SelectorOption, 0, len(domain.Languages))
	for _, l := range domain.Languages {
		opts = append(opts, components.SelectorOption{Label: l.Label, Value: l.Tag})
	}
	return opts
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.person.Init()
}

func (s *SetupScreen) Title() string {
	return "New Dialogue"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change option"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Settings returns the settings currently entered in the form.
func (s *SetupScreen) Settings() domain.Settings {
	return domain.Settings{
		TargetPerson: strings.TrimSpace(s.person.Value()),
		StudentGrade: s.grade.Value(),
		Language:     s.language.Value(),
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.focus == fieldPerson {
			var cmd tea.Cmd
			s.person, cmd = s.person.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus == fieldBegin {
			var cmd tea.Cmd
			s.begin, cmd = s.begin.Update(msg)
			return s, cmd
		}
		return s, s.submit()
	}

	s.formErr = ""
	var cmd tea.Cmd
	switch s.focus {
	case fieldPerson:
		s.person, cmd = s.person.Update(msg)
	case fieldGrade:
		s.grade, cmd = s.grade.Update(msg)
	case fieldLanguage:
		s.language, cmd = s.language.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.grade.Focused = f == fieldGrade
	s.language.Focused = f == fieldLanguage
	s.begin.Focused = f == fieldBegin
	if f == fieldPerson {
		return s.person.Focus()
	}
	s.person.Blur()
	return nil
}

// submit validates the form and opens the chat. Invalid input is reported
// inline and nothing is started.
func (s *SetupScreen) submit() tea.Cmd {
	settings := s.Settings()
	if err := settings.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.Field == "target person" {
			s.person.SetError("Enter the name of a historical figure.")
			return s.setFocus(fieldPerson)
		}
		s.formErr = err.Error()
		return nil
	}

	chat := s.openChat(settings)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: chat}
	}
}

func (s *SetupScreen) View(width, height int) string {
	w := min(formWidth, width-4)

	var b strings.Builder
	b.WriteString(theme.Title.Width(w).Render("Who would you like to meet?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(w).Render("Choose a figure from history and set up the conversation."))
	b.WriteString("\n\n")

	personLabel := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == fieldPerson {
		personLabel = theme.Label
	}
	b.WriteString(personLabel.Render("Historical figure"))
	b.WriteString("\n")
	b.WriteString(s.person.View())
	b.WriteString("\n\n")
	b.WriteString(s.grade.View())
	b.WriteString("\n\n")
	b.WriteString(s.language.View())
	b.WriteString("\n\n")
	b.WriteString(s.begin.View())

	if s.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.formErr))
	}

	card := theme.Card.Width(w).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
