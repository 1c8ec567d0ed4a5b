// Package dashboard implements the teacher view of the latest turn analysis.
package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
	"github.com/abhisek/eternal/internal/ui/layout"
	"github.com/abhisek/eternal/internal/ui/theme"
)

// Source provides the session state to display.
type Source interface {
	Snapshot() conversation.Snapshot
}

// DashboardScreen renders the pedagogical analysis of the most recent
// successful turn. It reads state on every render.
type DashboardScreen struct {
	src Source
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a dashboard backed by src.
func New(src Source) *DashboardScreen {
	return &DashboardScreen{src: src}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Teacher Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+T", Description: "Back to dialogue"},
		{Key: "Ctrl+R", Description: "New figure"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "ctrl+t":
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	case "ctrl+r":
		// Closing the dialogue underneath resets the session.
		return d, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	snap := d.src.Snapshot()
	inner := width - 8
	if inner < 20 {
		inner = 20
	}

	a := snap.LatestAnalysis
	var body string
	if a == nil {
		body = theme.Hint.Render("No analysis yet. The dashboard fills in after the first answered question.")
	} else {
		body = strings.Join([]string{
			field("Persona", persona(a), inner),
			field("Student Emotion", a.EmotionTag, inner),
			field("Student Focus", a.StudentFocus, inner),
			field("Possible Confusion", orPlaceholder(a.PossibleConfusion, "None detected."), inner),
			knowledge(a.KnowledgeCovered, inner),
			field("Teacher Note", a.TeacherNote, inner),
			field("Suggested Follow-up", a.FollowUpQuestion, inner),
		}, "\n\n")
	}

	title := theme.Title.Width(inner).Render("Learning Analysis")
	card := theme.Card.Width(width - 4).Render(title + "\n\n" + body)
	return lipgloss.NewStyle().Width(width).Height(height).Render(card)
}

func field(label, value string, width int) string {
	return theme.Label.Render(label) + "\n" + theme.Body.Width(width).Render(value)
}

func knowledge(items []string, width int) string {
	if len(items) == 0 {
		return field("Knowledge Covered", "None recorded", width)
	}
	lines := make([]string, 0, len(items))
	for _, k := range items {
		lines = append(lines, theme.Body.Width(width).Render("• "+k))
	}
	return theme.Label.Render("Knowledge Covered") + "\n" + strings.Join(lines, "\n")
}

func persona(a *domain.TurnResponse) string {
	if a.PersonaStyle == "" {
		return a.PersonaName
	}
	return a.PersonaName + " · " + a.PersonaStyle
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
