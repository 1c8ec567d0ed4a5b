package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/ui/layout"
	"github.com/abhisek/eternal/internal/ui/theme"
)

func (c *ChatScreen) View(width, height int) string {
	snap := c.ctrl.Snapshot()
	sideW, mainW := layout.SplitWidth(width)

	status := c.statusLine(snap)
	inputView := c.input.View()
	transcriptH := height - lipgloss.Height(status) - lipgloss.Height(inputView) - 2
	if transcriptH < 3 {
		transcriptH = 3
	}
	c.syncViewport(snap, mainW, transcriptH)

	main := lipgloss.JoinVertical(lipgloss.Left,
		c.viewport.View(),
		"",
		status,
		inputView,
	)

	sidebar := theme.Sidebar.
		Width(sideW).
		Height(height - 2).
		Render(renderSidebar(snap, sideW-4))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
}

// syncViewport rewrites the transcript when new messages arrived or the
// width changed, keeping the view pinned to the latest message.
func (c *ChatScreen) syncViewport(snap conversation.Snapshot, width, height int) {
	c.viewport.SetWidth(width)
	c.viewport.SetHeight(height)
	c.input.SetWidth(width - 4)

	if len(snap.Messages) == c.renderedCount && width == c.renderedWidth {
		return
	}
	c.viewport.SetContent(renderTranscript(snap, width))
	c.viewport.GotoBottom()
	c.renderedCount = len(snap.Messages)
	c.renderedWidth = width
}

func (c *ChatScreen) statusLine(snap conversation.Snapshot) string {
	switch {
	case c.startErr != "":
		return theme.ErrorText.Render("✗ " + c.startErr)
	case snap.Phase == conversation.PhaseProfilePending:
		return theme.Loading.Render(fmt.Sprintf("%s Summoning %s...", c.spinner.View(), c.settings.TargetPerson))
	case snap.Loading():
		return theme.Loading.Render(c.spinner.View() + " Consulting the archives...")
	case snap.Status == conversation.StatusError:
		return theme.Hint.Render("The last question went unanswered. You may ask again.")
	}
	return theme.Hint.Render("Ask anything about their life and times.")
}

func renderTranscript(snap conversation.Snapshot, width int) string {
	persona := snap.Settings.TargetPerson
	if snap.Profile != nil {
		persona = snap.Profile.Name
	}
	body := theme.Body.Width(width)

	var b strings.Builder
	for i, m := range snap.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == domain.RoleUser {
			b.WriteString(theme.StudentName.Render("You"))
			b.WriteString("\n")
			b.WriteString(body.Render(m.Content))
			continue
		}
		b.WriteString(theme.PersonaName.Render(persona))
		b.WriteString("\n")
		if m.Content == conversation.UnreachableText {
			b.WriteString(theme.Unreachable.Width(width).Render(m.Content))
			continue
		}
		b.WriteString(body.Render(m.Content))
	}
	return b.String()
}

func renderSidebar(snap conversation.Snapshot, width int) string {
	p := snap.Profile
	if p == nil {
		return theme.Hint.Render("Awaiting a visitor from the past...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(portraitFor(p)))
	b.WriteString("\n\n")
	b.WriteString(theme.PersonaName.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(p.Era))
	b.WriteString("\n\n")
	b.WriteString(theme.Quote.Width(width).Render("“" + p.BioQuote + "”"))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Achievements"))
	for _, a := range p.KeyAchievements {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width).Render("• " + a))
	}
	return b.String()
}
