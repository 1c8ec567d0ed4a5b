// Package intro renders the opening splash before the setup form.
package intro

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
	"github.com/abhisek/eternal/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const hourglassArt = `  ╔═══════╗
   ╲ ░░░ ╱
    ╲ ░ ╱
     ╲ ╱
     ╱ ╲
    ╱ . ╲
   ╱ ... ╲
  ╚═══════╝`

// sand frames trickle through the hourglass neck
var sandFrames = []string{"·", "∙", "•"}

const tagline = "Speak with the voices of history."

type tickMsg time.Time

// IntroScreen shows a splash animation before handing over to setup.
type IntroScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*IntroScreen)(nil)

// New creates an IntroScreen that will be replaced by the screen next returns.
func New(next func() screen.Screen) *IntroScreen {
	return &IntroScreen{next: next}
}

func (w *IntroScreen) Title() string {
	return ""
}

func (w *IntroScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *IntroScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	nextScreen := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (w *IntroScreen) View(width, height int) string {
	var sections []string

	art := hourglassArt
	if w.elapsed >= phase1End {
		grain := sandFrames[w.tickCount%len(sandFrames)]
		lines := strings.Split(art, "\n")
		if len(lines) > 4 {
			lines[4] = strings.Replace(lines[4], "╱ ╲", "╱"+grain+"╲", 1)
		}
		art = strings.Join(lines, "\n")
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Render(art))

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(tagline))
		sections = append(sections, "", theme.Hint.Render("press any key to begin"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
