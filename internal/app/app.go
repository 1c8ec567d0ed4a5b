// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
	"github.com/abhisek/eternal/internal/screens/chat"
	"github.com/abhisek/eternal/internal/screens/intro"
	"github.com/abhisek/eternal/internal/screens/setup"
	"github.com/abhisek/eternal/internal/session"
	"github.com/abhisek/eternal/internal/ui/layout"
)

// Options configures the program.
type Options struct {
	// Settings prefill the setup form.
	Settings domain.Settings
	// SkipIntro opens the setup form directly.
	SkipIntro bool
	// AutoStart opens the chat with Settings without waiting for the form.
	AutoStart bool
}

// changes carries state-change signals from the controller to the program.
// Signals coalesce: one pending signal is enough to trigger a re-render.
type changes struct {
	signal chan struct{}
	done   chan struct{}
	cancel func()
}

func subscribe(ctrl *session.Controller) *changes {
	c := &changes{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	c.cancel = ctrl.Subscribe(func(conversation.Snapshot) {
		select {
		case c.signal <- struct{}{}:
		default:
		}
	})
	return c
}

// wait blocks until the next state change or until the program stops.
func (c *changes) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-c.signal:
			return screen.StateChangedMsg{}
		case <-c.done:
			return nil
		}
	}
}

func (c *changes) close() {
	c.cancel()
	close(c.done)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	changes   *changes
	autoStart screen.Screen
	width     int
	height    int
}

// newAppModel creates the root model. The setup form is the bottom of the
// screen stack; the intro is replaced by it once the splash finishes.
func newAppModel(ctx context.Context, ctrl *session.Controller, opts Options) AppModel {
	openChat := func(s domain.Settings) screen.Screen {
		return chat.New(ctx, ctrl, s)
	}
	form := setup.New(opts.Settings, openChat)

	root := screen.Screen(form)
	if !opts.SkipIntro && !opts.AutoStart {
		root = intro.New(func() screen.Screen { return form })
	}

	m := AppModel{
		router:  router.New(root),
		changes: subscribe(ctrl),
	}
	if opts.AutoStart {
		m.autoStart = openChat(opts.Settings)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.changes.wait()}
	if m.autoStart != nil {
		s := m.autoStart
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: s} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StateChangedMsg:
		return m, tea.Batch(m.changes.wait(), m.router.Update(msg))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.HeaderProvider); ok {
			status = hp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, ctrl *session.Controller, opts Options) error {
	m := newAppModel(ctx, ctrl, opts)
	defer m.changes.close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
