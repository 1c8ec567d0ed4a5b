// Package chat implements the conversation screen.
package chat

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
	"github.com/abhisek/eternal/internal/screens/dashboard"
	"github.com/abhisek/eternal/internal/session"
	"github.com/abhisek/eternal/internal/ui/components"
	"github.com/abhisek/eternal/internal/ui/layout"
)

// ChatScreen shows the transcript, the persona sidebar and the message
// input for one session. Popping it ends the session.
type ChatScreen struct {
	ctrl     *session.Controller
	settings domain.Settings
	ctx      context.Context

	input    components.TextInput
	spinner  spinner.Model
	viewport viewport.Model
	ticking  bool
	startErr string

	// renderedCount is the message count last written to the viewport.
	renderedCount int
	renderedWidth int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)
var _ screen.HeaderProvider = (*ChatScreen)(nil)

// New creates a chat screen that starts a session with settings on Init.
func New(ctx context.Context, ctrl *session.Controller, settings domain.Settings) *ChatScreen {
	return &ChatScreen{
		ctrl:     ctrl,
		settings: settings,
		ctx:      ctx,
		input:    components.NewTextInput("Ask your question...", 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	c.ticking = true
	return tea.Batch(c.input.Init(), c.startSession(), c.spinner.Tick)
}

func (c *ChatScreen) Title() string {
	return "Dialogue"
}

func (c *ChatScreen) HeaderStatus() string {
	return fmt.Sprintf("%s · %s  ", c.settings.TargetPerson, c.settings.Language)
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+T", Description: "Teacher view"},
		{Key: "Ctrl+R", Description: "New figure"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Close ends the session so the setup form reopens.
func (c *ChatScreen) Close() tea.Cmd {
	c.ctrl.Reset()
	return nil
}

func (c *ChatScreen) startSession() tea.Cmd {
	ctrl, ctx, settings := c.ctrl, c.ctx, c.settings
	return func() tea.Msg {
		return sessionStartedMsg{Err: ctrl.StartSession(ctx, settings)}
	}
}

func (c *ChatScreen) sendMessage(text string) tea.Cmd {
	ctrl, ctx := c.ctrl, c.ctx
	return func() tea.Msg {
		return turnDoneMsg{Accepted: ctrl.SendMessage(ctx, text)}
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmds []tea.Cmd
	if !c.ticking {
		c.ticking = true
		cmds = append(cmds, c.spinner.Tick)
	}

	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.Err != nil {
			c.startErr = msg.Err.Error()
		}
		return c, tea.Batch(cmds...)

	case turnDoneMsg:
		return c, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, tea.Batch(append(cmds, cmd)...)

	case tea.KeyPressMsg:
		return c.handleKey(msg, cmds)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, tea.Batch(append(cmds, cmd)...)
}

func (c *ChatScreen) handleKey(msg tea.KeyPressMsg, cmds []tea.Cmd) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		// The dashboard swallows spinner ticks while it is on top.
		c.ticking = false
		dash := dashboard.New(c.ctrl)
		return c, func() tea.Msg { return router.PushScreenMsg{Screen: dash} }

	case "ctrl+r":
		return c, func() tea.Msg { return router.PopScreenMsg{} }

	case "pgup":
		c.viewport.PageUp()
		return c, tea.Batch(cmds...)

	case "pgdown":
		c.viewport.PageDown()
		return c, tea.Batch(cmds...)

	case "enter":
		if c.input.Blank() || !c.canSend() {
			return c, tea.Batch(cmds...)
		}
		text := c.input.Value()
		c.input.Clear()
		return c, tea.Batch(append(cmds, c.sendMessage(text))...)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, tea.Batch(append(cmds, cmd)...)
}

// canSend mirrors the controller's guard so typed text is only cleared when
// the message will be accepted.
func (c *ChatScreen) canSend() bool {
	snap := c.ctrl.Snapshot()
	return snap.Phase == conversation.PhaseReady && !snap.Loading()
}
