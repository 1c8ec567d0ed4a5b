package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternal/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own state which must be released
// when they are popped off the stack.
type Closer interface {
	Close() tea.Cmd
}

// HeaderProvider lets a screen supply the right-hand header text.
type HeaderProvider interface {
	HeaderStatus() string
}

// StateChangedMsg is delivered to the active screen whenever the session
// state changes outside the UI loop.
type StateChangedMsg struct{}
