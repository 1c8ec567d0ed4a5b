package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling and an inline error.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	errMsg   string
}

// NewTextInput creates a new focused, styled text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Any edit clears the inline error.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.errMsg = ""
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the value is empty after trimming.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetWidth sets the visible width of the input.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// Clear empties the input after a successful submit.
func (t *TextInput) Clear() {
	t.Model.Reset()
	t.errMsg = ""
}

// SetError shows msg under the input until the next key press.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Error returns the inline error, if any.
func (t TextInput) Error() string {
	return t.errMsg
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
