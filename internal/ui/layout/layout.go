// Package layout composes the application frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eternal/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Below this width the chat sidebar shrinks.
const compactWidth = 100

const minSidebar = 24

// KeyHint is one entry in the footer, e.g. {"enter", "Send"}.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("The archive needs more room.\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height))
}

// RenderHeader draws the app name on the left, the screen title centred
// and status (persona and language) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-theme.Header.GetHorizontalFrameSize(), 0)

	brand := theme.Brand.Render("Eternal Dialogue")
	right := theme.Hint.UnsetItalic().Render(status)
	middle := lipgloss.PlaceHorizontal(
		max(inner-lipgloss.Width(brand)-lipgloss.Width(right), 0),
		lipgloss.Center,
		theme.Body.Render(title),
	)

	return theme.Header.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, brand, middle, right))
}

// RenderFooter draws the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.KeyName.Render(h.Key) + " " + theme.Hint.UnsetItalic().Render(h.Description)
	}
	return theme.Footer.Width(width).Render(strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// SplitWidth divides width into the persona sidebar and the transcript
// column, leaving one column of gutter.
func SplitWidth(width int) (sidebar, main int) {
	sidebar = width / 3
	if width < compactWidth {
		sidebar = width / 4
	}
	sidebar = max(sidebar, minSidebar)
	return sidebar, max(width-sidebar-1, 0)
}
