package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered over a desaturated main view.
// Rows covered by the modal are replaced wholesale; the grey base shows
// above and below it.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	baseLines := strings.Split(desaturateANSI(mainContent), "\n")
	popupLines := strings.Split(styledPopup, "\n")

	// Pad the base to the full terminal height
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	if len(baseLines) > height {
		baseLines = baseLines[:height]
	}

	popupW := lipgloss.Width(styledPopup)
	top := (height - len(popupLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - popupW) / 2
	if left < 0 {
		left = 0
	}
	indent := strings.Repeat(" ", left)

	out := make([]string, len(baseLines))
	copy(out, baseLines)
	for i, line := range popupLines {
		row := top + i
		if row >= len(out) {
			break
		}
		out[row] = indent + line
	}

	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}
