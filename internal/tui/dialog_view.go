package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/hay-kot/scribe/internal/dialog"
)

const defaultDialogWidth = 56

func dialogZone(id int) string {
	return fmt.Sprintf("dialog-%d", id)
}

func buttonZone(id int, button string) string {
	return fmt.Sprintf("dialog-%d-button-%s", id, button)
}

// defaultSelection is the button a dialog opens with: its primary button,
// else the last one.
func defaultSelection(v dialog.View) int {
	for i, b := range v.Buttons {
		if b.Primary {
			return i
		}
	}
	return len(v.Buttons) - 1
}

// dialogChrome is the number of lines around the body: border, padding,
// title, button row and help line.
const dialogChrome = 10

// dialogLayout is the per-frame state a dialog is drawn with.
type dialogLayout struct {
	selected  int // selected button index
	offset    int // first visible body line
	maxWidth  int // screen size, zero when unknown
	maxHeight int
}

// renderDialog draws v as a bordered box. The box and every button are
// marked as mouse zones. Bodies taller than the screen allows are shown
// through a scrolling viewport; the returned offset is the clamped scroll
// position.
func renderDialog(v dialog.View, layout dialogLayout, md *markdown) (string, int) {
	width := v.Width
	if width <= 0 {
		width = defaultDialogWidth
	}
	if layout.maxWidth > 0 && width > layout.maxWidth-6 {
		width = max(layout.maxWidth-6, 10)
	}
	selected := layout.selected
	offset := 0

	buttons := make([]string, 0, len(v.Buttons)*2)
	for i, b := range v.Buttons {
		style := buttonStyle
		if b.Primary {
			style = buttonPrimaryStyle
		}
		if i == selected {
			style = buttonSelectedStyle
		}
		if i > 0 {
			buttons = append(buttons, "  ")
		}
		buttons = append(buttons, zone.Mark(buttonZone(v.ID, b.ID), style.Render(b.Label)))
	}
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	parts := make([]string, 0, 4)
	if v.Title != "" {
		parts = append(parts, dialogTitleStyle.Render(v.Title))
	}
	help := "tab select  space activate  enter confirm  esc close"
	if v.Body != "" {
		body := md.Render(v.Body, width)
		limit := layout.maxHeight - dialogChrome
		if layout.maxHeight > 0 && lipgloss.Height(body) > max(limit, 3) {
			vp := viewport.New(width, max(limit, 3))
			vp.SetContent(body)
			vp.SetYOffset(layout.offset)
			offset = vp.YOffset
			body = vp.View()
			help = fmt.Sprintf("%3.f%%  pgup/pgdown scroll  ", vp.ScrollPercent()*100) + help
		}
		parts = append(parts, body)
	}
	parts = append(parts, buttonRow, dialogHelpStyle.Render(help))

	box := dialogStyle.Width(width + 4).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return zone.Mark(dialogZone(v.ID), box), offset
}

// overlay centers box on a screen of the given size. Bubble Tea v1 has no
// layer compositing, so the dialog replaces the editor while it is open.
func overlay(box string, width, height int) string {
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
