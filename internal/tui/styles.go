// Package tui implements the Bubble Tea TUI for scribe.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/scribe/internal/styles"
)

var (
	menuBarStyle = lipgloss.NewStyle().
			Background(styles.ColorMuted).
			Foreground(styles.ColorWhite)

	menuLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue).
			Background(styles.ColorMuted).
			Padding(0, 1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			Background(styles.ColorMuted).
			Padding(0, 1)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Background(styles.ColorMuted)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(1)

	statusDirtyStyle = lipgloss.NewStyle().
				Foreground(styles.ColorYellow)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(styles.ColorMuted).
			PaddingRight(1)

	editorStyle = lipgloss.NewStyle().
			PaddingLeft(1)
)

// Dialog styles.
var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.ColorWhite)

	dialogHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(styles.ColorMuted).
			Foreground(lipgloss.Color("#a9b1d6"))

	buttonPrimaryStyle = buttonStyle.
				Underline(true)

	buttonSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(styles.ColorBlue).
				Foreground(styles.ColorDark).
				Bold(true)
)
