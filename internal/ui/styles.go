package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorStrobeBlack = lipgloss.Color("#000000")
	ColorStrobeWhite = lipgloss.Color("#FFFFFF")
	ColorPanic       = lipgloss.Color("#D7263D")
	ColorPanicDim    = lipgloss.Color("#5C1A22")
	ColorAccent      = lipgloss.Color("#F4D35E")
	ColorMuted       = lipgloss.Color("#8A8A8A")
	ColorOK          = lipgloss.Color("#3BB273")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorBar         = lipgloss.Color("#1F1F1F")
)

// Pre-built styles.
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Width(16)

	StyleKey = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleOn = lipgloss.NewStyle().
		Foreground(ColorOK).
		Bold(true)

	StyleOff = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StylePanicButton = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorPanic).
				Foreground(ColorPanic).
				Bold(true).
				Padding(0, 4)

	StylePanicButtonActive = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorPanic).
				Background(ColorPanic).
				Foreground(ColorStrobeWhite).
				Bold(true).
				Padding(0, 4)

	StyleInput = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1).
			Width(24)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorStrobeWhite).
			Padding(0, 1)

	StyleNoticeInfo = lipgloss.NewStyle().
			Foreground(ColorOK)

	StyleNoticeWarning = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
