package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// sliderCells is the width of the speed slider.
const sliderCells = 20

// keyHint is one entry of the help line.
type keyHint struct {
	key   string
	label string
}

//nolint:gochecknoglobals // Static help lines.
var (
	panicHints = []keyHint{
		{"f", "flash"},
		{"←/→", "speed"},
		{"d", "screen flash"},
		{"p", "panic"},
		{"s", "settings"},
		{"q", "quit"},
	}

	settingsHints = []keyHint{
		{"0-9", "digits"},
		{"enter", "save"},
		{"esc", "back"},
	}
)

func (m Model) viewPanic() string {
	state := m.status.State
	bg, fg := strobeColors(m.status.Background)
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)

	rows := []string{
		StyleTitle.Inherit(base).Render("WALK BUDDY"),
		"",
		row(base, "Flash", onOff(state.IsFlashing)),
		row(base, "Speed", renderSlider(state.FlashSpeed)+fmt.Sprintf(" %.1fs", state.FlashSpeed)),
		row(base, "Screen flash", onOff(state.DisplayFlashEnabled)),
		row(base, "Torch", availability(m.status.TorchAvailable)),
		"",
		renderPanicButton(state.PanicActive),
	}

	body := lipgloss.JoinVertical(lipgloss.Center, rows...)

	return m.frame(body, bg, panicHints)
}

func (m Model) viewSettings() string {
	input := m.contactInput + "_"

	body := lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("EMERGENCY CONTACT"),
		"",
		"Phone number that receives the panic message:",
		StyleInput.Render(input),
	)

	return m.frame(body, ColorStrobeBlack, settingsHints)
}

// frame centers body on a full-screen background and adds the status bar.
func (m Model) frame(body string, bg lipgloss.Color, hints []keyHint) string {
	statusBar := m.renderStatusBar(hints)
	bodyHeight := max(m.height-lipgloss.Height(statusBar), 1)

	canvas := lipgloss.Place(
		m.width,
		bodyHeight,
		lipgloss.Center,
		lipgloss.Center,
		body,
		lipgloss.WithWhitespaceBackground(bg),
	)

	return lipgloss.JoinVertical(lipgloss.Left, canvas, statusBar)
}

func (m Model) renderStatusBar(hints []keyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, StyleKey.Render(h.key)+" "+StyleHelp.Render(h.label))
	}

	content := strings.Join(parts, "  ")

	if m.hasNotice {
		content = renderNotice(m.notice) + "  " + content
	}

	return StyleStatusBar.Width(m.width).MaxHeight(1).Render(content)
}

func renderNotice(notice safety.Notice) string {
	if notice.Kind == safety.NoticeInfo && notice.Err == nil {
		return StyleNoticeInfo.Render(notice.Message)
	}

	return StyleNoticeWarning.Render(notice.Message)
}

func renderPanicButton(active bool) string {
	if active {
		return StylePanicButtonActive.Render("PANIC ACTIVE")
	}

	return StylePanicButton.Render("PANIC")
}

// renderSlider draws the speed position between the min and max speed.
func renderSlider(speed float64) string {
	span := safety.MaxFlashSpeed - safety.MinFlashSpeed
	pos := int((speed - safety.MinFlashSpeed) / span * float64(sliderCells-1))
	pos = min(max(pos, 0), sliderCells-1)

	return "[" + strings.Repeat("─", pos) + "●" + strings.Repeat("─", sliderCells-1-pos) + "]"
}

func row(base lipgloss.Style, label, value string) string {
	return StyleLabel.Inherit(base).Render(label) + base.Render(value)
}

func onOff(on bool) string {
	if on {
		return StyleOn.Render("ON")
	}

	return StyleOff.Render("OFF")
}

func availability(ok bool) string {
	if ok {
		return StyleOn.Render("ready")
	}

	return StyleOff.Render("not found")
}

// strobeColors maps the controller background to terminal colors.
func strobeColors(c safety.Color) (bg, fg lipgloss.Color) {
	if c == safety.ColorWhite {
		return ColorStrobeWhite, ColorStrobeBlack
	}

	return ColorStrobeBlack, ColorStrobeWhite
}
