package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/service/strobe"
)

// Controller is the strobe controller as seen by the UI.
type Controller interface {
	ToggleFlash(ctx context.Context)
	SetFlashSpeed(ctx context.Context, seconds float64) error
	SetDisplayFlashEnabled(ctx context.Context, enabled bool)
	TogglePanicMode(ctx context.Context)
	Status() strobe.Status
}

// ContactStore reads and writes the emergency contact.
type ContactStore interface {
	GetContact(ctx context.Context) string
	SetContact(ctx context.Context, contact string) error
}

// screen selects what the model renders.
type screen int

const (
	screenPanic screen = iota
	screenSettings
)

// maxContactDigits is the longest number E.164 allows.
const maxContactDigits = 15

// shared holds state shared between the Bubble Tea model copies.
// Bubble Tea uses value receivers, so pointer fields keep every copy on the
// same controller and store.
type shared struct {
	ctx        context.Context //nolint:containedctx // Key handlers have no context of their own.
	controller Controller
	store      ContactStore
	notices    *NoticeQueue
}

// Model is the root Bubble Tea model.
type Model struct {
	width  int
	height int

	screen screen
	status strobe.Status

	// notice is the latest notice shown in the status bar.
	notice    safety.Notice
	hasNotice bool

	// contactInput is the settings form buffer.
	contactInput string

	shared *shared
}

// New creates the root model. notices may be nil.
func New(ctx context.Context, controller Controller, store ContactStore, notices *NoticeQueue) Model {
	return Model{
		screen: screenPanic,
		status: controller.Status(),
		shared: &shared{
			ctx:        ctx,
			controller: controller,
			store:      store,
			notices:    notices,
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), m.shared.notices.wait())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.screen == screenSettings {
			return m.handleSettingsKey(msg)
		}

		return m.handlePanicKey(msg)

	case frameMsg:
		m.status = m.shared.controller.Status()

		return m, frameCmd()

	case noticeMsg:
		m = m.withNotice(safety.Notice(msg))

		return m, m.shared.notices.wait()

	case panicToggledMsg:
		m.status = m.shared.controller.Status()

		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting walk-buddy..."
	}

	if m.screen == screenSettings {
		return m.viewSettings()
	}

	return m.viewPanic()
}

func (m Model) handlePanicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.shared.ctx
	controller := m.shared.controller

	var cmd tea.Cmd

	switch msg.String() {
	case "q", "Q":
		return m, tea.Quit

	case "f", "F", " ":
		controller.ToggleFlash(ctx)

	case "left", "h", "-":
		m = m.stepSpeed(-1)

	case "right", "l", "+":
		m = m.stepSpeed(1)

	case "d", "D":
		controller.SetDisplayFlashEnabled(ctx, !controller.Status().State.DisplayFlashEnabled)

	case "p", "P":
		// Engaging panic mode waits on the alarm and the message sender.
		cmd = togglePanicCmd(ctx, controller)

	case "s", "S":
		m.screen = screenSettings
		m.contactInput = m.shared.store.GetContact(ctx)
	}

	m.status = controller.Status()

	return m, cmd
}

// stepSpeed moves the speed slider by steps.
// The controller reports a rejected speed through the notice queue.
func (m Model) stepSpeed(steps int) Model {
	current := m.shared.controller.Status().State.FlashSpeed

	_ = m.shared.controller.SetFlashSpeed(m.shared.ctx, safety.StepFlashSpeed(current, steps))

	return m
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenPanic

	case tea.KeyEnter:
		m = m.saveContact()

	case tea.KeyBackspace:
		if n := len(m.contactInput); n > 0 {
			m.contactInput = m.contactInput[:n-1]
		}

	case tea.KeyRunes:
		m.contactInput = appendDigits(m.contactInput, msg.Runes)
	}

	return m, nil
}

// saveContact stores the form value and returns to the panic screen.
// An empty form leaves the stored contact unchanged.
func (m Model) saveContact() Model {
	ctx := m.shared.ctx

	if err := m.shared.store.SetContact(ctx, m.contactInput); err != nil {
		return m.withNotice(safety.NoticeFromError("Contact could not be saved", err))
	}

	m.screen = screenPanic
	m.contactInput = ""

	return m.withNotice(safety.Notice{
		Kind:    safety.NoticeInfo,
		Message: "Emergency contact: " + m.shared.store.GetContact(ctx),
	})
}

func (m Model) withNotice(notice safety.Notice) Model {
	m.notice = notice
	m.hasNotice = true

	return m
}

// appendDigits keeps only ASCII digits, up to maxContactDigits.
func appendDigits(input string, runes []rune) string {
	buf := []byte(input)

	for _, r := range runes {
		if r < '0' || r > '9' || len(buf) >= maxContactDigits {
			continue
		}

		buf = append(buf, byte(r))
	}

	return string(buf)
}
