package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/service/strobe"
)

// fakeController records UI calls and keeps a plain state.
type fakeController struct {
	status   strobe.Status
	calls    []string
	speedErr error
}

func newFakeController() *fakeController {
	return &fakeController{
		status: strobe.Status{State: safety.NewStrobeState()},
	}
}

func (f *fakeController) ToggleFlash(context.Context) {
	f.calls = append(f.calls, "flash")
	f.status.State.IsFlashing = !f.status.State.IsFlashing
}

func (f *fakeController) SetFlashSpeed(_ context.Context, seconds float64) error {
	f.calls = append(f.calls, "speed")

	if f.speedErr != nil {
		return f.speedErr
	}

	f.status.State.FlashSpeed = seconds

	return nil
}

func (f *fakeController) SetDisplayFlashEnabled(_ context.Context, enabled bool) {
	f.calls = append(f.calls, "display")
	f.status.State.DisplayFlashEnabled = enabled
}

func (f *fakeController) TogglePanicMode(context.Context) {
	f.calls = append(f.calls, "panic")
	f.status.State.PanicActive = !f.status.State.PanicActive
	f.status.State.IsFlashing = f.status.State.PanicActive
}

func (f *fakeController) Status() strobe.Status { return f.status }

// fakeStore mimics the settings store: empty input is ignored.
type fakeStore struct {
	contact string
	err     error
}

func (s *fakeStore) GetContact(context.Context) string { return s.contact }

func (s *fakeStore) SetContact(_ context.Context, contact string) error {
	if s.err != nil {
		return s.err
	}

	if contact != "" {
		s.contact = contact
	}

	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	model, ok := next.(Model)
	require.True(t, ok)

	return model, cmd
}

func newTestModel(t *testing.T) (Model, *fakeController, *fakeStore) {
	t.Helper()

	controller := newFakeController()
	store := &fakeStore{contact: safety.DefaultContact}

	m, _ := update(t, New(context.Background(), controller, store, nil), tea.WindowSizeMsg{Width: 80, Height: 24})

	return m, controller, store
}

func TestPanicScreen_Keys(t *testing.T) {
	t.Parallel()

	m, controller, _ := newTestModel(t)

	m, _ = update(t, m, runes("f"))
	require.True(t, m.status.State.IsFlashing)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.False(t, m.status.State.IsFlashing)

	m, _ = update(t, m, runes("d"))
	require.False(t, m.status.State.DisplayFlashEnabled)

	m, cmd := update(t, m, runes("p"))
	require.NotNil(t, cmd)
	require.False(t, m.status.State.PanicActive)

	m, _ = update(t, m, cmd())
	require.True(t, m.status.State.PanicActive)
	require.True(t, m.status.State.IsFlashing)

	require.Equal(t, []string{"flash", "flash", "display", "panic"}, controller.calls)
}

// blockingController holds TogglePanicMode until release is closed,
// like a sender waiting on a slow relay.
type blockingController struct {
	*fakeController

	release chan struct{}
}

func (b *blockingController) TogglePanicMode(ctx context.Context) {
	<-b.release
	b.fakeController.TogglePanicMode(ctx)
}

func TestPanicScreen_PanicKeyDoesNotBlockUpdate(t *testing.T) {
	t.Parallel()

	controller := &blockingController{
		fakeController: newFakeController(),
		release:        make(chan struct{}),
	}

	m, _ := update(t, New(context.Background(), controller, &fakeStore{}, nil), tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := update(t, m, runes("p"))
	require.NotNil(t, cmd)

	// Frames keep flowing while the toggle is in flight.
	m, frame := update(t, m, frameMsg{})
	require.NotNil(t, frame)

	done := make(chan tea.Msg, 1)

	go func() {
		done <- cmd()
	}()

	select {
	case <-done:
		t.Fatal("toggle finished before the sender was released")
	case <-time.After(20 * time.Millisecond):
	}

	close(controller.release)

	m, _ = update(t, m, <-done)
	require.True(t, m.status.State.PanicActive)
	require.Equal(t, []string{"panic"}, controller.calls)
}

func TestPanicScreen_SpeedSlider(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.InDelta(t, 0.6, m.status.State.FlashSpeed, 1e-9)

	for range 30 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}

	require.InDelta(t, safety.MinFlashSpeed, m.status.State.FlashSpeed, 1e-9)
}

func TestPanicScreen_SpeedRejectedReportedOnce(t *testing.T) {
	t.Parallel()

	m, controller, _ := newTestModel(t)
	controller.speedErr = safety.ErrInvalidInput

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	// The controller's notice queue carries the rejection; the model adds none.
	require.False(t, m.hasNotice)
	require.InDelta(t, safety.DefaultFlashSpeed, m.status.State.FlashSpeed, 1e-9)
	require.Equal(t, []string{"speed"}, controller.calls)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = update(t, m, runes("s"))

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSettingsScreen_SaveContact(t *testing.T) {
	t.Parallel()

	m, _, store := newTestModel(t)

	m, _ = update(t, m, runes("s"))
	require.Equal(t, screenSettings, m.screen)
	require.Equal(t, safety.DefaultContact, m.contactInput)

	for range len(safety.DefaultContact) {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}

	m, _ = update(t, m, runes("55a5-0+1 0١"))
	require.Equal(t, "555010", m.contactInput)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenPanic, m.screen)
	require.Equal(t, "555010", store.contact)
	require.True(t, m.hasNotice)
	require.Contains(t, m.notice.Message, "555010")
}

func TestSettingsScreen_EmptySaveKeepsContact(t *testing.T) {
	t.Parallel()

	m, _, store := newTestModel(t)

	m, _ = update(t, m, runes("s"))

	for range len(safety.DefaultContact) {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, safety.DefaultContact, store.contact)
	require.Equal(t, screenPanic, m.screen)
}

func TestSettingsScreen_EscDiscards(t *testing.T) {
	t.Parallel()

	m, _, store := newTestModel(t)

	m, _ = update(t, m, runes("s"))
	m, _ = update(t, m, runes("9"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, screenPanic, m.screen)
	require.Equal(t, safety.DefaultContact, store.contact)
}

func TestSettingsScreen_SaveFailureStays(t *testing.T) {
	t.Parallel()

	m, _, store := newTestModel(t)
	store.err = errors.New("disk full")

	m, _ = update(t, m, runes("s"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, screenSettings, m.screen)
	require.True(t, m.hasNotice)
}

func TestSettingsScreen_MaxDigits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "123456789012345", appendDigits("", []rune("12345678901234567890")))
}

func TestNoticeAndFrameMessages(t *testing.T) {
	t.Parallel()

	m, controller, _ := newTestModel(t)

	queue := NewNoticeQueue(1)
	m.shared.notices = queue

	m, cmd := update(t, m, noticeMsg(safety.Notice{
		Kind:    safety.NoticeHardwareUnavailable,
		Message: "Torch unavailable",
	}))
	require.NotNil(t, cmd)
	require.Equal(t, "Torch unavailable", m.notice.Message)

	queue.Push(safety.Notice{Message: "next"})
	queue.Push(safety.Notice{Message: "dropped"})
	require.Equal(t, noticeMsg(safety.Notice{Message: "next"}), cmd())

	controller.status.Background = safety.ColorWhite

	m, cmd = update(t, m, frameMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, safety.ColorWhite, m.status.Background)
}

func TestView(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	view := m.View()
	require.Contains(t, view, "WALK BUDDY")
	require.Contains(t, view, "PANIC")

	m, _ = update(t, m, runes("s"))
	require.Contains(t, m.View(), "EMERGENCY CONTACT")
	require.Contains(t, m.View(), safety.DefaultContact)

	require.Equal(t, "Starting walk-buddy...", New(context.Background(), newFakeController(), nil, nil).View())
}
