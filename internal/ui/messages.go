package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// frameInterval is the redraw period; it is below the shortest strobe interval.
const frameInterval = 50 * time.Millisecond

// frameMsg triggers a redraw from a fresh controller snapshot.
type frameMsg time.Time

// noticeMsg carries a controller notice to the model.
type noticeMsg safety.Notice

// panicToggledMsg reports that TogglePanicMode returned.
type panicToggledMsg struct{}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// togglePanicCmd runs TogglePanicMode off the update loop so frames keep
// drawing while the alarm starts and the emergency message is sent.
func togglePanicCmd(ctx context.Context, controller Controller) tea.Cmd {
	return func() tea.Msg {
		controller.TogglePanicMode(ctx)

		return panicToggledMsg{}
	}
}

// NoticeQueue hands notices from the controller to the running program.
type NoticeQueue struct {
	ch chan safety.Notice
}

// NewNoticeQueue returns a queue buffering up to size notices.
func NewNoticeQueue(size int) *NoticeQueue {
	return &NoticeQueue{
		ch: make(chan safety.Notice, size),
	}
}

// Push enqueues a notice without blocking; it is dropped when the queue is full.
func (q *NoticeQueue) Push(notice safety.Notice) {
	select {
	case q.ch <- notice:
	default:
	}
}

// wait returns a command delivering the next notice.
func (q *NoticeQueue) wait() tea.Cmd {
	if q == nil {
		return nil
	}

	return func() tea.Msg {
		return noticeMsg(<-q.ch)
	}
}
