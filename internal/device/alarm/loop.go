package alarm

import (
	"context"
	"sync"
)

// loop runs a playback function repeatedly on a background goroutine until
// stopped. It is shared by the command and bell players.
type loop struct {
	// step performs one playback iteration; it must return when ctx is done.
	step func(ctx context.Context) error
	// onError is invoked for failed iterations.
	onError func(err error)

	// mu guards cancel and done.
	mu sync.Mutex
	// cancel stops the running loop; nil when idle.
	cancel context.CancelFunc
	// done is closed when the running loop exits.
	done chan struct{}
}

// start launches the loop unless it is already running.
func (l *loop) start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return
	}

	// Playback outlives the request that started it.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	l.cancel = cancel
	l.done = done

	go func() {
		defer close(done)

		for ctx.Err() == nil {
			if err := l.step(ctx); err != nil && ctx.Err() == nil && l.onError != nil {
				l.onError(err)
			}
		}
	}()
}

// stop cancels the loop and waits for it to exit or for ctx to expire.
func (l *loop) stop(ctx context.Context) error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// running reports whether the loop is active.
func (l *loop) running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.cancel != nil
}
