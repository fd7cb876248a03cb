// Package scheduler provides a cancellable repeating task abstraction.
//
// Each task owns one goroutine and one ticker, so ticks of a task never
// overlap. Cancel is idempotent and a cancelled task never invokes its
// callback again.
package scheduler

import (
	"sync"
	"time"
)

// Task is a scheduled repeating callback.
type Task interface {
	// Cancel stops the task. It does not wait for an in-flight callback.
	Cancel()
}

// Scheduler starts repeating tasks.
type Scheduler interface {
	// Every invokes fn once per interval until the returned task is cancelled.
	Every(interval time.Duration, fn func()) Task
}

// Ticker is a Scheduler backed by time.Ticker.
type Ticker struct{}

// NewTicker returns a ticker-backed scheduler.
func NewTicker() *Ticker {
	return new(Ticker)
}

// tickerTask is the Task returned by Ticker.Every.
type tickerTask struct {
	// done is closed on cancellation.
	done chan struct{}
	// once guards done against double close.
	once sync.Once
}

// Every implements Scheduler.
func (*Ticker) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{
		done: make(chan struct{}),
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-task.done:
				return
			case <-ticker.C:
				// Cancel may race the tick; prefer cancellation.
				select {
				case <-task.done:
					return
				default:
				}

				fn()
			}
		}
	}()

	return task
}

// Cancel implements Task.
func (t *tickerTask) Cancel() {
	t.once.Do(func() {
		close(t.done)
	})
}
