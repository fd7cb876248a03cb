// Package alarm implements audible alarm players.
//
// Players are fire-and-forget: Play returns immediately and the sound keeps
// going until Stop. Stop is a real stop path that waits for playback to end.
package alarm

import "context"

// Player starts and stops an audible alarm.
type Player interface {
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
}

// None is a silent player.
type None struct{}

// Play implements Player.
func (None) Play(context.Context) error { return nil }

// Stop implements Player.
func (None) Stop(context.Context) error { return nil }
