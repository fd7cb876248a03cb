package sos

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingController records the calls made by hold.
type recordingController struct {
	calls []string
}

func (r *recordingController) TogglePanicMode(context.Context) {
	r.calls = append(r.calls, "panic")
}

func (r *recordingController) Close(context.Context) {
	r.calls = append(r.calls, "close")
}

func TestHold_Duration(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		controller := new(recordingController)
		start := time.Now()

		require.NoError(t, hold(context.Background(), controller, 3*time.Second))
		require.Equal(t, 3*time.Second, time.Since(start))
		require.Equal(t, []string{"panic", "close"}, controller.calls)
	})
}

func TestHold_Cancelled(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		controller := new(recordingController)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(time.Second, cancel)

		require.NoError(t, hold(ctx, controller, 0))
		require.Equal(t, []string{"panic", "close"}, controller.calls)
	})
}

func TestRun_NegativeDuration(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{Duration: -time.Second})
	require.ErrorIs(t, err, errNegativeDuration)
}
