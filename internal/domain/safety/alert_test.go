package safety

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "walker-laptop",
		Username: "walker",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
}

// TestAlertClone verifies that Alert.Clone copies fields and deep-copies Actor.
func TestAlertClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Alert)(nil).Clone())

	a := &Alert{
		ID:      "id-1",
		Contact: "5551234567",
		Body:    EmergencyMessage,
		Actor: &Actor{
			Hostname: "walker-laptop",
			Username: "walker",
		},
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Delivered: true,
	}

	c := a.Clone()
	require.Equal(t, a, c)
	require.NotSame(t, a.Actor, c.Actor)
}

// TestNoticeFromError maps wrapped sentinel errors to notice kinds.
func TestNoticeFromError(t *testing.T) {
	t.Parallel()

	cases := map[error]NoticeKind{
		fmt.Errorf("torch: %w", ErrHardwareUnavailable): NoticeHardwareUnavailable,
		fmt.Errorf("sms: %w", ErrCapabilityDenied):      NoticeCapabilityDenied,
		fmt.Errorf("speed: %w", ErrInvalidInput):        NoticeInvalidInput,
		errors.New("other"):                             NoticeInfo,
	}
	for err, kind := range cases {
		n := NoticeFromError("msg", err)
		require.Equal(t, kind, n.Kind)
		require.Equal(t, err, n.Err)
	}
}
