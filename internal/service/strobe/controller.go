package strobe

import (
	"context"
	"sync"

	"github.com/oshokin/walk-buddy/internal/device/message"
	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
	"github.com/oshokin/walk-buddy/internal/scheduler"
)

// TorchDriver switches the torch.
type TorchDriver interface {
	Available() bool
	Set(ctx context.Context, on bool) error
}

// AlarmPlayer starts and stops the audible alarm.
type AlarmPlayer interface {
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
}

// MessageSender opens sms: URIs.
type MessageSender interface {
	CanOpen(ctx context.Context, uri string) bool
	Open(ctx context.Context, uri string) error
}

// ContactSource provides the emergency contact.
type ContactSource interface {
	GetContact(ctx context.Context) string
}

// NoticeHandler receives user-visible notices. It must not block.
type NoticeHandler func(notice safety.Notice)

// Status is a snapshot of the controller for rendering.
type Status struct {
	// State is the current toggle state.
	State safety.StrobeState
	// Background is the current strobe screen color.
	Background safety.Color
	// TorchAvailable reports whether torch hardware is present.
	TorchAvailable bool
}

// Controller owns the strobe state and drives the devices.
type Controller struct {
	// torch, alarm and sender are the device capabilities.
	torch  TorchDriver
	alarm  AlarmPlayer
	sender MessageSender
	// contacts provides the panic message destination.
	contacts ContactSource
	// scheduler starts the flash timer.
	scheduler scheduler.Scheduler
	// notify receives user-visible notices.
	notify NoticeHandler
	// messageBody is the fixed panic message text.
	messageBody string

	// mu guards every field below.
	mu sync.Mutex
	// state is the toggle state.
	state safety.StrobeState
	// background is the strobe screen color.
	background safety.Color
	// task is the live flash timer, nil when not flashing.
	task scheduler.Task
	// generation is bumped whenever task is replaced or cancelled.
	generation uint64
	// torchReported suppresses repeated HardwareUnavailable notices within one flashing session.
	torchReported bool
}

// Option configures the controller.
type Option func(*Controller)

// WithScheduler replaces the ticker-backed scheduler.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithNoticeHandler installs a handler for user-visible notices.
func WithNoticeHandler(h NoticeHandler) Option {
	return func(c *Controller) {
		c.notify = h
	}
}

// WithFlashSpeed sets the initial flash speed in seconds; it is clamped to the allowed range.
func WithFlashSpeed(seconds float64) Option {
	return func(c *Controller) {
		if speed, err := safety.ClampFlashSpeed(seconds); err == nil {
			c.state.FlashSpeed = speed
		}
	}
}

// WithDisplayFlash sets whether ticks change the screen background.
func WithDisplayFlash(enabled bool) Option {
	return func(c *Controller) {
		c.state.DisplayFlashEnabled = enabled
	}
}

// WithMessageBody overrides the panic message text.
func WithMessageBody(body string) Option {
	return func(c *Controller) {
		if body != "" {
			c.messageBody = body
		}
	}
}

// New creates a controller with the given device capabilities.
func New(
	torch TorchDriver,
	alarm AlarmPlayer,
	sender MessageSender,
	contacts ContactSource,
	opts ...Option,
) *Controller {
	c := &Controller{
		torch:       torch,
		alarm:       alarm,
		sender:      sender,
		contacts:    contacts,
		scheduler:   scheduler.NewTicker(),
		messageBody: safety.EmergencyMessage,
		state:       safety.NewStrobeState(),
		background:  safety.ColorBlack,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		State:          c.state,
		Background:     c.background,
		TorchAvailable: c.torch != nil && c.torch.Available(),
	}
}

// ToggleFlash starts or stops the strobe. Panic mode owns the strobe, so the
// toggle is ignored until panic mode is released.
func (c *Controller) ToggleFlash(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.PanicActive {
		logger.Debug(ctx, "Flash toggle ignored during panic mode")

		return
	}

	c.state.IsFlashing = !c.state.IsFlashing

	if c.state.IsFlashing {
		logger.InfoKV(ctx, "Flashing started", "flash_speed", c.state.FlashSpeed)
		c.startFlashingLocked(ctx)

		return
	}

	logger.Info(ctx, "Flashing stopped")
	c.stopFlashingLocked(ctx)
}

// SetFlashSpeed changes the flash interval. Out-of-range values are clamped;
// NaN and infinities are rejected with safety.ErrInvalidInput and leave the
// state unchanged. A running timer is restarted at the new interval.
func (c *Controller) SetFlashSpeed(ctx context.Context, seconds float64) error {
	speed, err := safety.ClampFlashSpeed(seconds)
	if err != nil {
		logger.WarnKV(ctx, "Rejected flash speed", "flash_speed", seconds, "error", err)
		c.report(safety.NoticeFromError("Flash speed rejected", err))

		return err
	}

	if speed != seconds {
		logger.DebugKV(ctx, "Flash speed clamped", "requested", seconds, "flash_speed", speed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FlashSpeed = speed

	if c.state.IsFlashing {
		c.startFlashingLocked(ctx)
	}

	return nil
}

// SetDisplayFlashEnabled toggles whether ticks change the screen background.
// Disabling resets the background to black.
func (c *Controller) SetDisplayFlashEnabled(ctx context.Context, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.DisplayFlashEnabled = enabled

	if !enabled {
		c.background = safety.ColorBlack
	}

	logger.DebugKV(ctx, "Display flash changed", "enabled", enabled)
}

// TogglePanicMode engages or releases panic mode. Engaging always starts the
// strobe, plays the alarm and sends the emergency message; releasing stops
// the strobe and the alarm. Driver failures become notices.
func (c *Controller) TogglePanicMode(ctx context.Context) {
	c.mu.Lock()

	c.state.PanicActive = !c.state.PanicActive
	active := c.state.PanicActive

	if active {
		c.state.IsFlashing = true
		c.startFlashingLocked(ctx)
	} else {
		c.state.IsFlashing = false
		c.stopFlashingLocked(ctx)
	}

	c.mu.Unlock()

	// Slow capabilities run outside the lock so ticks keep flowing.
	if active {
		logger.Warn(ctx, "Panic mode activated")
		c.playAlarm(ctx)
		c.sendEmergencyMessage(ctx)

		return
	}

	logger.Info(ctx, "Panic mode deactivated")
	c.stopAlarm(ctx)
}

// Close stops the timer, switches the torch off and silences the alarm.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	c.state.IsFlashing = false
	c.state.PanicActive = false
	c.stopFlashingLocked(ctx)
	c.mu.Unlock()

	c.stopAlarm(ctx)
}

// startFlashingLocked (re)starts the flash timer at the current speed.
func (c *Controller) startFlashingLocked(ctx context.Context) {
	c.cancelTaskLocked()

	generation := c.generation
	c.task = c.scheduler.Every(safety.FlashInterval(c.state.FlashSpeed), func() {
		c.onTick(ctx, generation)
	})
}

// stopFlashingLocked cancels the timer and resets torch and background.
func (c *Controller) stopFlashingLocked(ctx context.Context) {
	c.cancelTaskLocked()

	c.state.FlashOn = false
	c.background = safety.ColorBlack
	c.torchReported = false

	c.setTorchLocked(ctx, false)
}

// cancelTaskLocked cancels the live timer and invalidates in-flight ticks.
func (c *Controller) cancelTaskLocked() {
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}

	c.generation++
}

// onTick alternates the lamp phase.
func (c *Controller) onTick(ctx context.Context, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation || !c.state.IsFlashing {
		return
	}

	c.state.FlashOn = !c.state.FlashOn
	c.setTorchLocked(ctx, c.state.FlashOn)

	if c.state.DisplayFlashEnabled {
		c.background = safety.ColorFor(c.state.FlashOn)
	}
}

// setTorchLocked switches the torch; missing hardware is a logged no-op.
func (c *Controller) setTorchLocked(ctx context.Context, on bool) {
	if c.torch == nil || !c.torch.Available() {
		if on && !c.torchReported {
			c.torchReported = true

			logger.Warn(ctx, "Torch could not be used: no torch hardware")
			c.report(safety.NoticeFromError("Torch unavailable, flashing the screen only", safety.ErrHardwareUnavailable))
		}

		return
	}

	if err := c.torch.Set(ctx, on); err != nil {
		logger.WarnKV(ctx, "Torch could not be used", "on", on, "error", err)

		if !c.torchReported {
			c.torchReported = true
			c.report(safety.NoticeFromError("Torch could not be used", err))
		}
	}
}

// playAlarm starts the alarm player.
func (c *Controller) playAlarm(ctx context.Context) {
	if c.alarm == nil {
		return
	}

	if err := c.alarm.Play(ctx); err != nil {
		logger.WarnKV(ctx, "Alarm could not be played", "error", err)
		c.report(safety.NoticeFromError("Alarm could not be played", err))
	}
}

// stopAlarm stops the alarm player.
func (c *Controller) stopAlarm(ctx context.Context) {
	if c.alarm == nil {
		return
	}

	if err := c.alarm.Stop(ctx); err != nil {
		logger.WarnKV(ctx, "Alarm could not be stopped", "error", err)
	}
}

// sendEmergencyMessage composes and opens the panic message.
func (c *Controller) sendEmergencyMessage(ctx context.Context) {
	var contact string
	if c.contacts != nil {
		contact = c.contacts.GetContact(ctx)
	}

	uri, err := message.Send(ctx, c.sender, contact, c.messageBody)
	if err != nil {
		logger.WarnKV(ctx, "Emergency message could not be sent", "contact", contact, "error", err)
		c.report(safety.NoticeFromError("Emergency message could not be sent", err))

		return
	}

	logger.InfoKV(ctx, "Emergency message sent", "uri", uri)
	c.report(safety.Notice{
		Kind:    safety.NoticeInfo,
		Message: "Emergency message sent to " + contact,
	})
}

// report forwards a notice to the handler, if any.
func (c *Controller) report(notice safety.Notice) {
	if c.notify != nil {
		c.notify(notice)
	}
}
