package controller

import (
	"context"
	"time"

	"github.com/oshokin/safe-lock/internal/domain/safe"
	"github.com/oshokin/safe-lock/internal/logger"
	"github.com/oshokin/safe-lock/internal/service/led"
)

// Keypad reports the key currently pressed, or safe.KeyNone.
// It must be debounced and must not block.
type Keypad interface {
	PollKey() safe.Key
}

// Sink receives the serial console text.
type Sink interface {
	WriteText(text string)
}

// finite is implemented by keypads whose input can run out.
type finite interface {
	Done() <-chan struct{}
}

// Controller owns the safe state, the password and the LED.
// It is driven by a single goroutine and is not safe for concurrent use.
type Controller struct {
	// keypad is the input source.
	keypad Keypad
	// sink is the serial console.
	sink Sink
	// indicator renders LED directives.
	indicator *led.Interpreter
	// renderer produces the console text of each step.
	renderer *safe.Renderer
	// state is the committed safe state.
	state safe.State
	// credential is the programmed password.
	credential safe.Credential
	// last is the last key acted upon, cleared when the keypad reports no key.
	last safe.Key
}

// New creates a controller in the Closed state with no password.
func New(keypad Keypad, sink Sink, indicator *led.Interpreter, renderer *safe.Renderer) *Controller {
	return &Controller{
		keypad:    keypad,
		sink:      sink,
		indicator: indicator,
		renderer:  renderer,
		state:     safe.Closed,
	}
}

// State returns the committed safe state.
func (c *Controller) State() safe.State {
	return c.state
}

// Credential returns a copy of the programmed password.
func (c *Controller) Credential() safe.Credential {
	return c.credential
}

// Directive returns the active LED directive.
func (c *Controller) Directive() safe.Directive {
	return c.indicator.Active()
}

// Start prints the power-on greeting and sets the LED.
func (c *Controller) Start(ctx context.Context) {
	logger.InfoKV(ctx, "Safe lock started", "state", c.state)

	c.sink.WriteText(c.renderer.Greeting().Text())
	c.indicator.Execute()
}

// Poll runs one iteration of the control loop and reports whether a key press
// was handled. A held key is handled once; it may be handled again after the
// keypad reports no key. The LED is serviced on every call, which may block
// for the duration of a pulse train.
func (c *Controller) Poll(ctx context.Context) bool {
	key := c.keypad.PollKey()
	handled := false

	switch {
	case key.IsNone():
		c.last = safe.KeyNone
	case key == c.last:
		// Held key.
	default:
		c.last = key
		c.Press(ctx, key)

		handled = true
	}

	c.indicator.Execute()

	return handled
}

// Press feeds one key press to the state machine. The feedback is printed
// before the step is committed because it describes the state being entered.
func (c *Controller) Press(ctx context.Context, key safe.Key) safe.Outcome {
	from := c.state
	outcome := safe.Transition(from, c.credential, key)

	if !outcome.Matched {
		logger.DebugKV(ctx, "Key ignored", "state", from, "key_class", key.Class())

		return outcome
	}

	c.sink.WriteText(c.renderer.Render(from, outcome).Text())

	c.state = outcome.Next
	c.credential = outcome.Credential
	c.indicator.Install(outcome.Directive)

	logger.DebugKV(ctx, "Transition committed",
		"from", from,
		"to", outcome.Next,
		"key_class", key.Class(),
		"directive", outcome.Directive,
		"credential", outcome.Credential.String(),
	)

	switch {
	case from == safe.UnlockedEnteringDigit2 && outcome.Next == safe.Locked:
		logger.Info(ctx, "Password programmed, safe locked")
	case from.RequiresCredential() && outcome.Next == safe.Locked:
		logger.Warn(ctx, "Wrong password digit")
	case from == safe.LockedEnteringDigit2 && outcome.Next == safe.Unlocked:
		logger.Info(ctx, "Password accepted, safe unlocked")
	}

	return outcome
}

// Run polls until ctx is canceled or a finite keypad runs out of input.
// Between idle polls it pauses for pollInterval. Cancellation is observed
// between iterations only, so a pulse train always completes.
func (c *Controller) Run(ctx context.Context, pollInterval time.Duration) error {
	var done <-chan struct{}
	if f, ok := c.keypad.(finite); ok {
		done = f.Done()
	}

	c.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Safe lock stopped")

			return nil
		case <-done:
			logger.Info(ctx, "Keypad input ended")

			return nil
		default:
		}

		handled := c.Poll(ctx)

		if handled || pollInterval <= 0 || c.indicator.Active().Kind == safe.DirectiveContinuousBlink {
			continue
		}

		c.idle(ctx, pollInterval)
	}
}

// idle pauses for d or until ctx is canceled.
func (c *Controller) idle(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
