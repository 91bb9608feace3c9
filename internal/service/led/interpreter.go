package led

import (
	"time"

	"github.com/oshokin/safe-lock/internal/domain/safe"
)

// DefaultInterval is the duration of one half of a blink cycle.
const DefaultInterval = 500 * time.Millisecond

// Pin drives the status LED output.
type Pin interface {
	SetLevel(on bool)
}

// Delayer blocks the calling goroutine.
type Delayer interface {
	Delay(d time.Duration)
}

// Interpreter renders the active directive on a pin.
// It is not safe for concurrent use: the controller loop owns it.
type Interpreter struct {
	// pin is the LED output.
	pin Pin
	// delayer provides the blocking waits between level changes.
	delayer Delayer
	// interval is the duration of one half of a blink cycle.
	interval time.Duration
	// active is the directive being shown.
	active safe.Directive
	// level is the last level written by a continuous blink.
	level bool
}

// NewInterpreter creates an interpreter showing safe.Off.
// A non-positive interval falls back to DefaultInterval.
func NewInterpreter(pin Pin, delayer Delayer, interval time.Duration) *Interpreter {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Interpreter{
		pin:      pin,
		delayer:  delayer,
		interval: interval,
		active:   safe.Off(),
	}
}

// Install replaces the active directive.
func (i *Interpreter) Install(d safe.Directive) {
	i.active = d
	i.level = false
}

// Active returns the directive being shown.
func (i *Interpreter) Active() safe.Directive {
	return i.active
}

// Interval returns the half-cycle duration.
func (i *Interpreter) Interval() time.Duration {
	return i.interval
}

// Execute renders the active directive once.
//
// A pulse train blocks for all of its cycles and then leaves safe.Off active.
// It cannot be interrupted. A continuous blink waits one interval and toggles
// the pin, so it must be called again on every loop iteration.
func (i *Interpreter) Execute() {
	switch i.active.Kind {
	case safe.DirectiveOff:
		i.pin.SetLevel(false)
	case safe.DirectiveSteadyOn:
		i.pin.SetLevel(true)
	case safe.DirectivePulseTrain:
		for n, count := 0, i.active.Count; n < count; n++ {
			i.delayer.Delay(i.interval)
			i.pin.SetLevel(true)
			i.delayer.Delay(i.interval)
			i.pin.SetLevel(false)
		}

		i.active = safe.Off()
	case safe.DirectiveContinuousBlink:
		i.delayer.Delay(i.interval)
		i.level = !i.level
		i.pin.SetLevel(i.level)
	}
}
