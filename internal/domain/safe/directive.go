package safe

import "strconv"

// DirectiveKind enumerates the LED patterns.
type DirectiveKind uint8

const (
	// DirectiveOff keeps the LED dark.
	DirectiveOff DirectiveKind = iota
	// DirectiveSteadyOn keeps the LED lit.
	DirectiveSteadyOn
	// DirectivePulseTrain blinks the LED a fixed number of times, then turns it off.
	DirectivePulseTrain
	// DirectiveContinuousBlink blinks the LED until another directive replaces it.
	DirectiveContinuousBlink
)

// Directive tells the LED interpreter which pattern to show.
// Build values with Off, SteadyOn, PulseTrain and ContinuousBlink.
type Directive struct {
	// Kind is the pattern.
	Kind DirectiveKind
	// Count is the number of blinks of a pulse train, zero otherwise.
	Count int
}

// Off returns the directive that switches the LED off.
func Off() Directive {
	return Directive{Kind: DirectiveOff}
}

// SteadyOn returns the directive that keeps the LED lit.
func SteadyOn() Directive {
	return Directive{Kind: DirectiveSteadyOn}
}

// PulseTrain returns a directive that blinks count times and settles to off.
// A non-positive count has nothing to blink and yields Off.
func PulseTrain(count int) Directive {
	if count <= 0 {
		return Off()
	}

	return Directive{Kind: DirectivePulseTrain, Count: count}
}

// ContinuousBlink returns the directive that blinks until replaced.
func ContinuousBlink() Directive {
	return Directive{Kind: DirectiveContinuousBlink}
}

// String implements fmt.Stringer.
func (d Directive) String() string {
	switch d.Kind {
	case DirectiveOff:
		return "off"
	case DirectiveSteadyOn:
		return "steady_on"
	case DirectivePulseTrain:
		return "pulse_train(" + strconv.Itoa(d.Count) + ")"
	case DirectiveContinuousBlink:
		return "continuous_blink"
	default:
		return "unknown"
	}
}
