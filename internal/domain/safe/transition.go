package safe

// Outcome is the result of feeding one key to the state machine.
type Outcome struct {
	// Next is the state the safe moves to.
	Next State
	// Credential is the password after the step.
	Credential Credential
	// Directive is the LED pattern to install. Meaningful only when Matched.
	Directive Directive
	// Matched is false when the key has no transition from the current state.
	// The controller then keeps its state, password and LED pattern.
	Matched bool
}

// rule decides the outcome of a key for one source state.
// It returns false when the key has no transition.
type rule func(credential Credential, key Key) (Outcome, bool)

// transitions maps every state to its rule.
//
//nolint:gochecknoglobals // Immutable decision table.
var transitions = map[State]rule{
	Closed: func(c Credential, key Key) (Outcome, bool) {
		switch key {
		case KeyOpen:
			return step(Open, c, PulseTrain(1)), true
		case KeyHash:
			return step(Unlocked, c, SteadyOn()), true
		default:
			return Outcome{}, false
		}
	},
	Open: func(c Credential, key Key) (Outcome, bool) {
		if key != KeyClose {
			return Outcome{}, false
		}

		return step(Closed, c, PulseTrain(2)), true
	},
	Unlocked: func(c Credential, key Key) (Outcome, bool) {
		switch {
		case key.IsDigit():
			return step(UnlockedEnteringDigit1, c.With(0, key), ContinuousBlink()), true
		case key == KeyHash:
			return step(Closed, c, Off()), true
		default:
			return Outcome{}, false
		}
	},
	UnlockedEnteringDigit1: program(1, UnlockedEnteringDigit2, ContinuousBlink()),
	UnlockedEnteringDigit2: program(2, Locked, Off()),
	Locked:                 verify(0, LockedEnteringDigit1, PulseTrain(1)),
	LockedEnteringDigit1:   verify(1, LockedEnteringDigit2, PulseTrain(1)),
	LockedEnteringDigit2:   verify(2, Unlocked, SteadyOn()),
}

// failedAttemptBlinks is the pulse count shown for a wrong password digit.
const failedAttemptBlinks = 2

// Transition computes the next step of the safe for a key press.
// Keys with no transition from current leave everything as it was.
func Transition(current State, credential Credential, key Key) Outcome {
	if r, ok := transitions[current]; ok {
		if outcome, matched := r(credential, key); matched {
			return outcome
		}
	}

	return Outcome{
		Next:       current,
		Credential: credential,
	}
}

// program stores a digit of a new password into slot index.
func program(index int, next State, directive Directive) rule {
	return func(c Credential, key Key) (Outcome, bool) {
		if !key.IsDigit() {
			return Outcome{}, false
		}

		return step(next, c.With(index, key), directive), true
	}
}

// verify checks a password digit against slot index.
// Any wrong digit restarts the sequence from Locked.
func verify(index int, next State, directive Directive) rule {
	return func(c Credential, key Key) (Outcome, bool) {
		if !key.IsDigit() {
			return Outcome{}, false
		}

		if !c.Matches(index, key) {
			return step(Locked, c, PulseTrain(failedAttemptBlinks)), true
		}

		return step(next, c, directive), true
	}
}

func step(next State, c Credential, directive Directive) Outcome {
	return Outcome{
		Next:       next,
		Credential: c,
		Directive:  directive,
		Matched:    true,
	}
}
