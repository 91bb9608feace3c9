package safe

// State is the physical state of the safe together with the password entry
// progress.
type State uint8

const (
	// Closed is the power-on state: the door is shut and no password is active.
	Closed State = iota
	// Open means the door has been opened by the administrator.
	Open
	// Unlocked means the door can be opened and a new password can be programmed.
	Unlocked
	// UnlockedEnteringDigit1 means the first digit of a new password was stored.
	UnlockedEnteringDigit1
	// UnlockedEnteringDigit2 means the second digit of a new password was stored.
	UnlockedEnteringDigit2
	// Locked means the password is programmed and must be entered to unlock.
	Locked
	// LockedEnteringDigit1 means the first password digit was entered correctly.
	LockedEnteringDigit1
	// LockedEnteringDigit2 means the second password digit was entered correctly.
	LockedEnteringDigit2
)

// States lists every state in declaration order.
//
//nolint:gochecknoglobals // Read-only enumeration used by tables and tests.
var States = []State{
	Closed,
	Open,
	Unlocked,
	UnlockedEnteringDigit1,
	UnlockedEnteringDigit2,
	Locked,
	LockedEnteringDigit1,
	LockedEnteringDigit2,
}

// IsEntering reports whether s is one of the digit entry substates.
func (s State) IsEntering() bool {
	switch s {
	case UnlockedEnteringDigit1, UnlockedEnteringDigit2, LockedEnteringDigit1, LockedEnteringDigit2:
		return true
	default:
		return false
	}
}

// RequiresCredential reports whether s is only reachable with a complete password.
func (s State) RequiresCredential() bool {
	return s == Locked || s == LockedEnteringDigit1 || s == LockedEnteringDigit2
}

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Unlocked:
		return "unlocked"
	case UnlockedEnteringDigit1:
		return "unlocked_entering_digit_1"
	case UnlockedEnteringDigit2:
		return "unlocked_entering_digit_2"
	case Locked:
		return "locked"
	case LockedEnteringDigit1:
		return "locked_entering_digit_1"
	case LockedEnteringDigit2:
		return "locked_entering_digit_2"
	default:
		return "unknown"
	}
}
