package safe

import (
	"errors"
	"fmt"
	"unicode"
)

// Key is a single key of the keypad matrix. The zero value is KeyNone.
type Key rune

// KeyNone means that no key is pressed.
const KeyNone Key = 0

// Keys the lock reacts to.
const (
	KeyOpen  Key = 'A'
	KeyClose Key = 'B'
	KeyHash  Key = '#'
	KeyStar  Key = '*'
)

// ErrUnknownKey is returned when a rune does not belong to the keypad.
var ErrUnknownKey = errors.New("unknown key")

// ParseKey converts a rune into a keypad key.
// Letters are accepted in both cases.
func ParseKey(r rune) (Key, error) {
	r = unicode.ToUpper(r)

	switch {
	case r >= '0' && r <= '9':
		return Key(r), nil
	case r >= 'A' && r <= 'D':
		return Key(r), nil
	case r == '#' || r == '*':
		return Key(r), nil
	default:
		return KeyNone, fmt.Errorf("%q: %w", r, ErrUnknownKey)
	}
}

// IsNone reports whether k means "no key pressed".
func (k Key) IsNone() bool {
	return k == KeyNone
}

// IsDigit reports whether k is a decimal digit key.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// Class returns a description of the key that is safe to log:
// digits are reported as "digit" so secrets never reach the logs.
func (k Key) Class() string {
	switch {
	case k.IsNone():
		return "none"
	case k.IsDigit():
		return "digit"
	default:
		return string(rune(k))
	}
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if k.IsNone() {
		return "none"
	}

	return string(rune(k))
}
