package safe

import "strings"

const (
	// LineEnding terminates every status line on the serial console.
	LineEnding = "\r\n\r\n"
	// Mask is printed in place of every entered password digit.
	Mask = "*"
)

// Messages holds the status lines printed when the safe settles in a state.
type Messages struct {
	// Closed is printed when the safe closes.
	Closed string `yaml:"closed"`
	// Open is printed when the safe opens.
	Open string `yaml:"open"`
	// Unlocked is printed when the safe unlocks.
	Unlocked string `yaml:"unlocked"`
	// Locked is printed when the safe locks or a password attempt fails.
	Locked string `yaml:"locked"`
}

// DefaultMessages returns the English console texts.
func DefaultMessages() Messages {
	return Messages{
		Closed:   "safe is closed",
		Open:     "safe is open",
		Unlocked: "safe is unlocked",
		Locked:   "safe is locked",
	}
}

// status identifies which of the Messages a feedback prints.
type status uint8

const (
	statusNone status = iota
	statusClosed
	statusOpen
	statusUnlocked
	statusLocked
)

// Feedback is what the serial console prints for one step.
// It carries either a status line or masking characters, never both.
type Feedback struct {
	// Status is the status line, empty for none.
	Status string
	// Masks is the number of masking characters.
	Masks int
	// Terminate ends a group of masking characters printed by earlier steps.
	Terminate bool
}

// IsEmpty reports whether the feedback prints nothing.
func (f Feedback) IsEmpty() bool {
	return f.Status == "" && f.Masks == 0 && !f.Terminate
}

// Text returns the literal console output.
func (f Feedback) Text() string {
	var b strings.Builder

	b.WriteString(strings.Repeat(Mask, f.Masks))

	if f.Terminate {
		b.WriteString(LineEnding)
	}

	if f.Status != "" {
		b.WriteString(f.Status)
		b.WriteString(LineEnding)
	}

	return b.String()
}

// edge is a transition between two states.
type edge struct {
	from State
	to   State
}

// frame is the layout of a feedback before the status text is resolved.
type frame struct {
	status    status
	masks     int
	terminate bool
}

// feedbackTable describes the console output of every transition.
// Edges that are missing print nothing.
//
//nolint:gochecknoglobals // Immutable decision table.
var feedbackTable = map[edge]frame{
	{Closed, Open}:     {status: statusOpen},
	{Closed, Unlocked}: {status: statusUnlocked},
	{Open, Closed}:     {status: statusClosed},
	{Unlocked, Closed}: {status: statusClosed},

	{Unlocked, UnlockedEnteringDigit1}:               {masks: 1},
	{UnlockedEnteringDigit1, UnlockedEnteringDigit2}: {masks: 1},
	{UnlockedEnteringDigit2, Locked}:                 {status: statusLocked, terminate: true},

	{Locked, LockedEnteringDigit1}:               {masks: 1},
	{LockedEnteringDigit1, LockedEnteringDigit2}: {masks: 1},
	{LockedEnteringDigit2, Unlocked}:             {status: statusUnlocked, terminate: true},

	{Locked, Locked}:               {status: statusLocked},
	{LockedEnteringDigit1, Locked}: {status: statusLocked, terminate: true},
	{LockedEnteringDigit2, Locked}: {status: statusLocked, terminate: true},
}

// Renderer turns state machine steps into console output.
type Renderer struct {
	// messages are the status texts.
	messages Messages
}

// NewRenderer creates a renderer. Empty texts fall back to DefaultMessages.
func NewRenderer(messages Messages) *Renderer {
	defaults := DefaultMessages()

	if messages.Closed == "" {
		messages.Closed = defaults.Closed
	}

	if messages.Open == "" {
		messages.Open = defaults.Open
	}

	if messages.Unlocked == "" {
		messages.Unlocked = defaults.Unlocked
	}

	if messages.Locked == "" {
		messages.Locked = defaults.Locked
	}

	return &Renderer{
		messages: messages,
	}
}

// Render describes the state being entered by outcome, coming from state from.
// It must be called before the step is committed.
func (r *Renderer) Render(from State, outcome Outcome) Feedback {
	if !outcome.Matched {
		return Feedback{}
	}

	f, ok := feedbackTable[edge{from: from, to: outcome.Next}]
	if !ok {
		return Feedback{}
	}

	return Feedback{
		Status:    r.text(f.status),
		Masks:     f.masks,
		Terminate: f.terminate,
	}
}

// Greeting is the status line printed at power-on.
func (r *Renderer) Greeting() Feedback {
	return Feedback{Status: r.messages.Closed}
}

func (r *Renderer) text(s status) string {
	switch s {
	case statusClosed:
		return r.messages.Closed
	case statusOpen:
		return r.messages.Open
	case statusUnlocked:
		return r.messages.Unlocked
	case statusLocked:
		return r.messages.Locked
	default:
		return ""
	}
}
