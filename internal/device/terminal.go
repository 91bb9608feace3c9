package device

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/oshokin/safe-lock/internal/domain/safe"
	"github.com/oshokin/safe-lock/internal/logger"
)

const (
	// keyBufferSize is how many presses may wait for the controller.
	keyBufferSize = 16

	// ctrlC and ctrlD end the session when the terminal is in raw mode.
	ctrlC = 0x03
	ctrlD = 0x04
)

// TerminalKeypad reads key presses from a terminal or a pipe.
// A reader goroutine feeds a buffered channel so PollKey never blocks.
type TerminalKeypad struct {
	// keys carries presses from the reader goroutine.
	keys chan safe.Key
	// eof is closed by the reader on end of input, Ctrl-C or Ctrl-D.
	eof chan struct{}
	// done is closed once eof is closed and every press has been polled.
	done chan struct{}
	// allowed is the set of keys present on the configured matrix.
	allowed map[safe.Key]struct{}
	// releasing is set after a press until a poll has reported no key.
	releasing bool
	// restore returns the terminal to its previous mode. Nil for pipes.
	restore func() error
	// closeOnce guards done.
	closeOnce sync.Once
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// NewTerminalKeypad starts reading keys from in.
// When in is a terminal it is switched to raw mode so every key press is seen
// immediately; Close restores it. Keys outside allowed are ignored.
func NewTerminalKeypad(ctx context.Context, in io.Reader, allowed map[safe.Key]struct{}) (*TerminalKeypad, error) {
	ctx = logger.WithName(ctx, "keypad")

	k := &TerminalKeypad{
		keys:    make(chan safe.Key, keyBufferSize),
		eof:     make(chan struct{}),
		done:    make(chan struct{}),
		allowed: allowed,
	}

	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		fd := int(f.Fd())

		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}

		k.restore = func() error {
			return term.Restore(fd, state)
		}
	}

	go k.read(ctx, bufio.NewReader(in))

	return k, nil
}

// PollKey returns the oldest pending press or safe.KeyNone.
// A terminal cannot report a held key, so every press is followed by a poll
// with no key, as if the key was released.
func (k *TerminalKeypad) PollKey() safe.Key {
	if k.releasing {
		k.releasing = false

		return safe.KeyNone
	}

	key := k.next()
	k.releasing = !key.IsNone()

	return key
}

// next takes the oldest pending press. Once the input has ended and nothing
// is pending it closes done.
func (k *TerminalKeypad) next() safe.Key {
	select {
	case key := <-k.keys:
		return key
	default:
	}

	select {
	case <-k.eof:
		// Every send happened before eof was closed.
		select {
		case key := <-k.keys:
			return key
		default:
			k.closeOnce.Do(func() { close(k.done) })
		}
	default:
	}

	return safe.KeyNone
}

// Done is closed when the input has ended and every press has been polled.
func (k *TerminalKeypad) Done() <-chan struct{} {
	return k.done
}

// Close restores the terminal mode.
func (k *TerminalKeypad) Close() error {
	if k == nil || k.restore == nil {
		return nil
	}

	if err := k.restore(); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}

	return nil
}

// read forwards key presses until the input ends.
func (k *TerminalKeypad) read(ctx context.Context, r *bufio.Reader) {
	defer close(k.eof)

	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.ErrorKV(ctx, "Failed to read keypad input", "error", err)
			}

			return
		}

		if ch == ctrlC || ch == ctrlD {
			logger.Debug(ctx, "Quit requested from keypad")

			return
		}

		key, err := safe.ParseKey(ch)
		if err != nil {
			// Line breaks of piped input and stray characters are expected.
			continue
		}

		if _, ok := k.allowed[key]; !ok && k.allowed != nil {
			logger.DebugKV(ctx, "Key is not on the keypad", "key_class", key.Class())

			continue
		}

		select {
		case k.keys <- key:
		case <-ctx.Done():
			return
		}
	}
}
