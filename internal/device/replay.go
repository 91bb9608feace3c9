package device

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/oshokin/safe-lock/internal/domain/safe"
)

// IdleRune marks a poll with no key pressed in a replay script.
const IdleRune = '.'

// ReplayKeypad plays a scripted sequence of key presses.
// Every press is followed by a poll reporting no key, as if the key was released,
// so repeated keys in the script are seen as separate presses.
type ReplayKeypad struct {
	// keys is the parsed script. KeyNone entries are idle polls.
	keys []safe.Key
	// next is the index of the next key to report.
	next int
	// releasing is set after a press until the release poll has been reported.
	releasing bool
	// done is closed when the script is exhausted.
	done chan struct{}
	// closeOnce guards done.
	closeOnce sync.Once
}

// NewReplayKeypad parses script into a replay keypad.
// White space is skipped and IdleRune inserts a poll without a key.
func NewReplayKeypad(script string) (*ReplayKeypad, error) {
	keys := make([]safe.Key, 0, len(script))

	for _, r := range script {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == IdleRune:
			keys = append(keys, safe.KeyNone)
		default:
			key, err := safe.ParseKey(r)
			if err != nil {
				return nil, fmt.Errorf("parse script: %w", err)
			}

			keys = append(keys, key)
		}
	}

	return &ReplayKeypad{
		keys: keys,
		done: make(chan struct{}),
	}, nil
}

// PollKey returns the next scripted event.
func (k *ReplayKeypad) PollKey() safe.Key {
	if k.releasing {
		k.releasing = false

		return safe.KeyNone
	}

	if k.next >= len(k.keys) {
		k.closeOnce.Do(func() { close(k.done) })

		return safe.KeyNone
	}

	key := k.keys[k.next]
	k.next++
	k.releasing = !key.IsNone()

	return key
}

// Done is closed once every scripted key has been reported.
func (k *ReplayKeypad) Done() <-chan struct{} {
	return k.done
}
