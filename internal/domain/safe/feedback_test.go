package safe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRenderer_StatusLines checks the status line of settled states.
func TestRenderer_StatusLines(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultMessages())

	cases := []struct {
		from State
		cred Credential
		key  Key
		want string
	}{
		{Closed, Credential{}, '#', "safe is unlocked\r\n\r\n"},
		{Closed, Credential{}, 'A', "safe is open\r\n\r\n"},
		{Open, Credential{}, 'B', "safe is closed\r\n\r\n"},
		{Unlocked, Credential{}, '#', "safe is closed\r\n\r\n"},
		{Locked, programmed(), '9', "safe is locked\r\n\r\n"},
		{LockedEnteringDigit1, programmed(), '9', "\r\n\r\nsafe is locked\r\n\r\n"},
		{LockedEnteringDigit2, programmed(), '3', "\r\n\r\nsafe is unlocked\r\n\r\n"},
		{UnlockedEnteringDigit2, Credential{'1', '2'}, '3', "\r\n\r\nsafe is locked\r\n\r\n"},
	}

	for _, tc := range cases {
		out := Transition(tc.from, tc.cred, tc.key)
		require.Equal(t, tc.want, r.Render(tc.from, out).Text(), "from %s key %s", tc.from, tc.key)
	}
}

// TestRenderer_ProgrammingMasks checks that programming prints two masks and a terminator.
func TestRenderer_ProgrammingMasks(t *testing.T) {
	t.Parallel()

	var (
		r     = NewRenderer(DefaultMessages())
		state = Unlocked
		cred  Credential
		texts []string
	)

	for _, key := range []Key{'1', '2', '3'} {
		out := Transition(state, cred, key)
		texts = append(texts, r.Render(state, out).Text())
		state, cred = out.Next, out.Credential
	}

	require.Equal(t, []string{"*", "*", "\r\n\r\nsafe is locked\r\n\r\n"}, texts)
}

// TestRenderer_NeverLeaksDigits checks masking output never contains the entered digit.
func TestRenderer_NeverLeaksDigits(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultMessages())

	for _, state := range States {
		for _, key := range allKeys() {
			if !key.IsDigit() {
				continue
			}

			out := Transition(state, programmed(), key)
			text := r.Render(state, out).Text()

			if state.IsEntering() || out.Next.IsEntering() {
				require.NotContains(t, text, key.String(), "from %s", state)
			}
		}
	}
}

// TestRenderer_StatusXorMasks checks no feedback mixes a status line with masks.
func TestRenderer_StatusXorMasks(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultMessages())

	for _, state := range States {
		for _, key := range append(allKeys(), KeyNone) {
			f := r.Render(state, Transition(state, programmed(), key))
			require.False(t, f.Status != "" && f.Masks > 0, "from %s key %s", state, key)
			require.LessOrEqual(t, strings.Count(f.Text(), LineEnding), 2)
		}
	}
}

// TestRenderer_UnmatchedIsSilent checks ignored keys print nothing.
func TestRenderer_UnmatchedIsSilent(t *testing.T) {
	t.Parallel()

	r := NewRenderer(DefaultMessages())
	f := r.Render(Open, Transition(Open, Credential{}, '5'))

	require.True(t, f.IsEmpty())
	require.Empty(t, f.Text())
}

// TestNewRenderer_CustomMessages checks configured texts replace defaults and blanks fall back.
func TestNewRenderer_CustomMessages(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Messages{Closed: "Sef je zatvoren!"})

	require.Equal(t, "Sef je zatvoren!\r\n\r\n", r.Greeting().Text())
	require.Equal(t, "safe is open\r\n\r\n", r.Render(Closed, Transition(Closed, Credential{}, 'A')).Text())
}
