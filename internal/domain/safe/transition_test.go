package safe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// allKeys returns every key of the 4x4 matrix.
func allKeys() []Key {
	keys := make([]Key, 0, 16)
	for _, r := range "0123456789ABCD#*" {
		keys = append(keys, Key(r))
	}

	return keys
}

// programmed is the credential 1-2-3.
func programmed() Credential {
	return Credential{'1', '2', '3'}
}

// TestTransition_Table checks every row of the transition table.
func TestTransition_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		from      State
		cred      Credential
		key       Key
		next      State
		directive Directive
		wantCred  Credential
	}{
		{"closed opens", Closed, Credential{}, 'A', Open, PulseTrain(1), Credential{}},
		{"closed unlocks", Closed, Credential{}, '#', Unlocked, SteadyOn(), Credential{}},
		{"open closes", Open, Credential{}, 'B', Closed, PulseTrain(2), Credential{}},
		{"unlocked first digit", Unlocked, Credential{}, '4', UnlockedEnteringDigit1, ContinuousBlink(), Credential{'4'}},
		{"unlocked closes", Unlocked, programmed(), '#', Closed, Off(), programmed()},
		{"second digit", UnlockedEnteringDigit1, Credential{'4'}, '5', UnlockedEnteringDigit2, ContinuousBlink(), Credential{'4', '5'}},
		{"third digit locks", UnlockedEnteringDigit2, Credential{'4', '5'}, '6', Locked, Off(), Credential{'4', '5', '6'}},
		{"locked first match", Locked, programmed(), '1', LockedEnteringDigit1, PulseTrain(1), programmed()},
		{"locked first miss", Locked, programmed(), '7', Locked, PulseTrain(2), programmed()},
		{"second match", LockedEnteringDigit1, programmed(), '2', LockedEnteringDigit2, PulseTrain(1), programmed()},
		{"second miss", LockedEnteringDigit1, programmed(), '1', Locked, PulseTrain(2), programmed()},
		{"third match unlocks", LockedEnteringDigit2, programmed(), '3', Unlocked, SteadyOn(), programmed()},
		{"third miss", LockedEnteringDigit2, programmed(), '0', Locked, PulseTrain(2), programmed()},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := Transition(tc.from, tc.cred, tc.key)
			require.True(t, out.Matched)
			require.Equal(t, tc.next, out.Next)
			require.Equal(t, tc.directive, out.Directive)
			require.Equal(t, tc.wantCred, out.Credential)
		})
	}
}

// TestTransition_UnmatchedStays verifies that keys without a transition keep the state and password.
func TestTransition_UnmatchedStays(t *testing.T) {
	t.Parallel()

	for _, state := range States {
		for _, key := range append(allKeys(), KeyNone) {
			out := Transition(state, programmed(), key)
			if out.Matched {
				continue
			}

			require.Equal(t, state, out.Next, "state %s key %s", state, key)
			require.Equal(t, programmed(), out.Credential)
		}
	}

	// Spot checks of ignored keys.
	require.False(t, Transition(Closed, Credential{}, '1').Matched)
	require.False(t, Transition(Open, Credential{}, 'A').Matched)
	require.False(t, Transition(Unlocked, Credential{}, 'C').Matched)
	require.False(t, Transition(UnlockedEnteringDigit1, Credential{'1'}, '#').Matched)
	require.False(t, Transition(Locked, programmed(), '#').Matched)
	require.False(t, Transition(LockedEnteringDigit2, programmed(), '*').Matched)
}

// TestTransition_WrongDigitAlwaysRelocks checks that any wrong digit of the entry sequence returns to Locked.
func TestTransition_WrongDigitAlwaysRelocks(t *testing.T) {
	t.Parallel()

	cred := programmed()
	slots := map[State]int{
		Locked:               0,
		LockedEnteringDigit1: 1,
		LockedEnteringDigit2: 2,
	}

	for state, slot := range slots {
		for _, key := range allKeys() {
			if !key.IsDigit() || key == cred[slot] {
				continue
			}

			out := Transition(state, cred, key)
			require.True(t, out.Matched)
			require.Equal(t, Locked, out.Next)
			require.Equal(t, PulseTrain(2), out.Directive)
			require.Equal(t, cred, out.Credential)
		}
	}
}

// TestTransition_DirectiveIsDeterministic checks that matched steps always pick a known pattern.
func TestTransition_DirectiveIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, state := range States {
		for _, key := range allKeys() {
			first := Transition(state, programmed(), key)
			second := Transition(state, programmed(), key)
			require.Equal(t, first, second)

			if !first.Matched {
				continue
			}

			switch first.Directive.Kind {
			case DirectiveOff, DirectiveSteadyOn, DirectiveContinuousBlink:
				require.Zero(t, first.Directive.Count)
			case DirectivePulseTrain:
				require.Contains(t, []int{1, 2}, first.Directive.Count)
			default:
				t.Fatalf("unexpected directive %v", first.Directive)
			}
		}
	}
}

// TestTransition_RoundTrip programs a password and enters it again.
func TestTransition_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, digits := range []string{"123", "000", "907", "112"} {
		state, cred := Closed, Credential{}

		feed := func(keys string) {
			for _, r := range keys {
				out := Transition(state, cred, Key(r))
				state, cred = out.Next, out.Credential
			}
		}

		feed("#")
		require.Equal(t, Unlocked, state)

		feed(digits)
		require.Equal(t, Locked, state)
		require.True(t, cred.IsComplete())

		programmedCred := cred

		feed(digits)
		require.Equal(t, Unlocked, state)
		require.Equal(t, programmedCred, cred)
	}
}

// TestTransition_ReprogramOverwrites checks that an unlocked safe accepts a new password.
func TestTransition_ReprogramOverwrites(t *testing.T) {
	t.Parallel()

	state, cred := Unlocked, programmed()

	for _, r := range "987" {
		out := Transition(state, cred, Key(r))
		state, cred = out.Next, out.Credential
	}

	require.Equal(t, Locked, state)
	require.Equal(t, Credential{'9', '8', '7'}, cred)
}
