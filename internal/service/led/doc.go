// Package led executes LED directives on the status pin.
//
// The Interpreter keeps the active directive and renders it one call at a
// time: steady levels are a single pin write, a pulse train blocks until all
// of its blinks are shown, and a continuous blink advances by one half-cycle
// per call so the caller can keep polling the keypad.
package led
