// Package controller runs the safe lock: it polls the keypad, feeds new key
// presses to the state machine, prints the feedback on the serial console and
// drives the status LED, all from a single loop that owns every piece of state.
package controller
