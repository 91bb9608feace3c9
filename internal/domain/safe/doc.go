// Package safe contains the core domain of the safe lock.
//
// It defines the keypad Key, the safe State, the three digit Credential and the
// LED Directive, together with the two decision tables of the controller:
// Transition (what state comes next and which LED pattern to show) and
// Renderer (what text the serial console prints for that step).
//
// Everything in this package is pure: no hardware, no clocks, no logging.
package safe
