// Package device provides desktop stand-ins for the safe lock hardware.
//
// TerminalKeypad reads keys from a terminal or a pipe, ReplayKeypad plays a
// scripted sequence of presses, WriterSink plays the serial console, LogPin
// reports the status LED through the logger and Clock implements blocking
// delays with the wall clock.
package device
