// Package config defines the controller settings and provides helpers to
// load, validate and save them in YAML format.
//
// Settings cover the LED blink timing, the keypad poll interval, the log level,
// the console status texts and the keypad matrix layout.
package config
