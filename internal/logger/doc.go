// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, DebugKV, etc.).
//
// The controller and the device adapters accept a context and extract the
// logger from it, so every line carries the name of the component that wrote it.
package logger
