package controller

import "errors"

// ErrUnknownLogLevel indicates a log level override zap does not know.
var ErrUnknownLogLevel = errors.New("unknown log level")
