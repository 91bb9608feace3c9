package device

import (
	"context"
	"io"

	"github.com/oshokin/safe-lock/internal/logger"
)

// WriterSink is a serial console backed by an io.Writer.
type WriterSink struct {
	// ctx carries the logger for write failures.
	ctx context.Context //nolint:containedctx // Used only for logging.
	// w receives the console text.
	w io.Writer
}

// NewWriterSink creates a console writing to w.
func NewWriterSink(ctx context.Context, w io.Writer) *WriterSink {
	return &WriterSink{
		ctx: logger.WithName(ctx, "serial"),
		w:   w,
	}
}

// WriteText writes text as is. Failures are logged and otherwise ignored,
// a serial line has no back channel.
func (s *WriterSink) WriteText(text string) {
	if text == "" {
		return
	}

	if _, err := io.WriteString(s.w, text); err != nil {
		logger.WarnKV(s.ctx, "Failed to write console text", "error", err)
	}
}
