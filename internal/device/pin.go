package device

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/oshokin/safe-lock/internal/logger"
)

// LogPin is a status LED that reports its level changes through the logger.
type LogPin struct {
	// ctx carries the named logger.
	ctx context.Context //nolint:containedctx // Used only for logging.
	// level is the current output level.
	level atomic.Bool
	// changes counts level changes.
	changes atomic.Int64
}

// NewLogPin creates a pin that starts low.
func NewLogPin(ctx context.Context) *LogPin {
	return &LogPin{
		ctx: logger.WithName(ctx, "led"),
	}
}

// SetLevel drives the pin. Repeated writes of the same level are silent.
func (p *LogPin) SetLevel(on bool) {
	if p.level.Swap(on) == on {
		return
	}

	p.changes.Add(1)

	if on {
		logger.Info(p.ctx, "LED on")
	} else {
		logger.Info(p.ctx, "LED off")
	}
}

// Level reports the current output level.
func (p *LogPin) Level() bool {
	return p.level.Load()
}

// Changes reports how many times the level has changed.
func (p *LogPin) Changes() int64 {
	return p.changes.Load()
}

// Clock implements blocking delays with the wall clock.
type Clock struct{}

// Delay sleeps for d.
func (Clock) Delay(d time.Duration) {
	time.Sleep(d)
}
