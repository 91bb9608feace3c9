package integration

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/safe-lock/internal/config"
	"github.com/oshokin/safe-lock/internal/service/controller"
)

// countingDelayer records delays without sleeping.
type countingDelayer struct {
	// mu protects total.
	mu sync.Mutex
	// total is the sum of all delays.
	total time.Duration
}

// Delay records d.
func (d *countingDelayer) Delay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.total += delay
}

// Total returns the sum of all delays.
func (d *countingDelayer) Total() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.total
}

// TestRun_ScriptedSession runs the whole controller from a settings file and a key script.
func TestRun_ScriptedSession(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.BlinkInterval = 100 * time.Millisecond
	settings.PollInterval = time.Millisecond
	require.NoError(t, config.Save(cfgPath, settings))

	var (
		out     bytes.Buffer
		delayer = new(countingDelayer)
	)

	err := controller.Run(context.Background(), &controller.Options{
		ConfigPath: cfgPath,
		Script:     "# 123 129 123 #",
		LogLevel:   "debug",
		Out:        &out,
		LogOutput:  io.Discard,
		Delayer:    delayer,
	})
	require.NoError(t, err)

	want := "safe is closed\r\n\r\n" +
		"safe is unlocked\r\n\r\n" +
		"**\r\n\r\nsafe is locked\r\n\r\n" +
		"**\r\n\r\nsafe is locked\r\n\r\n" +
		"**\r\n\r\nsafe is unlocked\r\n\r\n" +
		"safe is closed\r\n\r\n"
	require.Equal(t, want, out.String())

	// Pulse trains: 1+1+2 for the failed attempt and 1+1 before the unlock,
	// each blink is two half-cycles. Continuous blinking adds more.
	require.GreaterOrEqual(t, delayer.Total(), 6*2*settings.BlinkInterval)
}

// TestRun_CustomMessages uses Serbian console texts from the settings file.
func TestRun_CustomMessages(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.Messages.Closed = "Sef je zatvoren!"
	settings.Messages.Open = "Sef je otvoren!"
	require.NoError(t, config.Save(cfgPath, settings))

	var out bytes.Buffer

	err := controller.Run(context.Background(), &controller.Options{
		ConfigPath: cfgPath,
		Script:     "AB",
		Out:        &out,
		LogOutput:  io.Discard,
		Delayer:    new(countingDelayer),
	})
	require.NoError(t, err)
	require.Equal(t, "Sef je zatvoren!\r\n\r\nSef je otvoren!\r\n\r\nSef je zatvoren!\r\n\r\n", out.String())
}

// TestRun_MissingConfigUsesDefaults runs without a settings file.
func TestRun_MissingConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := controller.Run(context.Background(), &controller.Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Script:     "#",
		Out:        &out,
		LogOutput:  io.Discard,
		Delayer:    new(countingDelayer),
	})
	require.NoError(t, err)
	require.Equal(t, "safe is closed\r\n\r\nsafe is unlocked\r\n\r\n", out.String())
}

// TestRun_RejectsBadInput checks invalid scripts and log levels fail fast.
func TestRun_RejectsBadInput(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	err := controller.Run(context.Background(), &controller.Options{
		ConfigPath: missing,
		Script:     "12Q",
		LogOutput:  io.Discard,
	})
	require.Error(t, err)

	err = controller.Run(context.Background(), &controller.Options{
		ConfigPath: missing,
		Script:     "1",
		LogLevel:   "loud",
		LogOutput:  io.Discard,
	})
	require.ErrorIs(t, err, controller.ErrUnknownLogLevel)
}

// TestRun_PipedKeypad reads the keys from a pipe instead of a script.
func TestRun_PipedKeypad(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	in := bytes.NewBufferString("#\n456\n")

	err := controller.Run(context.Background(), &controller.Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		In:         in,
		Out:        &out,
		LogOutput:  io.Discard,
		Delayer:    new(countingDelayer),
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "safe is unlocked\r\n\r\n")
}
