package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/safe-lock/internal/config"
	"github.com/oshokin/safe-lock/internal/device"
	"github.com/oshokin/safe-lock/internal/domain/safe"
	"github.com/oshokin/safe-lock/internal/logger"
	"github.com/oshokin/safe-lock/internal/service/led"
)

// Options controls the safe-lock process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Script replays the given keys instead of reading the terminal.
	Script string
	// LogLevel overrides the log level from the configuration.
	LogLevel string
	// In is the keypad input, stdin when nil.
	In io.Reader
	// Out is the serial console, stdout when nil.
	Out io.Writer
	// LogOutput receives the logs, stderr when nil.
	LogOutput io.Writer
	// Delayer overrides the wall clock used for LED timing.
	Delayer led.Delayer
}

// Run loads the configuration, wires the desktop devices and runs the
// controller until ctx is canceled or the keypad input ends.
func Run(ctx context.Context, opts *Options) error {
	cfg, found, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, ErrUnknownLogLevel)
	}

	in, out, logOutput := opts.In, opts.Out, opts.LogOutput
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	if logOutput == nil {
		logOutput = os.Stderr
	}

	// Raw terminals need explicit carriage returns in log lines too.
	lineEnding := ""
	if f, isFile := in.(*os.File); isFile && opts.Script == "" && device.IsTerminal(f) {
		lineEnding = logger.RawLineEnding
	}

	ctx = logger.ToContext(ctx, logger.NewConsole(logOutput, lineEnding, level))
	ctx = logger.WithName(ctx, "safe-lock")

	if !found {
		logger.InfoKV(ctx, "Settings file not found, using defaults", "config", opts.ConfigPath)
	}

	keypad, closeKeypad, err := openKeypad(ctx, opts.Script, in, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeKeypad(); err != nil {
			logger.ErrorKV(ctx, "Failed to close keypad", "error", err)
		}
	}()

	delayer := opts.Delayer
	if delayer == nil {
		delayer = device.Clock{}
	}

	var (
		sink       = device.NewWriterSink(ctx, out)
		pin        = device.NewLogPin(ctx)
		indicator  = led.NewInterpreter(pin, delayer, cfg.BlinkInterval)
		renderer   = safe.NewRenderer(cfg.Messages)
		controller = New(keypad, sink, indicator, renderer)
	)

	logger.DebugKV(ctx, "Controller configured",
		"blink_interval", cfg.BlinkInterval,
		"poll_interval", cfg.PollInterval,
		"keypad_rows", len(cfg.Keypad),
	)

	return controller.Run(ctx, cfg.PollInterval)
}

// openKeypad returns the scripted keypad when script is set, the terminal keypad otherwise.
//
//nolint:ireturn // The controller only needs the Keypad behaviour.
func openKeypad(ctx context.Context, script string, in io.Reader, cfg *config.Config) (Keypad, func() error, error) {
	if script != "" {
		keypad, err := device.NewReplayKeypad(script)
		if err != nil {
			return nil, nil, fmt.Errorf("keys script: %w", err)
		}

		return keypad, func() error { return nil }, nil
	}

	keypad, err := device.NewTerminalKeypad(ctx, in, cfg.Keys())
	if err != nil {
		return nil, nil, fmt.Errorf("open keypad: %w", err)
	}

	return keypad, keypad.Close, nil
}
