package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/safe-lock/internal/domain/safe"
	"github.com/oshokin/safe-lock/internal/logger"
)

// Config holds the settings of the safe lock controller.
type Config struct {
	// BlinkInterval is the duration of one half of an LED blink cycle.
	BlinkInterval time.Duration `yaml:"blink_interval"`
	// PollInterval is the idle pause between two keypad polls.
	PollInterval time.Duration `yaml:"poll_interval"`
	// LogLevel is the minimum level of controller logs.
	LogLevel string `yaml:"log_level"`
	// Messages are the status lines printed on the serial console.
	Messages safe.Messages `yaml:"messages"`
	// Keypad is the key matrix, one string per row.
	Keypad []string `yaml:"keypad"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "safe-lock-settings.yaml"

	// DefaultBlinkInterval matches the blink period of the lock firmware.
	DefaultBlinkInterval = 500 * time.Millisecond

	// DefaultPollInterval keeps an idle controller from spinning a CPU core.
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeInterval is returned for negative durations.
	errNegativeInterval = errors.New("interval must not be negative")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
	// errDuplicateKey is returned when a key appears twice in the keypad matrix.
	errDuplicateKey = errors.New("duplicate keypad key")
	// errUnevenKeypad is returned when keypad rows differ in length.
	errUnevenKeypad = errors.New("keypad rows must have equal length")
)

// DefaultKeypad returns the layout of the 4x4 membrane keypad.
func DefaultKeypad() []string {
	return []string{
		"123A",
		"456B",
		"789C",
		"*0#D",
	}
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		BlinkInterval: DefaultBlinkInterval,
		PollInterval:  DefaultPollInterval,
		LogLevel:      DefaultLogLevel,
		Messages:      safe.DefaultMessages(),
		Keypad:        DefaultKeypad(),
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
// The second result reports whether the file was found.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)

	switch {
	case err == nil:
		return cfg, true, nil
	case errors.Is(err, os.ErrNotExist):
		return Default(), false, nil
	default:
		return nil, false, err
	}
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.BlinkInterval < 0 || settings.PollInterval < 0 {
		return errNegativeInterval
	}

	if settings.BlinkInterval == 0 {
		settings.BlinkInterval = DefaultBlinkInterval
	}

	if settings.PollInterval == 0 {
		settings.PollInterval = DefaultPollInterval
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%q: %w", settings.LogLevel, errUnknownLogLevel)
	}

	if len(settings.Keypad) == 0 {
		settings.Keypad = DefaultKeypad()
	}

	if err := validateKeypad(settings.Keypad); err != nil {
		return fmt.Errorf("invalid keypad: %w", err)
	}

	return nil
}

// validateKeypad checks that the matrix is rectangular and holds only known, unique keys.
func validateKeypad(rows []string) error {
	var (
		seen  = make(map[safe.Key]struct{})
		width = len([]rune(rows[0]))
	)

	for _, row := range rows {
		runes := []rune(row)
		if len(runes) != width || width == 0 {
			return errUnevenKeypad
		}

		for _, r := range runes {
			key, err := safe.ParseKey(r)
			if err != nil {
				return err
			}

			if _, ok := seen[key]; ok {
				return fmt.Errorf("%s: %w", key, errDuplicateKey)
			}

			seen[key] = struct{}{}
		}
	}

	return nil
}

// Keys returns the set of keys present on the keypad matrix.
func (c *Config) Keys() map[safe.Key]struct{} {
	keys := make(map[safe.Key]struct{})

	for _, row := range c.Keypad {
		for _, r := range row {
			if key, err := safe.ParseKey(r); err == nil {
				keys[key] = struct{}{}
			}
		}
	}

	return keys
}
