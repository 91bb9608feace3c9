package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/safe-lock/internal/config"
	"github.com/oshokin/safe-lock/internal/service/controller"
	"github.com/oshokin/safe-lock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// keys is an optional key script replayed instead of reading the terminal.
	keys string
	// logLevel overrides the log level from the configuration.
	logLevel string

	// rootCmd runs the safe lock controller.
	rootCmd = &cobra.Command{
		Use:   "safe-lock",
		Short: "Run the keypad safe lock controller.",
		Long: `Runs the safe lock controller on this machine.

The keyboard plays the 4x4 keypad: A opens a closed safe and B closes it again,
# unlocks a closed safe with no password and closes an unlocked one, and three
digits program a password into an unlocked safe, which locks it. Entering the
same three digits unlocks the safe; a wrong digit starts the entry over.

Status text is printed on stdout as on the serial console of the lock, the
status LED is reported in the log on stderr. Press Ctrl-C or Ctrl-D to quit.

Use --keys to replay a key script instead, e.g. --keys "#123 123".
A dot in the script is a poll with no key pressed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return controller.Run(ctx, &controller.Options{
				ConfigPath: configPath,
				Script:     keys,
				LogLevel:   logLevel,
				In:         cmd.InOrStdin(),
				Out:        cmd.OutOrStdout(),
				LogOutput:  cmd.ErrOrStderr(),
			})
		},
	}

	// initConfigCmd writes the default settings file.
	initConfigCmd = &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a settings file with default values.",
		Long: `Writes the default controller settings as YAML so they can be edited:
blink interval, poll interval, log level, console status texts and keypad layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if len(args) > 0 {
				path = args[0]
			}

			if err := config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings written to %s\n", path)

			return nil
		},
	}
)

// Execute runs the safe-lock CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&keys, "keys", "k", "", "replay this key script instead of reading the terminal")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "override the configured log level")

	rootCmd.AddCommand(initConfigCmd)
	version.AttachCobraVersionCommand(rootCmd)
}
