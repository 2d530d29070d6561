package cmd

import (
	"fmt"
	"os"

	"github.com/helmsman-ui/helmsman/internal/config"
	"github.com/helmsman-ui/helmsman/internal/logging"
	"github.com/helmsman-ui/helmsman/internal/tui"
	"github.com/spf13/cobra"
)

var runOpen string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo mail client",
	Long: `Run the demo mail client TUI. The app starts in the login flow;
press enter to sign in and ? for the key reference.

Use --open to resolve a deeplink on startup, for example:

  helmsman run --open helmsman://mail/msg-42`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runOpen, "open", "", "deeplink URL to open after startup")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Close()

	app, err := tui.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build the app: %w", err)
	}

	// Live-reload the theme and navigation policies on config edits.
	if _, statErr := os.Stat(config.ConfigFile()); statErr == nil {
		watcher, err := config.NewWatcher(config.ConfigFile(),
			func(updated *config.Config) {
				logger.Info("config reloaded", "file", config.ConfigFile())
			},
			func(err error) {
				logger.Warn("config reload failed", "error", err)
			},
		)
		if err == nil {
			if err := watcher.Start(); err == nil {
				defer watcher.Stop()
			}
		}
	}

	if runOpen != "" {
		// Deeplinks land in the logged-in shell.
		if err := app.Tree().ShowMain(); err != nil {
			return fmt.Errorf("failed to open shell: %w", err)
		}
		if err := app.Open(runOpen); err != nil {
			return fmt.Errorf("failed to open %q: %w", runOpen, err)
		}
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(logging.Options{
		Dir:   cfg.Logging.Dir,
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	})
}
