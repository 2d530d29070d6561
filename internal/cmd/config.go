package cmd

import (
	"fmt"

	"github.com/helmsman-ui/helmsman/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the config
file and HELMSMAN_* environment variables.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", config.ConfigFile())

	fmt.Fprintln(out, "[navigation]")
	fmt.Fprintf(out, "  clean_on_bubble     = %v\n", cfg.Navigation.CleanOnBubble)
	fmt.Fprintf(out, "  auto_dismiss_modals = %v\n", cfg.Navigation.AutoDismissModals)
	fmt.Fprintf(out, "  max_stack_depth     = %d\n", cfg.Navigation.MaxStackDepth)

	fmt.Fprintln(out, "[deeplinks]")
	fmt.Fprintf(out, "  enabled = %v\n", cfg.Deeplinks.Enabled)
	fmt.Fprintf(out, "  scheme  = %s\n", cfg.Deeplinks.Scheme)

	fmt.Fprintln(out, "[tui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  show_breadcrumbs = %v\n", cfg.TUI.ShowBreadcrumbs)
	fmt.Fprintf(out, "  compact_help     = %v\n", cfg.TUI.CompactHelp)

	fmt.Fprintln(out, "[logging]")
	fmt.Fprintf(out, "  enabled     = %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level       = %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir         = %s\n", cfg.Logging.Dir)
	fmt.Fprintf(out, "  max_size_mb = %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups = %d\n", cfg.Logging.MaxBackups)

	return nil
}
