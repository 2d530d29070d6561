// Package config loads and validates helmsman application configuration
// via viper, with optional live reload through a filesystem watcher.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete helmsman configuration
type Config struct {
	Navigation NavigationConfig `mapstructure:"navigation"`
	Deeplinks  DeeplinkConfig   `mapstructure:"deeplinks"`
	TUI        TUIConfig        `mapstructure:"tui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// NavigationConfig controls coordinator-tree policies
type NavigationConfig struct {
	// CleanOnBubble resets a coordinator's navigation state when a route
	// bubbles past it unhandled (default: false, state is preserved)
	CleanOnBubble bool `mapstructure:"clean_on_bubble"`
	// AutoDismissModals dismisses a presented modal when the in-flight
	// route resolves outside the modal's subtree (default: true)
	AutoDismissModals bool `mapstructure:"auto_dismiss_modals"`
	// MaxStackDepth warns when a navigation stack grows past this many
	// entries, 0 = no limit
	MaxStackDepth int `mapstructure:"max_stack_depth"`
}

// DeeplinkConfig controls deeplink URL handling
type DeeplinkConfig struct {
	// Enabled controls whether deeplink dispatch is active (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Scheme is the URL scheme stripped before pattern matching
	// (default: "helmsman")
	Scheme string `mapstructure:"scheme"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// ShowBreadcrumbs renders the navigation stack as a breadcrumb bar
	// (default: true)
	ShowBreadcrumbs bool `mapstructure:"show_breadcrumbs"`
	// CompactHelp shows single-letter key hints instead of full
	// descriptions (default: false)
	CompactHelp bool `mapstructure:"compact_help"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for log files; empty logs to stderr
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Navigation: NavigationConfig{
			CleanOnBubble:     false,
			AutoDismissModals: true,
			MaxStackDepth:     0,
		},
		Deeplinks: DeeplinkConfig{
			Enabled: true,
			Scheme:  "helmsman",
		},
		TUI: TUIConfig{
			Theme:           "default",
			ShowBreadcrumbs: true,
			CompactHelp:     false,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("navigation.clean_on_bubble", defaults.Navigation.CleanOnBubble)
	viper.SetDefault("navigation.auto_dismiss_modals", defaults.Navigation.AutoDismissModals)
	viper.SetDefault("navigation.max_stack_depth", defaults.Navigation.MaxStackDepth)

	viper.SetDefault("deeplinks.enabled", defaults.Deeplinks.Enabled)
	viper.SetDefault("deeplinks.scheme", defaults.Deeplinks.Scheme)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_breadcrumbs", defaults.TUI.ShowBreadcrumbs)
	viper.SetDefault("tui.compact_help", defaults.TUI.CompactHelp)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// unmarshaling fails
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "helmsman")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".helmsman"
	}
	return filepath.Join(home, ".config", "helmsman")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
