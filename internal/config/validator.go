package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.level")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid TUI themes
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all
// validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateNavigation()...)
	errors = append(errors, c.validateDeeplinks()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateNavigation() []ValidationError {
	var errors []ValidationError

	if c.Navigation.MaxStackDepth < 0 {
		errors = append(errors, ValidationError{
			Field:   "navigation.max_stack_depth",
			Value:   c.Navigation.MaxStackDepth,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateDeeplinks() []ValidationError {
	var errors []ValidationError

	if c.Deeplinks.Enabled && c.Deeplinks.Scheme == "" {
		errors = append(errors, ValidationError{
			Field:   "deeplinks.scheme",
			Value:   c.Deeplinks.Scheme,
			Message: "must be set when deeplinks are enabled",
		})
	}
	if strings.ContainsAny(c.Deeplinks.Scheme, ":/") {
		errors = append(errors, ValidationError{
			Field:   "deeplinks.scheme",
			Value:   c.Deeplinks.Scheme,
			Message: "must be a bare scheme without separators",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
