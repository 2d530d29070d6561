package helmsman

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the navigation error taxonomy. All navigation
// errors are non-fatal: they are surfaced through return values and the
// optional ErrorReporter, never as panics.
var (
	// ErrNavigationFailed indicates that no coordinator in the
	// reachable tree accepted the route.
	ErrNavigationFailed = errors.New("no coordinator accepted the route")
	// ErrModalNotConfigured indicates that a route resolved to modal
	// navigation but no modal coordinator was available for it.
	ErrModalNotConfigured = errors.New("no modal coordinator configured for route")
	// ErrInvalidDetourNavigation indicates that Navigate was called for
	// a detour route; detours must go through PresentDetour explicitly.
	ErrInvalidDetourNavigation = errors.New("detour routes must be presented explicitly")
	// ErrViewCreationFailed indicates that the view builder declined a
	// route the coordinator claimed to own.
	ErrViewCreationFailed = errors.New("view builder declined the route")
	// ErrInvalidTabIndex indicates a tab switch to an out-of-range index.
	ErrInvalidTabIndex = errors.New("tab index out of range")
	// ErrDuplicateChild indicates an attempt to attach a coordinator
	// that already has a parent.
	ErrDuplicateChild = errors.New("coordinator already attached to a parent")
	// ErrCircularReference indicates a tree mutation that would make a
	// coordinator its own ancestor.
	ErrCircularReference = errors.New("coordinator cannot be its own ancestor")
)

// Severity represents the severity level of a navigation error.
type Severity int

const (
	// SeverityInfo is for conditions that are expected in normal use,
	// such as a route nobody handles.
	SeverityInfo Severity = iota
	// SeverityWarning is for conditions that likely indicate a problem.
	SeverityWarning
	// SeverityError is for conditions that indicate a programming error
	// in the host application, such as structural tree violations.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorReporter receives structured navigation errors for presentation as
// user-visible diagnostics. It is an explicit dependency injected into
// the coordinator tree at construction; when absent, failures surface
// only through boolean return values.
type ErrorReporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to the ErrorReporter interface.
type ReporterFunc func(error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) { f(err) }

// NavError is the interface implemented by all structured navigation
// errors. It extends error with classification used by error sinks.
type NavError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the message is safe to display to
	// end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all structured errors.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }

func (e *baseError) IsUserFacing() bool { return e.userFacing }

// NavigationError reports that route resolution failed somewhere in the
// coordinator tree.
//
// Example:
//
//	err := helmsman.NewNavigationError("unhandled route", helmsman.ErrNavigationFailed).
//	    WithCoordinator(coord.ID()).
//	    WithRoute(route.ID())
type NavigationError struct {
	baseError
	CoordinatorID string
	RouteID       string
	RouteType     string
	Context       string
}

// NewNavigationError creates a NavigationError with the given message and
// underlying cause.
func NewNavigationError(message string, cause error) *NavigationError {
	return &NavigationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityInfo,
			userFacing: true,
		},
	}
}

// WithCoordinator records the coordinator where resolution terminated.
func (e *NavigationError) WithCoordinator(id string) *NavigationError {
	e.CoordinatorID = id
	return e
}

// WithRoute records the identifier of the route that failed to resolve.
func (e *NavigationError) WithRoute(id string) *NavigationError {
	e.RouteID = id
	return e
}

// WithRouteType records the navigation kind of the failed route, when it
// was known at the point of failure.
func (e *NavigationError) WithRouteType(kind NavKind) *NavigationError {
	e.RouteType = kind.String()
	return e
}

// WithContext records free-form resolution context (for example "deeplink").
func (e *NavigationError) WithContext(ctx string) *NavigationError {
	e.Context = ctx
	return e
}

// Error returns the formatted error message.
func (e *NavigationError) Error() string {
	var parts []string
	if e.CoordinatorID != "" {
		parts = append(parts, fmt.Sprintf("coordinator=%s", e.CoordinatorID))
	}
	if e.RouteID != "" {
		parts = append(parts, fmt.Sprintf("route=%s", e.RouteID))
	}
	if e.RouteType != "" {
		parts = append(parts, fmt.Sprintf("type=%s", e.RouteType))
	}
	if e.Context != "" {
		parts = append(parts, fmt.Sprintf("context=%s", e.Context))
	}

	prefix := "navigation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("navigation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *NavigationError) Is(target error) bool {
	if _, ok := target.(*NavigationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TreeError reports a structural tree-mutation violation: attaching a
// child that already has a parent, or a mutation that would create a
// cycle. Tree errors indicate a programming error in the host
// application; the offending mutation is rejected without partial effect.
type TreeError struct {
	baseError
	CoordinatorID string
	ChildID       string
}

// NewTreeError creates a TreeError with the given message and cause,
// which should be ErrDuplicateChild or ErrCircularReference.
func NewTreeError(message string, cause error) *TreeError {
	return &TreeError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: false,
		},
	}
}

// WithCoordinator records the coordinator whose mutation was rejected.
func (e *TreeError) WithCoordinator(id string) *TreeError {
	e.CoordinatorID = id
	return e
}

// WithChild records the child coordinator involved in the violation.
func (e *TreeError) WithChild(id string) *TreeError {
	e.ChildID = id
	return e
}

// Error returns the formatted error message.
func (e *TreeError) Error() string {
	var parts []string
	if e.CoordinatorID != "" {
		parts = append(parts, fmt.Sprintf("coordinator=%s", e.CoordinatorID))
	}
	if e.ChildID != "" {
		parts = append(parts, fmt.Sprintf("child=%s", e.ChildID))
	}

	prefix := "tree error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("tree error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *TreeError) Is(target error) bool {
	if _, ok := target.(*TreeError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TabError reports a tab switch to an index outside the valid range.
type TabError struct {
	baseError
	Index int
	Tabs  int
}

// NewTabError creates a TabError for the given out-of-range index.
func NewTabError(index, tabs int) *TabError {
	return &TabError{
		baseError: baseError{
			message:    "tab switch rejected",
			cause:      ErrInvalidTabIndex,
			severity:   SeverityWarning,
			userFacing: false,
		},
		Index: index,
		Tabs:  tabs,
	}
}

// Error returns the formatted error message.
func (e *TabError) Error() string {
	return fmt.Sprintf("tab error [index=%d, tabs=%d]: %s: %v", e.Index, e.Tabs, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *TabError) Is(target error) bool {
	if _, ok := target.(*TabError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ViewError reports that the view builder declined a route its
// coordinator claimed to own.
type ViewError struct {
	baseError
	RouteID string
}

// NewViewError creates a ViewError for the given route identifier.
func NewViewError(routeID string) *ViewError {
	return &ViewError{
		baseError: baseError{
			message:    "view creation failed",
			cause:      ErrViewCreationFailed,
			severity:   SeverityWarning,
			userFacing: true,
		},
		RouteID: routeID,
	}
}

// Error returns the formatted error message.
func (e *ViewError) Error() string {
	return fmt.Sprintf("view error [route=%s]: %s: %v", e.RouteID, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ViewError) Is(target error) bool {
	if _, ok := target.(*ViewError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ConfigurationError is the catch-all for setup-time misconfiguration:
// missing delegates, invalid deeplink patterns, and similar.
type ConfigurationError struct {
	baseError
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: false,
		},
	}
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.message, e.cause)
	}
	return fmt.Sprintf("configuration error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *ConfigurationError) Is(target error) bool {
	if _, ok := target.(*ConfigurationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// IsUserFacing reports whether the error message is safe to display to
// end users. Errors outside this package's taxonomy are not.
func IsUserFacing(err error) bool {
	var ne NavError
	if errors.As(err, &ne) {
		return ne.IsUserFacing()
	}
	return false
}
