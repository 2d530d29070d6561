package helmsman

import (
	"fmt"
	"sync"

	"github.com/gobwas/glob"
)

// RouteBuilder converts a matched deeplink URL into a route.
type RouteBuilder func(url string) Route

type deeplinkEntry struct {
	pattern string
	matcher glob.Glob
	build   RouteBuilder
}

// DeeplinkRegistry maps external URL patterns to routes. Patterns use
// glob syntax with '/' as the separator, so "mail/msg-*" matches
// "mail/msg-42" but not "mail/thread/7". Registration order decides
// precedence: the first matching pattern wins.
type DeeplinkRegistry struct {
	mu      sync.RWMutex
	entries []deeplinkEntry
}

// NewDeeplinkRegistry creates an empty registry.
func NewDeeplinkRegistry() *DeeplinkRegistry {
	return &DeeplinkRegistry{}
}

// Register adds a URL pattern and its route builder. An invalid pattern
// is rejected with a ConfigurationError.
func (d *DeeplinkRegistry) Register(pattern string, build RouteBuilder) error {
	if build == nil {
		return NewConfigurationError(fmt.Sprintf("deeplink pattern %q has no route builder", pattern), nil)
	}
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return NewConfigurationError(fmt.Sprintf("invalid deeplink pattern %q", pattern), err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, deeplinkEntry{pattern: pattern, matcher: matcher, build: build})
	return nil
}

// Resolve maps url to a route via the first matching pattern. The second
// return value reports whether any pattern matched and produced a route.
func (d *DeeplinkRegistry) Resolve(url string) (Route, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, e := range d.entries {
		if !e.matcher.Match(url) {
			continue
		}
		if route := e.build(url); route != nil {
			return route, true
		}
	}
	return nil, false
}

// Dispatch resolves url and hands the route to entry's deeplink
// resolution. It returns false when no pattern matches or no coordinator
// accepts the route.
func (d *DeeplinkRegistry) Dispatch(url string, entry Node) bool {
	route, ok := d.Resolve(url)
	if !ok {
		return false
	}
	return entry.HandleDeeplink(route)
}
