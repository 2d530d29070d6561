package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/helmsman-ui/helmsman"
	"github.com/helmsman-ui/helmsman/internal/config"
	"github.com/helmsman-ui/helmsman/internal/logging"
)

// App wraps the Bubbletea program around the coordinator tree.
type App struct {
	program   *tea.Program
	model     Model
	tree      *Tree
	cfg       *config.Config
	logger    *logging.Logger
	deeplinks *helmsman.DeeplinkRegistry
}

// New creates the demo application.
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	tree, err := NewTree(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		model:  NewModel(tree, cfg),
		tree:   tree,
		cfg:    cfg,
		logger: logger,
	}
	if cfg.Deeplinks.Enabled {
		a.deeplinks = newDeeplinkRegistry()
	}
	return a, nil
}

// newDeeplinkRegistry maps the demo's URL space onto routes.
func newDeeplinkRegistry() *helmsman.DeeplinkRegistry {
	reg := helmsman.NewDeeplinkRegistry()
	// Patterns are matched against the path after the scheme.
	_ = reg.Register("mail/msg-*", func(url string) helmsman.Route {
		return MessageRoute(strings.TrimPrefix(url, "mail/msg-"))
	})
	_ = reg.Register("mail", func(string) helmsman.Route { return RouteInbox })
	_ = reg.Register("contacts/*", func(url string) helmsman.Route {
		return ContactRoute(strings.TrimPrefix(url, "contacts/"))
	})
	_ = reg.Register("settings/security", func(string) helmsman.Route { return RouteSecurity })
	_ = reg.Register("settings", func(string) helmsman.Route { return RouteSettings })
	return reg
}

// Open resolves a deeplink URL like "helmsman://mail/msg-42". It expects
// the tab shell to be active; the login flow does not own deeplink
// destinations.
func (a *App) Open(url string) error {
	if a.deeplinks == nil {
		return fmt.Errorf("deeplinks are disabled")
	}
	trimmed := strings.TrimPrefix(url, a.cfg.Deeplinks.Scheme+"://")
	route, ok := a.deeplinks.Resolve(trimmed)
	if !ok {
		return fmt.Errorf("no route matches %q", url)
	}
	if !a.tree.OpenDeeplink(route) {
		return fmt.Errorf("no coordinator accepted %q", url)
	}
	a.logger.Info("deeplink opened", "url", url, "route", route.ID())
	if a.program != nil {
		a.program.Send(routesChangedMsg{})
	}
	return nil
}

// Run starts the TUI and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	// Router change notifications re-render the view even when the
	// mutation came from outside the key loop.
	a.tree.SetNotify(func() {
		if a.program != nil {
			a.program.Send(routesChangedMsg{})
		}
	})

	_, err := a.program.Run()
	return err
}

// Tree exposes the coordinator tree, mainly for startup deeplinks.
func (a *App) Tree() *Tree { return a.tree }
