package tui

import (
	"sync"

	"github.com/helmsman-ui/helmsman"
	"github.com/helmsman-ui/helmsman/internal/config"
	"github.com/helmsman-ui/helmsman/internal/logging"
)

// statusReporter keeps the most recent navigation error for the status
// bar. It is safe for concurrent use.
type statusReporter struct {
	mu   sync.Mutex
	last error
}

func (r *statusReporter) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = err
}

// Last returns a displayable message for the most recent error, or ""
// when there is none or the error is not safe to show.
func (r *statusReporter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil || !helmsman.IsUserFacing(r.last) {
		return ""
	}
	return r.last.Error()
}

func (r *statusReporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = nil
}

// Tree owns the demo's coordinator tree. All methods must be called from
// the UI goroutine; only the reporter is touched concurrently.
type Tree struct {
	orchestrator *helmsman.FlowOrchestrator[appRoute]

	login    *helmsman.Coordinator[authRoute]
	shell    *helmsman.TabCoordinator[shellRoute]
	mail     *helmsman.Coordinator[mailRoute]
	contacts *helmsman.Coordinator[contactRoute]
	settings *helmsman.Coordinator[settingsRoute]

	cfg      *config.Config
	logger   *logging.Logger
	reporter *statusReporter
	opts     []helmsman.Option

	// notify is invoked after any router's stack changes.
	notify func()
}

// NewTree builds the orchestrator and the logged-out flow. The tree
// starts in the login flow; ShowMain switches to the tab shell.
func NewTree(cfg *config.Config, logger *logging.Logger) (*Tree, error) {
	t := &Tree{
		cfg:      cfg,
		logger:   logger,
		reporter: &statusReporter{},
	}
	if cfg.Navigation.CleanOnBubble {
		t.opts = append(t.opts, helmsman.WithCleanOnBubble(true))
	}
	if !cfg.Navigation.AutoDismissModals {
		t.opts = append(t.opts, helmsman.WithModalDismissPolicy(func(helmsman.Route) bool { return false }))
	}

	orch, err := helmsman.NewFlowOrchestrator(helmsman.Config[appRoute]{
		Root:     RouteLaunch,
		Delegate: &appDelegate{tree: t},
		Logger:   logger.WithCoordinator("orchestrator").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return nil, err
	}
	t.orchestrator = orch

	if err := t.ShowLogin(); err != nil {
		return nil, err
	}
	return t, nil
}

// SetNotify registers the callback invoked after stack changes.
func (t *Tree) SetNotify(fn func()) { t.notify = fn }

func (t *Tree) changed(routes []helmsman.Route) {
	// routes is [root] + stack; only the stack counts toward the depth.
	if limit := t.cfg.Navigation.MaxStackDepth; limit > 0 && len(routes)-1 > limit {
		t.logger.Warn("navigation stack depth exceeded",
			"depth", len(routes)-1, "max", limit, "route", routes[len(routes)-1].ID())
	}
	if t.notify != nil {
		t.notify()
	}
}

// ShowLogin replaces the current flow with a fresh logged-out flow.
func (t *Tree) ShowLogin() error {
	login, err := helmsman.NewCoordinator(helmsman.Config[authRoute]{
		Root:     RouteLogin,
		Delegate: authDelegate{},
		Views:    authViews(),
		Logger:   t.logger.WithCoordinator("auth").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return err
	}
	login.Router().Subscribe(t.changed)

	if err := t.orchestrator.TransitionToFlow(login, RouteLoggedOut); err != nil {
		return err
	}
	t.login = login
	t.shell, t.mail, t.contacts, t.settings = nil, nil, nil, nil
	return nil
}

// ShowMain replaces the current flow with a fresh logged-in tab shell.
func (t *Tree) ShowMain() error {
	shell, err := helmsman.NewTabCoordinator(helmsman.Config[shellRoute]{
		Root:     RouteMailTab,
		Delegate: shellDelegate{},
		Logger:   t.logger.WithCoordinator("shell").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return err
	}

	mail, err := helmsman.NewCoordinator(helmsman.Config[mailRoute]{
		Root:     RouteInbox,
		Delegate: mailDelegate{logger: t.logger, reporter: t.reporter},
		Views:    mailViews(),
		Logger:   t.logger.WithCoordinator("mail").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return err
	}
	contacts, err := helmsman.NewCoordinator(helmsman.Config[contactRoute]{
		Root:     RouteContacts,
		Delegate: contactDelegate{},
		Views:    contactViews(),
		Logger:   t.logger.WithCoordinator("contacts").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return err
	}
	settings, err := helmsman.NewCoordinator(helmsman.Config[settingsRoute]{
		Root:     RouteSettings,
		Delegate: settingsDelegate{},
		Views:    settingsViews(),
		Logger:   t.logger.WithCoordinator("settings").Slog(),
		Reporter: t.reporter,
	}, t.opts...)
	if err != nil {
		return err
	}

	for _, tab := range []helmsman.Node{mail, contacts, settings} {
		if err := shell.AddChild(tab); err != nil {
			return err
		}
	}
	mail.Router().Subscribe(t.changed)
	contacts.Router().Subscribe(t.changed)
	settings.Router().Subscribe(t.changed)

	if err := t.orchestrator.TransitionToFlow(shell, RouteLoggedIn); err != nil {
		return err
	}
	t.login = nil
	t.shell, t.mail, t.contacts, t.settings = shell, mail, contacts, settings
	return nil
}

// LoggedIn reports whether the tab shell is the active flow.
func (t *Tree) LoggedIn() bool { return t.shell != nil }

// Dispatch resolves route starting at the focused coordinator.
func (t *Tree) Dispatch(route helmsman.Route) bool {
	return t.focused().Navigate(route)
}

// OpenDeeplink resolves an externally supplied route from the tree root,
// switching the selected tab to match where it landed.
func (t *Tree) OpenDeeplink(route helmsman.Route) bool {
	before := t.tabDepths()
	if !t.orchestrator.HandleDeeplink(route) {
		return false
	}
	t.syncTabSelection(before)
	return true
}

// syncTabSelection switches to the tab whose stack grew during the
// deeplink, if any.
func (t *Tree) syncTabSelection(before [3]int) {
	if t.shell == nil {
		return
	}
	after := t.tabDepths()
	for i := range after {
		if after[i] > before[i] {
			_ = t.shell.SwitchToTab(i)
			return
		}
	}
}

func (t *Tree) tabDepths() [3]int {
	var depths [3]int
	if t.shell == nil {
		return depths
	}
	for i := range depths {
		depths[i] = t.stackDepth(i)
	}
	return depths
}

func (t *Tree) stackDepth(tab int) int {
	switch tab {
	case 0:
		return len(t.mail.Router().State().Stack)
	case 1:
		return len(t.contacts.Router().State().Stack)
	case 2:
		return len(t.settings.Router().State().Stack)
	}
	return 0
}

// focused returns the coordinator that should get local priority for
// key-driven navigation.
func (t *Tree) focused() helmsman.Node {
	if t.shell == nil {
		if t.login != nil {
			return t.login
		}
		return t.orchestrator
	}
	if sel := t.shell.SelectedTab(); sel != nil {
		return sel
	}
	return t.shell
}

// Pop pops the focused coordinator, dismissing it when it is a modal
// with an empty stack.
func (t *Tree) Pop() {
	if t.mail != nil {
		if modal := t.mail.ModalCoordinator(); modal != nil {
			if c, ok := modal.(*helmsman.Coordinator[mailRoute]); ok {
				c.Pop()
				return
			}
		}
	}
	if c, ok := t.focused().(*helmsman.Coordinator[mailRoute]); ok {
		c.Pop()
		return
	}
	if c, ok := t.focused().(*helmsman.Coordinator[contactRoute]); ok {
		c.Pop()
		return
	}
	if c, ok := t.focused().(*helmsman.Coordinator[settingsRoute]); ok {
		c.Pop()
		return
	}
	if c, ok := t.focused().(*helmsman.Coordinator[authRoute]); ok {
		c.Pop()
	}
}

// ToggleHelp presents or dismisses the help detour on the orchestrator.
func (t *Tree) ToggleHelp() error {
	if t.orchestrator.DetourCoordinator() != nil {
		t.orchestrator.DismissDetour()
		return nil
	}
	help, err := helmsman.NewCoordinator(helmsman.Config[helpRoute]{
		Root:     RouteHelp,
		Delegate: helpDelegate{},
		Views:    helpViews(),
		Logger:   t.logger.WithCoordinator("help").Slog(),
		Reporter: t.reporter,
	})
	if err != nil {
		return err
	}
	return t.orchestrator.PresentDetour(help, RouteHelp)
}

// HelpVisible reports whether the help detour is presented.
func (t *Tree) HelpVisible() bool {
	return t.orchestrator.DetourCoordinator() != nil
}

// ComposeVisible reports whether the compose modal is presented.
func (t *Tree) ComposeVisible() bool {
	return t.mail != nil && t.mail.ModalCoordinator() != nil
}

// Status returns the most recent user-facing navigation error, if any.
func (t *Tree) Status() string { return t.reporter.Last() }

// ClearStatus drops the remembered navigation error.
func (t *Tree) ClearStatus() { t.reporter.Clear() }

// -----------------------------------------------------------------------------
// Delegates
// -----------------------------------------------------------------------------

// appDelegate handles nothing itself; bubbled logout routes become flow
// transitions back to the login flow.
type appDelegate struct {
	tree *Tree
}

func (d *appDelegate) CanHandle(appRoute) bool { return false }

func (d *appDelegate) NavigationType(appRoute) helmsman.NavigationType {
	return helmsman.NavigatePush()
}

func (d *appDelegate) HandleFlowChange(route helmsman.Route) bool {
	if route.ID() != RouteLogout.ID() {
		return false
	}
	if err := d.tree.ShowLogin(); err != nil {
		d.tree.reporter.Report(err)
		return false
	}
	return true
}

func (d *appDelegate) CanHandleFlowChange(route helmsman.Route) bool {
	return route.ID() == RouteLogout.ID()
}

type authDelegate struct{}

func (authDelegate) CanHandle(r authRoute) bool {
	return r == RouteLogin || r == RouteRegister
}

func (authDelegate) NavigationType(r authRoute) helmsman.NavigationType {
	if r == RouteLogin {
		return helmsman.NavigateReplace()
	}
	return helmsman.NavigatePush()
}

type shellDelegate struct{}

func (shellDelegate) CanHandle(r shellRoute) bool { return r.tabIndex() >= 0 }

func (shellDelegate) NavigationType(r shellRoute) helmsman.NavigationType {
	return helmsman.NavigateTab(r.tabIndex())
}

// mailDelegate presents compose modally and owns everything else in the
// mail family. The compose coordinator is built lazily on first use.
type mailDelegate struct {
	logger   *logging.Logger
	reporter *statusReporter
}

func (mailDelegate) CanHandle(r mailRoute) bool {
	return r == RouteInbox || r == RouteCompose || r.isMessage()
}

func (mailDelegate) NavigationType(r mailRoute) helmsman.NavigationType {
	if r == RouteCompose {
		return helmsman.NavigateModal()
	}
	return helmsman.NavigatePush()
}

func (d mailDelegate) ModalCoordinator(r mailRoute) (helmsman.Node, error) {
	return helmsman.NewCoordinator(helmsman.Config[mailRoute]{
		Root:     r,
		Delegate: composeDelegate{},
		Views:    mailViews(),
		Logger:   d.logger.WithCoordinator("compose").Slog(),
		Reporter: d.reporter,
	})
}

// composeDelegate only owns the compose screen itself.
type composeDelegate struct{}

func (composeDelegate) CanHandle(r mailRoute) bool { return r == RouteCompose }

func (composeDelegate) NavigationType(mailRoute) helmsman.NavigationType {
	return helmsman.NavigatePush()
}

type contactDelegate struct{}

func (contactDelegate) CanHandle(r contactRoute) bool {
	return r == RouteContacts || r.isDetail()
}

func (contactDelegate) NavigationType(contactRoute) helmsman.NavigationType {
	return helmsman.NavigatePush()
}

// settingsDelegate reconstructs the path for deep destinations so the
// back stack stays coherent when jumping straight to security.
type settingsDelegate struct{}

func (settingsDelegate) CanHandle(r settingsRoute) bool {
	return r == RouteSettings || r == RouteProfile || r == RouteSecurity
}

func (settingsDelegate) NavigationType(settingsRoute) helmsman.NavigationType {
	return helmsman.NavigatePush()
}

func (settingsDelegate) NavigationPath(r settingsRoute) []settingsRoute {
	if r == RouteSecurity {
		return []settingsRoute{RouteProfile, RouteSecurity}
	}
	return nil
}

// helpDelegate marks its route as a detour so Navigate rejects it; help
// is only reachable through PresentDetour.
type helpDelegate struct{}

func (helpDelegate) CanHandle(r helpRoute) bool { return r == RouteHelp }

func (helpDelegate) NavigationType(helpRoute) helmsman.NavigationType {
	return helmsman.NavigateDetour()
}
