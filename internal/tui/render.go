package tui

import "github.com/helmsman-ui/helmsman"

// Rendering accessors over the coordinator tree. These read router
// snapshots; they never mutate navigation state.

// SelectedTab returns the active tab index, or -1 outside the shell.
func (t *Tree) SelectedTab() int {
	if t.shell == nil {
		return -1
	}
	return t.shell.Router().State().SelectedTab
}

// ContentScreen returns the screen for the focused coordinator's current
// route.
func (t *Tree) ContentScreen() Screen {
	if !t.LoggedIn() {
		return screenFor(t.login.Router(), t.login.Router().State().CurrentRoute())
	}
	switch t.SelectedTab() {
	case 1:
		return screenFor(t.contacts.Router(), t.contacts.Router().State().CurrentRoute())
	case 2:
		return screenFor(t.settings.Router(), t.settings.Router().State().CurrentRoute())
	default:
		snap := t.mail.Router().State()
		// The modal renders in its own overlay; the content area keeps
		// showing the route underneath.
		if snap.Presented != nil {
			if len(snap.Stack) > 0 {
				return screenFor(t.mail.Router(), snap.Stack[len(snap.Stack)-1])
			}
			return screenFor(t.mail.Router(), snap.Root)
		}
		return screenFor(t.mail.Router(), snap.CurrentRoute())
	}
}

// ComposeScreen returns the modal compose screen when presented.
func (t *Tree) ComposeScreen() (Screen, bool) {
	if t.mail == nil {
		return Screen{}, false
	}
	modal, ok := t.mail.ModalCoordinator().(*helmsman.Coordinator[mailRoute])
	if !ok {
		return Screen{}, false
	}
	return screenFor(modal.Router(), modal.Router().State().CurrentRoute()), true
}

// HelpScreen returns the detour help screen when presented.
func (t *Tree) HelpScreen() (Screen, bool) {
	help, ok := t.orchestrator.DetourCoordinator().(*helmsman.Coordinator[helpRoute])
	if !ok {
		return Screen{}, false
	}
	return screenFor(help.Router(), help.Router().State().CurrentRoute()), true
}

// Breadcrumbs returns the focused coordinator's root-to-top route IDs.
func (t *Tree) Breadcrumbs() []string {
	var ids []string
	appendSnap := func(root helmsman.Route, stack []helmsman.Route) {
		ids = append(ids, root.ID())
		for _, r := range stack {
			ids = append(ids, r.ID())
		}
	}

	if !t.LoggedIn() {
		snap := t.login.Router().State()
		appendSnap(snap.Root, toRoutes(snap.Stack))
		return ids
	}
	switch t.SelectedTab() {
	case 1:
		snap := t.contacts.Router().State()
		appendSnap(snap.Root, toRoutes(snap.Stack))
	case 2:
		snap := t.settings.Router().State()
		appendSnap(snap.Root, toRoutes(snap.Stack))
	default:
		snap := t.mail.Router().State()
		appendSnap(snap.Root, toRoutes(snap.Stack))
	}
	return ids
}

func toRoutes[R helmsman.Route](in []R) []helmsman.Route {
	out := make([]helmsman.Route, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
