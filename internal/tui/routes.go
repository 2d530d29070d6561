package tui

import "strings"

// The demo models a small mail client. Each coordinator in the tree owns
// one of these route families.

// appRoute is the flow orchestrator's own family: top-level application
// modes and the signals that switch between them.
type appRoute string

const (
	RouteLaunch    appRoute = "launch"
	RouteLoggedOut appRoute = "logged-out"
	RouteLoggedIn  appRoute = "logged-in"
	RouteLogout    appRoute = "logout"
)

func (r appRoute) ID() string { return string(r) }

// authRoute belongs to the logged-out flow.
type authRoute string

const (
	RouteLogin    authRoute = "login"
	RouteRegister authRoute = "register"
)

func (r authRoute) ID() string { return string(r) }

// shellRoute drives the logged-in tab shell.
type shellRoute string

const (
	RouteMailTab     shellRoute = "tab-mail"
	RouteContactsTab shellRoute = "tab-contacts"
	RouteSettingsTab shellRoute = "tab-settings"
)

func (r shellRoute) ID() string { return string(r) }

// tabIndex maps a shell route to its tab position.
func (r shellRoute) tabIndex() int {
	switch r {
	case RouteMailTab:
		return 0
	case RouteContactsTab:
		return 1
	case RouteSettingsTab:
		return 2
	}
	return -1
}

// mailRoute belongs to the mail tab: the inbox, pushed message details,
// and the modal compose screen.
type mailRoute string

const (
	RouteInbox   mailRoute = "inbox"
	RouteCompose mailRoute = "compose"
)

func (r mailRoute) ID() string { return string(r) }

// MessageRoute addresses a single message by identifier.
func MessageRoute(id string) mailRoute { return mailRoute("msg/" + id) }

func (r mailRoute) isMessage() bool { return strings.HasPrefix(string(r), "msg/") }

// contactRoute belongs to the contacts tab.
type contactRoute string

const RouteContacts contactRoute = "contacts"

func (r contactRoute) ID() string { return string(r) }

// ContactRoute addresses a single contact by name.
func ContactRoute(name string) contactRoute { return contactRoute("contact/" + name) }

func (r contactRoute) isDetail() bool { return strings.HasPrefix(string(r), "contact/") }

// settingsRoute belongs to the settings tab. Security lives two levels
// deep so jumping straight to it exercises navigation path
// reconstruction.
type settingsRoute string

const (
	RouteSettings settingsRoute = "settings"
	RouteProfile  settingsRoute = "profile"
	RouteSecurity settingsRoute = "security"
)

func (r settingsRoute) ID() string { return string(r) }

// helpRoute is presented as a detour overlay, never via Navigate.
type helpRoute string

const RouteHelp helpRoute = "help"

func (r helpRoute) ID() string { return string(r) }
