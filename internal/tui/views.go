package tui

import (
	"strings"

	"github.com/helmsman-ui/helmsman"
)

// Screen is the view payload produced for every demo route. The model
// renders it inside the chrome (tabs, breadcrumbs, status bar).
type Screen struct {
	Title string
	Body  string
}

// screenFor extracts the Screen for route from a coordinator's router,
// falling back to a placeholder when the builder declines.
func screenFor[R helmsman.Route](router *helmsman.Router[R], route R) Screen {
	if s, ok := router.View(route).(Screen); ok {
		return s
	}
	return Screen{Title: route.ID(), Body: "nothing to show"}
}

func authViews() helmsman.ViewBuilder[authRoute] {
	return helmsman.ViewBuilderFunc[authRoute](func(r authRoute) helmsman.View {
		switch r {
		case RouteLogin:
			return Screen{
				Title: "Sign in",
				Body:  "Welcome to Helmsman Mail.\n\nPress enter to sign in, r to register.",
			}
		case RouteRegister:
			return Screen{
				Title: "Register",
				Body:  "Create an account.\n\nPress esc to go back.",
			}
		}
		return nil
	})
}

var inboxMessages = []struct {
	ID      string
	Subject string
}{
	{"42", "Quarterly roadmap"},
	{"43", "Standup notes"},
	{"44", "Re: launch checklist"},
}

func mailViews() helmsman.ViewBuilder[mailRoute] {
	return helmsman.ViewBuilderFunc[mailRoute](func(r mailRoute) helmsman.View {
		switch {
		case r == RouteInbox:
			var b strings.Builder
			for _, m := range inboxMessages {
				b.WriteString("  #" + m.ID + "  " + m.Subject + "\n")
			}
			b.WriteString("\nPress enter to open the first message, c to compose.")
			return Screen{Title: "Inbox", Body: b.String()}
		case r == RouteCompose:
			return Screen{Title: "Compose", Body: "New message"}
		case r.isMessage():
			id := strings.TrimPrefix(string(r), "msg/")
			for _, m := range inboxMessages {
				if m.ID == id {
					return Screen{Title: m.Subject, Body: "Message #" + id + "\n\nLorem ipsum dolor sit amet."}
				}
			}
			return Screen{Title: "Message " + id, Body: "Message #" + id}
		}
		return nil
	})
}

func contactViews() helmsman.ViewBuilder[contactRoute] {
	return helmsman.ViewBuilderFunc[contactRoute](func(r contactRoute) helmsman.View {
		switch {
		case r == RouteContacts:
			return Screen{
				Title: "Contacts",
				Body:  "  ada\n  grace\n  linus\n\nPress enter to open the first contact.",
			}
		case r.isDetail():
			name := strings.TrimPrefix(string(r), "contact/")
			return Screen{Title: name, Body: "Contact card for " + name}
		}
		return nil
	})
}

func settingsViews() helmsman.ViewBuilder[settingsRoute] {
	return helmsman.ViewBuilderFunc[settingsRoute](func(r settingsRoute) helmsman.View {
		switch r {
		case RouteSettings:
			return Screen{
				Title: "Settings",
				Body:  "Press enter for profile, s to jump straight to security.",
			}
		case RouteProfile:
			return Screen{Title: "Profile", Body: "Display name, avatar, signature."}
		case RouteSecurity:
			return Screen{Title: "Security", Body: "Password, two-factor, sessions."}
		}
		return nil
	})
}

func helpViews() helmsman.ViewBuilder[helpRoute] {
	return helmsman.ViewBuilderFunc[helpRoute](func(r helpRoute) helmsman.View {
		if r != RouteHelp {
			return nil
		}
		return Screen{
			Title: "Help",
			Body: strings.Join([]string{
				"1/2/3    switch tabs",
				"enter    open item",
				"c        compose (modal)",
				"s        jump to security settings",
				"esc      back / dismiss",
				"L        log out",
				"?        toggle this help",
				"q        quit",
			}, "\n"),
		}
	})
}
