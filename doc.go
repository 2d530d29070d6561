// Package helmsman provides hierarchical navigation coordination for
// tree-structured UI applications.
//
// A tree of [Coordinator] nodes decides, for any requested destination
// ([Route]), which node is responsible for displaying it and how it should
// be presented: pushed onto a stack, replaced in place, shown modally,
// shown as a state-preserving overlay ("detour"), or reached by switching
// tabs. Each coordinator owns exactly one [Router], which holds that
// node's navigation state and notifies subscribers after every
// stack-affecting mutation so an external render layer can react.
//
// # Architecture
//
// The package is organized leaf-first:
//
//   - [Route]: an immutable destination descriptor, identified by a
//     stable unique string.
//   - [Router]: the per-coordinator state container and mutation API.
//   - [Coordinator]: a tree node implementing the route-resolution
//     algorithm (local handling, exhaustive subtree search, bubbling to
//     the parent).
//   - [TabCoordinator]: maps children to tab indices.
//   - [FlowOrchestrator]: swaps a single "current flow" subtree wholesale
//     on major state transitions (for example logged-out to logged-in).
//
// Application behavior is supplied through a [Delegate] implemented per
// route family, optionally extended with [ModalProvider], [PathProvider],
// and [FlowHandler] capabilities.
//
// # Resolution Order
//
// Local handling always wins over delegation; delegation to descendants
// always wins over bubbling to the parent. Among descendants the first
// match in child-list order wins, with the modal slot checked after
// sibling children. If a presented modal cannot handle the in-flight
// route, it is dismissed during resolution so the UI never shows a modal
// whose content no longer corresponds to the navigation target.
//
// # Concurrency
//
// Every navigation and mutation entry point is synchronous and runs to
// completion before returning. Router state is guarded by a mutex, but
// the coordinator tree itself assumes a single logical UI goroutine;
// callers in multi-threaded hosts must serialize entry into the tree.
// Change notifications are delivered synchronously, within the same call
// stack as the mutation.
//
// # Basic Usage
//
//	coord, err := helmsman.NewCoordinator(helmsman.Config[AppRoute]{
//	    Root:     RouteHome,
//	    Delegate: appDelegate{},
//	    Views:    viewBuilder{},
//	})
//	if err != nil {
//	    return err
//	}
//
//	coord.Router().Subscribe(func(routes []helmsman.Route) {
//	    // re-render
//	})
//
//	if !coord.Navigate(RouteProfile{UserID: "42"}) {
//	    // no coordinator in the reachable tree accepted the route
//	}
package helmsman
