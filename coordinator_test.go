package helmsman

import (
	"errors"
	"testing"
)

func TestNewCoordinatorRequiresDelegate(t *testing.T) {
	_, err := NewCoordinator(Config[mainRoute]{Root: mainRoute("home")})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewCoordinator without delegate = %v, want ConfigurationError", err)
	}
}

func TestNavigateLocalPriority(t *testing.T) {
	// Both parent and child would accept the route; the parent must
	// handle it locally without delegating.
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("child-home"), Delegate: stubDelegate[mainRoute]{}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !parent.Navigate(mainRoute("details")) {
		t.Fatal("Navigate should succeed")
	}

	if got := stackIDs(parent.Router().State()); !sameIDs(got, "details") {
		t.Errorf("parent stack = %v, want [details]", got)
	}
	if got := stackIDs(child.Router().State()); len(got) != 0 {
		t.Errorf("child stack = %v, want empty (local handling wins)", got)
	}
}

func TestNavigateBubblesToParent(t *testing.T) {
	// A coordinator that handles nothing bubbles to a parent that does.
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
		accepts: func(childRoute) bool { return false },
	}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !child.Navigate(mainRoute("details")) {
		t.Fatal("route handled by the parent should resolve via bubbling")
	}
	if got := stackIDs(parent.Router().State()); !sameIDs(got, "details") {
		t.Errorf("parent stack = %v, want [details]", got)
	}
}

func TestNavigateDelegatesToFirstMatchingChild(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{
		accepts: func(mainRoute) bool { return false },
	}})
	first := mustCoordinator(t, Config[childRoute]{Root: childRoute("a"), Delegate: stubDelegate[childRoute]{}})
	second := mustCoordinator(t, Config[childRoute]{Root: childRoute("b"), Delegate: stubDelegate[childRoute]{}})
	if err := root.AddChild(first); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := root.AddChild(second); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !root.Navigate(childRoute("x")) {
		t.Fatal("Navigate should resolve to a child")
	}
	if got := stackIDs(first.Router().State()); !sameIDs(got, "x") {
		t.Errorf("first child stack = %v, want [x]", got)
	}
	if got := stackIDs(second.Router().State()); len(got) != 0 {
		t.Errorf("second child stack = %v, want empty (first match wins)", got)
	}
}

func TestNavigateChecksModalAfterChildren(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{
		accepts: func(r mainRoute) bool { return r == "home" },
	}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("list"), Delegate: stubDelegate[childRoute]{}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{}})

	if err := root.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := root.PresentModal(modal, mainRoute("home")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !root.Navigate(childRoute("x")) {
		t.Fatal("Navigate should resolve")
	}
	if got := stackIDs(child.Router().State()); !sameIDs(got, "x") {
		t.Errorf("child stack = %v, want [x] (children searched before modal)", got)
	}
	if got := stackIDs(modal.Router().State()); len(got) != 0 {
		t.Errorf("modal stack = %v, want empty", got)
	}
}

func TestNavigateReachesModalSubtree(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{
		accepts: func(r mainRoute) bool { return r == "home" },
	}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{}})
	if err := root.PresentModal(modal, mainRoute("home")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !root.Navigate(childRoute("attach")) {
		t.Fatal("route owned by the modal subtree should resolve")
	}
	if root.ModalCoordinator() == nil {
		t.Fatal("modal handling its own route must stay presented")
	}
	if got := stackIDs(modal.Router().State()); !sameIDs(got, "attach") {
		t.Errorf("modal stack = %v, want [attach]", got)
	}
}

func TestModalAutoDismissOnLocalNavigation(t *testing.T) {
	// Scenario: a presented modal whose subtree cannot handle the
	// in-flight route is dismissed even when the presenter handles the
	// route itself.
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{
		accepts: func(r childRoute) bool { return r == "compose" },
	}})
	if err := parent.PresentModal(modal, mainRoute("r1")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !parent.Navigate(mainRoute("r2")) {
		t.Fatal("Navigate should succeed")
	}

	if parent.ModalCoordinator() != nil {
		t.Error("modal should be auto-dismissed")
	}
	if parent.Router().State().Presented != nil {
		t.Error("presented route should be cleared")
	}
	if modal.Parent() != nil {
		t.Error("dismissed modal should be detached")
	}
	if got := stackIDs(parent.Router().State()); !sameIDs(got, "r2") {
		t.Errorf("parent stack = %v, want [r2]", got)
	}
}

func TestModalAutoDismissOnBubbling(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
		accepts: func(childRoute) bool { return false },
	}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	modal := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("picker"), Delegate: stubDelegate[overlayRoute]{
		accepts: func(r overlayRoute) bool { return r == "picker" },
	}})
	if err := child.PresentModal(modal, childRoute("inbox")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !child.Navigate(mainRoute("details")) {
		t.Fatal("Navigate should bubble and succeed")
	}
	if child.ModalCoordinator() != nil {
		t.Error("bubbling past a modal that cannot host the route should dismiss it")
	}
	// Stack state survives bubbling by default.
	if got := stackIDs(parent.Router().State()); !sameIDs(got, "details") {
		t.Errorf("parent stack = %v, want [details]", got)
	}
}

func TestModalAutoDismissOnDeeplinkBubbling(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
		accepts: func(childRoute) bool { return false },
	}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	modal := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("picker"), Delegate: stubDelegate[overlayRoute]{
		accepts: func(r overlayRoute) bool { return r == "picker" },
	}})
	if err := child.PresentModal(modal, childRoute("inbox")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !child.HandleDeeplink(mainRoute("details")) {
		t.Fatal("deeplink should bubble and succeed")
	}
	if child.ModalCoordinator() != nil {
		t.Error("a deeplink bubbling past a modal that cannot host the route should dismiss it")
	}
	// Stack state survives deeplink bubbling by default, like Navigate.
	if got := stackIDs(parent.Router().State()); !sameIDs(got, "details") {
		t.Errorf("parent stack = %v, want [details]", got)
	}
}

func TestDeeplinkBubbleCleanupPolicy(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t,
		Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
			accepts: func(childRoute) bool { return false },
		}},
		WithCleanOnBubble(true),
	)
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	child.Router().Push(childRoute("msg-1"))

	if !child.HandleDeeplink(mainRoute("details")) {
		t.Fatal("deeplink should bubble and succeed")
	}
	if got := stackIDs(child.Router().State()); len(got) != 0 {
		t.Errorf("clean-on-bubble child stack = %v, want empty after deeplink bubbling", got)
	}
}

func TestModalDismissPolicyKeepsModal(t *testing.T) {
	parent := mustCoordinator(t,
		Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}},
		WithModalDismissPolicy(func(Route) bool { return false }),
	)
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{
		accepts: func(r childRoute) bool { return r == "compose" },
	}})
	if err := parent.PresentModal(modal, mainRoute("r1")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	if !parent.Navigate(mainRoute("r2")) {
		t.Fatal("Navigate should succeed")
	}
	if parent.ModalCoordinator() == nil {
		t.Error("dismiss policy returning false must keep the modal open")
	}
}

func TestModalNavigationType(t *testing.T) {
	var modal *Coordinator[mainRoute]
	delegate := modalDelegate[mainRoute]{
		stubDelegate: stubDelegate[mainRoute]{
			navType: func(r mainRoute) NavigationType {
				if r == "compose" {
					return NavigateModal()
				}
				return NavigatePush()
			},
		},
		modal: func(r mainRoute) (Node, error) {
			var err error
			modal, err = NewCoordinator(Config[mainRoute]{Root: r, Delegate: stubDelegate[mainRoute]{}})
			return modal, err
		},
	}
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: delegate})

	if !parent.Navigate(mainRoute("compose")) {
		t.Fatal("modal navigation should succeed")
	}

	if parent.ModalCoordinator() == nil {
		t.Fatal("modal coordinator should be lazily constructed and presented")
	}
	if parent.ModalCoordinator().PresentationContext() != ContextModal {
		t.Error("modal child should carry the modal presentation context")
	}
	snap := parent.Router().State()
	if snap.Presented == nil || snap.Presented.ID() != "compose" {
		t.Errorf("presented = %v, want compose", snap.Presented)
	}
	if modal.Router().State().Root.ID() != "compose" {
		t.Errorf("modal root = %q, want compose", modal.Router().State().Root.ID())
	}
}

func TestModalNavigationWithoutProvider(t *testing.T) {
	reporter := &collectReporter{}
	parent := mustCoordinator(t, Config[mainRoute]{
		Root:     mainRoute("home"),
		Reporter: reporter,
		Delegate: stubDelegate[mainRoute]{
			navType: func(mainRoute) NavigationType { return NavigateModal() },
		},
	})

	if parent.Navigate(mainRoute("compose")) {
		t.Fatal("modal navigation without a provider should fail")
	}
	if len(reporter.errs) == 0 || !errors.Is(reporter.errs[0], ErrModalNotConfigured) {
		t.Errorf("expected ErrModalNotConfigured report, got %v", reporter.errs)
	}
}

func TestNavigateRejectsDetourRoutes(t *testing.T) {
	reporter := &collectReporter{}
	c := mustCoordinator(t, Config[mainRoute]{
		Root:     mainRoute("home"),
		Reporter: reporter,
		Delegate: stubDelegate[mainRoute]{
			navType: func(mainRoute) NavigationType { return NavigateDetour() },
		},
	})

	if c.Navigate(mainRoute("help")) {
		t.Fatal("detour routes must be rejected by Navigate")
	}
	if len(reporter.errs) == 0 || !errors.Is(reporter.errs[0], ErrInvalidDetourNavigation) {
		t.Errorf("expected ErrInvalidDetourNavigation report, got %v", reporter.errs)
	}
	if c.CanNavigate(mainRoute("help")) {
		t.Error("CanNavigate must mirror the detour rejection")
	}
	var navErr *NavigationError
	if !errors.As(reporter.errs[0], &navErr) || navErr.RouteType != "detour" {
		t.Errorf("reported error should carry the detour route type, got %+v", reporter.errs[0])
	}
}

func TestCanNavigateRejectsDetourDescendants(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{
		accepts: func(mainRoute) bool { return false },
	}})
	help := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("help"), Delegate: stubDelegate[overlayRoute]{
		navType: func(overlayRoute) NavigationType { return NavigateDetour() },
	}})
	if err := root.AddChild(help); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if root.Navigate(overlayRoute("help")) {
		t.Fatal("Navigate must reject a detour-typed descendant route")
	}
	if root.CanNavigate(overlayRoute("help")) {
		t.Error("CanNavigate must agree with Navigate for detour-typed descendants")
	}
}

func TestPresentDetourIndependentOfModal(t *testing.T) {
	c := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{}})
	detour := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("help"), Delegate: stubDelegate[overlayRoute]{}})

	if err := c.PresentModal(modal, mainRoute("compose")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}
	if err := c.PresentDetour(detour, overlayRoute("help")); err != nil {
		t.Fatalf("PresentDetour: %v", err)
	}

	if detour.PresentationContext() != ContextDetour {
		t.Error("detour child should carry the detour presentation context")
	}

	c.DismissDetour()
	if c.ModalCoordinator() == nil || c.Router().State().Presented == nil {
		t.Error("dismissing the detour must not touch the modal")
	}
	if c.DetourCoordinator() != nil || c.Router().State().Detour != nil {
		t.Error("detour should be fully cleared")
	}
	if detour.Parent() != nil {
		t.Error("dismissed detour coordinator should be detached")
	}
}

func TestNavigationPathReconstruction(t *testing.T) {
	delegate := pathDelegate[mainRoute]{
		path: func(r mainRoute) []mainRoute {
			if r == "abyss" {
				return []mainRoute{"shallow", "deep", "abyss"}
			}
			return nil
		},
	}
	c := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: delegate})

	if !c.Navigate(mainRoute("abyss")) {
		t.Fatal("Navigate should succeed")
	}
	if got := stackIDs(c.Router().State()); !sameIDs(got, "shallow", "deep", "abyss") {
		t.Errorf("stack = %v, want [shallow deep abyss]", got)
	}

	// Routes without a declared path navigate directly.
	c.Router().PopToRoot()
	if !c.Navigate(mainRoute("details")) {
		t.Fatal("Navigate should succeed")
	}
	if got := stackIDs(c.Router().State()); !sameIDs(got, "details") {
		t.Errorf("stack = %v, want [details]", got)
	}
}

func TestCanNavigateIsSideEffectFree(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{}})
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !parent.CanNavigate(mainRoute("details")) {
		t.Error("CanNavigate should be true for a locally handled route")
	}
	if !parent.CanNavigate(childRoute("x")) {
		t.Error("CanNavigate should be true for a child-handled route")
	}
	if !child.CanNavigate(mainRoute("details")) {
		t.Error("CanNavigate should be true for a parent-handled route")
	}
	if parent.CanNavigate(overlayRoute("nowhere")) {
		t.Error("CanNavigate should be false for an unowned route")
	}

	if got := stackIDs(parent.Router().State()); len(got) != 0 {
		t.Errorf("CanNavigate mutated parent stack: %v", got)
	}
	if got := stackIDs(child.Router().State()); len(got) != 0 {
		t.Errorf("CanNavigate mutated child stack: %v", got)
	}
}

func TestNavigateFailureReported(t *testing.T) {
	reporter := &collectReporter{}
	c := mustCoordinator(t, Config[mainRoute]{
		Root:     mainRoute("home"),
		Reporter: reporter,
		Delegate: stubDelegate[mainRoute]{accepts: func(mainRoute) bool { return false }},
	})

	if c.Navigate(mainRoute("nowhere")) {
		t.Fatal("Navigate should fail with no handler anywhere")
	}

	if len(reporter.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(reporter.errs))
	}
	var navErr *NavigationError
	if !errors.As(reporter.errs[0], &navErr) {
		t.Fatalf("reported error = %T, want *NavigationError", reporter.errs[0])
	}
	if navErr.CoordinatorID != c.ID() || navErr.RouteID != "nowhere" {
		t.Errorf("error context = %+v", navErr)
	}
	if !errors.Is(navErr, ErrNavigationFailed) {
		t.Error("NavigationError should wrap ErrNavigationFailed")
	}
}

func TestHandleDeeplink(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	mid := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
		accepts: func(r childRoute) bool { return r == "inbox" },
	}})
	leaf := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("settings"), Delegate: stubDelegate[overlayRoute]{}})
	if err := root.AddChild(mid); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := mid.AddChild(leaf); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !root.HandleDeeplink(overlayRoute("profile")) {
		t.Fatal("deeplink should resolve to the grandchild")
	}
	if got := stackIDs(leaf.Router().State()); !sameIDs(got, "profile") {
		t.Errorf("leaf stack = %v, want [profile]", got)
	}

	// Deeplinks also bubble when nothing below the entry point matches.
	if !leaf.HandleDeeplink(mainRoute("home-detail")) {
		t.Error("deeplink unhandled below should bubble to an ancestor")
	}
}

func TestCrossBranchCleanup(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{
		accepts: func(mainRoute) bool { return false },
	}})
	abandoned := mustCoordinator(t,
		Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
			accepts: func(childRoute) bool { return false },
		}},
		WithCleanOnBubble(true),
	)
	target := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("settings"), Delegate: stubDelegate[overlayRoute]{}})
	if err := root.AddChild(abandoned); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := root.AddChild(target); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	abandoned.Router().Push(childRoute("msg-1"))

	if !root.Navigate(overlayRoute("profile")) {
		t.Fatal("Navigate should resolve to the sibling branch")
	}
	if got := stackIDs(abandoned.Router().State()); len(got) != 0 {
		t.Errorf("abandoned branch stack = %v, want cleaned", got)
	}
}

func TestBubbleCleanupPolicy(t *testing.T) {
	t.Run("opt-in cleanup clears state", func(t *testing.T) {
		parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
		child := mustCoordinator(t,
			Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
				accepts: func(childRoute) bool { return false },
			}},
			WithCleanOnBubble(true),
		)
		if err := parent.AddChild(child); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
		child.Router().Push(childRoute("msg-1"))

		if !child.Navigate(mainRoute("details")) {
			t.Fatal("Navigate should bubble and succeed")
		}
		if got := stackIDs(child.Router().State()); len(got) != 0 {
			t.Errorf("child stack = %v, want cleaned before bubbling", got)
		}
	})

	t.Run("default preserves state", func(t *testing.T) {
		parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
		child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{
			accepts: func(childRoute) bool { return false },
		}})
		if err := parent.AddChild(child); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
		child.Router().Push(childRoute("msg-1"))

		if !child.Navigate(mainRoute("details")) {
			t.Fatal("Navigate should bubble and succeed")
		}
		if got := stackIDs(child.Router().State()); !sameIDs(got, "msg-1") {
			t.Errorf("child stack = %v, want [msg-1] preserved", got)
		}
	})
}

func TestAddChildRejectsDuplicateParent(t *testing.T) {
	reporter := &collectReporter{}
	a := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("a"), Delegate: stubDelegate[mainRoute]{}, Reporter: reporter})
	b := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("b"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("c"), Delegate: stubDelegate[childRoute]{}})

	if err := a.AddChild(child); err != nil {
		t.Fatalf("first AddChild: %v", err)
	}
	err := b.AddChild(child)
	if !errors.Is(err, ErrDuplicateChild) {
		t.Fatalf("second AddChild = %v, want ErrDuplicateChild", err)
	}
	if len(b.Children()) != 0 {
		t.Error("rejected AddChild must not mutate the tree")
	}
	if child.Parent() != Node(a) {
		t.Error("child's parent must be unchanged after rejection")
	}
}

func TestAddChildRejectsCycle(t *testing.T) {
	a := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("a"), Delegate: stubDelegate[mainRoute]{}})
	b := mustCoordinator(t, Config[childRoute]{Root: childRoute("b"), Delegate: stubDelegate[childRoute]{}})
	if err := a.AddChild(b); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	err := b.AddChild(a)
	if !errors.Is(err, ErrCircularReference) {
		t.Fatalf("cyclic AddChild = %v, want ErrCircularReference", err)
	}
	if a.Parent() != nil {
		t.Error("rejected cyclic attachment must not set a parent")
	}

	if err := a.AddChild(a); !errors.Is(err, ErrCircularReference) {
		t.Errorf("self AddChild = %v, want ErrCircularReference", err)
	}
}

func TestAddChildPresentationContexts(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	pushed := mustCoordinator(t, Config[childRoute]{Root: childRoute("a"), Delegate: stubDelegate[childRoute]{}})
	rooted := mustCoordinator(t, Config[childRoute]{Root: childRoute("b"), Delegate: stubDelegate[childRoute]{}})

	if err := parent.AddChild(pushed); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := parent.AddChild(rooted, ContextRoot); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if got := pushed.PresentationContext(); got != ContextPushed {
		t.Errorf("default context = %v, want pushed", got)
	}
	if got := rooted.PresentationContext(); got != ContextRoot {
		t.Errorf("explicit context = %v, want root", got)
	}
}

func TestRemoveChildTearsDownSubtree(t *testing.T) {
	root := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	child := mustCoordinator(t, Config[childRoute]{Root: childRoute("inbox"), Delegate: stubDelegate[childRoute]{}})
	grandchild := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("leaf"), Delegate: stubDelegate[overlayRoute]{}})
	if err := root.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := child.AddChild(grandchild); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if !root.RemoveChild(child) {
		t.Fatal("RemoveChild should find the child")
	}

	if child.Parent() != nil {
		t.Error("removed child should have nil parent")
	}
	if grandchild.Parent() != nil {
		t.Error("teardown should recursively detach the subtree")
	}
	if len(root.Children()) != 0 {
		t.Error("child should be absent from the parent's children")
	}

	if root.RemoveChild(child) {
		t.Error("RemoveChild of a non-child should report false")
	}
}

func TestPopDismissesPresentedCoordinator(t *testing.T) {
	parent := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{}})
	if err := parent.PresentModal(modal, mainRoute("compose")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}

	modal.Router().Push(childRoute("attach"))
	modal.Pop()
	if parent.ModalCoordinator() == nil {
		t.Fatal("popping within the modal stack must not dismiss the modal")
	}

	modal.Pop()
	if parent.ModalCoordinator() != nil {
		t.Error("empty-stack pop on a modal coordinator should dismiss it")
	}
	if parent.Router().State().Presented != nil {
		t.Error("presented route should be cleared by the dismissal")
	}
}

func TestResetToCleanState(t *testing.T) {
	c := mustCoordinator(t, Config[mainRoute]{Root: mainRoute("home"), Delegate: stubDelegate[mainRoute]{}})
	modal := mustCoordinator(t, Config[childRoute]{Root: childRoute("compose"), Delegate: stubDelegate[childRoute]{}})
	detour := mustCoordinator(t, Config[overlayRoute]{Root: overlayRoute("help"), Delegate: stubDelegate[overlayRoute]{}})

	c.Router().Push(mainRoute("a"))
	if err := c.PresentModal(modal, mainRoute("compose")); err != nil {
		t.Fatalf("PresentModal: %v", err)
	}
	if err := c.PresentDetour(detour, overlayRoute("help")); err != nil {
		t.Fatalf("PresentDetour: %v", err)
	}

	c.ResetToCleanState()

	snap := c.Router().State()
	if len(snap.Stack) != 0 || snap.Presented != nil || snap.Detour != nil {
		t.Errorf("state not clean: %+v", snap)
	}
	if c.ModalCoordinator() != nil || c.DetourCoordinator() != nil {
		t.Error("modal and detour coordinators should be torn down")
	}
	if modal.Parent() != nil || detour.Parent() != nil {
		t.Error("torn down coordinators should be detached")
	}
}
