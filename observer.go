package helmsman

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// RouteObserver receives the ordered sequence [root] + stack after every
// stack-affecting router mutation. Delivery is synchronous, within the
// same call stack as the mutation; there is no batching or debouncing.
type RouteObserver func(routes []Route)

// subscription pairs an observer with its identifier.
type subscription struct {
	id       string
	observer RouteObserver
}

// observerSet is an ordered registry of route observers. It allows a
// render layer to mirror a router's routes without polling.
type observerSet struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID atomic.Uint64
	logger *slog.Logger
}

func newObserverSet(logger *slog.Logger) *observerSet {
	return &observerSet{logger: logger}
}

// subscribe registers an observer and returns an identifier that can be
// used to unsubscribe.
func (s *observerSet) subscribe(fn RouteObserver) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("sub-%d", s.nextID.Add(1))
	s.subs = append(s.subs, subscription{id: id, observer: fn})
	return id
}

// unsubscribe removes an observer by identifier. It returns true if the
// subscription was found and removed.
func (s *observerSet) unsubscribe(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

// notify dispatches routes to all observers in registration order.
// A panicking observer is recovered and logged so one misbehaving
// subscriber cannot block delivery to the rest.
func (s *observerSet) notify(routes []Route) {
	s.mu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		s.safeCall(sub.observer, routes)
	}
}

func (s *observerSet) safeCall(fn RouteObserver, routes []Route) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("route observer panicked",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn(routes)
}
