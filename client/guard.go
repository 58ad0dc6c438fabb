package client

import "sync"

// GuardDecision is the route guard's verdict for a protected page.
type GuardDecision int

const (
	// GuardPending means the session check has not resolved: show a
	// neutral loading state, never protected content or a redirect.
	GuardPending GuardDecision = iota
	// GuardAllow means the page may proceed to its own data fetch.
	GuardAllow
	// GuardRedirect means send the user to the login page. Issued at
	// most once per guard.
	GuardRedirect
)

// RouteGuard keeps unauthenticated users off protected pages. It
// consults the session store and collapses the unauthenticated case to
// exactly one redirect decision, so a page polling the guard does not
// stack navigations.
type RouteGuard struct {
	sessions *SessionStore

	mu         sync.Mutex
	redirected bool
}

func NewRouteGuard(sessions *SessionStore) *RouteGuard {
	return &RouteGuard{sessions: sessions}
}

// Decide returns the current verdict. While the session check is in
// flight the answer is always GuardPending regardless of any stale
// user value.
func (g *RouteGuard) Decide() GuardDecision {
	if g.sessions.IsLoading() {
		return GuardPending
	}

	if g.sessions.CurrentUser() != nil {
		return GuardAllow
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.redirected {
		return GuardPending
	}
	g.redirected = true
	return GuardRedirect
}
