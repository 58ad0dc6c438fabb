package client

import (
	"context"
	"net/http"
	"testing"
)

func TestRouteGuard_PendingWhileLoading(t *testing.T) {
	server := newTestServer(t, authServerMux(t))
	store, _ := NewSessionStore(server.URL, testLogger())
	guard := NewRouteGuard(store)

	// The store starts loading; no redirect, no content, regardless of
	// how often the guard is consulted.
	for i := 0; i < 3; i++ {
		if decision := guard.Decide(); decision != GuardPending {
			t.Fatalf("expected GuardPending while loading, got %v", decision)
		}
	}
}

func TestRouteGuard_RedirectsExactlyOnce(t *testing.T) {
	server := newTestServer(t, authServerMux(t))
	store, _ := NewSessionStore(server.URL, testLogger())
	guard := NewRouteGuard(store)

	store.CheckSession(context.Background())

	if decision := guard.Decide(); decision != GuardRedirect {
		t.Fatalf("expected GuardRedirect for an unauthenticated session, got %v", decision)
	}
	// Polling again must not stack a second navigation.
	if decision := guard.Decide(); decision == GuardRedirect {
		t.Error("guard issued a second redirect")
	}
}

func TestRouteGuard_AllowsAuthenticatedSession(t *testing.T) {
	server := newTestServer(t, authServerMux(t))
	store, _ := NewSessionStore(server.URL, testLogger())
	guard := NewRouteGuard(store)

	if _, err := store.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if decision := guard.Decide(); decision != GuardAllow {
		t.Errorf("expected GuardAllow, got %v", decision)
	}
}

func TestRouteGuard_RedirectResetNotNeededAfterLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"id":1,"name":"Admin","email":"a@b.c","username":"admin"}}`))
	})
	mux.HandleFunc("/check-auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Not authenticated"}`))
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	guard := NewRouteGuard(store)

	store.CheckSession(context.Background())
	if decision := guard.Decide(); decision != GuardRedirect {
		t.Fatalf("expected redirect, got %v", decision)
	}

	// A later successful login lets the same guard allow the page.
	if _, err := store.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if decision := guard.Decide(); decision != GuardAllow {
		t.Errorf("expected GuardAllow after login, got %v", decision)
	}
}
