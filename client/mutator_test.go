package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestStudentDraft_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		draft     StudentDraft
		canSubmit bool
		missing   int
	}{
		{"complete", StudentDraft{Name: "Alice", Fee: "5000", RoomID: "3"}, true, 0},
		{"empty fee", StudentDraft{Name: "Alice", Fee: "", RoomID: "3"}, false, 1},
		{"whitespace only", StudentDraft{Name: "  ", Fee: " ", RoomID: "\t"}, false, 3},
		{"empty draft", StudentDraft{}, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.CanSubmit(); got != tt.canSubmit {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.canSubmit)
			}
			if got := len(tt.draft.MissingFields()); got != tt.missing {
				t.Errorf("MissingFields() has %d entries, want %d", got, tt.missing)
			}
		})
	}
}

func TestMutator_SubmitStudent_IncompleteDraftSendsNothing(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	mutator := NewMutator(store, nil)

	draft := StudentDraft{Name: "Alice", Fee: "", RoomID: "3"}
	returned, err := mutator.SubmitStudent(context.Background(), draft)
	if !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("expected ErrDraftIncomplete, got %v", err)
	}
	if returned != draft {
		t.Error("an incomplete draft must be returned unchanged")
	}
	if requests != 0 {
		t.Errorf("expected no request, server saw %d", requests)
	}
}

func TestMutator_SubmitStudent_ClearsDraftAndRefetches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body struct {
			Name   string  `json:"name"`
			Fee    float64 `json:"fee"`
			RoomID int     `json:"room_id"`
		}
		decodeJSON(t, r, &body)
		if body.Name != "Alice" || body.Fee != 5000 || body.RoomID != 3 {
			t.Errorf("unexpected payload %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"message":"Student added successfully"}`))
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	refetched := false
	mutator := NewMutator(store, func(context.Context) error {
		refetched = true
		return nil
	})

	draft := StudentDraft{Name: "Alice", Fee: "5000", RoomID: "3"}
	returned, err := mutator.SubmitStudent(context.Background(), draft)
	if err != nil {
		t.Fatalf("SubmitStudent failed: %v", err)
	}
	if returned != (StudentDraft{}) {
		t.Errorf("expected a cleared draft, got %+v", returned)
	}
	if !refetched {
		t.Error("expected a refetch after the successful write")
	}
}

func TestMutator_SubmitStudent_KeepsDraftOnServerFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Room is full"}`))
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	refetched := false
	mutator := NewMutator(store, func(context.Context) error {
		refetched = true
		return nil
	})

	draft := StudentDraft{Name: "Alice", Fee: "5000", RoomID: "3"}
	returned, err := mutator.SubmitStudent(context.Background(), draft)

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected a ServerError, got %v", err)
	}
	if serverErr.Message != "Room is full" {
		t.Errorf("expected the backend message, got %q", serverErr.Message)
	}
	if returned != draft {
		t.Error("the draft must survive a failed submit")
	}
	if refetched {
		t.Error("a failed write must not refetch")
	}
}

func TestMutator_DeleteStudent_RequiresConfirmation(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"success":true,"message":"Student deleted successfully"}`))
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	mutator := NewMutator(store, nil)

	if err := mutator.DeleteStudent(context.Background(), 7, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if requests != 0 {
		t.Errorf("unconfirmed delete must not reach the server, saw %d requests", requests)
	}

	if err := mutator.DeleteStudent(context.Background(), 7, true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected exactly one request, saw %d", requests)
	}
}

func TestRegistrationStatus_OfferedTransitions(t *testing.T) {
	tests := []struct {
		status   RegistrationStatus
		offered  int
		terminal bool
	}{
		{StatusPending, 3, false},
		{StatusContacted, 2, false},
		{StatusApproved, 0, true},
		{StatusRejected, 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := len(tt.status.OfferedTransitions()); got != tt.offered {
				t.Errorf("expected %d offered transitions, got %d", tt.offered, got)
			}
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestMutator_TransitionRegistration(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/registrations/5", func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		var body struct {
			Status RegistrationStatus `json:"status"`
			Notes  string             `json:"admin_notes"`
		}
		decodeJSON(t, r, &body)
		if body.Status != StatusApproved {
			t.Errorf("unexpected status %q", body.Status)
		}
		if body.Notes != "room 3 assigned" {
			t.Errorf("unexpected notes %q", body.Notes)
		}
		w.Write([]byte(`{"success":true,"message":"Registration updated successfully"}`))
	})
	server := newTestServer(t, mux)

	store, _ := NewSessionStore(server.URL, testLogger())
	mutator := NewMutator(store, nil)

	err := mutator.TransitionRegistration(context.Background(), 5, StatusApproved, StatusContacted, "")
	if !errors.Is(err, ErrTransitionNotOffered) {
		t.Fatalf("expected ErrTransitionNotOffered out of a terminal status, got %v", err)
	}
	if requests != 0 {
		t.Error("a rejected transition must not reach the server")
	}

	err = mutator.TransitionRegistration(context.Background(), 5, StatusPending, StatusApproved, "room 3 assigned")
	if err != nil {
		t.Fatalf("TransitionRegistration failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected one request, saw %d", requests)
	}
}
