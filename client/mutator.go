package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrDraftIncomplete means required fields are missing; nothing was
	// sent to the server.
	ErrDraftIncomplete = errors.New("required fields missing")
	// ErrConfirmationRequired means a delete was attempted without the
	// explicit confirmation step.
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	// ErrTransitionNotOffered means the requested registration status
	// change is not part of the lifecycle.
	ErrTransitionNotOffered = errors.New("status transition not offered")
)

// RegistrationStatus mirrors the server-side lifecycle:
// pending -> contacted -> {approved, rejected}, pending may also jump
// straight to a terminal status, and approved/rejected are terminal.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusContacted RegistrationStatus = "contacted"
	StatusApproved  RegistrationStatus = "approved"
	StatusRejected  RegistrationStatus = "rejected"
)

// IsTerminal reports whether no transition is offered out of s.
func (s RegistrationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// OfferedTransitions lists the statuses the interface offers from s.
// Terminal statuses offer nothing.
func (s RegistrationStatus) OfferedTransitions() []RegistrationStatus {
	switch s {
	case StatusPending:
		return []RegistrationStatus{StatusContacted, StatusApproved, StatusRejected}
	case StatusContacted:
		return []RegistrationStatus{StatusApproved, StatusRejected}
	}
	return nil
}

func (s RegistrationStatus) canMoveTo(next RegistrationStatus) bool {
	for _, offered := range s.OfferedTransitions() {
		if offered == next {
			return true
		}
	}
	return false
}

// StudentDraft is the form state behind the student creation dialog.
type StudentDraft struct {
	Name   string
	Fee    string
	RoomID string
}

// MissingFields lists which required fields are still empty after
// trimming. Empty result means the draft may be submitted. This gate
// is advisory; the server re-validates.
func (d StudentDraft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Fee) == "" {
		missing = append(missing, "fee")
	}
	if strings.TrimSpace(d.RoomID) == "" {
		missing = append(missing, "room_id")
	}
	return missing
}

// CanSubmit reports whether the submit control should be enabled.
func (d StudentDraft) CanSubmit() bool {
	return len(d.MissingFields()) == 0
}

// Mutator submits creates, updates and deletes, then triggers a
// refetch so the view reflects what the server actually persisted.
type Mutator struct {
	sessions *SessionStore
	refetch  func(context.Context) error
}

// NewMutator wires a mutator to the shared session and a refetch
// trigger (normally Fetcher.Refetch). A nil trigger disables
// refetching.
func NewMutator(sessions *SessionStore, refetch func(context.Context) error) *Mutator {
	return &Mutator{sessions: sessions, refetch: refetch}
}

// ServerError carries the backend's message for a failed mutation so
// the caller can surface it. The draft is never cleared on failure.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// SubmitStudent gates on the required fields, posts the draft and, on
// success, returns a cleared draft and triggers the refetch. On any
// failure the original draft is returned unchanged so the user's input
// survives.
func (m *Mutator) SubmitStudent(ctx context.Context, draft StudentDraft) (StudentDraft, error) {
	if !draft.CanSubmit() {
		return draft, fmt.Errorf("%w: %s", ErrDraftIncomplete, strings.Join(draft.MissingFields(), ", "))
	}

	var fee float64
	if _, err := fmt.Sscanf(strings.TrimSpace(draft.Fee), "%g", &fee); err != nil {
		return draft, fmt.Errorf("fee must be a number")
	}
	var roomID int
	if _, err := fmt.Sscanf(strings.TrimSpace(draft.RoomID), "%d", &roomID); err != nil {
		return draft, fmt.Errorf("room_id must be an integer")
	}

	body := map[string]any{
		"name":    strings.TrimSpace(draft.Name),
		"fee":     fee,
		"room_id": roomID,
	}
	if err := m.send(ctx, http.MethodPost, "/api/students", body); err != nil {
		return draft, err
	}

	m.triggerRefetch(ctx)
	return StudentDraft{}, nil
}

// DeleteStudent requires the caller to pass explicit confirmation;
// without it no request is sent.
func (m *Mutator) DeleteStudent(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := m.send(ctx, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), nil); err != nil {
		return err
	}

	m.triggerRefetch(ctx)
	return nil
}

// TransitionRegistration validates the move against the lifecycle
// before sending it. Optional admin notes ride along with the status.
func (m *Mutator) TransitionRegistration(ctx context.Context, id uint, from, to RegistrationStatus, notes string) error {
	if !from.canMoveTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotOffered, from, to)
	}

	body := map[string]any{"status": to}
	if strings.TrimSpace(notes) != "" {
		body["admin_notes"] = notes
	}
	if err := m.send(ctx, http.MethodPut, fmt.Sprintf("/api/admin/registrations/%d", id), body); err != nil {
		return err
	}

	m.triggerRefetch(ctx)
	return nil
}

func (m *Mutator) send(ctx context.Context, method, path string, body map[string]any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.sessions.BaseURL()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.sessions.HTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	message := envelope.Error
	if message == "" {
		message = envelope.Message
	}
	return &ServerError{StatusCode: resp.StatusCode, Message: message}
}

func (m *Mutator) triggerRefetch(ctx context.Context) {
	if m.refetch != nil {
		// Refetch failures surface through the fetcher's own error
		// handling on the next page render.
		_ = m.refetch(ctx)
	}
}
