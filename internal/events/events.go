package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "hostel-service"
	EventVersion = "1.0"
)

// Domain event types
const (
	EventStudentEnrolled           = "student.enrolled"
	EventStudentCheckedOut         = "student.checked_out"
	EventFeeCollected              = "fee.collected"
	EventSalaryPaid                = "salary.paid"
	EventRegistrationSubmitted     = "registration.submitted"
	EventRegistrationStatusChanged = "registration.status_changed"
)

// Event is the envelope published to the message broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope with standard metadata.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// StudentEnrolledEvent is emitted when a new student is admitted.
type StudentEnrolledEvent struct {
	StudentID uint    `json:"student_id"`
	Name      string  `json:"name"`
	RoomID    uint    `json:"room_id"`
	Fee       float64 `json:"fee"`
}

// FeeCollectedEvent is emitted when a fee payment is recorded.
type FeeCollectedEvent struct {
	StudentID     uint    `json:"student_id"`
	Amount        float64 `json:"amount"`
	MonthYear     string  `json:"month_year"`
	PaymentMethod string  `json:"payment_method"`
	FeeStatus     string  `json:"fee_status"`
}

// SalaryPaidEvent is emitted when an employee salary payment is recorded.
type SalaryPaidEvent struct {
	EmployeeID uint    `json:"employee_id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	MonthYear  string  `json:"month_year"`
}

// RegistrationStatusChangedEvent is emitted when a registration request
// moves through its lifecycle.
type RegistrationStatusChangedEvent struct {
	RegistrationID uint   `json:"registration_id"`
	Email          string `json:"email"`
	FromStatus     string `json:"from_status"`
	ToStatus       string `json:"to_status"`
	ChangedBy      uint   `json:"changed_by"`
}
