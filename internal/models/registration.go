package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationContacted RegistrationStatus = "contacted"
	RegistrationApproved  RegistrationStatus = "approved"
	RegistrationRejected  RegistrationStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationPending, RegistrationContacted, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s RegistrationStatus) IsTerminal() bool {
	return s == RegistrationApproved || s == RegistrationRejected
}

// CanTransitionTo encodes the registration lifecycle:
// pending -> contacted -> {approved, rejected}, with pending also able
// to jump straight to a terminal status. Setting the same status again
// is allowed (note-only updates re-send the current status).
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	switch s {
	case RegistrationPending:
		return next == RegistrationContacted || next == RegistrationApproved || next == RegistrationRejected
	case RegistrationContacted:
		return next == RegistrationApproved || next == RegistrationRejected
	}
	return false
}

// Registration is a prospective resident's application.
type Registration struct {
	ID                   uint    `json:"id" gorm:"primaryKey"`
	Name                 string  `json:"name" gorm:"not null;size:100"`
	Email                string  `json:"email" gorm:"not null;size:120;index"`
	Phone                string  `json:"phone" gorm:"not null;size:20"`
	Address              string  `json:"address" gorm:"not null;type:text"`
	EmergencyContact     string  `json:"emergency_contact" gorm:"not null;size:20"`
	EmergencyContactName string  `json:"emergency_contact_name" gorm:"not null;size:100"`
	University           string  `json:"university" gorm:"not null;size:100"`
	Course               string  `json:"course" gorm:"not null;size:100"`
	YearOfStudy          string  `json:"year_of_study" gorm:"not null;size:20"`
	ExpectedDuration     string  `json:"expected_duration" gorm:"not null;size:50"`
	SpecialRequirements  *string `json:"special_requirements" gorm:"type:text"`

	Status      RegistrationStatus `json:"status" gorm:"size:20;default:pending;index"`
	SubmittedAt time.Time          `json:"submitted_at" gorm:"autoCreateTime"`
	AdminNotes  *string            `json:"admin_notes" gorm:"type:text"`
	ContactedAt *time.Time         `json:"contacted_at"`
	ContactedBy *uint              `json:"contacted_by"`
}

func (Registration) TableName() string {
	return "hostel_registrations"
}
