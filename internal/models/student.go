package models

import "time"

type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
)

type FeeStatus string

const (
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

type Student struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null;size:100"`
	Email   *string `json:"email" gorm:"uniqueIndex;size:120"`
	Phone   *string `json:"phone" gorm:"size:20"`
	Fee     float64 `json:"fee" gorm:"not null"`
	RoomID  uint    `json:"room_id" gorm:"not null;index"`
	Picture *string `json:"picture" gorm:"size:100"`

	Status    StudentStatus `json:"status" gorm:"size:20;default:active"`
	FeeStatus FeeStatus     `json:"fee_status" gorm:"size:20;default:unpaid"`

	EnrollmentDate time.Time  `json:"enrollment_date" gorm:"autoCreateTime"`
	LastFeePayment *time.Time `json:"last_fee_payment"`

	Room       *Room       `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	FeeRecords []FeeRecord `json:"fee_records,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}

// RoomNumber resolves the display room number when the room association
// is loaded; zero otherwise.
func (s *Student) RoomNumber() int {
	if s.Room != nil {
		return s.Room.RoomNumber
	}
	return 0
}
