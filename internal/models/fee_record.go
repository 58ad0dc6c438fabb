package models

import (
	"time"

	"gorm.io/datatypes"
)

// FeeRecord is an append-only payment event. MonthYear carries the
// YYYY-MM key the payment counts toward, independent of DatePaid.
type FeeRecord struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	StudentID     uint           `json:"student_id" gorm:"not null;index"`
	Amount        float64        `json:"amount" gorm:"not null"`
	DatePaid      datatypes.Date `json:"date_paid"`
	PaymentMethod string         `json:"payment_method" gorm:"size:50;default:cash"`
	MonthYear     string         `json:"month_year" gorm:"not null;size:7;index"`

	CreatedAt time.Time `json:"created_at"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (FeeRecord) TableName() string {
	return "fee_records"
}
