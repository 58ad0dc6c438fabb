package models

import "time"

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeInactive   EmployeeStatus = "inactive"
	EmployeeTerminated EmployeeStatus = "terminated"
)

type Employee struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null;size:100"`
	Position   string         `json:"position" gorm:"not null;size:100"`
	BaseSalary float64        `json:"base_salary" gorm:"not null"`
	HireDate   time.Time      `json:"hire_date" gorm:"autoCreateTime"`
	Status     EmployeeStatus `json:"status" gorm:"size:20;default:active"`

	SalaryRecords []SalaryRecord `json:"salary_records,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

// SalaryRecord is one payment event per employee per month; the unique
// index enforces the one-payment-per-month rule at the storage level.
type SalaryRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	EmployeeID    uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_salary_employee_month"`
	MonthYear     string    `json:"month_year" gorm:"not null;size:7;uniqueIndex:idx_salary_employee_month"`
	AmountPaid    float64   `json:"amount_paid" gorm:"not null"`
	DatePaid      time.Time `json:"date_paid" gorm:"autoCreateTime"`
	PaymentMethod string    `json:"payment_method" gorm:"size:50;default:cash"`
	Notes         string    `json:"notes" gorm:"type:text"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}
