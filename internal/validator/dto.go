package validator

import "github.com/hostelhub/hostel-service/internal/models"

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=80"`
	Password string `json:"password" validate:"required,min=1"`
}

// StudentCreateRequest represents the request structure for enrolling students
type StudentCreateRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Fee     float64 `json:"fee" validate:"required,gt=0"`
	RoomID  uint    `json:"room_id" validate:"required,min=1,max=18"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Picture *string `json:"picture" validate:"omitempty,max=255"`
}

// StudentUpdateRequest represents the request structure for updating students
type StudentUpdateRequest struct {
	Name    *string               `json:"name" validate:"omitempty,min=1,max=100"`
	Fee     *float64              `json:"fee" validate:"omitempty,gt=0"`
	RoomID  *uint                 `json:"room_id" validate:"omitempty,min=1,max=18"`
	Status  *models.StudentStatus `json:"status" validate:"omitempty,student_status"`
	Email   *string               `json:"email" validate:"omitempty,email"`
	Phone   *string               `json:"phone" validate:"omitempty,max=20"`
	Picture *string               `json:"picture" validate:"omitempty,max=255"`
}

// FeeCollectRequest records a fee payment against a student.
type FeeCollectRequest struct {
	StudentID     uint    `json:"student_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Date          string  `json:"date" validate:"required,date_ymd"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,max=50"`
}

// EmployeeCreateRequest represents the request structure for adding employees
type EmployeeCreateRequest struct {
	Name       string                `json:"name" validate:"required,min=1,max=100"`
	Position   string                `json:"position" validate:"required,min=1,max=100"`
	BaseSalary float64               `json:"base_salary" validate:"required,gt=0"`
	Status     models.EmployeeStatus `json:"status" validate:"omitempty,employee_status"`
}

// EmployeeUpdateRequest represents the request structure for updating employees
type EmployeeUpdateRequest struct {
	Name       *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Position   *string                `json:"position" validate:"omitempty,min=1,max=100"`
	BaseSalary *float64               `json:"base_salary" validate:"omitempty,gt=0"`
	Status     *models.EmployeeStatus `json:"status" validate:"omitempty,employee_status"`
}

// SalaryPayRequest records one salary payment for an employee.
type SalaryPayRequest struct {
	MonthYear     string  `json:"month_year" validate:"required,month_year"`
	AmountPaid    float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,max=50"`
	Notes         string  `json:"notes" validate:"omitempty,max=1000"`
}

// SalaryUpdateRequest updates an existing salary payment.
type SalaryUpdateRequest struct {
	AmountPaid    *float64 `json:"amount_paid" validate:"omitempty,gt=0"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=50"`
	Notes         *string  `json:"notes" validate:"omitempty,max=1000"`
}

// ExpenseCreateRequest represents the request structure for recording expenses
type ExpenseCreateRequest struct {
	ItemName string  `json:"item_name" validate:"required,min=1,max=200"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required,date_ymd"`
}

// ExpenseUpdateRequest represents the request structure for updating expenses
type ExpenseUpdateRequest struct {
	ItemName *string  `json:"item_name" validate:"omitempty,min=1,max=200"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Date     *string  `json:"date" validate:"omitempty,date_ymd"`
}

// MealTimingItem is one entry in a bulk timing update.
type MealTimingItem struct {
	MealName  string  `json:"meal_name" validate:"required,min=1,max=50"`
	StartTime *string `json:"start_time" validate:"omitempty,max=20"`
	EndTime   *string `json:"end_time" validate:"omitempty,max=20"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

// MealTimingsRequest replaces meal timings in bulk.
type MealTimingsRequest struct {
	Timings []MealTimingItem `json:"timings" validate:"required,dive"`
}

// MealMenuItem is one entry in a bulk menu update.
type MealMenuItem struct {
	DayOfWeek int     `json:"day_of_week" validate:"min=0,max=6"`
	MealName  string  `json:"meal_name" validate:"required,min=1,max=50"`
	MenuItems *string `json:"menu_items" validate:"omitempty,max=1000"`
}

// MealMenuRequest replaces menu entries in bulk.
type MealMenuRequest struct {
	Menu []MealMenuItem `json:"menu" validate:"required,dive"`
}

// RegistrationCreateRequest is the public application form payload.
type RegistrationCreateRequest struct {
	Name                 string  `json:"name" validate:"required,min=1,max=100"`
	Email                string  `json:"email" validate:"required,email,max=120"`
	Phone                string  `json:"phone" validate:"required,min=1,max=20"`
	Address              string  `json:"address" validate:"required,min=1"`
	EmergencyContact     string  `json:"emergency_contact" validate:"required,min=1,max=20"`
	EmergencyContactName string  `json:"emergency_contact_name" validate:"required,min=1,max=100"`
	University           string  `json:"university" validate:"required,min=1,max=100"`
	Course               string  `json:"course" validate:"required,min=1,max=100"`
	YearOfStudy          string  `json:"year_of_study" validate:"required,min=1,max=20"`
	ExpectedDuration     string  `json:"expected_duration" validate:"required,min=1,max=50"`
	SpecialRequirements  *string `json:"special_requirements" validate:"omitempty,max=2000"`
}

// RegistrationUpdateRequest moves a registration through its lifecycle.
type RegistrationUpdateRequest struct {
	Status     models.RegistrationStatus `json:"status" validate:"required,registration_status"`
	AdminNotes *string                   `json:"admin_notes" validate:"omitempty,max=2000"`
}

// RoomUpdateRequest adjusts a room's capacity.
type RoomUpdateRequest struct {
	Capacity *int `json:"capacity" validate:"omitempty,min=1,max=10"`
}
