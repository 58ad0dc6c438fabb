package services

import (
	"context"
	"io"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type StudentCreateRequest = validator.StudentCreateRequest
type StudentUpdateRequest = validator.StudentUpdateRequest
type FeeCollectRequest = validator.FeeCollectRequest
type EmployeeCreateRequest = validator.EmployeeCreateRequest
type EmployeeUpdateRequest = validator.EmployeeUpdateRequest
type SalaryPayRequest = validator.SalaryPayRequest
type SalaryUpdateRequest = validator.SalaryUpdateRequest
type ExpenseCreateRequest = validator.ExpenseCreateRequest
type MealTimingsRequest = validator.MealTimingsRequest
type MealMenuRequest = validator.MealMenuRequest
type RegistrationCreateRequest = validator.RegistrationCreateRequest
type RegistrationUpdateRequest = validator.RegistrationUpdateRequest

// ListMeta is the shared pagination envelope.
type ListMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewListMeta derives pagination metadata from a total row count.
func NewListMeta(page, perPage int, total int64) ListMeta {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return ListMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type AdminInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type StudentResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Email        *string              `json:"email"`
	Phone        *string              `json:"phone"`
	Fee          float64              `json:"fee"`
	RoomID       uint                 `json:"room_id"`
	RoomNumber   int                  `json:"room_number"`
	Status       models.StudentStatus `json:"status"`
	Picture      *string              `json:"picture"`
	FeeStatus    models.FeeStatus     `json:"fee_status"`
	RemainingFee float64              `json:"remaining_fee"`
}

type StudentListRequest struct {
	Page    int
	PerPage int
	Search  string
}

type StudentListResponse struct {
	Students []*StudentResponse `json:"students"`
	Meta     ListMeta           `json:"meta"`
}

// BulkUploadSummary reports per-row outcomes of a spreadsheet import.
type BulkUploadSummary struct {
	TotalProcessed int      `json:"total_processed"`
	SuccessCount   int      `json:"success_count"`
	ErrorCount     int      `json:"error_count"`
	Errors         []string `json:"errors"`
}

type RoomStudent struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

type RoomResponse struct {
	ID               uint          `json:"id"`
	RoomNumber       int           `json:"room_number"`
	Capacity         int           `json:"capacity"`
	CurrentOccupancy int           `json:"current_occupancy"`
	Students         []RoomStudent `json:"students"`
}

type FeeRecordResponse struct {
	ID            uint              `json:"id"`
	StudentID     uint              `json:"student_id"`
	Amount        float64           `json:"amount"`
	DatePaid      string            `json:"date_paid"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Student       *FeeRecordStudent `json:"student,omitempty"`
}

type FeeRecordStudent struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	FeeStatus  models.FeeStatus `json:"fee_status"`
	RoomNumber int              `json:"room_number"`
}

type MonthlyFeeTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// FeeOverviewResponse mirrors the fees dashboard view: the selected
// month, the month before it, and a 12-month series for the year.
type FeeOverviewResponse struct {
	FeeRecordsCurrent  []*FeeRecordResponse `json:"fee_records_current"`
	FeeRecordsPrevious []*FeeRecordResponse `json:"fee_records_previous"`
	TotalFeesCurrent   float64              `json:"total_fees_current"`
	TotalFeesPrevious  float64              `json:"total_fees_previous"`
	CurrentMonth       int                  `json:"current_month"`
	CurrentYear        int                  `json:"current_year"`
	PrevMonth          int                  `json:"prev_month"`
	PrevYear           int                  `json:"prev_year"`
	MonthlyTotals      []MonthlyFeeTotal    `json:"monthly_totals"`
}

type EmployeeResponse struct {
	ID                       uint                  `json:"id"`
	Name                     string                `json:"name"`
	Position                 string                `json:"position"`
	BaseSalary               float64               `json:"base_salary"`
	HireDate                 string                `json:"hire_date"`
	Status                   models.EmployeeStatus `json:"status"`
	CurrentMonthSalaryPaid   float64               `json:"current_month_salary_paid"`
	CurrentMonthSalaryStatus string                `json:"current_month_salary_status"`
}

type SalaryRecordResponse struct {
	ID            uint    `json:"id"`
	MonthYear     string  `json:"month_year"`
	AmountPaid    float64 `json:"amount_paid"`
	DatePaid      string  `json:"date_paid"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

type EmployeeSummary struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	BaseSalary float64 `json:"base_salary"`
}

type EmployeeSalariesResponse struct {
	Employee      EmployeeSummary         `json:"employee"`
	SalaryRecords []*SalaryRecordResponse `json:"salary_records"`
}

type SalaryPayment struct {
	EmployeeName  string  `json:"employee_name"`
	Position      string  `json:"position"`
	AmountPaid    float64 `json:"amount_paid"`
	DatePaid      string  `json:"date_paid"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

type MonthlySalarySummary struct {
	MonthYear       string          `json:"month_year"`
	TotalPaid       float64         `json:"total_paid"`
	TotalEmployees  int64           `json:"total_employees"`
	PaidEmployees   int             `json:"paid_employees"`
	UnpaidEmployees int64           `json:"unpaid_employees"`
	Payments        []SalaryPayment `json:"payments"`
}

type MonthlySalaryBreakdown struct {
	Month         string          `json:"month"`
	TotalPaid     float64         `json:"total_paid"`
	EmployeeCount int             `json:"employee_count"`
	Payments      []SalaryPayment `json:"payments"`
}

type YearlySalarySummary struct {
	Year             int                      `json:"year"`
	YearlyTotal      float64                  `json:"yearly_total"`
	TotalEmployees   int64                    `json:"total_employees"`
	MonthlyBreakdown []MonthlySalaryBreakdown `json:"monthly_breakdown"`
}

type ExpenseResponse struct {
	ID       uint    `json:"id"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
	UserID   uint    `json:"user_id"`
}

// ExpenseOverviewResponse pairs the selected month with the month before
// it, plus income for both so the balance lines can be rendered.
type ExpenseOverviewResponse struct {
	ExpensesCurrent          []*ExpenseResponse `json:"expenses_current"`
	ExpensesPrevious         []*ExpenseResponse `json:"expenses_previous"`
	TotalExpensesCurrent     float64            `json:"total_expenses_current"`
	TotalExpensesPrevious    float64            `json:"total_expenses_previous"`
	TotalIncomeCurrent       float64            `json:"total_income_current"`
	TotalIncomePrevious      float64            `json:"total_income_previous"`
	RemainingBalanceCurrent  float64            `json:"remaining_balance_current"`
	RemainingBalancePrevious float64            `json:"remaining_balance_previous"`
	CurrentMonth             int                `json:"current_month"`
	CurrentYear              int                `json:"current_year"`
	PrevMonth                int                `json:"prev_month"`
	PrevYear                 int                `json:"prev_year"`
}

type MealTimingResponse struct {
	MealName  string  `json:"meal_name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
}

type MealMenuResponse struct {
	DayOfWeek int     `json:"day_of_week"`
	MealName  string  `json:"meal_name"`
	MenuItems *string `json:"menu_items"`
}

type MealsResponse struct {
	Timings []MealTimingResponse `json:"timings"`
	Menu    []MealMenuResponse   `json:"menu"`
}

type RegistrationResponse struct {
	ID                   uint                      `json:"id"`
	Name                 string                    `json:"name"`
	Email                string                    `json:"email"`
	Phone                string                    `json:"phone"`
	Address              string                    `json:"address"`
	EmergencyContact     string                    `json:"emergency_contact"`
	EmergencyContactName string                    `json:"emergency_contact_name"`
	University           string                    `json:"university"`
	Course               string                    `json:"course"`
	YearOfStudy          string                    `json:"year_of_study"`
	ExpectedDuration     string                    `json:"expected_duration"`
	SpecialRequirements  *string                   `json:"special_requirements"`
	Status               models.RegistrationStatus `json:"status"`
	SubmittedAt          string                    `json:"submitted_at"`
	AdminNotes           *string                   `json:"admin_notes"`
	ContactedAt          *string                   `json:"contacted_at"`
	ContactedBy          *string                   `json:"contacted_by"`
}

type RegistrationListRequest struct {
	Page    int
	PerPage int
	Status  string
}

type RegistrationListResponse struct {
	Registrations []*RegistrationResponse `json:"registrations"`
	Meta          ListMeta                `json:"meta"`
}

type RegistrationStats struct {
	TotalRegistrations int64 `json:"total_registrations"`
	PendingCount       int64 `json:"pending_count"`
	ContactedCount     int64 `json:"contacted_count"`
	ApprovedCount      int64 `json:"approved_count"`
	RejectedCount      int64 `json:"rejected_count"`
	RecentCount        int64 `json:"recent_count"`
}

type ExpenseCategoryTotal struct {
	ItemName string  `json:"item_name"`
	Total    float64 `json:"total"`
}

// DashboardResponse is the single aggregate payload behind the main
// dashboard view. Series are oldest-first over the trailing six months.
type DashboardResponse struct {
	TotalStudents        int64                  `json:"total_students"`
	MonthlyExpenses      []float64              `json:"monthly_expenses"`
	MonthlyIncome        []float64              `json:"monthly_income"`
	Months               []string               `json:"months"`
	ExpenseCategories    []ExpenseCategoryTotal `json:"expense_categories"`
	CurrentMonthExpenses float64                `json:"current_month_expenses"`
	CurrentMonthIncome   float64                `json:"current_month_income"`
	ProfitLoss           float64                `json:"profit_loss"`
	TotalFeeCurrent      float64                `json:"total_fee_current"`
	ReceivedFeeCurrent   float64                `json:"received_fee_current"`
	PendingFeeCurrent    float64                `json:"pending_fee_current"`
	FullyPaid            int64                  `json:"fully_paid"`
	PartiallyPaid        int64                  `json:"partially_paid"`
	Unpaid               int64                  `json:"unpaid"`
	TotalSalariesCurrent float64                `json:"total_salaries_current"`
	TotalSalariesPrev    float64                `json:"total_salaries_previous"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*AdminInfo, string, error)
	Logout(ctx context.Context, token string) error
	GetAdmin(ctx context.Context, adminID uint) (*AdminInfo, error)
}

type StudentService interface {
	List(ctx context.Context, req StudentListRequest) (*StudentListResponse, error)
	Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error)
	Update(ctx context.Context, id uint, req *StudentUpdateRequest) error
	Delete(ctx context.Context, id uint) error
	BulkUpload(ctx context.Context, file io.Reader) (*BulkUploadSummary, string, error)
	Template(ctx context.Context) ([]byte, string, error)
}

type RoomService interface {
	List(ctx context.Context) ([]*RoomResponse, error)
	Availability(ctx context.Context) (*repositories.RoomAvailability, error)
}

type FeeService interface {
	Collect(ctx context.Context, req *FeeCollectRequest) error
	Overview(ctx context.Context, year, month int) (*FeeOverviewResponse, error)
	ListRecords(ctx context.Context) ([]*FeeRecordResponse, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]*EmployeeResponse, error)
	Create(ctx context.Context, req *EmployeeCreateRequest) (uint, error)
	Update(ctx context.Context, id uint, req *EmployeeUpdateRequest) error
	Delete(ctx context.Context, id uint) error

	Salaries(ctx context.Context, employeeID uint) (*EmployeeSalariesResponse, error)
	PaySalary(ctx context.Context, employeeID uint, req *SalaryPayRequest, adminID uint) error
	UpdateSalary(ctx context.Context, salaryID uint, req *SalaryUpdateRequest) error
	DeleteSalary(ctx context.Context, salaryID uint) error
	MonthlySummary(ctx context.Context, monthYear string) (*MonthlySalarySummary, error)
	YearlySummary(ctx context.Context, year int) (*YearlySalarySummary, error)
	AvailableMonths(ctx context.Context) ([]string, []string, error)
}

type ExpenseService interface {
	Overview(ctx context.Context, year, month int) (*ExpenseOverviewResponse, error)
	Create(ctx context.Context, req *ExpenseCreateRequest, adminID uint) (*ExpenseResponse, error)
	Delete(ctx context.Context, id uint) error
	ExportReport(ctx context.Context, year, month int) ([]byte, string, error)
}

type MealService interface {
	Overview(ctx context.Context) (*MealsResponse, error)
	UpdateTimings(ctx context.Context, req *MealTimingsRequest) ([]MealTimingResponse, error)
	UpdateMenu(ctx context.Context, req *MealMenuRequest) ([]MealMenuResponse, error)
}

type RegistrationService interface {
	Submit(ctx context.Context, req *RegistrationCreateRequest) (uint, error)
	List(ctx context.Context, req RegistrationListRequest) (*RegistrationListResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *RegistrationUpdateRequest, adminID uint) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*RegistrationStats, error)
}

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardResponse, error)
}

// ServiceManager wires every domain service behind one handle.
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Room() RoomService
	Fee() FeeService
	Employee() EmployeeService
	Expense() ExpenseService
	Meal() MealService
	Registration() RegistrationService
	Dashboard() DashboardService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
