package repositories

import (
	"context"
	"time"

	"github.com/hostelhub/hostel-service/internal/models"
)

// ===== ENTITY REPOSITORIES =====

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByName(ctx context.Context, name string) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error

	CountActive(ctx context.Context) (int64, error)
	CountActiveByFeeStatus(ctx context.Context, status models.FeeStatus) (int64, error)
	SumActiveFees(ctx context.Context) (float64, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	ListWithStudents(ctx context.Context) ([]*models.Room, error)
	Occupancy(ctx context.Context, roomID uint) (int, error)
	Availability(ctx context.Context) (*RoomAvailability, error)
}

type FeeRepository interface {
	Create(ctx context.Context, record *models.FeeRecord) error
	ListAll(ctx context.Context) ([]*models.FeeRecord, error)
	ListByMonth(ctx context.Context, year, month int) ([]*models.FeeRecord, error)
	SumByMonth(ctx context.Context, year, month int) (float64, error)
	SumForStudentMonth(ctx context.Context, studentID uint, year, month int) (float64, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByName(ctx context.Context, name string) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type SalaryRepository interface {
	Create(ctx context.Context, record *models.SalaryRecord) error
	GetByID(ctx context.Context, id uint) (*models.SalaryRecord, error)
	GetByEmployeeMonth(ctx context.Context, employeeID uint, monthYear string) (*models.SalaryRecord, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]*models.SalaryRecord, error)
	ListByMonth(ctx context.Context, monthYear string) ([]*models.SalaryRecord, error)
	ListByYear(ctx context.Context, year int) ([]*models.SalaryRecord, error)
	SumByMonth(ctx context.Context, monthYear string) (float64, error)
	AvailableMonths(ctx context.Context) ([]string, error)
	AvailableYears(ctx context.Context) ([]string, error)
	Update(ctx context.Context, record *models.SalaryRecord) error
	Delete(ctx context.Context, id uint) error
	DeleteByEmployee(ctx context.Context, employeeID uint) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uint) (*models.Expense, error)
	ListByMonth(ctx context.Context, year, month int) ([]*models.Expense, error)
	SumByMonth(ctx context.Context, year, month int) (float64, error)
	CategoryTotals(ctx context.Context) ([]ExpenseCategory, error)
	FindMatching(ctx context.Context, itemName string, price float64) (*models.Expense, error)
	Delete(ctx context.Context, id uint) error
}

type MealRepository interface {
	ListTimings(ctx context.Context) ([]*models.MealTiming, error)
	UpsertTiming(ctx context.Context, timing *models.MealTiming) error
	ListMenu(ctx context.Context) ([]*models.MealMenu, error)
	UpsertMenuItem(ctx context.Context, item *models.MealMenu) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id uint) (*models.Registration, error)
	GetByEmail(ctx context.Context, email string) (*models.Registration, error)
	List(ctx context.Context, filters RegistrationFilters) ([]*models.Registration, int64, error)
	Update(ctx context.Context, registration *models.Registration) error
	Delete(ctx context.Context, id uint) error
	Counts(ctx context.Context, since time.Time) (*RegistrationCounts, error)
}

// ===== AGGREGATE =====

// Repository aggregates all entity repositories behind one handle.
type Repository interface {
	Admin() AdminRepository
	Student() StudentRepository
	Room() RoomRepository
	Fee() FeeRepository
	Employee() EmployeeRepository
	Salary() SalaryRepository
	Expense() ExpenseRepository
	Meal() MealRepository
	Registration() RegistrationRepository

	// WithTransaction executes fn with a Repository bound to a single
	// database transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle (connect, health, shutdown).
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
