package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type employeeService struct {
	repo      repositories.Repository
	caches    *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEmployeeService(repo repositories.Repository, caches *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) EmployeeService {
	return &employeeService{
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *employeeService) List(ctx context.Context) ([]*EmployeeResponse, error) {
	employees, err := s.repo.Employee().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	monthYear := time.Now().Format("2006-01")
	responses := make([]*EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		resp := &EmployeeResponse{
			ID:                       employee.ID,
			Name:                     employee.Name,
			Position:                 employee.Position,
			BaseSalary:               employee.BaseSalary,
			HireDate:                 employee.HireDate.Format("2006-01-02"),
			Status:                   employee.Status,
			CurrentMonthSalaryStatus: "unpaid",
		}

		record, err := s.repo.Salary().GetByEmployeeMonth(ctx, employee.ID, monthYear)
		if err != nil {
			return nil, err
		}
		if record != nil {
			resp.CurrentMonthSalaryPaid = record.AmountPaid
			resp.CurrentMonthSalaryStatus = "paid"
		}

		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *employeeService) Create(ctx context.Context, req *EmployeeCreateRequest) (uint, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return 0, errs
	}

	status := req.Status
	if status == "" {
		status = models.EmployeeActive
	}

	employee := &models.Employee{
		Name:       req.Name,
		Position:   req.Position,
		BaseSalary: req.BaseSalary,
		Status:     status,
	}
	if err := s.repo.Employee().Create(ctx, employee); err != nil {
		return 0, fmt.Errorf("failed to add employee: %w", err)
	}

	s.logger.Info("Employee added", "employee_id", employee.ID, "position", employee.Position)
	return employee.ID, nil
}

func (s *employeeService) Update(ctx context.Context, id uint, req *EmployeeUpdateRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	employee, err := s.repo.Employee().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load employee %d: %w", id, err)
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.BaseSalary != nil {
		employee.BaseSalary = *req.BaseSalary
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}

	if err := s.repo.Employee().Update(ctx, employee); err != nil {
		return fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	return nil
}

// Delete removes the employee and their salary history in one transaction.
func (s *employeeService) Delete(ctx context.Context, id uint) error {
	employee, err := s.repo.Employee().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load employee %d: %w", id, err)
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Salary().DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		return tx.Employee().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}

	s.logger.Info("Employee deleted", "employee_id", id)
	return nil
}

func (s *employeeService) Salaries(ctx context.Context, employeeID uint) (*EmployeeSalariesResponse, error) {
	employee, err := s.repo.Employee().GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee %d: %w", employeeID, err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	records, err := s.repo.Salary().ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for employee %d: %w", employeeID, err)
	}

	resp := &EmployeeSalariesResponse{
		Employee: EmployeeSummary{
			ID:         employee.ID,
			Name:       employee.Name,
			Position:   employee.Position,
			BaseSalary: employee.BaseSalary,
		},
		SalaryRecords: make([]*SalaryRecordResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.SalaryRecords = append(resp.SalaryRecords, &SalaryRecordResponse{
			ID:            record.ID,
			MonthYear:     record.MonthYear,
			AmountPaid:    record.AmountPaid,
			DatePaid:      record.DatePaid.Format("2006-01-02"),
			PaymentMethod: record.PaymentMethod,
			Notes:         record.Notes,
		})
	}
	return resp, nil
}

// PaySalary records one salary payment per employee per month and books
// a matching expense dated the first of that month, both in one
// transaction.
func (s *employeeService) PaySalary(ctx context.Context, employeeID uint, req *SalaryPayRequest, adminID uint) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	var employee *models.Employee

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		employee, err = tx.Employee().GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return ErrEmployeeNotFound
		}

		existing, err := tx.Salary().GetByEmployeeMonth(ctx, employeeID, req.MonthYear)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrSalaryDuplicate
		}

		record := &models.SalaryRecord{
			EmployeeID:    employeeID,
			MonthYear:     req.MonthYear,
			AmountPaid:    req.AmountPaid,
			PaymentMethod: paymentMethod,
			Notes:         req.Notes,
		}
		if err := tx.Salary().Create(ctx, record); err != nil {
			return err
		}

		monthStart, err := time.Parse("2006-01", req.MonthYear)
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", req.MonthYear, err)
		}

		expense := &models.Expense{
			ItemName: fmt.Sprintf("Salary paid to %s (%s)", employee.Name, employee.Position),
			Price:    req.AmountPaid,
			Date:     datatypes.Date(monthStart),
			UserID:   adminID,
		}
		return tx.Expense().Create(ctx, expense)
	})
	if err != nil {
		return err
	}

	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}

	event := events.NewEvent(events.EventSalaryPaid, events.SalaryPaidEvent{
		EmployeeID: employeeID,
		Name:       employee.Name,
		Amount:     req.AmountPaid,
		MonthYear:  req.MonthYear,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish salary event", "error", err, "employee_id", employeeID)
	}

	s.logger.Info("Salary payment recorded", "employee_id", employeeID, "month_year", req.MonthYear)
	return nil
}

func (s *employeeService) UpdateSalary(ctx context.Context, salaryID uint, req *SalaryUpdateRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	record, err := s.repo.Salary().GetByID(ctx, salaryID)
	if err != nil {
		return fmt.Errorf("failed to load salary record %d: %w", salaryID, err)
	}
	if record == nil {
		return ErrSalaryNotFound
	}

	if req.AmountPaid != nil {
		record.AmountPaid = *req.AmountPaid
	}
	if req.PaymentMethod != nil {
		record.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := s.repo.Salary().Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update salary record %d: %w", salaryID, err)
	}
	return nil
}

func (s *employeeService) DeleteSalary(ctx context.Context, salaryID uint) error {
	record, err := s.repo.Salary().GetByID(ctx, salaryID)
	if err != nil {
		return fmt.Errorf("failed to load salary record %d: %w", salaryID, err)
	}
	if record == nil {
		return ErrSalaryNotFound
	}

	// The payment booked a matching expense; remove it too when it can
	// still be identified.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if record.Employee != nil {
			itemName := fmt.Sprintf("Salary paid to %s (%s)", record.Employee.Name, record.Employee.Position)
			expense, err := tx.Expense().FindMatching(ctx, itemName, record.AmountPaid)
			if err != nil {
				return err
			}
			if expense != nil {
				if err := tx.Expense().Delete(ctx, expense.ID); err != nil {
					return err
				}
			}
		}
		return tx.Salary().Delete(ctx, salaryID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete salary record %d: %w", salaryID, err)
	}

	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
	return nil
}

func (s *employeeService) MonthlySummary(ctx context.Context, monthYear string) (*MonthlySalarySummary, error) {
	records, err := s.repo.Salary().ListByMonth(ctx, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for %s: %w", monthYear, err)
	}

	totalEmployees, err := s.repo.Employee().CountActive(ctx)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySalarySummary{
		MonthYear:      monthYear,
		TotalEmployees: totalEmployees,
		PaidEmployees:  len(records),
		Payments:       make([]SalaryPayment, 0, len(records)),
	}
	for _, record := range records {
		summary.TotalPaid += record.AmountPaid
		payment := SalaryPayment{
			AmountPaid:    record.AmountPaid,
			DatePaid:      record.DatePaid.Format("2006-01-02"),
			PaymentMethod: record.PaymentMethod,
		}
		if record.Employee != nil {
			payment.EmployeeName = record.Employee.Name
			payment.Position = record.Employee.Position
		}
		summary.Payments = append(summary.Payments, payment)
	}
	summary.UnpaidEmployees = totalEmployees - int64(summary.PaidEmployees)

	return summary, nil
}

func (s *employeeService) YearlySummary(ctx context.Context, year int) (*YearlySalarySummary, error) {
	records, err := s.repo.Salary().ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for year %d: %w", year, err)
	}

	totalEmployees, err := s.repo.Employee().CountActive(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlySalaryBreakdown, 12)
	summary := &YearlySalarySummary{
		Year:             year,
		TotalEmployees:   totalEmployees,
		MonthlyBreakdown: make([]MonthlySalaryBreakdown, 0, 12),
	}
	for m := 1; m <= 12; m++ {
		monthKey := fmt.Sprintf("%04d-%02d", year, m)
		summary.MonthlyBreakdown = append(summary.MonthlyBreakdown, MonthlySalaryBreakdown{
			Month:    monthKey,
			Payments: []SalaryPayment{},
		})
		byMonth[monthKey] = &summary.MonthlyBreakdown[m-1]
	}

	for _, record := range records {
		breakdown, ok := byMonth[record.MonthYear]
		if !ok {
			continue
		}
		breakdown.TotalPaid += record.AmountPaid
		breakdown.EmployeeCount++
		payment := SalaryPayment{
			AmountPaid: record.AmountPaid,
			DatePaid:   record.DatePaid.Format("2006-01-02"),
		}
		if record.Employee != nil {
			payment.EmployeeName = record.Employee.Name
			payment.Position = record.Employee.Position
		}
		breakdown.Payments = append(breakdown.Payments, payment)
		summary.YearlyTotal += record.AmountPaid
	}

	return summary, nil
}

func (s *employeeService) AvailableMonths(ctx context.Context) ([]string, []string, error) {
	months, err := s.repo.Salary().AvailableMonths(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list salary months: %w", err)
	}
	years, err := s.repo.Salary().AvailableYears(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list salary years: %w", err)
	}
	return months, years, nil
}
