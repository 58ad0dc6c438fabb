package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) repositories.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return &employee, nil
}

func (r *employeeRepository) GetByName(ctx context.Context, name string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee %q: %w", name, err)
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	var employees []*models.Employee
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Save(employee).Error; err != nil {
		return fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Employee{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}

func (r *employeeRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("status = ?", models.EmployeeActive).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}

// ===== SALARY RECORDS =====

type salaryRepository struct {
	db *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) repositories.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) Create(ctx context.Context, record *models.SalaryRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create salary record: %w", err)
	}
	return nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id uint) (*models.SalaryRecord, error) {
	var record models.SalaryRecord
	if err := r.db.WithContext(ctx).Preload("Employee").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary record %d: %w", id, err)
	}
	return &record, nil
}

func (r *salaryRepository) GetByEmployeeMonth(ctx context.Context, employeeID uint, monthYear string) (*models.SalaryRecord, error) {
	var record models.SalaryRecord
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND month_year = ?", employeeID, monthYear).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary record for employee %d: %w", employeeID, err)
	}
	return &record, nil
}

func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("month_year DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list salary records for employee %d: %w", employeeID, err)
	}
	return records, nil
}

func (r *salaryRepository) ListByMonth(ctx context.Context, monthYear string) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("month_year = ?", monthYear).
		Order("date_paid ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list salary records for %s: %w", monthYear, err)
	}
	return records, nil
}

func (r *salaryRepository) ListByYear(ctx context.Context, year int) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("month_year LIKE ?", fmt.Sprintf("%04d-%%", year)).
		Order("month_year ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list salary records for year %d: %w", year, err)
	}
	return records, nil
}

func (r *salaryRepository) SumByMonth(ctx context.Context, monthYear string) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SalaryRecord{}).
		Where("month_year = ?", monthYear).
		Select("COALESCE(SUM(amount_paid), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum salaries for %s: %w", monthYear, err)
	}
	return result.Total, nil
}

func (r *salaryRepository) AvailableMonths(ctx context.Context) ([]string, error) {
	var months []string
	if err := r.db.WithContext(ctx).
		Model(&models.SalaryRecord{}).
		Distinct("month_year").
		Order("month_year DESC").
		Pluck("month_year", &months).Error; err != nil {
		return nil, fmt.Errorf("failed to list available salary months: %w", err)
	}
	return months, nil
}

func (r *salaryRepository) AvailableYears(ctx context.Context) ([]string, error) {
	var years []string
	if err := r.db.WithContext(ctx).
		Model(&models.SalaryRecord{}).
		Distinct("SUBSTRING(month_year, 1, 4)").
		Order("SUBSTRING(month_year, 1, 4) DESC").
		Pluck("SUBSTRING(month_year, 1, 4)", &years).Error; err != nil {
		return nil, fmt.Errorf("failed to list available salary years: %w", err)
	}
	return years, nil
}

func (r *salaryRepository) Update(ctx context.Context, record *models.SalaryRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update salary record %d: %w", record.ID, err)
	}
	return nil
}

func (r *salaryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.SalaryRecord{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete salary record %d: %w", id, err)
	}
	return nil
}

func (r *salaryRepository) DeleteByEmployee(ctx context.Context, employeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.SalaryRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete salary records for employee %d: %w", employeeID, err)
	}
	return nil
}
