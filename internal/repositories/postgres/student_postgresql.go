package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("Room").First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	return &student, nil
}

func (r *studentRepository) GetByName(ctx context.Context, name string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student %q: %w", name, err)
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []*models.Student
	if err := query.
		Preload("Room").
		Order("id DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student %d: %w", student.ID, err)
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Student{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete student %d: %w", id, err)
	}
	return nil
}

func (r *studentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("status = ?", models.StudentActive).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active students: %w", err)
	}
	return count, nil
}

func (r *studentRepository) CountActiveByFeeStatus(ctx context.Context, status models.FeeStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("status = ? AND fee_status = ?", models.StudentActive, status).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students with fee status %s: %w", status, err)
	}
	return count, nil
}

func (r *studentRepository) SumActiveFees(ctx context.Context) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("status = ?", models.StudentActive).
		Select("COALESCE(SUM(fee), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum active fees: %w", err)
	}
	return result.Total, nil
}
