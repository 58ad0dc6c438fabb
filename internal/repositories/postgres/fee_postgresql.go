package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type feeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(db *gorm.DB) repositories.FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, record *models.FeeRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create fee record: %w", err)
	}
	return nil
}

func (r *feeRepository) ListAll(ctx context.Context) ([]*models.FeeRecord, error) {
	var records []*models.FeeRecord
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Room").
		Order("date_paid DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list fee records: %w", err)
	}
	return records, nil
}

func (r *feeRepository) ListByMonth(ctx context.Context, year, month int) ([]*models.FeeRecord, error) {
	var records []*models.FeeRecord
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Room").
		Where("EXTRACT(YEAR FROM date_paid) = ? AND EXTRACT(MONTH FROM date_paid) = ?", year, month).
		Order("date_paid DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list fee records for %04d-%02d: %w", year, month, err)
	}
	return records, nil
}

func (r *feeRepository) SumByMonth(ctx context.Context, year, month int) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.FeeRecord{}).
		Where("EXTRACT(YEAR FROM date_paid) = ? AND EXTRACT(MONTH FROM date_paid) = ?", year, month).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum fee records for %04d-%02d: %w", year, month, err)
	}
	return result.Total, nil
}

func (r *feeRepository) SumForStudentMonth(ctx context.Context, studentID uint, year, month int) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.FeeRecord{}).
		Where("student_id = ? AND EXTRACT(YEAR FROM date_paid) = ? AND EXTRACT(MONTH FROM date_paid) = ?",
			studentID, year, month).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum fees for student %d: %w", studentID, err)
	}
	return result.Total, nil
}

func (r *feeRepository) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.FeeRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete fee records for student %d: %w", studentID, err)
	}
	return nil
}
