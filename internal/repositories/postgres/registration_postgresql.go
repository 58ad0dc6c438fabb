package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) repositories.RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.WithContext(ctx).First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", id, err)
	}
	return &registration, nil
}

func (r *registrationRepository) GetByEmail(ctx context.Context, email string) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration by email: %w", err)
	}
	return &registration, nil
}

func (r *registrationRepository) List(ctx context.Context, filters repositories.RegistrationFilters) ([]*models.Registration, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Registration{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	var registrations []*models.Registration
	if err := query.
		Order("submitted_at DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&registrations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}

	return registrations, total, nil
}

func (r *registrationRepository) Update(ctx context.Context, registration *models.Registration) error {
	if err := r.db.WithContext(ctx).Save(registration).Error; err != nil {
		return fmt.Errorf("failed to update registration %d: %w", registration.ID, err)
	}
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Registration{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}
	return nil
}

func (r *registrationRepository) Counts(ctx context.Context, since time.Time) (*repositories.RegistrationCounts, error) {
	counts := &repositories.RegistrationCounts{}
	model := r.db.WithContext(ctx).Model(&models.Registration{})

	if err := model.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	byStatus := []struct {
		status models.RegistrationStatus
		dest   *int64
	}{
		{models.RegistrationPending, &counts.Pending},
		{models.RegistrationContacted, &counts.Contacted},
		{models.RegistrationApproved, &counts.Approved},
		{models.RegistrationRejected, &counts.Rejected},
	}
	for _, entry := range byStatus {
		if err := r.db.WithContext(ctx).
			Model(&models.Registration{}).
			Where("status = ?", entry.status).
			Count(entry.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s registrations: %w", entry.status, err)
		}
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("submitted_at >= ?", since).
		Count(&counts.Recent).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent registrations: %w", err)
	}

	return counts, nil
}
