package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) repositories.MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) ListTimings(ctx context.Context) ([]*models.MealTiming, error) {
	var timings []*models.MealTiming
	if err := r.db.WithContext(ctx).Order("meal_name ASC").Find(&timings).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal timings: %w", err)
	}
	return timings, nil
}

func (r *mealRepository) UpsertTiming(ctx context.Context, timing *models.MealTiming) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meal_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "notes"}),
		}).
		Create(timing).Error; err != nil {
		return fmt.Errorf("failed to upsert meal timing %q: %w", timing.MealName, err)
	}
	return nil
}

func (r *mealRepository) ListMenu(ctx context.Context) ([]*models.MealMenu, error) {
	var menu []*models.MealMenu
	if err := r.db.WithContext(ctx).
		Order("day_of_week ASC, meal_name ASC").
		Find(&menu).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal menu: %w", err)
	}
	return menu, nil
}

func (r *mealRepository) UpsertMenuItem(ctx context.Context, item *models.MealMenu) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day_of_week"}, {Name: "meal_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"menu_items"}),
		}).
		Create(item).Error; err != nil {
		return fmt.Errorf("failed to upsert menu item %q day %d: %w", item.MealName, item.DayOfWeek, err)
	}
	return nil
}
