package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type mealService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMealService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) MealService {
	return &mealService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *mealService) Overview(ctx context.Context) (*MealsResponse, error) {
	timings, err := s.repo.Meal().ListTimings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal timings: %w", err)
	}
	menu, err := s.repo.Meal().ListMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal menu: %w", err)
	}

	resp := &MealsResponse{
		Timings: make([]MealTimingResponse, 0, len(timings)),
		Menu:    make([]MealMenuResponse, 0, len(menu)),
	}
	for _, timing := range timings {
		resp.Timings = append(resp.Timings, MealTimingResponse{
			MealName:  timing.MealName,
			StartTime: timing.StartTime,
			EndTime:   timing.EndTime,
			Notes:     timing.Notes,
		})
	}
	for _, item := range menu {
		resp.Menu = append(resp.Menu, MealMenuResponse{
			DayOfWeek: item.DayOfWeek,
			MealName:  item.MealName,
			MenuItems: item.MenuItems,
		})
	}
	return resp, nil
}

// trimToNil collapses whitespace-only optional fields to NULL so the
// stored row matches what the form left blank.
func trimToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *mealService) UpdateTimings(ctx context.Context, req *MealTimingsRequest) ([]MealTimingResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, item := range req.Timings {
			timing := &models.MealTiming{
				MealName:  strings.TrimSpace(item.MealName),
				StartTime: trimToNil(item.StartTime),
				EndTime:   trimToNil(item.EndTime),
				Notes:     trimToNil(item.Notes),
			}
			if err := tx.Meal().UpsertTiming(ctx, timing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update meal timings: %w", err)
	}

	updated, err := s.repo.Meal().ListTimings(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MealTimingResponse, 0, len(updated))
	for _, timing := range updated {
		responses = append(responses, MealTimingResponse{
			MealName:  timing.MealName,
			StartTime: timing.StartTime,
			EndTime:   timing.EndTime,
			Notes:     timing.Notes,
		})
	}
	return responses, nil
}

func (s *mealService) UpdateMenu(ctx context.Context, req *MealMenuRequest) ([]MealMenuResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, item := range req.Menu {
			menuItem := &models.MealMenu{
				DayOfWeek: item.DayOfWeek,
				MealName:  strings.TrimSpace(item.MealName),
				MenuItems: trimToNil(item.MenuItems),
			}
			if err := tx.Meal().UpsertMenuItem(ctx, menuItem); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update meal menu: %w", err)
	}

	updated, err := s.repo.Meal().ListMenu(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MealMenuResponse, 0, len(updated))
	for _, item := range updated {
		responses = append(responses, MealMenuResponse{
			DayOfWeek: item.DayOfWeek,
			MealName:  item.MealName,
			MenuItems: item.MenuItems,
		})
	}
	return responses, nil
}
