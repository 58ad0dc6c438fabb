package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) repositories.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense %d: %w", id, err)
	}
	return &expense, nil
}

func (r *expenseRepository) ListByMonth(ctx context.Context, year, month int) ([]*models.Expense, error) {
	var expenses []*models.Expense
	if err := r.db.WithContext(ctx).
		Where("EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?", year, month).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses for %04d-%02d: %w", year, month, err)
	}
	return expenses, nil
}

func (r *expenseRepository) SumByMonth(ctx context.Context, year, month int) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?", year, month).
		Select("COALESCE(SUM(price), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum expenses for %04d-%02d: %w", year, month, err)
	}
	return result.Total, nil
}

func (r *expenseRepository) CategoryTotals(ctx context.Context) ([]repositories.ExpenseCategory, error) {
	var categories []repositories.ExpenseCategory
	if err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("item_name, SUM(price) as total").
		Group("item_name").
		Order("total DESC").
		Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense categories: %w", err)
	}
	return categories, nil
}

func (r *expenseRepository) FindMatching(ctx context.Context, itemName string, price float64) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).
		Where("item_name = ? AND price = ?", itemName, price).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find matching expense: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	return nil
}
