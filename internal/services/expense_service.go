package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type expenseService struct {
	repo      repositories.Repository
	caches    *cache.CacheManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExpenseService(repo repositories.Repository, caches *cache.CacheManager, logger *slog.Logger, v *validator.Validator) ExpenseService {
	return &expenseService{
		repo:      repo,
		caches:    caches,
		logger:    logger,
		validator: v,
	}
}

func expenseResponse(expense *models.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:       expense.ID,
		ItemName: expense.ItemName,
		Price:    expense.Price,
		Date:     time.Time(expense.Date).Format("2006-01-02"),
		UserID:   expense.UserID,
	}
}

func (s *expenseService) Overview(ctx context.Context, year, month int) (*ExpenseOverviewResponse, error) {
	prevMonth, prevYear := month-1, year
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}

	current, err := s.repo.Expense().ListByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	previous, err := s.repo.Expense().ListByMonth(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous expenses: %w", err)
	}

	incomeCurrent, err := s.repo.Fee().SumByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	incomePrevious, err := s.repo.Fee().SumByMonth(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}

	resp := &ExpenseOverviewResponse{
		ExpensesCurrent:     make([]*ExpenseResponse, 0, len(current)),
		ExpensesPrevious:    make([]*ExpenseResponse, 0, len(previous)),
		TotalIncomeCurrent:  incomeCurrent,
		TotalIncomePrevious: incomePrevious,
		CurrentMonth:        month,
		CurrentYear:         year,
		PrevMonth:           prevMonth,
		PrevYear:            prevYear,
	}

	for _, expense := range current {
		resp.TotalExpensesCurrent += expense.Price
		resp.ExpensesCurrent = append(resp.ExpensesCurrent, expenseResponse(expense))
	}
	for _, expense := range previous {
		resp.TotalExpensesPrevious += expense.Price
		resp.ExpensesPrevious = append(resp.ExpensesPrevious, expenseResponse(expense))
	}

	resp.RemainingBalanceCurrent = resp.TotalIncomeCurrent - resp.TotalExpensesCurrent
	resp.RemainingBalancePrevious = resp.TotalIncomePrevious - resp.TotalExpensesPrevious

	return resp, nil
}

func (s *expenseService) Create(ctx context.Context, req *ExpenseCreateRequest, adminID uint) (*ExpenseResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	expense := &models.Expense{
		ItemName: req.ItemName,
		Price:    req.Price,
		Date:     datatypes.Date(date),
		UserID:   adminID,
	}
	if err := s.repo.Expense().Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}

	s.logger.Info("Expense added", "expense_id", expense.ID, "price", expense.Price)
	return expenseResponse(expense), nil
}

func (s *expenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.repo.Expense().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load expense %d: %w", id, err)
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if err := s.repo.Expense().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}

	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
	return nil
}

// ExportReport renders one month's expenses as a spreadsheet with a
// total row at the bottom.
func (s *expenseService) ExportReport(ctx context.Context, year, month int) ([]byte, string, error) {
	expenses, err := s.repo.Expense().ListByMonth(ctx, year, month)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load expenses: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "expenses"
	f.SetSheetName("Sheet1", sheet)

	monthName := time.Month(month).String()
	f.SetCellValue(sheet, "A1", fmt.Sprintf("Expenses Report - %s %d", monthName, year))

	headers := []string{"Item", "Price", "Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, header)
	}

	var total float64
	row := 4
	for _, expense := range expenses {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), expense.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), expense.Price)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), time.Time(expense.Date).Format("2006-01-02"))
		total += expense.Price
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row+1), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row+1), total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write report: %w", err)
	}

	filename := fmt.Sprintf("expenses_%s_%d.xlsx", monthName, year)
	return buf.Bytes(), filename, nil
}
