package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	caches *cache.CacheManager
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(repo repositories.Repository, caches *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		caches: caches,
		logger: logger,
		now:    time.Now,
	}
}

// Overview assembles the dashboard aggregate, serving it from the stats
// cache when a fresh copy exists. Mutating services invalidate the key.
func (s *dashboardService) Overview(ctx context.Context) (*DashboardResponse, error) {
	var resp DashboardResponse
	err := s.caches.Stats.CacheOrExecute(ctx, "dashboard", &resp, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.build(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return &resp, nil
}

func (s *dashboardService) build(ctx context.Context) (*DashboardResponse, error) {
	now := s.now()
	currentYear, currentMonth := now.Year(), int(now.Month())

	totalStudents, err := s.repo.Student().CountActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalStudents:   totalStudents,
		MonthlyExpenses: make([]float64, 0, 6),
		MonthlyIncome:   make([]float64, 0, 6),
		Months:          make([]string, 0, 6),
	}

	// Trailing six months, oldest first.
	for i := 5; i >= 0; i-- {
		month := currentMonth - i
		year := currentYear
		if month <= 0 {
			month += 12
			year--
		}

		expenses, err := s.repo.Expense().SumByMonth(ctx, year, month)
		if err != nil {
			return nil, err
		}
		income, err := s.repo.Fee().SumByMonth(ctx, year, month)
		if err != nil {
			return nil, err
		}

		resp.MonthlyExpenses = append(resp.MonthlyExpenses, expenses)
		resp.MonthlyIncome = append(resp.MonthlyIncome, income)
		resp.Months = append(resp.Months, time.Month(month).String()[:3])
	}

	categories, err := s.repo.Expense().CategoryTotals(ctx)
	if err != nil {
		return nil, err
	}
	resp.ExpenseCategories = make([]ExpenseCategoryTotal, 0, len(categories))
	for _, category := range categories {
		resp.ExpenseCategories = append(resp.ExpenseCategories, ExpenseCategoryTotal{
			ItemName: category.ItemName,
			Total:    category.Total,
		})
	}

	resp.CurrentMonthExpenses = resp.MonthlyExpenses[len(resp.MonthlyExpenses)-1]
	resp.CurrentMonthIncome = resp.MonthlyIncome[len(resp.MonthlyIncome)-1]
	resp.ProfitLoss = resp.CurrentMonthIncome - resp.CurrentMonthExpenses

	totalFee, err := s.repo.Student().SumActiveFees(ctx)
	if err != nil {
		return nil, err
	}
	resp.TotalFeeCurrent = totalFee
	resp.ReceivedFeeCurrent = resp.CurrentMonthIncome
	// Pending fee never goes negative even when collections exceed the
	// billed total (overpayment, carry-over payments).
	pending := totalFee - resp.ReceivedFeeCurrent
	if pending < 0 {
		pending = 0
	}
	resp.PendingFeeCurrent = pending

	for _, entry := range []struct {
		status models.FeeStatus
		dest   *int64
	}{
		{models.FeePaid, &resp.FullyPaid},
		{models.FeePartial, &resp.PartiallyPaid},
		{models.FeeUnpaid, &resp.Unpaid},
	} {
		count, err := s.repo.Student().CountActiveByFeeStatus(ctx, entry.status)
		if err != nil {
			return nil, err
		}
		*entry.dest = count
	}

	currentMonthYear := fmt.Sprintf("%04d-%02d", currentYear, currentMonth)
	resp.TotalSalariesCurrent, err = s.repo.Salary().SumByMonth(ctx, currentMonthYear)
	if err != nil {
		return nil, err
	}

	prevMonth, prevYear := currentMonth-1, currentYear
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}
	prevMonthYear := fmt.Sprintf("%04d-%02d", prevYear, prevMonth)
	resp.TotalSalariesPrev, err = s.repo.Salary().SumByMonth(ctx, prevMonthYear)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
