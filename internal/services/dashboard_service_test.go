package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/models"
)

func newDashboardFixture(now time.Time) (*dashboardService, *mockRepository) {
	repo := newMockRepository()
	service := &dashboardService{
		repo:   repo,
		caches: cache.NewCacheManager(nil),
		logger: testLogger(),
		now:    func() time.Time { return now },
	}
	return service, repo
}

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestDashboardService_Overview(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	service, repo := newDashboardFixture(now)
	ctx := context.Background()

	students := []*models.Student{
		{Name: "A", Fee: 5000, RoomID: 1, Status: models.StudentActive, FeeStatus: models.FeePaid},
		{Name: "B", Fee: 4000, RoomID: 1, Status: models.StudentActive, FeeStatus: models.FeePartial},
		{Name: "C", Fee: 4500, RoomID: 2, Status: models.StudentActive, FeeStatus: models.FeeUnpaid},
		{Name: "D", Fee: 6000, RoomID: 2, Status: models.StudentGraduated, FeeStatus: models.FeePaid},
	}
	for _, s := range students {
		repo.Student().Create(ctx, s)
	}

	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: 1, Amount: 5000, DatePaid: date(2026, time.August, 3), MonthYear: "2026-08"})
	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: 2, Amount: 2000, DatePaid: date(2026, time.August, 9), MonthYear: "2026-08"})
	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: 1, Amount: 5000, DatePaid: date(2026, time.June, 4), MonthYear: "2026-06"})

	repo.Expense().Create(ctx, &models.Expense{ItemName: "Groceries", Price: 3000, Date: date(2026, time.August, 2), UserID: 1})
	repo.Expense().Create(ctx, &models.Expense{ItemName: "Electricity", Price: 1500, Date: date(2026, time.August, 10), UserID: 1})
	repo.Expense().Create(ctx, &models.Expense{ItemName: "Groceries", Price: 2500, Date: date(2026, time.July, 5), UserID: 1})

	repo.Salary().Create(ctx, &models.SalaryRecord{EmployeeID: 1, MonthYear: "2026-08", AmountPaid: 20000})
	repo.Salary().Create(ctx, &models.SalaryRecord{EmployeeID: 1, MonthYear: "2026-07", AmountPaid: 18000})

	resp, err := service.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if resp.TotalStudents != 3 {
		t.Errorf("expected 3 active students, got %d", resp.TotalStudents)
	}

	if len(resp.Months) != 6 || len(resp.MonthlyIncome) != 6 || len(resp.MonthlyExpenses) != 6 {
		t.Fatalf("expected 6-month series, got %d/%d/%d", len(resp.Months), len(resp.MonthlyIncome), len(resp.MonthlyExpenses))
	}
	wantMonths := []string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}
	for i, want := range wantMonths {
		if resp.Months[i] != want {
			t.Errorf("month[%d]: expected %s, got %s", i, want, resp.Months[i])
		}
	}

	if resp.CurrentMonthIncome != 7000 {
		t.Errorf("expected current income 7000, got %v", resp.CurrentMonthIncome)
	}
	if resp.CurrentMonthExpenses != 4500 {
		t.Errorf("expected current expenses 4500, got %v", resp.CurrentMonthExpenses)
	}
	if resp.ProfitLoss != 2500 {
		t.Errorf("expected profit 2500, got %v", resp.ProfitLoss)
	}

	// June income shows up at series position 3.
	if resp.MonthlyIncome[3] != 5000 {
		t.Errorf("expected June income 5000, got %v", resp.MonthlyIncome[3])
	}

	if resp.TotalFeeCurrent != 13500 {
		t.Errorf("expected billed total 13500, got %v", resp.TotalFeeCurrent)
	}
	if resp.PendingFeeCurrent != 6500 {
		t.Errorf("expected pending 6500, got %v", resp.PendingFeeCurrent)
	}

	if resp.FullyPaid != 1 || resp.PartiallyPaid != 1 || resp.Unpaid != 1 {
		t.Errorf("unexpected fee status counts: %d/%d/%d", resp.FullyPaid, resp.PartiallyPaid, resp.Unpaid)
	}

	if resp.TotalSalariesCurrent != 20000 || resp.TotalSalariesPrev != 18000 {
		t.Errorf("unexpected salary totals: %v/%v", resp.TotalSalariesCurrent, resp.TotalSalariesPrev)
	}

	if len(resp.ExpenseCategories) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(resp.ExpenseCategories))
	}
	if resp.ExpenseCategories[0].ItemName != "Groceries" || resp.ExpenseCategories[0].Total != 5500 {
		t.Errorf("unexpected top category: %+v", resp.ExpenseCategories[0])
	}
}

func TestDashboardService_Overview_PendingFeeNeverNegative(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	service, repo := newDashboardFixture(now)
	ctx := context.Background()

	repo.Student().Create(ctx, &models.Student{Name: "A", Fee: 1000, RoomID: 1, Status: models.StudentActive})
	// Collections exceed the billed total for the month.
	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: 1, Amount: 5000, DatePaid: date(2026, time.August, 3), MonthYear: "2026-08"})

	resp, err := service.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if resp.PendingFeeCurrent != 0 {
		t.Errorf("expected pending fee clamped to 0, got %v", resp.PendingFeeCurrent)
	}
}

func TestDashboardService_Overview_JanuaryWindowSpansYears(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	service, repo := newDashboardFixture(now)
	ctx := context.Background()

	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: 1, Amount: 900, DatePaid: date(2025, time.December, 20), MonthYear: "2025-12"})

	resp, err := service.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	wantMonths := []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}
	for i, want := range wantMonths {
		if resp.Months[i] != want {
			t.Errorf("month[%d]: expected %s, got %s", i, want, resp.Months[i])
		}
	}
	if resp.MonthlyIncome[4] != 900 {
		t.Errorf("expected December income at position 4, got %v", resp.MonthlyIncome[4])
	}
}
