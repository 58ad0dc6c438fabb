package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
)

func newFeeFixture() (*feeService, *mockRepository, *events.MockEventPublisher) {
	logger := testLogger()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewFeeService(repo, cache.NewCacheManager(nil), publisher, logger, testValidator()).(*feeService)
	return service, repo, publisher
}

func seedStudent(repo *mockRepository, fee float64) *models.Student {
	student := &models.Student{
		Name:      "Bilal",
		Fee:       fee,
		RoomID:    1,
		Status:    models.StudentActive,
		FeeStatus: models.FeeUnpaid,
	}
	repo.Student().Create(context.Background(), student)
	return student
}

func TestFeeService_Collect_FullPaymentMarksPaid(t *testing.T) {
	service, repo, publisher := newFeeFixture()
	ctx := context.Background()
	student := seedStudent(repo, 5000)

	today := time.Now().Format("2006-01-02")
	err := service.Collect(ctx, &FeeCollectRequest{
		StudentID: student.ID,
		Amount:    5000,
		Date:      today,
	})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	updated, _ := repo.Student().GetByID(ctx, student.ID)
	if updated.FeeStatus != models.FeePaid {
		t.Errorf("expected paid, got %s", updated.FeeStatus)
	}
	if updated.LastFeePayment == nil {
		t.Error("expected last_fee_payment to be set")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventFeeCollected {
		t.Fatalf("expected one fee.collected event, got %v", published)
	}
}

func TestFeeService_Collect_PartialPayment(t *testing.T) {
	service, repo, _ := newFeeFixture()
	ctx := context.Background()
	student := seedStudent(repo, 5000)

	today := time.Now().Format("2006-01-02")
	if err := service.Collect(ctx, &FeeCollectRequest{StudentID: student.ID, Amount: 2000, Date: today}); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	updated, _ := repo.Student().GetByID(ctx, student.ID)
	if updated.FeeStatus != models.FeePartial {
		t.Errorf("expected partial, got %s", updated.FeeStatus)
	}

	// A second payment completing the month flips the status to paid.
	if err := service.Collect(ctx, &FeeCollectRequest{StudentID: student.ID, Amount: 3000, Date: today}); err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}
	updated, _ = repo.Student().GetByID(ctx, student.ID)
	if updated.FeeStatus != models.FeePaid {
		t.Errorf("expected paid after completing the month, got %s", updated.FeeStatus)
	}
}

func TestFeeService_Collect_UnknownStudent(t *testing.T) {
	service, _, _ := newFeeFixture()

	err := service.Collect(context.Background(), &FeeCollectRequest{
		StudentID: 404,
		Amount:    1000,
		Date:      "2026-08-01",
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestFeeService_Collect_DefaultsPaymentMethod(t *testing.T) {
	service, repo, _ := newFeeFixture()
	ctx := context.Background()
	student := seedStudent(repo, 5000)

	if err := service.Collect(ctx, &FeeCollectRequest{StudentID: student.ID, Amount: 100, Date: "2026-08-15"}); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	records, _ := repo.Fee().ListAll(ctx)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].PaymentMethod != "cash" {
		t.Errorf("expected cash default, got %q", records[0].PaymentMethod)
	}
	if records[0].MonthYear != "2026-08" {
		t.Errorf("expected month_year 2026-08, got %q", records[0].MonthYear)
	}
}

func TestFeeService_Overview(t *testing.T) {
	service, repo, _ := newFeeFixture()
	ctx := context.Background()
	student := seedStudent(repo, 5000)

	payments := []struct {
		amount float64
		date   string
	}{
		{3000, "2026-08-05"},
		{2000, "2026-08-20"},
		{4000, "2026-07-10"},
	}
	for _, p := range payments {
		if err := service.Collect(ctx, &FeeCollectRequest{StudentID: student.ID, Amount: p.amount, Date: p.date}); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}

	overview, err := service.Overview(ctx, 2026, 8)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}

	if overview.TotalFeesCurrent != 5000 {
		t.Errorf("expected current total 5000, got %v", overview.TotalFeesCurrent)
	}
	if overview.TotalFeesPrevious != 4000 {
		t.Errorf("expected previous total 4000, got %v", overview.TotalFeesPrevious)
	}
	if overview.PrevMonth != 7 || overview.PrevYear != 2026 {
		t.Errorf("unexpected previous month %d-%d", overview.PrevYear, overview.PrevMonth)
	}
	if len(overview.MonthlyTotals) != 12 {
		t.Fatalf("expected 12 monthly totals, got %d", len(overview.MonthlyTotals))
	}
	if overview.MonthlyTotals[7].Total != 5000 {
		t.Errorf("expected August total 5000, got %v", overview.MonthlyTotals[7].Total)
	}
}

func TestFeeService_Overview_JanuaryWrapsToPreviousYear(t *testing.T) {
	service, _, _ := newFeeFixture()

	overview, err := service.Overview(context.Background(), 2026, 1)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if overview.PrevMonth != 12 || overview.PrevYear != 2025 {
		t.Errorf("expected 2025-12, got %d-%d", overview.PrevYear, overview.PrevMonth)
	}
}

func ExampleNewListMeta() {
	meta := NewListMeta(2, 10, 35)
	fmt.Println(meta.TotalPages, meta.HasNext, meta.HasPrev)
	// Output: 4 true true
}
