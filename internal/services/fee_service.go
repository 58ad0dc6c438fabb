package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type feeService struct {
	repo      repositories.Repository
	caches    *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeeService(repo repositories.Repository, caches *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) FeeService {
	return &feeService{
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Collect records a payment and recomputes the student's fee status for
// the payment's month in the same transaction. Status is paid when the
// month's payments cover the monthly fee, partial when anything is paid,
// unpaid otherwise.
func (s *feeService) Collect(ctx context.Context, req *FeeCollectRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	datePaid, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	var feeStatus models.FeeStatus

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		student, err := tx.Student().GetByID(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if student == nil {
			return ErrStudentNotFound
		}

		record := &models.FeeRecord{
			StudentID:     req.StudentID,
			Amount:        req.Amount,
			DatePaid:      datatypes.Date(datePaid),
			MonthYear:     datePaid.Format("2006-01"),
			PaymentMethod: paymentMethod,
		}
		if err := tx.Fee().Create(ctx, record); err != nil {
			return err
		}

		totalPaid, err := tx.Fee().SumForStudentMonth(ctx, req.StudentID, datePaid.Year(), int(datePaid.Month()))
		if err != nil {
			return err
		}

		switch {
		case totalPaid >= student.Fee:
			feeStatus = models.FeePaid
		case totalPaid > 0:
			feeStatus = models.FeePartial
		default:
			feeStatus = models.FeeUnpaid
		}

		student.FeeStatus = feeStatus
		student.LastFeePayment = &datePaid
		return tx.Student().Update(ctx, student)
	})
	if err != nil {
		return fmt.Errorf("failed to collect fee: %w", err)
	}

	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}

	event := events.NewEvent(events.EventFeeCollected, events.FeeCollectedEvent{
		StudentID:     req.StudentID,
		Amount:        req.Amount,
		MonthYear:     datePaid.Format("2006-01"),
		PaymentMethod: paymentMethod,
		FeeStatus:     string(feeStatus),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish fee event", "error", err, "student_id", req.StudentID)
	}

	s.logger.Info("Fee collected", "student_id", req.StudentID, "amount", req.Amount)
	return nil
}

func feeRecordResponse(record *models.FeeRecord) *FeeRecordResponse {
	resp := &FeeRecordResponse{
		ID:        record.ID,
		StudentID: record.StudentID,
		Amount:    record.Amount,
		DatePaid:  time.Time(record.DatePaid).Format("2006-01-02"),
	}
	if record.Student != nil {
		resp.Student = &FeeRecordStudent{
			ID:         record.Student.ID,
			Name:       record.Student.Name,
			FeeStatus:  record.Student.FeeStatus,
			RoomNumber: record.Student.RoomNumber(),
		}
	}
	return resp
}

func (s *feeService) Overview(ctx context.Context, year, month int) (*FeeOverviewResponse, error) {
	prevMonth, prevYear := month-1, year
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}

	current, err := s.repo.Fee().ListByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load fee records: %w", err)
	}
	previous, err := s.repo.Fee().ListByMonth(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous fee records: %w", err)
	}

	resp := &FeeOverviewResponse{
		FeeRecordsCurrent:  make([]*FeeRecordResponse, 0, len(current)),
		FeeRecordsPrevious: make([]*FeeRecordResponse, 0, len(previous)),
		CurrentMonth:       month,
		CurrentYear:        year,
		PrevMonth:          prevMonth,
		PrevYear:           prevYear,
		MonthlyTotals:      make([]MonthlyFeeTotal, 0, 12),
	}

	for _, record := range current {
		resp.TotalFeesCurrent += record.Amount
		resp.FeeRecordsCurrent = append(resp.FeeRecordsCurrent, feeRecordResponse(record))
	}
	for _, record := range previous {
		resp.TotalFeesPrevious += record.Amount
		resp.FeeRecordsPrevious = append(resp.FeeRecordsPrevious, feeRecordResponse(record))
	}

	for m := 1; m <= 12; m++ {
		total, err := s.repo.Fee().SumByMonth(ctx, year, m)
		if err != nil {
			return nil, fmt.Errorf("failed to sum fees for %04d-%02d: %w", year, m, err)
		}
		resp.MonthlyTotals = append(resp.MonthlyTotals, MonthlyFeeTotal{
			Month: time.Month(m).String(),
			Total: total,
		})
	}

	return resp, nil
}

func (s *feeService) ListRecords(ctx context.Context) ([]*FeeRecordResponse, error) {
	records, err := s.repo.Fee().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee records: %w", err)
	}

	responses := make([]*FeeRecordResponse, 0, len(records))
	for _, record := range records {
		resp := feeRecordResponse(record)
		resp.PaymentMethod = record.PaymentMethod
		responses = append(responses, resp)
	}
	return responses, nil
}
