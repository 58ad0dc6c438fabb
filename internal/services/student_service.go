package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

const (
	maxPerPage     = 100
	defaultPerPage = 10
)

type studentService struct {
	repo      repositories.Repository
	caches    *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, caches *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func clampPagination(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func (s *studentService) List(ctx context.Context, req StudentListRequest) (*StudentListResponse, error) {
	page, perPage := clampPagination(req.Page, req.PerPage)

	students, total, err := s.repo.Student().List(ctx, repositories.StudentFilters{
		Search:  strings.TrimSpace(req.Search),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	now := time.Now()
	responses := make([]*StudentResponse, 0, len(students))
	for _, student := range students {
		remaining, err := s.remainingFee(ctx, student, now)
		if err != nil {
			return nil, err
		}
		responses = append(responses, &StudentResponse{
			ID:           student.ID,
			Name:         student.Name,
			Email:        student.Email,
			Phone:        student.Phone,
			Fee:          student.Fee,
			RoomID:       student.RoomID,
			RoomNumber:   student.RoomNumber(),
			Status:       student.Status,
			Picture:      student.Picture,
			FeeStatus:    student.FeeStatus,
			RemainingFee: remaining,
		})
	}

	return &StudentListResponse{
		Students: responses,
		Meta:     NewListMeta(page, perPage, total),
	}, nil
}

// remainingFee is the unpaid portion of the student's monthly fee for
// the current month, floored at zero.
func (s *studentService) remainingFee(ctx context.Context, student *models.Student, now time.Time) (float64, error) {
	paid, err := s.repo.Fee().SumForStudentMonth(ctx, student.ID, now.Year(), int(now.Month()))
	if err != nil {
		return 0, fmt.Errorf("failed to sum fees for student %d: %w", student.ID, err)
	}
	remaining := student.Fee - paid
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// checkRoomHasSpace validates the target room exists and is below capacity.
func checkRoomHasSpace(ctx context.Context, repo repositories.Repository, roomID uint) (*models.Room, error) {
	if roomID < 1 || roomID > 18 {
		return nil, ErrRoomOutOfRange
	}

	room, err := repo.Room().GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: room %d", ErrRoomNotFound, roomID)
	}

	occupancy, err := repo.Room().Occupancy(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check occupancy for room %d: %w", roomID, err)
	}
	if occupancy >= room.Capacity {
		return nil, fmt.Errorf("%w: room %d (capacity %d)", ErrRoomFull, roomID, room.Capacity)
	}

	return room, nil
}

func (s *studentService) Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if _, err := checkRoomHasSpace(ctx, s.repo, req.RoomID); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Fee:     req.Fee,
		RoomID:  req.RoomID,
		Picture: req.Picture,
		Status:  models.StudentActive,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to enroll student: %w", err)
	}

	s.invalidateCaches(ctx)

	event := events.NewEvent(events.EventStudentEnrolled, events.StudentEnrolledEvent{
		StudentID: student.ID,
		Name:      student.Name,
		RoomID:    student.RoomID,
		Fee:       student.Fee,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event", "error", err, "student_id", student.ID)
	}

	s.logger.Info("Student enrolled", "student_id", student.ID, "room_id", student.RoomID)
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *StudentUpdateRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load student %d: %w", id, err)
	}
	if student == nil {
		return ErrStudentNotFound
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Fee != nil {
		student.Fee = *req.Fee
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.Picture != nil {
		student.Picture = req.Picture
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.RoomID != nil && *req.RoomID != student.RoomID {
		if _, err := checkRoomHasSpace(ctx, s.repo, *req.RoomID); err != nil {
			return err
		}
		student.RoomID = *req.RoomID
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return fmt.Errorf("failed to update student %d: %w", id, err)
	}

	s.invalidateCaches(ctx)
	return nil
}

// Delete removes the student and every fee record attached to them in
// one transaction.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load student %d: %w", id, err)
	}
	if student == nil {
		return ErrStudentNotFound
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Fee().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		return tx.Student().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete student %d: %w", id, err)
	}

	s.invalidateCaches(ctx)
	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

// BulkUpload imports students from a spreadsheet with columns
// name, fee, room_id. Rows are processed independently so one bad row
// does not block the rest.
func (s *studentService) BulkUpload(ctx context.Context, file io.Reader) (*BulkUploadSummary, string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, "", fmt.Errorf("unable to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("spreadsheet is empty")
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"name", "fee", "room_id"} {
		if _, ok := columns[required]; !ok {
			return nil, "", fmt.Errorf("missing required columns; required: name, fee, room_id")
		}
	}

	summary := &BulkUploadSummary{Errors: []string{}}
	seenNames := map[string]bool{}

	cell := func(row []string, column string) string {
		idx := columns[column]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // header is row 1
		summary.TotalProcessed++

		if err := func() error {
			name := cell(row, "name")
			if name == "" {
				return fmt.Errorf("name is required")
			}
			if seenNames[name] {
				return fmt.Errorf("duplicate name within file")
			}
			existing, err := s.repo.Student().GetByName(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrDuplicateName
			}

			fee, err := strconv.ParseFloat(cell(row, "fee"), 64)
			if err != nil {
				return fmt.Errorf("fee must be a number")
			}
			if fee <= 0 {
				return fmt.Errorf("fee must be greater than 0")
			}

			roomID, err := strconv.Atoi(cell(row, "room_id"))
			if err != nil {
				return fmt.Errorf("room_id must be an integer")
			}
			if _, err := checkRoomHasSpace(ctx, s.repo, uint(roomID)); err != nil {
				return err
			}

			student := &models.Student{
				Name:   name,
				Fee:    fee,
				RoomID: uint(roomID),
				Status: models.StudentActive,
			}
			if err := s.repo.Student().Create(ctx, student); err != nil {
				return err
			}

			seenNames[name] = true
			summary.SuccessCount++
			return nil
		}(); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", rowNum, err))
		}
	}

	summary.ErrorCount = len(summary.Errors)
	if summary.SuccessCount > 0 {
		s.invalidateCaches(ctx)
	}

	var message string
	switch {
	case summary.SuccessCount == 0:
		message = "No students were added. Please review the errors."
	case summary.ErrorCount == 0:
		message = fmt.Sprintf("Successfully added %d student(s).", summary.SuccessCount)
	default:
		message = fmt.Sprintf("Added %d student(s) with %d error(s).", summary.SuccessCount, summary.ErrorCount)
	}

	return summary, message, nil
}

// Template generates the spreadsheet used for bulk uploads, with two
// example rows.
func (s *studentService) Template(ctx context.Context) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "students"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"name", "fee", "room_id"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	examples := [][]interface{}{
		{"Ali Khan", 5000, 1},
		{"Sara Ahmed", 5500, 2},
	}
	for r, row := range examples {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write template: %w", err)
	}

	return buf.Bytes(), "student_bulk_upload_template.xlsx", nil
}

func (s *studentService) invalidateCaches(ctx context.Context) {
	if err := s.caches.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}
