package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/events"
	"github.com/hostelhub/hostel-service/internal/models"
)

func newStudentFixture() (*studentService, *mockRepository, *events.MockEventPublisher) {
	logger := testLogger()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewStudentService(repo, cache.NewCacheManager(nil), publisher, logger, testValidator()).(*studentService)
	return service, repo, publisher
}

func seedRoom(repo *mockRepository, number, capacity int) {
	repo.rooms = append(repo.rooms, &models.Room{
		ID:         uint(number),
		RoomNumber: number,
		Capacity:   capacity,
	})
}

func TestStudentService_Create(t *testing.T) {
	service, repo, publisher := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)

	student, err := service.Create(ctx, &StudentCreateRequest{
		Name:   "Usman Ali",
		Fee:    5000,
		RoomID: 1,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if student.Status != models.StudentActive {
		t.Errorf("expected active status, got %s", student.Status)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentEnrolled {
		t.Fatalf("expected one student.enrolled event, got %v", published)
	}
}

func TestStudentService_Create_RoomChecks(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 1)

	if _, err := service.Create(ctx, &StudentCreateRequest{Name: "A", Fee: 5000, RoomID: 1}); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}

	// Room 1 now holds its single occupant.
	_, err := service.Create(ctx, &StudentCreateRequest{Name: "B", Fee: 5000, RoomID: 1})
	if !errors.Is(err, ErrRoomFull) {
		t.Errorf("expected ErrRoomFull, got %v", err)
	}

	// Rooms run 1 through 18 only; 19 never passes validation.
	_, err = service.Create(ctx, &StudentCreateRequest{Name: "C", Fee: 5000, RoomID: 2})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound for unseeded room, got %v", err)
	}
}

func TestStudentService_Create_RejectsOutOfRangeRoom(t *testing.T) {
	service, _, _ := newStudentFixture()

	_, err := service.Create(context.Background(), &StudentCreateRequest{Name: "A", Fee: 5000, RoomID: 19})
	if err == nil {
		t.Fatal("expected an error for room 19")
	}
}

func TestStudentService_Update_RoomChangeEnforcesCapacity(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)
	seedRoom(repo, 2, 1)

	moved, err := service.Create(ctx, &StudentCreateRequest{Name: "A", Fee: 5000, RoomID: 1})
	if err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}
	if _, err := service.Create(ctx, &StudentCreateRequest{Name: "B", Fee: 5000, RoomID: 2}); err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}

	target := uint(2)
	err = service.Update(ctx, moved.ID, &StudentUpdateRequest{RoomID: &target})
	if !errors.Is(err, ErrRoomFull) {
		t.Errorf("expected ErrRoomFull on move into full room, got %v", err)
	}

	// Moving within the same room is a no-op and never checks capacity.
	same := uint(1)
	if err := service.Update(ctx, moved.ID, &StudentUpdateRequest{RoomID: &same}); err != nil {
		t.Errorf("same-room update failed: %v", err)
	}
}

func TestStudentService_List_ComputesRemainingFee(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)

	student, err := service.Create(ctx, &StudentCreateRequest{Name: "Usman Ali", Fee: 5000, RoomID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	repo.Fee().Create(ctx, &models.FeeRecord{
		StudentID: student.ID,
		Amount:    3000,
		DatePaid:  date(time.Now().Year(), time.Now().Month(), 1),
		MonthYear: time.Now().Format("2006-01"),
	})

	resp, err := service.List(ctx, StudentListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resp.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(resp.Students))
	}
	if resp.Students[0].RemainingFee != 2000 {
		t.Errorf("expected remaining fee 2000, got %v", resp.Students[0].RemainingFee)
	}
}

func TestStudentService_List_Pagination(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 18)

	for i := 0; i < 15; i++ {
		repo.Student().Create(ctx, &models.Student{
			Name:   string(rune('A' + i)),
			Fee:    5000,
			RoomID: 1,
			Status: models.StudentActive,
		})
	}

	resp, err := service.List(ctx, StudentListRequest{Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resp.Students) != 5 {
		t.Errorf("expected 5 students on page 2, got %d", len(resp.Students))
	}
	if resp.Meta.Total != 15 || resp.Meta.TotalPages != 2 {
		t.Errorf("unexpected meta: %+v", resp.Meta)
	}
	if resp.Meta.HasNext || !resp.Meta.HasPrev {
		t.Errorf("unexpected nav flags: %+v", resp.Meta)
	}

	// Oversized per_page clamps to the cap, zero falls back to the default.
	resp, err = service.List(ctx, StudentListRequest{Page: 1, PerPage: 500})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Meta.PerPage != maxPerPage {
		t.Errorf("expected per_page clamped to %d, got %d", maxPerPage, resp.Meta.PerPage)
	}

	resp, err = service.List(ctx, StudentListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Meta.PerPage != defaultPerPage || resp.Meta.Page != 1 {
		t.Errorf("expected defaults, got %+v", resp.Meta)
	}
}

func TestStudentService_Delete_RemovesFeeRecords(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)

	student, err := service.Create(ctx, &StudentCreateRequest{Name: "Usman Ali", Fee: 5000, RoomID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	repo.Fee().Create(ctx, &models.FeeRecord{StudentID: student.ID, Amount: 5000, MonthYear: "2026-08"})

	if err := service.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if got, _ := repo.Student().GetByID(ctx, student.ID); got != nil {
		t.Error("expected student to be removed")
	}
	records, _ := repo.Fee().ListAll(ctx)
	if len(records) != 0 {
		t.Errorf("expected fee records removed, got %d", len(records))
	}
}

func buildUploadSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue("Sheet1", cell, value)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to build sheet: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestStudentService_BulkUpload(t *testing.T) {
	service, repo, _ := newStudentFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)
	seedRoom(repo, 2, 3)

	sheet := buildUploadSheet(t, [][]interface{}{
		{"name", "fee", "room_id"},
		{"Ali Khan", 5000, 1},
		{"Sara Ahmed", 5500, 2},
		{"", 4000, 1},
		{"Ali Khan", 5000, 1},
		{"Bad Fee", "abc", 1},
	})

	summary, message, err := service.BulkUpload(ctx, sheet)
	if err != nil {
		t.Fatalf("BulkUpload failed: %v", err)
	}
	if summary.TotalProcessed != 5 {
		t.Errorf("expected 5 processed, got %d", summary.TotalProcessed)
	}
	if summary.SuccessCount != 2 {
		t.Errorf("expected 2 added, got %d", summary.SuccessCount)
	}
	if summary.ErrorCount != 3 {
		t.Errorf("expected 3 errors, got %d: %v", summary.ErrorCount, summary.Errors)
	}
	if message != "Added 2 student(s) with 3 error(s)." {
		t.Errorf("unexpected message %q", message)
	}
	for _, rowErr := range summary.Errors {
		if !strings.HasPrefix(rowErr, "Row ") {
			t.Errorf("row errors carry their row number, got %q", rowErr)
		}
	}

	if stored, _ := repo.Student().GetByName(ctx, "Sara Ahmed"); stored == nil {
		t.Error("expected Sara Ahmed to be enrolled")
	}
}

func TestStudentService_BulkUpload_AllRowsFail(t *testing.T) {
	service, repo, _ := newStudentFixture()
	seedRoom(repo, 1, 3)

	sheet := buildUploadSheet(t, [][]interface{}{
		{"name", "fee", "room_id"},
		{"", 5000, 1},
	})

	summary, message, err := service.BulkUpload(context.Background(), sheet)
	if err != nil {
		t.Fatalf("BulkUpload failed: %v", err)
	}
	if summary.SuccessCount != 0 {
		t.Errorf("expected no students added, got %d", summary.SuccessCount)
	}
	if message != "No students were added. Please review the errors." {
		t.Errorf("unexpected message %q", message)
	}
}

func TestStudentService_BulkUpload_MissingColumns(t *testing.T) {
	service, _, _ := newStudentFixture()

	sheet := buildUploadSheet(t, [][]interface{}{
		{"name", "fee"},
		{"Ali Khan", 5000},
	})

	if _, _, err := service.BulkUpload(context.Background(), sheet); err == nil {
		t.Fatal("expected an error for missing room_id column")
	}
}

func TestStudentService_Template(t *testing.T) {
	service, _, _ := newStudentFixture()

	data, filename, err := service.Template(context.Background())
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if filename != "student_bulk_upload_template.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}
	if len(data) == 0 {
		t.Error("expected non-empty template")
	}
}
