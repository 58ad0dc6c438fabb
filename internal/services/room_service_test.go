package services

import (
	"context"
	"testing"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/models"
)

func newRoomFixture() (*roomService, *mockRepository) {
	repo := newMockRepository()
	service := NewRoomService(repo, cache.NewCacheManager(nil), testLogger()).(*roomService)
	return service, repo
}

func TestRoomService_List_ReportsOccupancy(t *testing.T) {
	service, repo := newRoomFixture()
	ctx := context.Background()
	seedRoom(repo, 1, 3)
	seedRoom(repo, 2, 4)

	repo.students = append(repo.students,
		&models.Student{ID: 1, Name: "Usman Ali", RoomID: 1, Status: models.StudentActive},
		&models.Student{ID: 2, Name: "Ahmed Khan", RoomID: 1, Status: models.StudentActive},
	)

	rooms, err := service.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].CurrentOccupancy != 2 {
		t.Errorf("expected occupancy 2 for room 1, got %d", rooms[0].CurrentOccupancy)
	}
	if len(rooms[0].Students) != 2 {
		t.Errorf("expected 2 residents listed, got %d", len(rooms[0].Students))
	}
	if rooms[1].CurrentOccupancy != 0 {
		t.Errorf("expected an empty room 2, got occupancy %d", rooms[1].CurrentOccupancy)
	}
}

func TestRoomService_Availability(t *testing.T) {
	service, repo := newRoomFixture()
	ctx := context.Background()

	// One full single-seat room, one partly filled room.
	seedRoom(repo, 1, 1)
	seedRoom(repo, 2, 3)
	repo.students = append(repo.students,
		&models.Student{ID: 1, Name: "Usman Ali", RoomID: 1, Status: models.StudentActive},
		&models.Student{ID: 2, Name: "Ahmed Khan", RoomID: 2, Status: models.StudentActive},
	)

	availability, err := service.Availability(ctx)
	if err != nil {
		t.Fatalf("Availability failed: %v", err)
	}
	if availability.RoomsTotal != 2 {
		t.Errorf("expected 2 rooms, got %d", availability.RoomsTotal)
	}
	if availability.RoomsAvailable != 1 {
		t.Errorf("expected 1 available room, got %d", availability.RoomsAvailable)
	}
	if availability.RoomsOccupied != 1 {
		t.Errorf("expected 1 full room, got %d", availability.RoomsOccupied)
	}
}
