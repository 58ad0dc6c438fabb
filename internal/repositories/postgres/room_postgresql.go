package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/models"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) repositories.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Students").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room %d: %w", id, err)
	}
	return &room, nil
}

func (r *roomRepository) ListWithStudents(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	if err := r.db.WithContext(ctx).
		Preload("Students").
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) Occupancy(ctx context.Context, roomID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("room_id = ?", roomID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count occupancy for room %d: %w", roomID, err)
	}
	return int(count), nil
}

func (r *roomRepository) Availability(ctx context.Context) (*repositories.RoomAvailability, error) {
	rooms, err := r.ListWithStudents(ctx)
	if err != nil {
		return nil, err
	}

	availability := &repositories.RoomAvailability{}
	byType := make(map[int]*repositories.RoomTypeAvailability)

	for _, room := range rooms {
		occupied := len(room.Students)
		if occupied > room.Capacity {
			occupied = room.Capacity
		}

		entry, ok := byType[room.Capacity]
		if !ok {
			entry = &repositories.RoomTypeAvailability{
				Type: fmt.Sprintf("%d-seater", room.Capacity),
			}
			byType[room.Capacity] = entry
		}

		entry.Total++
		availability.RoomsTotal++
		if occupied < room.Capacity {
			entry.Available++
			availability.RoomsAvailable++
		} else {
			entry.Occupied++
			availability.RoomsOccupied++
		}
	}

	// deterministic order: smaller rooms first
	for _, capacity := range sortedKeys(byType) {
		availability.ByType = append(availability.ByType, *byType[capacity])
	}

	return availability, nil
}

func sortedKeys(m map[int]*repositories.RoomTypeAvailability) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
