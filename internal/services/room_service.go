package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hostelhub/hostel-service/internal/cache"
	"github.com/hostelhub/hostel-service/internal/repositories"
)

type roomService struct {
	repo   repositories.Repository
	caches *cache.CacheManager
	logger *slog.Logger
}

func NewRoomService(repo repositories.Repository, caches *cache.CacheManager, logger *slog.Logger) RoomService {
	return &roomService{
		repo:   repo,
		caches: caches,
		logger: logger,
	}
}

func (s *roomService) List(ctx context.Context) ([]*RoomResponse, error) {
	rooms, err := s.repo.Room().ListWithStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	responses := make([]*RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp := &RoomResponse{
			ID:               room.ID,
			RoomNumber:       room.RoomNumber,
			Capacity:         room.Capacity,
			CurrentOccupancy: len(room.Students),
			Students:         make([]RoomStudent, 0, len(room.Students)),
		}
		for _, student := range room.Students {
			resp.Students = append(resp.Students, RoomStudent{
				ID:      student.ID,
				Name:    student.Name,
				Picture: student.Picture,
			})
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// Availability serves the occupancy summary from cache when possible;
// mutations that change occupancy invalidate it.
func (s *roomService) Availability(ctx context.Context) (*repositories.RoomAvailability, error) {
	var availability repositories.RoomAvailability
	err := s.caches.Availability.CacheOrExecute(ctx, "rooms", &availability, cache.AvailabilityCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Room().Availability(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute room availability: %w", err)
	}
	return &availability, nil
}
