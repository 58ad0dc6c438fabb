package repositories

import (
	"time"

	"github.com/hostelhub/hostel-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Search  string `json:"search"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type RegistrationFilters struct {
	Status  *models.RegistrationStatus `json:"status"`
	Page    int                        `json:"page"`
	PerPage int                        `json:"per_page"`
}

// ===== SHARED STATISTICS STRUCTS =====

// RoomTypeAvailability is the per-capacity-type breakdown returned by
// the availability aggregate ("3-seater", "4-seater").
type RoomTypeAvailability struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Occupied  int    `json:"occupied"`
}

type RoomAvailability struct {
	RoomsTotal     int                    `json:"rooms_total"`
	RoomsAvailable int                    `json:"rooms_available"`
	RoomsOccupied  int                    `json:"rooms_occupied"`
	ByType         []RoomTypeAvailability `json:"rooms_by_type"`
}

type ExpenseCategory struct {
	ItemName string  `json:"item_name"`
	Total    float64 `json:"total"`
}

type RegistrationCounts struct {
	Total     int64 `json:"total_registrations"`
	Pending   int64 `json:"pending_count"`
	Contacted int64 `json:"contacted_count"`
	Approved  int64 `json:"approved_count"`
	Rejected  int64 `json:"rejected_count"`
	Recent    int64 `json:"recent_count"`
}

// RecentWindow is the lookback used for RegistrationCounts.Recent.
const RecentWindow = 7 * 24 * time.Hour
