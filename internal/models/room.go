package models

// Room capacities are fixed at bootstrap: rooms 1-14 hold 3 students,
// rooms 15-18 hold 4. Occupancy checks always go through the stored
// capacity column, never the room-number range.
type Room struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	RoomNumber int  `json:"room_number" gorm:"uniqueIndex;not null"`
	Capacity   int  `json:"capacity" gorm:"not null;default:4"`

	Students []Student `json:"students,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string {
	return "rooms"
}
