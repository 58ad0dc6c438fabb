package models

import (
	"time"

	"gorm.io/datatypes"
)

type Expense struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	ItemName string         `json:"item_name" gorm:"not null;size:100"`
	Price    float64        `json:"price" gorm:"not null"`
	Date     datatypes.Date `json:"date" gorm:"not null;index"`
	UserID   uint           `json:"user_id" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	User *Admin `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Expense) TableName() string {
	return "expenses"
}
