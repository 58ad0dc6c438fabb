package models

// MealTiming holds the serving window for one named meal (breakfast,
// lunch, dinner). One row per meal name.
type MealTiming struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	MealName  string  `json:"meal_name" gorm:"uniqueIndex;not null;size:50"`
	StartTime *string `json:"start_time" gorm:"size:20"`
	EndTime   *string `json:"end_time" gorm:"size:20"`
	Notes     *string `json:"notes" gorm:"type:text"`
}

func (MealTiming) TableName() string {
	return "meal_timings"
}

// MealMenu is the menu text for one meal on one weekday.
// DayOfWeek is 0 (Monday) through 6 (Sunday).
type MealMenu struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	DayOfWeek int     `json:"day_of_week" gorm:"not null;uniqueIndex:idx_menu_day_meal"`
	MealName  string  `json:"meal_name" gorm:"not null;size:50;uniqueIndex:idx_menu_day_meal"`
	MenuItems *string `json:"menu_items" gorm:"type:text"`
}

func (MealMenu) TableName() string {
	return "meal_menus"
}
