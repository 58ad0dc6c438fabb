package pkg

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hostelhub/hostel-service/internal/config"
	"github.com/hostelhub/hostel-service/internal/models"
)

// SeedInitialData creates the fixed room layout, the initial staff and
// an optional bootstrap admin. Safe to run on every startup.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	// Rooms 1-14 hold 3 students, 15-18 hold 4.
	for number := 1; number <= 18; number++ {
		capacity := 3
		if number >= 15 {
			capacity = 4
		}
		room := models.Room{RoomNumber: number, Capacity: capacity}
		if err := db.Where(models.Room{RoomNumber: number}).FirstOrCreate(&room).Error; err != nil {
			return fmt.Errorf("failed to seed room %d: %w", number, err)
		}
	}

	initialStaff := []models.Employee{
		{Name: "M Bilal", Position: "Manager", BaseSalary: 50000},
		{Name: "Ishfaq Hussain", Position: "Cook", BaseSalary: 30000},
		{Name: "Abdul Waheed", Position: "Cook", BaseSalary: 20000},
	}
	for _, staff := range initialStaff {
		staff.Status = models.EmployeeActive
		staff.HireDate = time.Now()
		if err := db.Where(models.Employee{Name: staff.Name}).FirstOrCreate(&staff).Error; err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", staff.Name, err)
		}
	}

	if cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := models.Admin{
			Username:     cfg.AdminUsername,
			Name:         cfg.AdminName,
			Email:        cfg.AdminEmail,
			PasswordHash: string(hash),
		}
		if err := db.Where(models.Admin{Username: cfg.AdminUsername}).FirstOrCreate(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
	}

	return nil
}
