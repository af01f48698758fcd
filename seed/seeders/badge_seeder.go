package seeders

import (
	"log"
	"time"

	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/progression"
	"gorm.io/gorm"
)

// BadgeSeeder writes the built-in badge catalog into the badges table so
// operators can rename badges and tune XP rewards without a deploy.
type BadgeSeeder struct {
	db *gorm.DB
}

// NewBadgeSeeder creates a new badge seeder
func NewBadgeSeeder(db *gorm.DB) *BadgeSeeder {
	return &BadgeSeeder{db: db}
}

// SeedBadges seeds the badge catalog in evaluation order
func (s *BadgeSeeder) SeedBadges() error {
	now := time.Now()

	for i, badge := range progression.DefaultCatalog() {
		row := model.Badge{
			ID:          badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Icon:        badge.Icon,
			Order:       i + 1,
			XPReward:    badge.XPReward,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		var existing model.Badge
		if err := s.db.Where("id = ?", row.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&row).Error; err != nil {
					log.Printf("Error creating badge %s: %v", row.Name, err)
					return err
				}
				log.Printf("Created badge: %s", row.Name)
			} else {
				log.Printf("Error checking badge %s: %v", row.Name, err)
				return err
			}
		} else {
			log.Printf("Badge %s already exists, skipping", row.Name)
		}
	}

	log.Println("Badge seeding completed successfully")
	return nil
}
