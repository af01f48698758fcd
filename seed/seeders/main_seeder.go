package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Courses first (no dependencies)
	courseSeeder := NewCourseSeeder(s.db)
	if err := courseSeeder.SeedCourses(); err != nil {
		log.Printf("Course seeding failed: %v", err)
		return err
	}

	// 2. Lessons (depend on courses)
	lessonSeeder := NewLessonSeeder(s.db)
	if err := lessonSeeder.SeedLessons(); err != nil {
		log.Printf("Lesson seeding failed: %v", err)
		return err
	}

	// 3. Badge catalog
	badgeSeeder := NewBadgeSeeder(s.db)
	if err := badgeSeeder.SeedBadges(); err != nil {
		log.Printf("Badge seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedCoursesOnly seeds only courses
func (s *MainSeeder) SeedCoursesOnly() error {
	return NewCourseSeeder(s.db).SeedCourses()
}

// SeedLessonsOnly seeds only lessons
func (s *MainSeeder) SeedLessonsOnly() error {
	return NewLessonSeeder(s.db).SeedLessons()
}

// SeedBadgesOnly seeds only badges
func (s *MainSeeder) SeedBadgesOnly() error {
	return NewBadgeSeeder(s.db).SeedBadges()
}
