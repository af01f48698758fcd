package seeders

import (
	"log"
	"time"

	"github.com/nextmimo/nextmimo_api/model"
	"gorm.io/gorm"
)

// CourseSeeder handles seeding the learning tracks
type CourseSeeder struct {
	db *gorm.DB
}

// NewCourseSeeder creates a new course seeder
func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

// SeedCourses seeds the database with the core web development tracks
func (s *CourseSeeder) SeedCourses() error {
	for _, course := range s.getCourses() {
		var existing model.Course
		if err := s.db.Where("id = ?", course.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&course).Error; err != nil {
					log.Printf("Error creating course %s: %v", course.Title, err)
					return err
				}
				log.Printf("Created course: %s", course.Title)
			} else {
				log.Printf("Error checking course %s: %v", course.Title, err)
				return err
			}
		} else {
			log.Printf("Course %s already exists, skipping", course.Title)
		}
	}

	log.Println("Course seeding completed successfully")
	return nil
}

func (s *CourseSeeder) getCourses() []model.Course {
	now := time.Now()

	return []model.Course{
		{
			ID:          "course_html",
			Slug:        "html-basics",
			Title:       "HTML Basics",
			Description: "Structure pages with elements, attributes, forms and semantic markup.",
			Order:       1,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "course_css",
			Slug:        "css-fundamentals",
			Title:       "CSS Fundamentals",
			Description: "Style pages with selectors, the box model, flexbox and responsive layouts.",
			Order:       2,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "course_js",
			Slug:        "javascript-essentials",
			Title:       "JavaScript Essentials",
			Description: "Make pages interactive with variables, functions, events and the DOM.",
			Order:       3,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
