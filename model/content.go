package model

import (
	"encoding/json"
	"time"
)

// Course is a top-level learning track (HTML, CSS, JavaScript...).
type Course struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Slug         string    `json:"slug" gorm:"unique;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Order        int       `json:"order" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Lesson represents individual learning content
type Lesson struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	CourseID      string          `json:"course_id" gorm:"not null"`
	Title         string          `json:"title" gorm:"not null"`
	Order         int             `json:"order" gorm:"not null"`     // Lesson order within course
	Sections      json.RawMessage `json:"sections" gorm:"type:text"` // JSON array of section kinds
	Theory        string          `json:"theory" gorm:"type:text"`
	ExampleCode   string          `json:"example_code" gorm:"type:text"`
	Questions     json.RawMessage `json:"questions" gorm:"type:text"` // JSON array of questions
	Exercise      json.RawMessage `json:"exercise" gorm:"type:text"`  // JSON exercise definition
	XPReward      int             `json:"xp_reward" gorm:"default:100"`
	PassThreshold float64         `json:"pass_threshold" gorm:"default:0.6"`
	ThumbnailURL  string          `json:"thumbnail_url"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationship
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// Question represents quiz questions within lessons
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // multiple_choice, fill_blank
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   int      `json:"answer"`
}

// ExerciseRule is one validation rule applied to a code submission.
type ExerciseRule struct {
	Type    string `json:"type"` // contains, regex
	Value   string `json:"value"`
	Message string `json:"message,omitempty"`
}

// Exercise is the coding task attached to a lesson's exercise section.
type Exercise struct {
	Instructions string         `json:"instructions"`
	StarterCode  string         `json:"starter_code"`
	Rules        []ExerciseRule `json:"rules"`
}

// Badge is a catalog entry for unlockable badges.
type Badge struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"icon_url"`
	Order       int       `json:"order" gorm:"not null"` // Evaluation order
	XPReward    int       `json:"xp_reward" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
