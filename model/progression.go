package model

import (
	"encoding/json"
	"time"
)

// UserGameState is the persisted gamification state for one user.
type UserGameState struct {
	ID               string          `json:"id" gorm:"primaryKey"`
	UserID           string          `json:"user_id" gorm:"unique;not null"`
	Level            int             `json:"level" gorm:"default:1"`
	XP               int             `json:"xp" gorm:"default:0"`
	XPToNextLevel    int             `json:"xp_to_next_level" gorm:"default:100"`
	Streak           int             `json:"streak" gorm:"default:0"`
	LastActivityDate *time.Time      `json:"last_activity_date"`
	CompletedLessons int             `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int             `json:"total_lessons" gorm:"default:0"`
	Badges           json.RawMessage `json:"badges" gorm:"type:text"` // JSON array of badge states
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// UserLessonProgress tracks per-section completion within a lesson.
type UserLessonProgress struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	UserID        string          `json:"user_id" gorm:"not null;index:idx_user_lesson,unique"`
	LessonID      string          `json:"lesson_id" gorm:"not null;index:idx_user_lesson,unique"`
	Sections      json.RawMessage `json:"sections" gorm:"type:text"` // JSON array of section states
	ActiveSection string          `json:"active_section"`
	IsCompleted   bool            `json:"is_completed" gorm:"default:false"`
	BestScore     float64         `json:"best_score" gorm:"default:0"`
	CompletedAt   *time.Time      `json:"completed_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationship
	Lesson Lesson `json:"lesson" gorm:"foreignKey:LessonID"`
}

// UserActivity is one entry in a user's activity feed.
type UserActivity struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type"` // lesson_completed, badge_earned, streak_milestone, project_completed
	Title     string    `json:"title" gorm:"not null"`
	XPEarned  int       `json:"xp_earned" gorm:"default:0"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// UserBadge tracks which badges users have earned
type UserBadge struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"not null;index:idx_user_badge,unique"`
	BadgeID  string    `json:"badge_id" gorm:"not null;index:idx_user_badge,unique"`
	EarnedAt time.Time `json:"earned_at"`

	// Relationship
	Badge Badge `json:"badge" gorm:"foreignKey:BadgeID"`
}
