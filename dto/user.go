package dto

import "time"

// User Profile DTOs
type UpdateProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=30,alphanum"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type UserProfileResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
	BadgesEarned int       `json:"badges_earned"`
}

// Game state DTOs
type GameStateResponse struct {
	UserID           string          `json:"user_id"`
	Level            int             `json:"level"`
	XP               int             `json:"xp"`
	XPToNextLevel    int             `json:"xp_to_next_level"`
	Streak           int             `json:"streak"`
	LastActivityDate *time.Time      `json:"last_activity_date"`
	CompletedLessons int             `json:"completed_lessons"`
	TotalLessons     int             `json:"total_lessons"`
	CoursePercent    int             `json:"course_percent"`
	Badges           []BadgeResponse `json:"badges"`
}

type BadgeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	XPReward    int        `json:"xp_reward"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type ActivityResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	XPEarned  int       `json:"xp_earned"`
	Timestamp time.Time `json:"timestamp"`
}

type ActivityFeedResponse struct {
	UserID     string             `json:"user_id"`
	Activities []ActivityResponse `json:"activities"`
	Total      int64              `json:"total"`
}

// Leaderboard DTOs
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Streak   int    `json:"streak"`
}

type LeaderboardResponse struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UserRank  int                `json:"user_rank,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}
