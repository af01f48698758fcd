package dto

import "time"

// ==================== PROGRESSION EVENT DTOs ====================

// CompleteSectionRequest marks a passive section (theory or example) done.
type CompleteSectionRequest struct {
	Section string `json:"section" validate:"required,oneof=theory example exercise quiz project"`
}

func (c CompleteSectionRequest) Validate() error {
	return GetValidator().Struct(c)
}

type SubmitQuizRequest struct {
	// Answers are option indexes aligned with the lesson's questions.
	// Use -1 for a skipped question.
	Answers []int `json:"answers" validate:"required,min=1"`
}

func (s SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitExerciseRequest struct {
	Code string `json:"code" validate:"required"`
}

func (s SubmitExerciseRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitProjectRequest struct {
	ProjectURL string `json:"project_url" validate:"omitempty,url"`
	Notes      string `json:"notes"`
}

func (s SubmitProjectRequest) Validate() error {
	return GetValidator().Struct(s)
}

// ==================== PROGRESSION RESPONSE DTOs ====================

type QuizResultResponse struct {
	Score       float64 `json:"score"`
	Passed      bool    `json:"passed"`
	PerQuestion []bool  `json:"per_question"`
}

type StreakResponse struct {
	Streak       int  `json:"streak"`
	MilestoneHit bool `json:"milestone_hit"`
}

type LessonProgressResponse struct {
	LessonID      string            `json:"lesson_id"`
	Sections      []SectionResponse `json:"sections"`
	ActiveSection string            `json:"active_section"`
	Percent       int               `json:"percent"`
	IsCompleted   bool              `json:"is_completed"`
}

// CourseProgressResponse summarizes a learner's position in one course.
type CourseProgressResponse struct {
	CourseID         string                  `json:"course_id"`
	Lessons          []LessonProgressSummary `json:"lessons"`
	CompletedLessons int                     `json:"completed_lessons"`
	TotalLessons     int                     `json:"total_lessons"`
}

type LessonProgressSummary struct {
	LessonID    string  `json:"lesson_id"`
	Title       string  `json:"title"`
	Order       int     `json:"order"`
	Percent     int     `json:"percent"`
	IsCompleted bool    `json:"is_completed"`
	BestScore   float64 `json:"best_score,omitempty"`
}

// ProgressionResponse is returned from every progression event endpoint.
type ProgressionResponse struct {
	Lesson          LessonProgressResponse `json:"lesson"`
	Game            GameStateResponse      `json:"game"`
	LessonCompleted bool                   `json:"lesson_completed"`
	XPAwarded       int                    `json:"xp_awarded"`
	NewBadges       []BadgeResponse        `json:"new_badges"`
	Activities      []ActivityResponse     `json:"activities"`
	Quiz            *QuizResultResponse    `json:"quiz,omitempty"`
	Streak          *StreakResponse        `json:"streak,omitempty"`
	ProcessedAt     time.Time              `json:"processed_at"`
}
