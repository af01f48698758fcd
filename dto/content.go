package dto

// Content DTOs

type CourseResponse struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Order        int    `json:"order"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	LessonCount  int    `json:"lesson_count"`
}

type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

type SectionResponse struct {
	Kind      string `json:"kind"`
	Completed bool   `json:"completed"`
}

type LessonResponse struct {
	ID           string             `json:"id"`
	CourseID     string             `json:"course_id"`
	Title        string             `json:"title"`
	Order        int                `json:"order"`
	Sections     []string           `json:"sections"`
	Theory       string             `json:"theory,omitempty"`
	ExampleCode  string             `json:"example_code,omitempty"`
	Questions    []QuestionResponse `json:"questions,omitempty"`
	Exercise     *ExerciseResponse  `json:"exercise,omitempty"`
	XPReward     int                `json:"xp_reward"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty"`
}

type LessonListResponse struct {
	CourseID string           `json:"course_id"`
	Lessons  []LessonResponse `json:"lessons"`
}

// QuestionResponse deliberately omits the correct answer index.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

type ExerciseResponse struct {
	Instructions string `json:"instructions"`
	StarterCode  string `json:"starter_code"`
}

// Admin content management DTOs

type CreateCourseRequest struct {
	Slug         string `json:"slug" validate:"required,min=2,max=60"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Order        int    `json:"order" validate:"gte=0"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
}

func (c CreateCourseRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreateLessonRequest struct {
	CourseID    string                  `json:"course_id" validate:"required"`
	Title       string                  `json:"title" validate:"required"`
	Order       int                     `json:"order" validate:"gte=0"`
	Sections    []string                `json:"sections" validate:"required,min=1,dive,oneof=theory example exercise quiz project"`
	Theory      string                  `json:"theory"`
	ExampleCode string                  `json:"example_code"`
	Questions   []CreateQuestionRequest `json:"questions"`
	Exercise    *CreateExerciseRequest  `json:"exercise"`
	XPReward    int                     `json:"xp_reward" validate:"gte=0"`
	// PassThreshold is the quiz/exercise pass fraction; zero means the
	// 0.6 default.
	PassThreshold float64 `json:"pass_threshold" validate:"gte=0,lte=1"`
}

func (c CreateLessonRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CreateQuestionRequest struct {
	Type     string   `json:"type" validate:"required,oneof=multiple_choice fill_blank"`
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer" validate:"gte=0"`
}

type CreateExerciseRequest struct {
	Instructions string                      `json:"instructions" validate:"required"`
	StarterCode  string                      `json:"starter_code"`
	Rules        []CreateExerciseRuleRequest `json:"rules" validate:"required,min=1,dive"`
}

type CreateExerciseRuleRequest struct {
	Type    string `json:"type" validate:"required,oneof=contains regex"`
	Value   string `json:"value" validate:"required"`
	Message string `json:"message"`
}

// CreateBadgeRequest defines a badge row. The id must match a built-in
// criterion or the badge is never awarded.
type CreateBadgeRequest struct {
	ID          string `json:"id" validate:"required,min=2,max=60"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order" validate:"gte=0"`
	XPReward    int    `json:"xp_reward" validate:"gte=0"`
}

func (c CreateBadgeRequest) Validate() error {
	return GetValidator().Struct(c)
}
