package services

import (
	"encoding/json"

	"github.com/alphabatem/common/context"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/shared"
	log "github.com/sirupsen/logrus"
)

// ContentService serves course and lesson content and owns the
// JSON encoding of lesson sections, questions and exercises.
type ContentService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

// ==================== COURSE METHODS ====================

func (svc *ContentService) GetCourses() (*dto.CourseListResponse, error) {
	courses, err := svc.sqlSvc.GetActiveCourses()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load courses")
	}

	resp := &dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(courses))}
	for _, course := range courses {
		count, err := svc.sqlSvc.CountLessonsByCourse(course.ID)
		if err != nil {
			log.WithError(err).WithField("course_id", course.ID).Warn("Failed to count lessons")
		}

		resp.Courses = append(resp.Courses, dto.CourseResponse{
			ID:           course.ID,
			Slug:         course.Slug,
			Title:        course.Title,
			Description:  course.Description,
			Order:        course.Order,
			ThumbnailURL: course.ThumbnailURL,
			LessonCount:  int(count),
		})
	}
	return resp, nil
}

func (svc *ContentService) CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if _, err := svc.sqlSvc.GetCourseBySlug(req.Slug); err == nil {
		return nil, shared.NewConflictError(nil, "Course slug already in use")
	}

	course, err := svc.sqlSvc.CreateCourse(&model.Course{
		Slug:         req.Slug,
		Title:        req.Title,
		Description:  req.Description,
		Order:        req.Order,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     true,
	})
	if err != nil {
		return nil, shared.NewConflictError(err, "Failed to create course")
	}

	return &dto.CourseResponse{
		ID:           course.ID,
		Slug:         course.Slug,
		Title:        course.Title,
		Description:  course.Description,
		Order:        course.Order,
		ThumbnailURL: course.ThumbnailURL,
	}, nil
}

// ==================== BADGE METHODS ====================

// CreateBadge persists a badge row. Ordering, naming and XP come from
// the row; the award criterion is looked up by id from the built-in
// catalog when the progression service starts.
func (svc *ContentService) CreateBadge(req dto.CreateBadgeRequest) (*dto.BadgeResponse, error) {
	if _, err := svc.sqlSvc.GetBadge(req.ID); err == nil {
		return nil, shared.NewConflictError(nil, "Badge already exists")
	}

	badge, err := svc.sqlSvc.CreateBadge(&model.Badge{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Order:       req.Order,
		XPReward:    req.XPReward,
		IsActive:    true,
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create badge")
	}

	return &dto.BadgeResponse{
		ID:          badge.ID,
		Name:        badge.Name,
		Description: badge.Description,
		Icon:        badge.Icon,
		XPReward:    badge.XPReward,
	}, nil
}

// ==================== LESSON METHODS ====================

func (svc *ContentService) GetLessons(courseID string) (*dto.LessonListResponse, error) {
	lessons, err := svc.sqlSvc.GetLessonsByCourse(courseID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load lessons")
	}

	resp := &dto.LessonListResponse{CourseID: courseID, Lessons: make([]dto.LessonResponse, 0, len(lessons))}
	for i := range lessons {
		// List view skips the heavy fields.
		item := svc.toLessonResponse(&lessons[i], false)
		resp.Lessons = append(resp.Lessons, *item)
	}
	return resp, nil
}

func (svc *ContentService) GetLesson(lessonID string) (*dto.LessonResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}

	return svc.toLessonResponse(lesson, true), nil
}

func (svc *ContentService) GetLessonModel(lessonID string) (*model.Lesson, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}
	return lesson, nil
}

func (svc *ContentService) CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := svc.sqlSvc.GetCourse(req.CourseID); err != nil {
		return nil, shared.NewNotFoundError(err, "Course not found")
	}

	sections, err := json.Marshal(req.Sections)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid sections")
	}

	var questions json.RawMessage
	if len(req.Questions) > 0 {
		qs := make([]model.Question, 0, len(req.Questions))
		for _, q := range req.Questions {
			qs = append(qs, model.Question{
				Type:     q.Type,
				Question: q.Question,
				Options:  q.Options,
				Answer:   q.Answer,
			})
		}
		if questions, err = json.Marshal(qs); err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid questions")
		}
	}

	var exercise json.RawMessage
	if req.Exercise != nil {
		rules := make([]model.ExerciseRule, 0, len(req.Exercise.Rules))
		for _, r := range req.Exercise.Rules {
			rules = append(rules, model.ExerciseRule{Type: r.Type, Value: r.Value, Message: r.Message})
		}
		ex := model.Exercise{
			Instructions: req.Exercise.Instructions,
			StarterCode:  req.Exercise.StarterCode,
			Rules:        rules,
		}
		if exercise, err = json.Marshal(ex); err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid exercise")
		}
	}

	xpReward := req.XPReward
	if xpReward == 0 {
		xpReward = 100
	}
	passThreshold := req.PassThreshold
	if passThreshold == 0 {
		passThreshold = 0.6
	}

	lesson, err := svc.sqlSvc.CreateLesson(&model.Lesson{
		CourseID:      req.CourseID,
		Title:         req.Title,
		Order:         req.Order,
		Sections:      sections,
		Theory:        req.Theory,
		ExampleCode:   req.ExampleCode,
		Questions:     questions,
		Exercise:      exercise,
		XPReward:      xpReward,
		PassThreshold: passThreshold,
		IsActive:      true,
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create lesson")
	}

	return svc.toLessonResponse(lesson, true), nil
}

func (svc *ContentService) TotalLessons() (int, error) {
	count, err := svc.sqlSvc.CountActiveLessons()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ==================== DECODE HELPERS ====================

func (svc *ContentService) LessonSections(lesson *model.Lesson) ([]string, error) {
	var sections []string
	if len(lesson.Sections) == 0 {
		return nil, shared.NewInternalError(nil, "Lesson has no sections")
	}
	if err := json.Unmarshal(lesson.Sections, &sections); err != nil {
		return nil, shared.NewInternalError(err, "Corrupt lesson sections")
	}
	return sections, nil
}

func (svc *ContentService) LessonQuestions(lesson *model.Lesson) ([]model.Question, error) {
	if len(lesson.Questions) == 0 {
		return nil, nil
	}
	var questions []model.Question
	if err := json.Unmarshal(lesson.Questions, &questions); err != nil {
		return nil, shared.NewInternalError(err, "Corrupt lesson questions")
	}
	return questions, nil
}

func (svc *ContentService) LessonExercise(lesson *model.Lesson) (*model.Exercise, error) {
	if len(lesson.Exercise) == 0 {
		return nil, nil
	}
	var exercise model.Exercise
	if err := json.Unmarshal(lesson.Exercise, &exercise); err != nil {
		return nil, shared.NewInternalError(err, "Corrupt lesson exercise")
	}
	return &exercise, nil
}

func (svc *ContentService) toLessonResponse(lesson *model.Lesson, full bool) *dto.LessonResponse {
	resp := &dto.LessonResponse{
		ID:           lesson.ID,
		CourseID:     lesson.CourseID,
		Title:        lesson.Title,
		Order:        lesson.Order,
		XPReward:     lesson.XPReward,
		ThumbnailURL: lesson.ThumbnailURL,
	}

	if sections, err := svc.LessonSections(lesson); err == nil {
		resp.Sections = sections
	}

	if !full {
		return resp
	}

	resp.Theory = lesson.Theory
	resp.ExampleCode = lesson.ExampleCode

	if questions, err := svc.LessonQuestions(lesson); err == nil {
		for _, q := range questions {
			resp.Questions = append(resp.Questions, dto.QuestionResponse{
				ID:       q.ID,
				Type:     q.Type,
				Question: q.Question,
				Options:  q.Options,
			})
		}
	}

	if exercise, err := svc.LessonExercise(lesson); err == nil && exercise != nil {
		resp.Exercise = &dto.ExerciseResponse{
			Instructions: exercise.Instructions,
			StarterCode:  exercise.StarterCode,
		}
	}

	return resp
}
