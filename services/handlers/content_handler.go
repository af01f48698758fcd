package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List courses
// @Description Get all active courses in display order
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CourseListResponse}
// @Router /api/v1/courses [get]
func (h *ContentHandler) GetCourses(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetCourses()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary List course lessons
// @Description Get the lessons of a course in order
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.LessonListResponse}
// @Router /api/v1/courses/{courseId}/lessons [get]
func (h *ContentHandler) GetLessons(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	resp, err := h.contentSvc.GetLessons(courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Get lesson content
// @Description Get one lesson with theory, example, questions and exercise
// @Tags content
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	resp, err := h.contentSvc.GetLesson(lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Create course
// @Description Create a new course
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseRequest body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/admin/courses [post]
func (h *ContentHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateCourse(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Course created", resp)
}

// @Summary Create lesson
// @Description Create a new lesson within a course
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonRequest body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateLesson(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Lesson created", resp)
}

// @Summary Create badge
// @Description Define a badge row for a built-in award criterion
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param badgeRequest body dto.CreateBadgeRequest true "Badge details"
// @Success 201 {object} shared.Response{data=dto.BadgeResponse}
// @Router /api/v1/admin/badges [post]
func (h *ContentHandler) CreateBadge(c *fiber.Ctx) error {
	var req dto.CreateBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateBadge(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Badge created", resp)
}
