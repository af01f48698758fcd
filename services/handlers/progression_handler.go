package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/shared"
)

type ProgressionHandler struct {
	progSvc ProgressionServiceInterface
}

func NewProgressionHandler(progSvc ProgressionServiceInterface) *ProgressionHandler {
	return &ProgressionHandler{
		progSvc: progSvc,
	}
}

// @Summary Get game state
// @Description Get the authenticated user's level, XP, streak and badges
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.GameStateResponse}
// @Router /api/v1/progression/state [get]
func (h *ProgressionHandler) GetGameState(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	state, err := h.progSvc.GetGameState(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", state)
}

// @Summary Get lesson progress
// @Description Get the per-section progress for one lesson
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonProgressResponse}
// @Router /api/v1/lessons/{lessonId}/progress [get]
func (h *ProgressionHandler) GetLessonProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	progress, err := h.progSvc.GetLessonProgress(userID, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Get course progress
// @Description Get the user's completion summary for every lesson in a course
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseProgressResponse}
// @Router /api/v1/courses/{courseId}/progress [get]
func (h *ProgressionHandler) GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	progress, err := h.progSvc.GetCourseProgress(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Complete a lesson section
// @Description Mark a theory or example section done
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param sectionRequest body dto.CompleteSectionRequest true "Section kind"
// @Success 200 {object} shared.Response{data=dto.ProgressionResponse}
// @Router /api/v1/lessons/{lessonId}/sections/complete [post]
func (h *ProgressionHandler) CompleteSection(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	var req dto.CompleteSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progSvc.CompleteSection(userID, lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Section completed", resp)
}

// @Summary Submit quiz answers
// @Description Score a quiz submission; a pass completes the quiz section
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param quizRequest body dto.SubmitQuizRequest true "Answer indexes, -1 for skipped"
// @Success 200 {object} shared.Response{data=dto.ProgressionResponse}
// @Router /api/v1/lessons/{lessonId}/quiz [post]
func (h *ProgressionHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progSvc.SubmitQuiz(userID, lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Quiz processed", resp)
}

// @Summary Submit exercise code
// @Description Validate code against the lesson's rules; a pass completes the exercise section
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param exerciseRequest body dto.SubmitExerciseRequest true "Submitted code"
// @Success 200 {object} shared.Response{data=dto.ProgressionResponse}
// @Router /api/v1/lessons/{lessonId}/exercise [post]
func (h *ProgressionHandler) SubmitExercise(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	var req dto.SubmitExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progSvc.SubmitExercise(userID, lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Exercise processed", resp)
}

// @Summary Submit project
// @Description Mark the project section done for a project lesson
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param projectRequest body dto.SubmitProjectRequest true "Project details"
// @Success 200 {object} shared.Response{data=dto.ProgressionResponse}
// @Router /api/v1/lessons/{lessonId}/project [post]
func (h *ProgressionHandler) SubmitProject(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	var req dto.SubmitProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progSvc.SubmitProject(userID, lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Project processed", resp)
}
