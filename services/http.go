package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nextmimo/nextmimo_api/services/handlers"
	"github.com/nextmimo/nextmimo_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc    *AuthService
	userSvc    *UserService
	contentSvc *ContentService
	progSvc    *ProgressionService
	mediaSvc   *MediaService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.progSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware())

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	progHandler := handlers.NewProgressionHandler(svc.progSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Auth
	v1.Post("/register", authHandler.Register)
	v1.Post("/login", authHandler.Login)
	v1.Post("/refresh", authHandler.RefreshToken)

	// Public content
	v1.Get("/courses", contentHandler.GetCourses)
	v1.Get("/courses/:courseId/lessons", contentHandler.GetLessons)
	v1.Get("/lessons/:lessonId", contentHandler.GetLesson)
	v1.Get("/media/:assetId", mediaHandler.GetAsset)

	// Authenticated
	auth := v1.Group("", svc.authSvc.RequiredAuth())
	auth.Get("/user/profile", userHandler.GetProfile)
	auth.Put("/user/profile", userHandler.UpdateProfile)
	auth.Get("/user/activity", userHandler.GetActivityFeed)
	auth.Get("/leaderboard", userHandler.GetLeaderboard)

	auth.Get("/progression/state", progHandler.GetGameState)
	auth.Get("/courses/:courseId/progress", progHandler.GetCourseProgress)
	auth.Get("/lessons/:lessonId/progress", progHandler.GetLessonProgress)
	auth.Post("/lessons/:lessonId/sections/complete", progHandler.CompleteSection)
	auth.Post("/lessons/:lessonId/quiz", progHandler.SubmitQuiz)
	auth.Post("/lessons/:lessonId/exercise", progHandler.SubmitExercise)
	auth.Post("/lessons/:lessonId/project", progHandler.SubmitProject)

	// Admin
	admin := v1.Group("/admin", svc.authSvc.RequiredAuth())
	admin.Post("/courses", contentHandler.CreateCourse)
	admin.Post("/lessons", contentHandler.CreateLesson)
	admin.Post("/badges", contentHandler.CreateBadge)
	admin.Post("/badges/:badgeId/icon", mediaHandler.UploadBadgeIcon)
	admin.Post("/lessons/:lessonId/thumbnail", mediaHandler.UploadLessonThumbnail)
	admin.Delete("/media/:assetId", mediaHandler.DeleteAsset)

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
