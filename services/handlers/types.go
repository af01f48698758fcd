package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/nextmimo/nextmimo_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error)
	RequiredAuth() fiber.Handler
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetActivityFeed(userID string, limit, offset int) (*dto.ActivityFeedResponse, error)
	GetLeaderboard(userID string) (*dto.LeaderboardResponse, error)
}

type ContentServiceInterface interface {
	GetCourses() (*dto.CourseListResponse, error)
	CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetLessons(courseID string) (*dto.LessonListResponse, error)
	GetLesson(lessonID string) (*dto.LessonResponse, error)
	CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	CreateBadge(req dto.CreateBadgeRequest) (*dto.BadgeResponse, error)
}

type ProgressionServiceInterface interface {
	GetGameState(userID string) (*dto.GameStateResponse, error)
	GetLessonProgress(userID, lessonID string) (*dto.LessonProgressResponse, error)
	GetCourseProgress(userID, courseID string) (*dto.CourseProgressResponse, error)
	CompleteSection(userID, lessonID string, req dto.CompleteSectionRequest) (*dto.ProgressionResponse, error)
	SubmitQuiz(userID, lessonID string, req dto.SubmitQuizRequest) (*dto.ProgressionResponse, error)
	SubmitExercise(userID, lessonID string, req dto.SubmitExerciseRequest) (*dto.ProgressionResponse, error)
	SubmitProject(userID, lessonID string, req dto.SubmitProjectRequest) (*dto.ProgressionResponse, error)
}

type MediaServiceInterface interface {
	UploadBadgeIcon(badgeID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadLessonThumbnail(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetAsset(id string) (*dto.MediaAssetResponse, error)
	DeleteAsset(id string) error
}
