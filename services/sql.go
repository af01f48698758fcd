package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/nextmimo/nextmimo_api/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqlService opens postgres when DATABASE_URL is set and falls back to
// a local sqlite file otherwise, so dev machines need no database.
type SqlService struct {
	context.DefaultService
	db *gorm.DB

	postgresDSN string
	sqlitePath  string
}

const SQL_SVC = "sql_svc"

// Id returns Service ID
func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to raw db handle
func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.postgresDSN = os.Getenv("DATABASE_URL")
	ds.sqlitePath = os.Getenv("DB_DATABASE")
	if ds.sqlitePath == "" {
		ds.sqlitePath = "nextmimo.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqlService) Start() (err error) {
	if ds.postgresDSN != "" {
		err = ds.openPostgres()
	} else {
		ds.db, err = gorm.Open(sqlite.Open(ds.sqlitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
	}
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},

		// Content models
		&model.Course{},
		&model.Lesson{},
		&model.Badge{},

		// Progression models
		&model.UserGameState{},
		&model.UserLessonProgress{},
		&model.UserActivity{},
		&model.UserBadge{},

		// Media models
		&model.MediaAsset{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) openPostgres() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.postgresDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					log.Println("Successfully connected to database")
					return nil
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	return err
}

func (ds *SqlService) Shutdown() {
	if ds.db != nil {
		if sqlDB, err := ds.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *SqlService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *SqlService) UpdateUser(user *model.User) error {
	if err := ds.db.Save(user).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== CONTENT METHODS ====================

func (ds *SqlService) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		id, _ := uuid.NewV7()
		course.ID = id.String()
	}
	if err := ds.db.Create(course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return course, nil
}

func (ds *SqlService) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ?", id).First(&course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &course, nil
}

func (ds *SqlService) GetCourseBySlug(slug string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("slug = ?", slug).First(&course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &course, nil
}

func (ds *SqlService) GetActiveCourses() ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("is_active = ?", true).Order(`"order" ASC`).Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *SqlService) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lesson, nil
}

func (ds *SqlService) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &lesson, nil
}

func (ds *SqlService) GetLessonsByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := ds.db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order(`"order" ASC`).Find(&lessons).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return lessons, nil
}

func (ds *SqlService) UpdateLesson(lesson *model.Lesson) error {
	if err := ds.db.Save(lesson).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) CountActiveLessons() (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Lesson{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *SqlService) CountLessonsByCourse(courseID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Lesson{}).
		Where("course_id = ? AND is_active = ?", courseID, true).Count(&count).Error
	if err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== BADGE METHODS ====================

func (ds *SqlService) CreateBadge(badge *model.Badge) (*model.Badge, error) {
	if badge.ID == "" {
		id, _ := uuid.NewV7()
		badge.ID = id.String()
	}
	if err := ds.db.Create(badge).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badge, nil
}

func (ds *SqlService) GetActiveBadges() ([]model.Badge, error) {
	var badges []model.Badge
	if err := ds.db.Where("is_active = ?", true).Order(`"order" ASC`).Find(&badges).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badges, nil
}

func (ds *SqlService) GetBadge(id string) (*model.Badge, error) {
	var badge model.Badge
	if err := ds.db.Where("id = ?", id).First(&badge).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &badge, nil
}

func (ds *SqlService) UpdateBadge(badge *model.Badge) error {
	if err := ds.db.Save(badge).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) CreateUserBadge(userBadge *model.UserBadge) error {
	if userBadge.ID == "" {
		id, _ := uuid.NewV7()
		userBadge.ID = id.String()
	}
	if err := ds.db.Create(userBadge).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetUserBadges(userID string) ([]model.UserBadge, error) {
	var badges []model.UserBadge
	err := ds.db.Where("user_id = ?", userID).
		Preload("Badge").Order("earned_at ASC").Find(&badges).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return badges, nil
}

// ==================== PROGRESSION METHODS ====================

func (ds *SqlService) GetUserGameState(userID string) (*model.UserGameState, error) {
	var state model.UserGameState
	if err := ds.db.Where("user_id = ?", userID).First(&state).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &state, nil
}

func (ds *SqlService) CreateUserGameState(state *model.UserGameState) (*model.UserGameState, error) {
	if state.ID == "" {
		id, _ := uuid.NewV7()
		state.ID = id.String()
	}
	if err := ds.db.Create(state).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return state, nil
}

func (ds *SqlService) UpdateUserGameState(state *model.UserGameState) error {
	if err := ds.db.Save(state).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetUserLessonProgress(userID, lessonID string) (*model.UserLessonProgress, error) {
	var progress model.UserLessonProgress
	err := ds.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &progress, nil
}

func (ds *SqlService) CreateUserLessonProgress(progress *model.UserLessonProgress) (*model.UserLessonProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	if err := ds.db.Create(progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return progress, nil
}

func (ds *SqlService) UpdateUserLessonProgress(progress *model.UserLessonProgress) error {
	if err := ds.db.Save(progress).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetUserLessonProgressList(userID string, lessonIDs []string) ([]model.UserLessonProgress, error) {
	var list []model.UserLessonProgress
	err := ds.db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&list).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return list, nil
}

// ==================== ACTIVITY METHODS ====================

func (ds *SqlService) CreateUserActivity(activity *model.UserActivity) error {
	if activity.ID == "" {
		id, _ := uuid.NewV7()
		activity.ID = id.String()
	}
	if err := ds.db.Create(activity).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetUserActivities(userID string, limit, offset int) ([]model.UserActivity, int64, error) {
	var activities []model.UserActivity
	var total int64

	q := ds.db.Model(&model.UserActivity{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ds.HandleError(err)
	}

	err := q.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&activities).Error
	if err != nil {
		return nil, 0, ds.HandleError(err)
	}
	return activities, total, nil
}

// GetRecentUserActivities returns the feed oldest-first, the order the
// badge criteria expect.
func (ds *SqlService) GetRecentUserActivities(userID string, since time.Time) ([]model.UserActivity, error) {
	var activities []model.UserActivity
	err := ds.db.Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp ASC").Find(&activities).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return activities, nil
}

// ==================== LEADERBOARD METHODS ====================

func (ds *SqlService) GetLeaderboard(limit int) ([]model.UserGameState, error) {
	var states []model.UserGameState
	err := ds.db.Order("level DESC, xp DESC").Limit(limit).Find(&states).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return states, nil
}

func (ds *SqlService) GetUserRank(userID string) (int, error) {
	state, err := ds.GetUserGameState(userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	err = ds.db.Model(&model.UserGameState{}).
		Where("level > ? OR (level = ? AND xp > ?)", state.Level, state.Level, state.XP).
		Count(&ahead).Error
	if err != nil {
		return 0, ds.HandleError(err)
	}
	return int(ahead) + 1, nil
}

// ==================== MEDIA METHODS ====================

func (ds *SqlService) CreateMediaAsset(asset *model.MediaAsset) error {
	if asset.ID == "" {
		id, _ := uuid.NewV7()
		asset.ID = id.String()
	}
	if err := ds.db.Create(asset).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &asset, nil
}

func (ds *SqlService) DeleteMediaAsset(id string) error {
	if err := ds.db.Delete(&model.MediaAsset{}, "id = ?", id).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}
