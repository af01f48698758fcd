package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/progression"
)

func testProgressionService(t *testing.T) *ProgressionService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Lesson{},
		&model.Badge{},
		&model.UserGameState{},
		&model.UserLessonProgress{},
		&model.UserActivity{},
		&model.UserBadge{},
	))

	return &ProgressionService{
		sqlSvc:   &SqlService{db: db},
		redisSvc: &RedisService{},
	}
}

func seedGameState(t *testing.T, svc *ProgressionService, userID string) {
	t.Helper()
	_, err := svc.sqlSvc.CreateUserGameState(&model.UserGameState{
		UserID:        userID,
		Level:         1,
		XP:            0,
		XPToNextLevel: 100,
		TotalLessons:  10,
		Badges:        json.RawMessage("[]"),
	})
	require.NoError(t, err)
}

func completedSnapshot(lessonID string) progression.Snapshot {
	return progression.Snapshot{
		Lesson: progression.LessonProgress{
			LessonID: lessonID,
			Sections: []progression.SectionState{
				{Kind: progression.SectionTheory, Completed: true},
			},
		},
		Game: progression.GameState{
			Level:            1,
			XP:               50,
			XPToNextLevel:    100,
			Streak:           1,
			CompletedLessons: 1,
			TotalLessons:     10,
		},
	}
}

func TestPersist_WritesEverythingTogether(t *testing.T) {
	svc := testProgressionService(t)
	seedGameState(t, svc, "user-1")

	now := time.Now()
	lesson := &model.Lesson{ID: "lesson-1"}
	outcome := progression.Outcome{
		LessonCompleted: true,
		XPAwarded:       50,
		NewBadges:       []string{"first_lesson"},
		Activities: []progression.ActivityEntry{
			{ID: "act-1", Type: progression.ActivityLessonCompleted, Title: "Lesson complete", Timestamp: now, XPEarned: 50},
		},
	}

	require.NoError(t, svc.persist("user-1", lesson, completedSnapshot("lesson-1"), outcome, now))

	state, err := svc.sqlSvc.GetUserGameState("user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, state.XP)
	assert.Equal(t, 1, state.CompletedLessons)

	row, err := svc.sqlSvc.GetUserLessonProgress("user-1", "lesson-1")
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)

	badges, err := svc.sqlSvc.GetUserBadges("user-1")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "first_lesson", badges[0].BadgeID)
}

func TestPersist_FailedWriteRollsBackGameState(t *testing.T) {
	svc := testProgressionService(t)
	seedGameState(t, svc, "user-1")

	now := time.Now()

	// An activity row with this id already exists, so the activity
	// insert inside the transaction must fail.
	require.NoError(t, svc.sqlSvc.CreateUserActivity(&model.UserActivity{
		ID:        "act-dup",
		UserID:    "user-1",
		Type:      string(progression.ActivityLessonCompleted),
		Title:     "Earlier entry",
		Timestamp: now.Add(-time.Hour),
	}))

	lesson := &model.Lesson{ID: "lesson-1"}
	outcome := progression.Outcome{
		LessonCompleted: true,
		XPAwarded:       50,
		Activities: []progression.ActivityEntry{
			{ID: "act-dup", Type: progression.ActivityLessonCompleted, Title: "Lesson complete", Timestamp: now, XPEarned: 50},
		},
	}

	err := svc.persist("user-1", lesson, completedSnapshot("lesson-1"), outcome, now)
	require.Error(t, err)

	// Nothing from the failed event may be visible: no XP, no lesson
	// row, no completion to replay against.
	state, err := svc.sqlSvc.GetUserGameState("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, state.XP)
	assert.Equal(t, 0, state.CompletedLessons)

	_, err = svc.sqlSvc.GetUserLessonProgress("user-1", "lesson-1")
	assert.Error(t, err)
}
