package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(sections []SectionKind) Snapshot {
	catalog := DefaultCatalog()
	return Snapshot{
		Lesson: NewLessonProgress("css-flexbox", sections),
		Game:   NewGameState(catalog, 120),
	}
}

func TestApply_SectionCompleted_PartialLesson(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionQuiz})

	next, outcome, err := o.Apply(snap, SectionCompleted{Section: SectionTheory}, testNow)
	require.NoError(t, err)

	assert.False(t, outcome.LessonCompleted)
	assert.Zero(t, outcome.XPAwarded)
	assert.Empty(t, outcome.Activities)
	assert.Equal(t, 50, next.Lesson.Percent())
	assert.Equal(t, 0, next.Game.CompletedLessons)
	assert.Nil(t, outcome.Streak)
}

func TestApply_InvalidSectionLeavesSnapshotUntouched(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionQuiz})

	next, _, err := o.Apply(snap, SectionCompleted{Section: SectionProject}, testNow)

	assert.ErrorIs(t, err, ErrInvalidSection)
	assert.Equal(t, snap, next)
}

func TestApply_QuizFailureMutatesNothing(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionQuiz})

	next, outcome, err := o.Apply(snap, QuizSubmitted{Submission: QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{0, 0, 0, 0, 0},
	}}, testNow)
	require.NoError(t, err)

	require.NotNil(t, outcome.QuizResult)
	assert.False(t, outcome.QuizResult.Passed)
	assert.Equal(t, snap, next)
}

func TestApply_QuizMalformedReturnsError(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionQuiz})

	next, _, err := o.Apply(snap, QuizSubmitted{Submission: QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1},
	}}, testNow)

	assert.ErrorIs(t, err, ErrMalformedSubmission)
	assert.Equal(t, snap, next)
}

func TestApply_FinalSectionCompletesLesson(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionQuiz})
	snap.Game.CompletedLessons = 24

	var err error
	snap.Lesson, err = MarkSectionComplete(snap.Lesson, SectionTheory)
	require.NoError(t, err)

	next, outcome, err := o.Apply(snap, QuizSubmitted{Submission: QuizSubmission{
		Questions: fiveQuestions(),
		Answers:   []int{1, 1, 1, 1, 1},
	}}, testNow)
	require.NoError(t, err)

	assert.True(t, outcome.LessonCompleted)
	assert.True(t, next.Lesson.IsComplete())
	assert.Equal(t, 25, next.Game.CompletedLessons)
	assert.Equal(t, 21, next.Game.CoursePercent())

	// Base 100 plus the perfect-score bonus of 50.
	require.NotEmpty(t, outcome.Activities)
	assert.Equal(t, ActivityLessonCompleted, outcome.Activities[0].Type)
	assert.Equal(t, 150, outcome.Activities[0].XPEarned)

	// This completion also starts the streak and unlocks the
	// lesson-count badges (25 lessons covers first_step and scholar).
	require.NotNil(t, outcome.Streak)
	assert.Equal(t, 1, outcome.Streak.Streak)
	assert.Contains(t, outcome.NewBadges, "first_step")
	assert.Contains(t, outcome.NewBadges, "scholar")
	assert.Equal(t, 350, outcome.XPAwarded) // 150 lesson + 50 + 150 badges

	// Level math: 350 XP through the default curve = level 3, 100 in.
	assert.Equal(t, 3, next.Game.Level)
	assert.Equal(t, 100, next.Game.XP)
}

func TestApply_CompletionIsIdempotent(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory})

	first, outcome, err := o.Apply(snap, SectionCompleted{Section: SectionTheory}, testNow)
	require.NoError(t, err)
	require.True(t, outcome.LessonCompleted)

	second, outcome2, err := o.Apply(first, SectionCompleted{Section: SectionTheory}, testNow)
	require.NoError(t, err)

	assert.False(t, outcome2.LessonCompleted)
	assert.Empty(t, outcome2.Activities)
	assert.Equal(t, first.Game.CompletedLessons, second.Game.CompletedLessons)
	assert.Len(t, second.Log, len(first.Log))
}

func TestApply_ProjectSubmission(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionProject})

	var err error
	snap.Lesson, err = MarkSectionComplete(snap.Lesson, SectionTheory)
	require.NoError(t, err)

	next, outcome, err := o.Apply(snap, ProjectSubmitted{}, testNow)
	require.NoError(t, err)

	require.True(t, outcome.LessonCompleted)
	assert.Equal(t, ActivityProjectCompleted, outcome.Activities[0].Type)
	assert.Contains(t, outcome.NewBadges, "builder")
	assert.True(t, next.Lesson.IsComplete())
}

func TestApply_StaleEventRollsBackEverything(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory})
	last := testNow.AddDate(0, 0, 3)
	snap.Game.LastActivityDate = &last
	snap.Game.Streak = 2

	next, _, err := o.Apply(snap, SectionCompleted{Section: SectionTheory}, testNow)

	assert.ErrorIs(t, err, ErrStaleEvent)
	// No partial transition: the section mark and XP are rolled back too.
	assert.Equal(t, snap, next)
	assert.False(t, next.Lesson.IsComplete())
	assert.Equal(t, 0, next.Game.CompletedLessons)
}

func TestApply_StreakMilestoneActivity(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory})
	yesterday := testNow.AddDate(0, 0, -1)
	snap.Game.LastActivityDate = &yesterday
	snap.Game.Streak = 4

	next, outcome, err := o.Apply(snap, SectionCompleted{Section: SectionTheory}, testNow)
	require.NoError(t, err)

	require.NotNil(t, outcome.Streak)
	assert.Equal(t, 5, outcome.Streak.Streak)
	assert.True(t, outcome.Streak.MilestoneHit)

	var milestone *ActivityEntry
	for i := range next.Log {
		if next.Log[i].Type == ActivityStreakMilestone {
			milestone = &next.Log[i]
		}
	}
	require.NotNil(t, milestone)
	assert.Equal(t, "5-day streak", milestone.Title)
}

func TestApply_LevelNeverDecreases(t *testing.T) {
	o := NewOrchestrator(DefaultCatalog())
	snap := testSnapshot([]SectionKind{SectionTheory, SectionExercise, SectionQuiz})
	level := snap.Game.Level

	events := []Event{
		SectionCompleted{Section: SectionTheory},
		SectionCompleted{Section: SectionExercise},
		QuizSubmitted{Submission: QuizSubmission{Questions: fiveQuestions(), Answers: []int{1, 1, 1, 0, 0}}},
	}
	now := testNow
	for _, ev := range events {
		var err error
		snap, _, err = o.Apply(snap, ev, now)
		require.NoError(t, err)
		require.GreaterOrEqual(t, snap.Game.Level, level)
		level = snap.Game.Level
		now = now.Add(time.Minute)
	}

	assert.True(t, snap.Lesson.IsComplete())
}
