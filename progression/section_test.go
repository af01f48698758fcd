package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullLesson() LessonProgress {
	return NewLessonProgress("lesson-1", []SectionKind{
		SectionTheory, SectionExample, SectionExercise, SectionQuiz, SectionProject,
	})
}

func TestNewLessonProgress(t *testing.T) {
	p := fullLesson()

	assert.Equal(t, "lesson-1", p.LessonID)
	assert.Len(t, p.Sections, 5)
	assert.Equal(t, SectionTheory, p.ActiveSection)
	assert.Equal(t, 0, p.Percent())
	assert.False(t, p.IsComplete())
}

func TestMarkSectionComplete(t *testing.T) {
	p := fullLesson()

	p, err := MarkSectionComplete(p, SectionTheory)
	require.NoError(t, err)

	assert.Equal(t, 1, p.CompletedCount())
	assert.Equal(t, 20, p.Percent())
	assert.Equal(t, SectionExample, p.ActiveSection)
}

func TestMarkSectionComplete_Idempotent(t *testing.T) {
	p := fullLesson()

	once, err := MarkSectionComplete(p, SectionQuiz)
	require.NoError(t, err)

	twice, err := MarkSectionComplete(once, SectionQuiz)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMarkSectionComplete_InvalidSection(t *testing.T) {
	p := NewLessonProgress("lesson-2", []SectionKind{SectionTheory, SectionQuiz})

	got, err := MarkSectionComplete(p, SectionProject)

	assert.ErrorIs(t, err, ErrInvalidSection)
	assert.Equal(t, p, got)
}

func TestMarkSectionComplete_DoesNotMutateInput(t *testing.T) {
	p := fullLesson()

	_, err := MarkSectionComplete(p, SectionTheory)
	require.NoError(t, err)

	assert.Equal(t, 0, p.CompletedCount())
}

func TestPercent_RoundsAndReachesHundred(t *testing.T) {
	p := NewLessonProgress("lesson-3", []SectionKind{SectionTheory, SectionExercise, SectionQuiz})

	p, err := MarkSectionComplete(p, SectionTheory)
	require.NoError(t, err)
	assert.Equal(t, 33, p.Percent())

	p, err = MarkSectionComplete(p, SectionExercise)
	require.NoError(t, err)
	assert.Equal(t, 67, p.Percent())

	p, err = MarkSectionComplete(p, SectionQuiz)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Percent())
	assert.True(t, p.IsComplete())
}

func TestPercent_Monotonic(t *testing.T) {
	p := fullLesson()
	last := p.Percent()

	for _, kind := range []SectionKind{SectionQuiz, SectionTheory, SectionTheory, SectionProject, SectionExample, SectionExercise} {
		next, err := MarkSectionComplete(p, kind)
		require.NoError(t, err)
		require.GreaterOrEqual(t, next.Percent(), last)
		p, last = next, next.Percent()
	}

	assert.Equal(t, 100, last)
}
