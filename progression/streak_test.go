package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stateWithStreak(streak int, last time.Time) GameState {
	s := NewGameState(nil, 0)
	s.Streak = streak
	s.LastActivityDate = &last
	return s
}

func TestUpdateStreak_NextDayIncrements(t *testing.T) {
	s := stateWithStreak(3, day(2024, time.May, 1))

	s, result, err := UpdateStreak(s, day(2024, time.May, 2))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Streak)
	assert.Equal(t, 4, s.Streak)
	assert.Equal(t, day(2024, time.May, 2), *s.LastActivityDate)
}

func TestUpdateStreak_SameDayUnchanged(t *testing.T) {
	s := stateWithStreak(3, day(2024, time.May, 1))

	s, result, err := UpdateStreak(s, day(2024, time.May, 1))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Streak)
	assert.False(t, result.MilestoneHit)
	assert.Equal(t, 3, s.Streak)
}

func TestUpdateStreak_GapResets(t *testing.T) {
	s := stateWithStreak(3, day(2024, time.May, 1))

	s, result, err := UpdateStreak(s, day(2024, time.May, 4))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 1, s.Streak)
}

func TestUpdateStreak_FirstActivity(t *testing.T) {
	s := NewGameState(nil, 0)

	s, result, err := UpdateStreak(s, day(2024, time.May, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.False(t, result.MilestoneHit)
	require.NotNil(t, s.LastActivityDate)
	assert.Equal(t, day(2024, time.May, 1), *s.LastActivityDate)
}

func TestUpdateStreak_StaleEventRejected(t *testing.T) {
	s := stateWithStreak(3, day(2024, time.May, 10))

	got, _, err := UpdateStreak(s, day(2024, time.May, 9))

	assert.ErrorIs(t, err, ErrStaleEvent)
	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, day(2024, time.May, 10), *got.LastActivityDate)
}

func TestUpdateStreak_MilestoneEveryFifthDay(t *testing.T) {
	s := stateWithStreak(4, day(2024, time.May, 1))

	s, result, err := UpdateStreak(s, day(2024, time.May, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Streak)
	assert.True(t, result.MilestoneHit)

	s, result, err = UpdateStreak(s, day(2024, time.May, 3))
	require.NoError(t, err)
	assert.Equal(t, 6, result.Streak)
	assert.False(t, result.MilestoneHit)
}

func TestUpdateStreak_GapAcrossSpringForwardResets(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Mar 8 -> Mar 10 2025 spans the spring-forward, so the span is 47
	// hours even though two calendar days have passed.
	s := stateWithStreak(4, time.Date(2025, time.March, 8, 0, 0, 0, 0, loc))

	s, result, err := UpdateStreak(s, time.Date(2025, time.March, 10, 0, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 1, s.Streak)
}

func TestUpdateStreak_NextDayAcrossSpringForwardIncrements(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The transition day itself is only 23 hours long.
	s := stateWithStreak(4, time.Date(2025, time.March, 8, 0, 0, 0, 0, loc))

	s, result, err := UpdateStreak(s, time.Date(2025, time.March, 9, 0, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Streak)
	assert.True(t, result.MilestoneHit)
}

func TestUpdateStreak_TimeOfDayIgnored(t *testing.T) {
	last := time.Date(2024, time.May, 1, 23, 50, 0, 0, time.UTC)
	s := stateWithStreak(1, last)

	_, result, err := UpdateStreak(s, time.Date(2024, time.May, 2, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Streak)
}
