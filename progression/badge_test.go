package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "activity-" + string(rune('0'+n))
	}
}

func TestEvaluateBadges_UnlocksInCatalogOrder(t *testing.T) {
	catalog := []Badge{
		{ID: "a", Name: "A", Criterion: func(GameState, []ActivityEntry) bool { return true }},
		{ID: "b", Name: "B", Criterion: func(GameState, []ActivityEntry) bool { return true }},
	}
	s := NewGameState(catalog, 0)

	out, err := EvaluateBadges(catalog, s, nil, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, out.NewlyEarned)
	require.Len(t, out.Activities, 2)
	assert.Equal(t, ActivityBadgeEarned, out.Activities[0].Type)
	assert.Equal(t, "A", out.Activities[0].Title)

	for _, badge := range out.State.Badges {
		assert.True(t, badge.Earned)
		require.NotNil(t, badge.EarnedAt)
		assert.Equal(t, testNow, *badge.EarnedAt)
	}
}

func TestEvaluateBadges_SecondPassEarnsNothing(t *testing.T) {
	catalog := DefaultCatalog()
	s := NewGameState(catalog, 10)
	s.CompletedLessons = 1

	first, err := EvaluateBadges(catalog, s, nil, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)
	require.NotEmpty(t, first.NewlyEarned)

	second, err := EvaluateBadges(catalog, first.State, first.Activities, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)

	assert.Empty(t, second.NewlyEarned)
	assert.Empty(t, second.Activities)
	assert.Equal(t, first.State, second.State)
}

func TestEvaluateBadges_RewardXPChainsIntoNextBadge(t *testing.T) {
	catalog := []Badge{
		{
			ID: "starter", Name: "Starter", XPReward: 120,
			Criterion: func(s GameState, _ []ActivityEntry) bool { return s.CompletedLessons >= 1 },
		},
		{
			ID: "level_2", Name: "Level 2",
			Criterion: func(s GameState, _ []ActivityEntry) bool { return s.Level >= 2 },
		},
	}
	s := NewGameState(catalog, 0)
	s.CompletedLessons = 1

	out, err := EvaluateBadges(catalog, s, nil, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)

	// Starter's 120 XP crosses the 100 XP level-1 threshold and unlocks
	// the level badge in the same call.
	assert.Equal(t, []string{"starter", "level_2"}, out.NewlyEarned)
	assert.Equal(t, 2, out.State.Level)
	assert.Equal(t, 20, out.State.XP)
}

func TestEvaluateBadges_EarnedNeverReverts(t *testing.T) {
	catalog := []Badge{{
		ID: "streak_badge", Name: "Streak",
		Criterion: func(s GameState, _ []ActivityEntry) bool { return s.Streak >= 7 },
	}}
	s := NewGameState(catalog, 0)
	s.Streak = 7

	out, err := EvaluateBadges(catalog, s, nil, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []string{"streak_badge"}, out.NewlyEarned)

	// Streak later resets; the badge stays earned and is not re-evaluated.
	reset := out.State
	reset.Streak = 1

	again, err := EvaluateBadges(catalog, reset, nil, testNow.Add(time.Hour), DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)

	assert.Empty(t, again.NewlyEarned)
	assert.True(t, again.State.Badges[0].Earned)
	assert.Equal(t, testNow, *again.State.Badges[0].EarnedAt)
}

func TestEvaluateBadges_DoesNotMutateInput(t *testing.T) {
	catalog := DefaultCatalog()
	s := NewGameState(catalog, 10)
	s.CompletedLessons = 1

	_, err := EvaluateBadges(catalog, s, nil, testNow, DefaultLevelThreshold, sequentialIDs())
	require.NoError(t, err)

	for _, badge := range s.Badges {
		assert.False(t, badge.Earned)
	}
}

func TestDefaultCatalog_WeekSprinter(t *testing.T) {
	catalog := DefaultCatalog()
	var sprinter Badge
	for _, b := range catalog {
		if b.ID == "week_sprinter" {
			sprinter = b
		}
	}
	require.NotNil(t, sprinter.Criterion)

	log := make([]ActivityEntry, 0, 5)
	for i := 0; i < 4; i++ {
		log = append(log, ActivityEntry{
			Type:      ActivityLessonCompleted,
			Timestamp: testNow.AddDate(0, 0, i),
		})
	}
	assert.False(t, sprinter.Criterion(GameState{}, log))

	log = append(log, ActivityEntry{
		Type:      ActivityLessonCompleted,
		Timestamp: testNow.AddDate(0, 0, 5),
	})
	assert.True(t, sprinter.Criterion(GameState{}, log))

	// Five completions spread over more than a week do not qualify.
	spread := make([]ActivityEntry, 5)
	for i := range spread {
		spread[i] = ActivityEntry{
			Type:      ActivityLessonCompleted,
			Timestamp: testNow.AddDate(0, 0, i*3),
		}
	}
	assert.False(t, sprinter.Criterion(GameState{}, spread))
}
