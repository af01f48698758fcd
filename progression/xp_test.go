package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearThreshold(level int) int {
	return 100 * level
}

func TestAwardXPWith_MultiLevelRollover(t *testing.T) {
	s := GameState{Level: 1, XP: 90, XPToNextLevel: 100}

	s, err := AwardXPWith(s, 250, linearThreshold)
	require.NoError(t, err)

	// 90+250=340: -100 -> level 2 / 240, -200 -> level 3 / 40.
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 40, s.XP)
	assert.Equal(t, 300, s.XPToNextLevel)
}

func TestAwardXPWith_NoLevelUp(t *testing.T) {
	s := GameState{Level: 2, XP: 10, XPToNextLevel: 200}

	s, err := AwardXPWith(s, 50, linearThreshold)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 60, s.XP)
}

func TestAwardXPWith_ZeroAmount(t *testing.T) {
	s := GameState{Level: 1, XP: 40, XPToNextLevel: 100}

	got, err := AwardXPWith(s, 0, linearThreshold)
	require.NoError(t, err)

	assert.Equal(t, s, got)
}

func TestAwardXPWith_NegativeAmountRejected(t *testing.T) {
	s := GameState{Level: 1, XP: 40, XPToNextLevel: 100}

	got, err := AwardXPWith(s, -10, linearThreshold)

	assert.ErrorIs(t, err, ErrInvalidXPAmount)
	assert.Equal(t, s, got)
}

func TestAwardXPWith_BrokenThresholdRejected(t *testing.T) {
	s := GameState{Level: 1, XP: 90, XPToNextLevel: 100}

	got, err := AwardXPWith(s, 50, func(int) int { return 0 })

	assert.ErrorIs(t, err, ErrInvalidThreshold)
	assert.Equal(t, s, got)
}

func TestAwardXPWith_CorruptStateRejected(t *testing.T) {
	s := GameState{Level: 1, XP: 90, XPToNextLevel: 0}

	_, err := AwardXPWith(s, 50, linearThreshold)

	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestDefaultLevelThreshold_Curve(t *testing.T) {
	assert.Equal(t, 100, DefaultLevelThreshold(1))
	assert.Equal(t, 150, DefaultLevelThreshold(2))
	assert.Equal(t, 225, DefaultLevelThreshold(3))

	// Non-decreasing over a realistic range.
	prev := 0
	for level := 1; level <= 30; level++ {
		cur := DefaultLevelThreshold(level)
		require.Greater(t, cur, 0)
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestAwardXP_UsesDefaultCurve(t *testing.T) {
	s := NewGameState(nil, 0)

	s, err := AwardXP(s, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0, s.XP)
	assert.Equal(t, 150, s.XPToNextLevel)
}
