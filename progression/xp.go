package progression

// LevelThreshold returns the XP required to clear the given level. It must
// be positive and non-decreasing in level.
type LevelThreshold func(level int) int

// maxLevelUps bounds the rollover loop against a broken threshold
// function that never catches up with the awarded XP.
const maxLevelUps = 1000

// DefaultLevelThreshold is the stock curve: 100 XP to clear level 1, each
// subsequent level costing 1.5x the previous, truncated to whole XP.
func DefaultLevelThreshold(level int) int {
	required := 100
	for l := 1; l < level; l++ {
		required = required * 3 / 2
	}
	return required
}

// AwardXP adds amount to the learner's XP using the default curve.
// See AwardXPWith.
func AwardXP(s GameState, amount int) (GameState, error) {
	return AwardXPWith(s, amount, DefaultLevelThreshold)
}

// AwardXPWith adds amount to the learner's XP and applies every level-up
// the new total earns in this single call. Negative amounts are rejected
// with ErrInvalidXPAmount; this engine never deducts XP. A threshold
// function returning a non-positive value is rejected with
// ErrInvalidThreshold. On any error the input state is returned unchanged.
func AwardXPWith(s GameState, amount int, threshold LevelThreshold) (GameState, error) {
	if amount < 0 {
		return s, ErrInvalidXPAmount
	}
	if s.XPToNextLevel <= 0 {
		return s, ErrInvalidThreshold
	}

	out := s.clone()
	out.XP += amount

	for i := 0; out.XP >= out.XPToNextLevel; i++ {
		if i >= maxLevelUps {
			return s, ErrInvalidThreshold
		}

		out.XP -= out.XPToNextLevel
		out.Level++

		next := threshold(out.Level)
		if next <= 0 {
			return s, ErrInvalidThreshold
		}
		out.XPToNextLevel = next
	}

	return out, nil
}
