package progression

import "time"

// Criterion is a pure predicate over the learner's aggregate state and
// activity history. Criteria never mutate their inputs.
type Criterion func(s GameState, log []ActivityEntry) bool

// Badge is one immutable catalog entry. The catalog is external
// configuration; the engine only ever reads it.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	XPReward    int
	Criterion   Criterion
}

// BadgeOutcome reports one EvaluateBadges call. NewlyEarned is in catalog
// order so simultaneous unlocks are reproducible.
type BadgeOutcome struct {
	NewlyEarned []string
	State       GameState
	Activities  []ActivityEntry
}

// EvaluateBadges walks the catalog in order, unlocking every badge whose
// criterion holds and that is not yet earned. A badge's XP reward is
// applied immediately, since one badge's reward can satisfy another
// badge's criterion; evaluation repeats until a fixed point, bounded by
// the catalog size. Earned badges are never re-evaluated. On error the
// inputs are returned unchanged.
func EvaluateBadges(catalog []Badge, s GameState, log []ActivityEntry, now time.Time, threshold LevelThreshold, newID func() string) (BadgeOutcome, error) {
	state := s.clone()
	fullLog := make([]ActivityEntry, len(log))
	copy(fullLog, log)

	var newlyEarned []string
	var activities []ActivityEntry

	// Each pass can earn at least one badge or we are done, so the badge
	// count bounds the chain.
	for pass := 0; pass <= len(catalog); pass++ {
		earnedThisPass := false

		for _, badge := range catalog {
			idx := state.badgeIndex(badge.ID)
			if idx < 0 {
				state.Badges = append(state.Badges, BadgeState{ID: badge.ID})
				idx = len(state.Badges) - 1
			}
			if state.Badges[idx].Earned {
				continue
			}
			if badge.Criterion == nil || !badge.Criterion(state, fullLog) {
				continue
			}

			earnedAt := now
			state.Badges[idx].Earned = true
			state.Badges[idx].EarnedAt = &earnedAt

			entry := ActivityEntry{
				ID:        newID(),
				Type:      ActivityBadgeEarned,
				Title:     badge.Name,
				Timestamp: now,
				XPEarned:  badge.XPReward,
			}
			activities = append(activities, entry)
			fullLog = append(fullLog, entry)
			newlyEarned = append(newlyEarned, badge.ID)
			earnedThisPass = true

			if badge.XPReward > 0 {
				next, err := AwardXPWith(state, badge.XPReward, threshold)
				if err != nil {
					return BadgeOutcome{}, err
				}
				state = next
			}
		}

		if !earnedThisPass {
			break
		}
	}

	return BadgeOutcome{
		NewlyEarned: newlyEarned,
		State:       state,
		Activities:  activities,
	}, nil
}
