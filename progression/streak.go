package progression

import "time"

// streakMilestoneStep: every positive multiple of this streak length
// produces a streak_milestone activity and feeds the streak badges.
const streakMilestoneStep = 5

type StreakResult struct {
	Streak       int  `json:"streak"`
	MilestoneHit bool `json:"milestone_hit"`
}

// UpdateStreak applies the daily streak rules at day granularity in the
// learner's local calendar:
//
//	same day as last activity  -> unchanged, already counted
//	exactly one day later      -> streak + 1
//	two or more days later     -> reset to 1
//	no prior activity          -> starts at 1
//
// A today earlier than the recorded last activity is rejected with
// ErrStaleEvent and the state is not mutated.
func UpdateStreak(s GameState, today time.Time) (GameState, StreakResult, error) {
	todayDay := dayOf(today)

	if s.LastActivityDate == nil {
		out := s.clone()
		out.Streak = 1
		out.LastActivityDate = &todayDay
		return out, StreakResult{Streak: 1}, nil
	}

	lastDay := dayOf(*s.LastActivityDate)
	daysDiff := calendarDaysBetween(lastDay, todayDay)

	switch {
	case daysDiff < 0:
		return s, StreakResult{}, ErrStaleEvent
	case daysDiff == 0:
		out := s.clone()
		out.LastActivityDate = &todayDay
		return out, StreakResult{Streak: s.Streak}, nil
	case daysDiff == 1:
		out := s.clone()
		out.Streak = s.Streak + 1
		out.LastActivityDate = &todayDay
		return out, StreakResult{
			Streak:       out.Streak,
			MilestoneHit: out.Streak%streakMilestoneStep == 0,
		}, nil
	default:
		out := s.clone()
		out.Streak = 1
		out.LastActivityDate = &todayDay
		return out, StreakResult{Streak: 1}, nil
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDaysBetween counts whole calendar days from a to b. The dates
// are re-anchored in UTC so that a DST transition between them cannot
// shift the count by a missing or repeated hour.
func calendarDaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
