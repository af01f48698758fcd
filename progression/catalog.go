package progression

import "time"

// DefaultCatalog is the stock badge set. Order matters: it fixes both the
// learner's badge list layout and the unlock sequence when several badges
// fire on the same event.
func DefaultCatalog() []Badge {
	return []Badge{
		{
			ID:          "first_step",
			Name:        "First Step",
			Description: "Complete your first lesson",
			Icon:        "/assets/badges/first_step.png",
			XPReward:    50,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.CompletedLessons >= 1
			},
		},
		{
			ID:          "diligent",
			Name:        "Diligent",
			Description: "Learn 7 days in a row",
			Icon:        "/assets/badges/diligent.png",
			XPReward:    75,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.Streak >= 7
			},
		},
		{
			ID:          "marathoner",
			Name:        "Marathoner",
			Description: "Learn 30 days in a row",
			Icon:        "/assets/badges/marathoner.png",
			XPReward:    200,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.Streak >= 30
			},
		},
		{
			ID:          "week_sprinter",
			Name:        "Week Sprinter",
			Description: "Complete 5 lessons within one week",
			Icon:        "/assets/badges/week_sprinter.png",
			XPReward:    100,
			Criterion:   lessonsWithin(5, 7*24*time.Hour),
		},
		{
			ID:          "builder",
			Name:        "Builder",
			Description: "Ship your first project",
			Icon:        "/assets/badges/builder.png",
			XPReward:    100,
			Criterion: func(_ GameState, log []ActivityEntry) bool {
				for _, entry := range log {
					if entry.Type == ActivityProjectCompleted {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "rising_star",
			Name:        "Rising Star",
			Description: "Reach level 5",
			Icon:        "/assets/badges/rising_star.png",
			XPReward:    100,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.Level >= 5
			},
		},
		{
			ID:          "scholar",
			Name:        "Scholar",
			Description: "Complete 10 lessons",
			Icon:        "/assets/badges/scholar.png",
			XPReward:    150,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.CompletedLessons >= 10
			},
		},
		{
			ID:          "halfway_there",
			Name:        "Halfway There",
			Description: "Complete half of the course catalog",
			Icon:        "/assets/badges/halfway_there.png",
			XPReward:    150,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.TotalLessons > 0 && s.CompletedLessons*2 >= s.TotalLessons
			},
		},
		{
			ID:          "graduate",
			Name:        "Graduate",
			Description: "Complete every lesson in the catalog",
			Icon:        "/assets/badges/graduate.png",
			XPReward:    300,
			Criterion: func(s GameState, _ []ActivityEntry) bool {
				return s.TotalLessons > 0 && s.CompletedLessons >= s.TotalLessons
			},
		},
	}
}

// lessonsWithin builds a criterion that counts lesson and project
// completions inside a sliding window ending at the newest log entry.
func lessonsWithin(count int, window time.Duration) Criterion {
	return func(_ GameState, log []ActivityEntry) bool {
		var completions []time.Time
		for _, entry := range log {
			if entry.Type == ActivityLessonCompleted || entry.Type == ActivityProjectCompleted {
				completions = append(completions, entry.Timestamp)
			}
		}
		if len(completions) < count {
			return false
		}
		for i := count - 1; i < len(completions); i++ {
			if completions[i].Sub(completions[i-count+1]) <= window {
				return true
			}
		}
		return false
	}
}
