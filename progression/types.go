// Package progression implements the lesson progression and gamification
// rules: section tracking, quiz and exercise scoring, daily streaks, XP and
// levels, and badge unlocking. Every function takes a full state snapshot
// and returns a new one; nothing here performs I/O or holds state between
// calls, so hosts are free to pick their own persistence and locking model.
package progression

import "time"

// SectionKind is one of the five fixed lesson phases. Not every lesson
// exposes all five; the lesson's declared section set is authoritative.
type SectionKind string

const (
	SectionTheory   SectionKind = "theory"
	SectionExample  SectionKind = "example"
	SectionExercise SectionKind = "exercise"
	SectionQuiz     SectionKind = "quiz"
	SectionProject  SectionKind = "project"
)

type SectionState struct {
	Kind      SectionKind `json:"kind"`
	Completed bool        `json:"completed"`
}

// LessonProgress tracks a learner's advancement through one lesson's
// ordered sections. ProgressPercent is always derived from the section
// states, never stored.
type LessonProgress struct {
	LessonID      string         `json:"lesson_id"`
	Sections      []SectionState `json:"sections"`
	ActiveSection SectionKind    `json:"active_section"`
}

// NewLessonProgress builds the initial progress for a lesson, all sections
// incomplete and the first declared section active.
func NewLessonProgress(lessonID string, sections []SectionKind) LessonProgress {
	states := make([]SectionState, len(sections))
	for i, kind := range sections {
		states[i] = SectionState{Kind: kind}
	}
	p := LessonProgress{LessonID: lessonID, Sections: states}
	if len(sections) > 0 {
		p.ActiveSection = sections[0]
	}
	return p
}

func (p LessonProgress) clone() LessonProgress {
	out := p
	out.Sections = make([]SectionState, len(p.Sections))
	copy(out.Sections, p.Sections)
	return out
}

func (p LessonProgress) sectionIndex(kind SectionKind) int {
	for i, s := range p.Sections {
		if s.Kind == kind {
			return i
		}
	}
	return -1
}

func (p LessonProgress) CompletedCount() int {
	count := 0
	for _, s := range p.Sections {
		if s.Completed {
			count++
		}
	}
	return count
}

// Percent returns the rounded 0-100 completion value.
func (p LessonProgress) Percent() int {
	total := len(p.Sections)
	if total == 0 {
		return 0
	}
	return (200*p.CompletedCount() + total) / (2 * total)
}

func (p LessonProgress) IsComplete() bool {
	return p.Percent() == 100
}

// BadgeState is the per-learner unlock record for one catalog badge.
// Earned never reverts to false.
type BadgeState struct {
	ID       string     `json:"id"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// GameState is the learner's aggregate gamification state. XP counts
// within the current level only; XPToNextLevel is the current level's
// threshold.
type GameState struct {
	Level            int          `json:"level"`
	XP               int          `json:"xp"`
	XPToNextLevel    int          `json:"xp_to_next_level"`
	Streak           int          `json:"streak"`
	LastActivityDate *time.Time   `json:"last_activity_date,omitempty"`
	CompletedLessons int          `json:"completed_lessons"`
	TotalLessons     int          `json:"total_lessons"`
	Badges           []BadgeState `json:"badges"`
}

// NewGameState returns the starting state for a fresh learner, with one
// unearned badge slot per catalog entry in catalog order.
func NewGameState(catalog []Badge, totalLessons int) GameState {
	badges := make([]BadgeState, len(catalog))
	for i, b := range catalog {
		badges[i] = BadgeState{ID: b.ID}
	}
	return GameState{
		Level:         1,
		XPToNextLevel: DefaultLevelThreshold(1),
		TotalLessons:  totalLessons,
		Badges:        badges,
	}
}

func (s GameState) clone() GameState {
	out := s
	out.Badges = make([]BadgeState, len(s.Badges))
	copy(out.Badges, s.Badges)
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		out.LastActivityDate = &d
	}
	return out
}

// CoursePercent is the dashboard's overall completion value, derived the
// same way as a lesson's section percentage.
func (s GameState) CoursePercent() int {
	if s.TotalLessons == 0 {
		return 0
	}
	return (200*s.CompletedLessons + s.TotalLessons) / (2 * s.TotalLessons)
}

func (s GameState) badgeIndex(id string) int {
	for i, b := range s.Badges {
		if b.ID == id {
			return i
		}
	}
	return -1
}

type ActivityType string

const (
	ActivityLessonCompleted  ActivityType = "lesson_completed"
	ActivityBadgeEarned      ActivityType = "badge_earned"
	ActivityStreakMilestone  ActivityType = "streak_milestone"
	ActivityProjectCompleted ActivityType = "project_completed"
)

// ActivityEntry is one append-only log record. Entries double as badge
// criterion input, e.g. counting lessons completed within a week.
type ActivityEntry struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Title     string       `json:"title"`
	Timestamp time.Time    `json:"timestamp"`
	XPEarned  int          `json:"xp_earned"`
}

// Snapshot bundles everything the orchestrator reads and writes for one
// learner/lesson pair.
type Snapshot struct {
	Lesson LessonProgress
	Game   GameState
	Log    []ActivityEntry
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Lesson: s.Lesson.clone(),
		Game:   s.Game.clone(),
		Log:    make([]ActivityEntry, len(s.Log)),
	}
	copy(out.Log, s.Log)
	return out
}
