package progression

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event is a learner event the orchestrator can process. The variants are
// sealed: SectionCompleted, QuizSubmitted and ProjectSubmitted.
type Event interface {
	isEvent()
}

type SectionCompleted struct {
	Section SectionKind
}

type QuizSubmitted struct {
	Submission QuizSubmission
}

// ProjectSubmitted marks the project section done. The caller only sends
// it once the project has been judged successful; completion is terminal
// and there is no partial credit at this layer.
type ProjectSubmitted struct{}

func (SectionCompleted) isEvent() {}
func (QuizSubmitted) isEvent()    {}
func (ProjectSubmitted) isEvent() {}

// Outcome reports what one processed event changed.
type Outcome struct {
	LessonCompleted bool
	XPAwarded       int
	NewBadges       []string
	Activities      []ActivityEntry
	Streak          *StreakResult
	QuizResult      *QuizResult
}

// Orchestrator drives the section tracker, evaluator, streak tracker, XP
// calculator and badge evaluator in order for each event. It is pure: the
// host loads the snapshot, calls Apply, and persists the result.
type Orchestrator struct {
	Catalog   []Badge
	Threshold LevelThreshold
	// BaseLessonXP is awarded for finishing a lesson; a quiz finish adds
	// an accuracy bonus on top.
	BaseLessonXP int
	NewID        func() string
}

const defaultBaseLessonXP = 100

func NewOrchestrator(catalog []Badge) Orchestrator {
	return Orchestrator{
		Catalog:      catalog,
		Threshold:    DefaultLevelThreshold,
		BaseLessonXP: defaultBaseLessonXP,
		NewID:        newActivityID,
	}
}

func newActivityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Apply processes one event atomically: either the full chain completes
// and a consistent new snapshot is returned, or an error is returned and
// the caller's snapshot is untouched.
func (o Orchestrator) Apply(snap Snapshot, ev Event, now time.Time) (Snapshot, Outcome, error) {
	threshold := o.Threshold
	if threshold == nil {
		threshold = DefaultLevelThreshold
	}
	newID := o.NewID
	if newID == nil {
		newID = newActivityID
	}
	baseXP := o.BaseLessonXP
	if baseXP == 0 {
		baseXP = defaultBaseLessonXP
	}

	switch e := ev.(type) {
	case SectionCompleted:
		return o.applySection(snap, e.Section, nil, ActivityLessonCompleted, now, threshold, newID, baseXP)

	case QuizSubmitted:
		result, err := EvaluateQuiz(e.Submission)
		if err != nil {
			return snap, Outcome{}, err
		}
		if !result.Passed {
			// Failed submissions mutate nothing and may be retried.
			return snap, Outcome{QuizResult: &result}, nil
		}
		return o.applySection(snap, SectionQuiz, &result, ActivityLessonCompleted, now, threshold, newID, baseXP)

	case ProjectSubmitted:
		return o.applySection(snap, SectionProject, nil, ActivityProjectCompleted, now, threshold, newID, baseXP)

	default:
		return snap, Outcome{}, ErrInvalidSection
	}
}

func (o Orchestrator) applySection(snap Snapshot, section SectionKind, quiz *QuizResult, completionType ActivityType, now time.Time, threshold LevelThreshold, newID func() string, baseXP int) (Snapshot, Outcome, error) {
	wasComplete := snap.Lesson.IsComplete()

	lesson, err := MarkSectionComplete(snap.Lesson, section)
	if err != nil {
		return snap, Outcome{}, err
	}

	next := snap.clone()
	next.Lesson = lesson
	outcome := Outcome{QuizResult: quiz}

	if wasComplete || !lesson.IsComplete() {
		return next, outcome, nil
	}

	// The lesson just finished: completion counter, activity entry, XP,
	// streak, then badges, in that order.
	outcome.LessonCompleted = true
	next.Game.CompletedLessons++

	xpEarned := baseXP
	if quiz != nil {
		xpEarned += int(math.Round(quiz.Score * 50))
	}

	completion := ActivityEntry{
		ID:        newID(),
		Type:      completionType,
		Title:     lesson.LessonID,
		Timestamp: now,
		XPEarned:  xpEarned,
	}
	next.Log = append(next.Log, completion)
	outcome.Activities = append(outcome.Activities, completion)

	game, err := AwardXPWith(next.Game, xpEarned, threshold)
	if err != nil {
		return snap, Outcome{}, err
	}
	outcome.XPAwarded = xpEarned

	game, streak, err := UpdateStreak(game, now)
	if err != nil {
		return snap, Outcome{}, err
	}
	outcome.Streak = &streak

	if streak.MilestoneHit {
		milestone := ActivityEntry{
			ID:        newID(),
			Type:      ActivityStreakMilestone,
			Title:     streakMilestoneTitle(streak.Streak),
			Timestamp: now,
		}
		next.Log = append(next.Log, milestone)
		outcome.Activities = append(outcome.Activities, milestone)
	}

	badges, err := EvaluateBadges(o.Catalog, game, next.Log, now, threshold, newID)
	if err != nil {
		return snap, Outcome{}, err
	}

	next.Game = badges.State
	next.Log = append(next.Log, badges.Activities...)
	outcome.Activities = append(outcome.Activities, badges.Activities...)
	outcome.NewBadges = badges.NewlyEarned
	for _, entry := range badges.Activities {
		outcome.XPAwarded += entry.XPEarned
	}

	return next, outcome, nil
}

func streakMilestoneTitle(streak int) string {
	return strconv.Itoa(streak) + "-day streak"
}
