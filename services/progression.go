package services

import (
	stdContext "context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/progression"
	"github.com/nextmimo/nextmimo_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressionService loads a learner's snapshot, runs the pure
// progression engine against it, and persists the result. Events for
// the same user are serialized with a per-user lock so concurrent
// submissions cannot interleave their read-modify-write cycles.
type ProgressionService struct {
	context.DefaultService

	sqlSvc     *SqlService
	contentSvc *ContentService
	redisSvc   *RedisService

	catalog []progression.Badge
	locks   sync.Map // user id -> *sync.Mutex
}

const PROGRESSION_SVC = "progression_svc"

// activityWindow bounds how much feed history is fed to badge criteria.
const activityWindow = 45 * 24 * time.Hour

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	catalog, err := svc.loadCatalog()
	if err != nil {
		return err
	}
	svc.catalog = catalog
	return nil
}

// loadCatalog orders the built-in badge criteria by the badge rows in the
// database, so operators control ordering, naming and XP without a
// deploy. Rows without a known criterion are skipped; an empty table
// falls back to the built-in catalog.
func (svc *ProgressionService) loadCatalog() ([]progression.Badge, error) {
	builtin := progression.DefaultCatalog()

	rows, err := svc.sqlSvc.GetActiveBadges()
	if err != nil || len(rows) == 0 {
		return builtin, nil
	}

	byID := make(map[string]progression.Badge, len(builtin))
	for _, b := range builtin {
		byID[b.ID] = b
	}

	catalog := make([]progression.Badge, 0, len(rows))
	for _, row := range rows {
		b, ok := byID[row.ID]
		if !ok {
			log.WithField("badge_id", row.ID).Warn("Badge row has no criterion, skipping")
			continue
		}
		b.Name = row.Name
		b.Description = row.Description
		if row.IconURL != "" {
			b.Icon = row.IconURL
		} else if row.Icon != "" {
			b.Icon = row.Icon
		}
		b.XPReward = row.XPReward
		catalog = append(catalog, b)
	}

	if len(catalog) == 0 {
		return builtin, nil
	}
	return catalog, nil
}

func (svc *ProgressionService) userLock(userID string) *sync.Mutex {
	mu, _ := svc.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ==================== GAME STATE ====================

func (svc *ProgressionService) InitGameState(userID string) (*model.UserGameState, error) {
	total, err := svc.contentSvc.TotalLessons()
	if err != nil {
		total = 0
	}

	game := progression.NewGameState(svc.catalog, total)
	badges, err := json.Marshal(game.Badges)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode badge states")
	}

	return svc.sqlSvc.CreateUserGameState(&model.UserGameState{
		UserID:        userID,
		Level:         game.Level,
		XP:            game.XP,
		XPToNextLevel: game.XPToNextLevel,
		TotalLessons:  game.TotalLessons,
		Badges:        badges,
	})
}

func (svc *ProgressionService) GetGameState(userID string) (*dto.GameStateResponse, error) {
	state, err := svc.loadOrInitState(userID)
	if err != nil {
		return nil, err
	}

	game, err := svc.toEngineGameState(state)
	if err != nil {
		return nil, err
	}

	return svc.toGameStateResponse(userID, game), nil
}

func (svc *ProgressionService) GetLessonProgress(userID, lessonID string) (*dto.LessonProgressResponse, error) {
	lesson, err := svc.contentSvc.GetLessonModel(lessonID)
	if err != nil {
		return nil, err
	}

	progress, err := svc.loadLessonProgress(userID, lesson)
	if err != nil {
		return nil, err
	}

	resp := toLessonProgressResponse(progress)
	return &resp, nil
}

// GetCourseProgress summarizes where the learner stands in each lesson
// of a course, one query for the whole lesson list.
func (svc *ProgressionService) GetCourseProgress(userID, courseID string) (*dto.CourseProgressResponse, error) {
	lessons, err := svc.sqlSvc.GetLessonsByCourse(courseID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load lessons")
	}

	ids := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		ids = append(ids, lesson.ID)
	}

	byLesson := make(map[string]*model.UserLessonProgress)
	if len(ids) > 0 {
		rows, err := svc.sqlSvc.GetUserLessonProgressList(userID, ids)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to load lesson progress")
		}
		for i := range rows {
			byLesson[rows[i].LessonID] = &rows[i]
		}
	}

	resp := &dto.CourseProgressResponse{
		CourseID:     courseID,
		Lessons:      make([]dto.LessonProgressSummary, 0, len(lessons)),
		TotalLessons: len(lessons),
	}
	for _, lesson := range lessons {
		summary := dto.LessonProgressSummary{
			LessonID: lesson.ID,
			Title:    lesson.Title,
			Order:    lesson.Order,
		}
		if row, ok := byLesson[lesson.ID]; ok {
			summary.IsCompleted = row.IsCompleted
			summary.BestScore = row.BestScore
			summary.Percent = sectionPercent(row.Sections)
			if row.IsCompleted {
				resp.CompletedLessons++
			}
		}
		resp.Lessons = append(resp.Lessons, summary)
	}
	return resp, nil
}

func sectionPercent(raw json.RawMessage) int {
	var states []progression.SectionState
	if err := json.Unmarshal(raw, &states); err != nil || len(states) == 0 {
		return 0
	}
	p := progression.LessonProgress{Sections: states}
	return p.Percent()
}

// ==================== EVENTS ====================

func (svc *ProgressionService) CompleteSection(userID, lessonID string, req dto.CompleteSectionRequest) (*dto.ProgressionResponse, error) {
	section := progression.SectionKind(req.Section)
	if section == progression.SectionQuiz || section == progression.SectionExercise || section == progression.SectionProject {
		return nil, shared.NewBadRequestError(progression.ErrInvalidSection,
			"This section requires a submission")
	}

	return svc.applyEvent(userID, lessonID, progression.SectionCompleted{Section: section})
}

func (svc *ProgressionService) SubmitQuiz(userID, lessonID string, req dto.SubmitQuizRequest) (*dto.ProgressionResponse, error) {
	lesson, err := svc.contentSvc.GetLessonModel(lessonID)
	if err != nil {
		return nil, err
	}

	questions, err := svc.contentSvc.LessonQuestions(lesson)
	if err != nil {
		return nil, err
	}

	engineQuestions := make([]progression.Question, 0, len(questions))
	for _, q := range questions {
		engineQuestions = append(engineQuestions, progression.Question{
			Prompt:       q.Question,
			Options:      q.Options,
			CorrectIndex: q.Answer,
		})
	}

	return svc.applyEvent(userID, lessonID, progression.QuizSubmitted{Submission: progression.QuizSubmission{
		Questions:     engineQuestions,
		Answers:       req.Answers,
		PassThreshold: lesson.PassThreshold,
	}})
}

// SubmitExercise validates the learner's code against the lesson's rules.
// A failing submission reports the per-rule results without touching any
// state; a passing one completes the exercise section.
func (svc *ProgressionService) SubmitExercise(userID, lessonID string, req dto.SubmitExerciseRequest) (*dto.ProgressionResponse, error) {
	lesson, err := svc.contentSvc.GetLessonModel(lessonID)
	if err != nil {
		return nil, err
	}

	exercise, err := svc.contentSvc.LessonExercise(lesson)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, shared.NewBadRequestError(nil, "Lesson has no exercise")
	}

	checks := make([]progression.ExerciseCheck, 0, len(exercise.Rules))
	for _, rule := range exercise.Rules {
		switch rule.Type {
		case shared.ExerciseRuleRegex:
			checks = append(checks, progression.RegexCheck(rule.Value))
		default:
			checks = append(checks, progression.ContainsCheck(rule.Value))
		}
	}

	result, err := progression.EvaluateExercise(req.Code, checks, lesson.PassThreshold)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid exercise submission")
	}

	if !result.Passed {
		return &dto.ProgressionResponse{
			Quiz: &dto.QuizResultResponse{
				Score:       result.Score,
				Passed:      false,
				PerQuestion: result.PerQuestion,
			},
			ProcessedAt: time.Now(),
		}, nil
	}

	resp, err := svc.applyEvent(userID, lessonID, progression.SectionCompleted{Section: progression.SectionExercise})
	if err != nil {
		return nil, err
	}
	resp.Quiz = &dto.QuizResultResponse{
		Score:       result.Score,
		Passed:      true,
		PerQuestion: result.PerQuestion,
	}
	return resp, nil
}

func (svc *ProgressionService) SubmitProject(userID, lessonID string, _ dto.SubmitProjectRequest) (*dto.ProgressionResponse, error) {
	return svc.applyEvent(userID, lessonID, progression.ProjectSubmitted{})
}

// ==================== ENGINE PLUMBING ====================

func (svc *ProgressionService) applyEvent(userID, lessonID string, ev progression.Event) (*dto.ProgressionResponse, error) {
	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	lesson, err := svc.contentSvc.GetLessonModel(lessonID)
	if err != nil {
		return nil, err
	}

	state, err := svc.loadOrInitState(userID)
	if err != nil {
		return nil, err
	}

	game, err := svc.toEngineGameState(state)
	if err != nil {
		return nil, err
	}

	lessonProgress, err := svc.loadLessonProgress(userID, lesson)
	if err != nil {
		return nil, err
	}

	feed, err := svc.loadActivityLog(userID)
	if err != nil {
		return nil, err
	}

	snap := progression.Snapshot{
		Lesson: lessonProgress,
		Game:   game,
		Log:    feed,
	}

	orch := progression.NewOrchestrator(svc.catalog)
	orch.BaseLessonXP = lesson.XPReward

	now := time.Now()
	next, outcome, err := orch.Apply(snap, ev, now)
	if err != nil {
		return nil, svc.mapEngineError(err)
	}

	quizResult := outcome.QuizResult
	if quizResult != nil && !quizResult.Passed {
		// Failed submission: nothing changed, nothing to persist.
		return &dto.ProgressionResponse{
			Lesson: toLessonProgressResponse(next.Lesson),
			Game:   *svc.toGameStateResponse(userID, next.Game),
			Quiz: &dto.QuizResultResponse{
				Score:       quizResult.Score,
				Passed:      false,
				PerQuestion: quizResult.PerQuestion,
			},
			ProcessedAt: now,
		}, nil
	}

	if err := svc.persist(userID, lesson, next, outcome, now); err != nil {
		return nil, err
	}

	return svc.toProgressionResponse(userID, next, outcome, now), nil
}

func (svc *ProgressionService) mapEngineError(err error) error {
	switch {
	case err == nil:
		return nil
	case err == progression.ErrStaleEvent:
		return shared.NewConflictError(err, "Event is older than the last recorded activity")
	case err == progression.ErrInvalidSection:
		return shared.NewBadRequestError(err, "Section is not part of this lesson")
	case err == progression.ErrEmptyQuiz:
		return shared.NewBadRequestError(err, "Lesson quiz has no questions")
	case err == progression.ErrMalformedSubmission:
		return shared.NewBadRequestError(err, "Answer count does not match question count")
	default:
		return shared.NewInternalError(err, "Failed to process progression event")
	}
}

func (svc *ProgressionService) loadOrInitState(userID string) (*model.UserGameState, error) {
	state, err := svc.sqlSvc.GetUserGameState(userID)
	if err == nil {
		return state, nil
	}

	state, err = svc.InitGameState(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to initialize game state")
	}
	return state, nil
}

func (svc *ProgressionService) loadLessonProgress(userID string, lesson *model.Lesson) (progression.LessonProgress, error) {
	sections, err := svc.contentSvc.LessonSections(lesson)
	if err != nil {
		return progression.LessonProgress{}, err
	}

	kinds := make([]progression.SectionKind, len(sections))
	for i, s := range sections {
		kinds[i] = progression.SectionKind(s)
	}

	row, err := svc.sqlSvc.GetUserLessonProgress(userID, lesson.ID)
	if err != nil {
		// First touch of this lesson.
		return progression.NewLessonProgress(lesson.ID, kinds), nil
	}

	var states []progression.SectionState
	if err := json.Unmarshal(row.Sections, &states); err != nil {
		return progression.LessonProgress{}, shared.NewInternalError(err, "Corrupt lesson progress")
	}

	return progression.LessonProgress{
		LessonID:      lesson.ID,
		Sections:      states,
		ActiveSection: progression.SectionKind(row.ActiveSection),
	}, nil
}

func (svc *ProgressionService) loadActivityLog(userID string) ([]progression.ActivityEntry, error) {
	rows, err := svc.sqlSvc.GetRecentUserActivities(userID, time.Now().Add(-activityWindow))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load activity feed")
	}

	feed := make([]progression.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		feed = append(feed, progression.ActivityEntry{
			ID:        row.ID,
			Type:      progression.ActivityType(row.Type),
			Title:     row.Title,
			Timestamp: row.Timestamp,
			XPEarned:  row.XPEarned,
		})
	}
	return feed, nil
}

func (svc *ProgressionService) toEngineGameState(state *model.UserGameState) (progression.GameState, error) {
	var badges []progression.BadgeState
	if len(state.Badges) > 0 {
		if err := json.Unmarshal(state.Badges, &badges); err != nil {
			return progression.GameState{}, shared.NewInternalError(err, "Corrupt badge states")
		}
	}
	if badges == nil {
		fresh := progression.NewGameState(svc.catalog, state.TotalLessons)
		badges = fresh.Badges
	}

	return progression.GameState{
		Level:            state.Level,
		XP:               state.XP,
		XPToNextLevel:    state.XPToNextLevel,
		Streak:           state.Streak,
		LastActivityDate: state.LastActivityDate,
		CompletedLessons: state.CompletedLessons,
		TotalLessons:     state.TotalLessons,
		Badges:           badges,
	}, nil
}

// persist writes the whole outcome in one transaction: a retried event
// must never see XP saved without its lesson row, or it would replay the
// completion chain and double-award.
func (svc *ProgressionService) persist(userID string, lesson *model.Lesson, next progression.Snapshot, outcome progression.Outcome, now time.Time) error {
	badges, err := json.Marshal(next.Game.Badges)
	if err != nil {
		return shared.NewInternalError(err, "Failed to encode badge states")
	}
	sections, err := json.Marshal(next.Lesson.Sections)
	if err != nil {
		return shared.NewInternalError(err, "Failed to encode section states")
	}

	err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		var state model.UserGameState
		if err := tx.Where("user_id = ?", userID).First(&state).Error; err != nil {
			return err
		}
		state.Level = next.Game.Level
		state.XP = next.Game.XP
		state.XPToNextLevel = next.Game.XPToNextLevel
		state.Streak = next.Game.Streak
		state.LastActivityDate = next.Game.LastActivityDate
		state.CompletedLessons = next.Game.CompletedLessons
		state.TotalLessons = next.Game.TotalLessons
		state.Badges = badges
		if err := tx.Save(&state).Error; err != nil {
			return err
		}

		if err := persistLessonProgressTx(tx, userID, lesson, next, outcome, sections, now); err != nil {
			return err
		}

		for _, entry := range outcome.Activities {
			activity := model.UserActivity{
				ID:        entry.ID,
				UserID:    userID,
				Type:      string(entry.Type),
				Title:     entry.Title,
				XPEarned:  entry.XPEarned,
				Timestamp: entry.Timestamp,
			}
			if err := tx.Create(&activity).Error; err != nil {
				return err
			}
		}

		for _, badgeID := range outcome.NewBadges {
			id, _ := uuid.NewV7()
			userBadge := model.UserBadge{
				ID:       id.String(),
				UserID:   userID,
				BadgeID:  badgeID,
				EarnedAt: now,
			}
			if err := tx.Create(&userBadge).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save progression outcome")
	}

	svc.updateLeaderboard(userID, next.Game)
	recordProgressionMetrics(outcome)
	return nil
}

// updateLeaderboard keeps the redis ranking in step with the saved
// state. Level dominates, XP within the level breaks ties.
func (svc *ProgressionService) updateLeaderboard(userID string, game progression.GameState) {
	score := float64(game.Level)*1_000_000 + float64(game.XP)
	ctx, cancel := stdContext.WithTimeout(stdContext.Background(), 2*time.Second)
	defer cancel()

	if err := svc.redisSvc.ZAddScore(ctx, shared.LeaderboardKey, userID, score); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to update leaderboard ranking")
	}
	if err := svc.redisSvc.Delete(ctx, leaderboardCacheKey); err != nil {
		log.WithError(err).Warn("Failed to invalidate leaderboard cache")
	}
}

func persistLessonProgressTx(tx *gorm.DB, userID string, lesson *model.Lesson, next progression.Snapshot, outcome progression.Outcome, sections json.RawMessage, now time.Time) error {
	var row model.UserLessonProgress
	isNew := false
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		id, _ := uuid.NewV7()
		isNew = true
		row = model.UserLessonProgress{
			ID:       id.String(),
			UserID:   userID,
			LessonID: lesson.ID,
		}
	case err != nil:
		return err
	}

	row.Sections = sections
	row.ActiveSection = string(next.Lesson.ActiveSection)
	if next.Lesson.IsComplete() && !row.IsCompleted {
		row.IsCompleted = true
		row.CompletedAt = &now
	}
	if outcome.QuizResult != nil && outcome.QuizResult.Score > row.BestScore {
		row.BestScore = outcome.QuizResult.Score
	}

	if isNew {
		return tx.Create(&row).Error
	}
	return tx.Save(&row).Error
}

// ==================== RESPONSE MAPPING ====================

func (svc *ProgressionService) toProgressionResponse(userID string, next progression.Snapshot, outcome progression.Outcome, now time.Time) *dto.ProgressionResponse {
	resp := &dto.ProgressionResponse{
		Lesson:          toLessonProgressResponse(next.Lesson),
		Game:            *svc.toGameStateResponse(userID, next.Game),
		LessonCompleted: outcome.LessonCompleted,
		XPAwarded:       outcome.XPAwarded,
		NewBadges:       make([]dto.BadgeResponse, 0, len(outcome.NewBadges)),
		Activities:      make([]dto.ActivityResponse, 0, len(outcome.Activities)),
		ProcessedAt:     now,
	}

	earned := make(map[string]bool, len(outcome.NewBadges))
	for _, id := range outcome.NewBadges {
		earned[id] = true
	}
	for _, b := range svc.catalog {
		if !earned[b.ID] {
			continue
		}
		resp.NewBadges = append(resp.NewBadges, dto.BadgeResponse{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			XPReward:    b.XPReward,
			Earned:      true,
			EarnedAt:    &now,
		})
	}

	for _, entry := range outcome.Activities {
		resp.Activities = append(resp.Activities, dto.ActivityResponse{
			ID:        entry.ID,
			Type:      string(entry.Type),
			Title:     entry.Title,
			XPEarned:  entry.XPEarned,
			Timestamp: entry.Timestamp,
		})
	}

	if outcome.QuizResult != nil {
		resp.Quiz = &dto.QuizResultResponse{
			Score:       outcome.QuizResult.Score,
			Passed:      outcome.QuizResult.Passed,
			PerQuestion: outcome.QuizResult.PerQuestion,
		}
	}
	if outcome.Streak != nil {
		resp.Streak = &dto.StreakResponse{
			Streak:       outcome.Streak.Streak,
			MilestoneHit: outcome.Streak.MilestoneHit,
		}
	}

	return resp
}

func (svc *ProgressionService) toGameStateResponse(userID string, game progression.GameState) *dto.GameStateResponse {
	resp := &dto.GameStateResponse{
		UserID:           userID,
		Level:            game.Level,
		XP:               game.XP,
		XPToNextLevel:    game.XPToNextLevel,
		Streak:           game.Streak,
		LastActivityDate: game.LastActivityDate,
		CompletedLessons: game.CompletedLessons,
		TotalLessons:     game.TotalLessons,
		CoursePercent:    game.CoursePercent(),
		Badges:           make([]dto.BadgeResponse, 0, len(game.Badges)),
	}

	meta := make(map[string]progression.Badge, len(svc.catalog))
	for _, b := range svc.catalog {
		meta[b.ID] = b
	}

	for _, state := range game.Badges {
		b := meta[state.ID]
		resp.Badges = append(resp.Badges, dto.BadgeResponse{
			ID:          state.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			XPReward:    b.XPReward,
			Earned:      state.Earned,
			EarnedAt:    state.EarnedAt,
		})
	}

	return resp
}

func toLessonProgressResponse(p progression.LessonProgress) dto.LessonProgressResponse {
	sections := make([]dto.SectionResponse, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections = append(sections, dto.SectionResponse{
			Kind:      string(s.Kind),
			Completed: s.Completed,
		})
	}

	return dto.LessonProgressResponse{
		LessonID:      p.LessonID,
		Sections:      sections,
		ActiveSection: string(p.ActiveSection),
		Percent:       p.Percent(),
		IsCompleted:   p.IsComplete(),
	}
}
