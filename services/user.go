package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/shared"
	log "github.com/sirupsen/logrus"
)

type UserService struct {
	appContext.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService
}

const USER_SVC = "user_svc"

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = time.Minute
	leaderboardLimit    = 50
)

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== PROFILE ====================

func (svc *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "User not found")
	}

	earned, err := svc.sqlSvc.GetUserBadges(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load badges")
	}

	return &dto.UserProfileResponse{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		AvatarURL:    user.AvatarURL,
		JoinedAt:     user.CreatedAt,
		LastLoginAt:  user.LastLogin,
		BadgesEarned: len(earned),
	}, nil
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "User not found")
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, shared.NewConflictError(err, "Failed to update profile")
	}

	return svc.GetProfile(userID)
}

// ==================== ACTIVITY FEED ====================

func (svc *UserService) GetActivityFeed(userID string, limit, offset int) (*dto.ActivityFeedResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := svc.sqlSvc.GetUserActivities(userID, limit, offset)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load activity feed")
	}

	resp := &dto.ActivityFeedResponse{
		UserID:     userID,
		Activities: make([]dto.ActivityResponse, 0, len(rows)),
		Total:      total,
	}
	for _, row := range rows {
		resp.Activities = append(resp.Activities, dto.ActivityResponse{
			ID:        row.ID,
			Type:      row.Type,
			Title:     row.Title,
			XPEarned:  row.XPEarned,
			Timestamp: row.Timestamp,
		})
	}
	return resp, nil
}

// ==================== LEADERBOARD ====================

func (svc *UserService) GetLeaderboard(userID string) (*dto.LeaderboardResponse, error) {
	ctx := context.Background()

	var cached dto.LeaderboardResponse
	if err := svc.redisSvc.GetJSON(ctx, leaderboardCacheKey, &cached); err == nil && len(cached.Entries) > 0 {
		cached.UserRank = svc.rankFor(userID)
		return &cached, nil
	}

	states, err := svc.sqlSvc.GetLeaderboard(leaderboardLimit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load leaderboard")
	}

	resp := &dto.LeaderboardResponse{
		Entries:   make([]dto.LeaderboardEntry, 0, len(states)),
		UpdatedAt: time.Now(),
	}
	for i, state := range states {
		username := state.UserID
		if user, err := svc.sqlSvc.GetUser(state.UserID); err == nil {
			username = user.Username
		}

		resp.Entries = append(resp.Entries, dto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   state.UserID,
			Username: username,
			Level:    state.Level,
			XP:       state.XP,
			Streak:   state.Streak,
		})
	}

	if err := svc.redisSvc.Set(ctx, leaderboardCacheKey, resp, leaderboardCacheTTL); err != nil {
		log.WithError(err).Warn("Failed to cache leaderboard")
	}

	resp.UserRank = svc.rankFor(userID)
	return resp, nil
}

func (svc *UserService) rankFor(userID string) int {
	if userID == "" {
		return 0
	}

	// The redis ranking is cheap and kept current by progression
	// events; fall back to SQL when the user is not in it yet.
	rank, err := svc.redisSvc.ZRevRank(context.Background(), shared.LeaderboardKey, userID)
	if err == nil && rank >= 0 {
		return int(rank) + 1
	}

	sqlRank, err := svc.sqlSvc.GetUserRank(userID)
	if err != nil {
		return 0
	}
	return sqlRank
}
