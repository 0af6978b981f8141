package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/go-redis/redis/v8"
)

// UserStore is what the dashboard needs from the user store.
// crud.UserCRUD implements it.
type UserStore interface {
	GetByID(id string) (*models.User, error)
}

const dashboardCacheTTL = 60 * time.Second

// DashboardService composes the per-user read model. Pure
// orchestration: every sub-computation defines its own empty-input
// behavior, so the only failure it propagates is an unknown user (or
// a store error).
type DashboardService struct {
	users    UserStore
	entries  EntryStore
	analyzer *MoodAnalyzer
	cache    *redis.Client // optional; nil disables caching
}

func NewDashboardService(users UserStore, entries EntryStore, analyzer *MoodAnalyzer, cache *redis.Client) *DashboardService {
	return &DashboardService{
		users:    users,
		entries:  entries,
		analyzer: analyzer,
		cache:    cache,
	}
}

// Compose builds the dashboard for one user.
func (s *DashboardService) Compose(ctx context.Context, userID string) (*models.Dashboard, error) {
	if cached := s.fromCache(ctx, userID); cached != nil {
		return cached, nil
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.analyzer.GetMoodSummary(userID, 7)
	if err != nil {
		return nil, err
	}

	recent, err := s.entries.GetUserEntries(userID, nil, nil, 5)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := now.AddDate(0, 0, -30)
	monthEntries, err := s.entries.GetUserEntries(userID, &monthStart, &now, 0)
	if err != nil {
		return nil, err
	}
	monthly := Aggregate(monthEntries, monthStart, now, BucketDay)
	monthly.Period = "month"

	recommendations, err := s.analyzer.GetRecommendations(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.analyzer.GetUserStats(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		User:             user,
		Summary:          summary,
		RecentEntries:    recent,
		MonthlyAnalytics: monthly,
		Recommendations:  recommendations,
		Stats:            stats,
	}

	s.toCache(ctx, userID, dashboard)
	return dashboard, nil
}

// Invalidate drops the cached dashboard after a write.
func (s *DashboardService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(userID)).Err(); err != nil {
		config.Logger.Warnw("dashboard cache invalidation failed", "error", err, "userID", userID)
	}
}

func (s *DashboardService) fromCache(ctx context.Context, userID string) *models.Dashboard {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey(userID)).Result()
	if err != nil {
		return nil
	}
	var dashboard models.Dashboard
	if err := json.Unmarshal([]byte(raw), &dashboard); err != nil {
		return nil
	}
	return &dashboard
}

func (s *DashboardService) toCache(ctx context.Context, userID string, dashboard *models.Dashboard) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(dashboard)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey(userID), raw, dashboardCacheTTL).Err(); err != nil {
		config.Logger.Warnw("dashboard cache write failed", "error", err, "userID", userID)
	}
}

func dashboardCacheKey(userID string) string {
	return "dashboard:" + userID
}
