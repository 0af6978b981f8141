package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/crud"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/R0D10Nq/AIMood-DiaryBot/services"
	"github.com/gin-gonic/gin"
)

// AnalyticsController serves the read-side: summaries, period
// statistics, trends, recommendations, AI insights and the composed
// dashboard.
type AnalyticsController struct {
	entries   *crud.MoodEntryCRUD
	analyzer  *services.MoodAnalyzer
	inference *services.InferenceService
	dashboard *services.DashboardService
}

func NewAnalyticsController(entries *crud.MoodEntryCRUD, analyzer *services.MoodAnalyzer, inference *services.InferenceService, dashboard *services.DashboardService) *AnalyticsController {
	return &AnalyticsController{
		entries:   entries,
		analyzer:  analyzer,
		inference: inference,
		dashboard: dashboard,
	}
}

// GetSummary returns the short-window summary report.
func (ac *AnalyticsController) GetSummary(c *gin.Context) {
	uid := c.GetString("uid")

	days := intQuery(c, "days", 7, 1, 365)
	summary, err := ac.analyzer.GetMoodSummary(uid, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStats returns the lifetime statistics block.
func (ac *AnalyticsController) GetStats(c *gin.Context) {
	uid := c.GetString("uid")

	stats, err := ac.analyzer.GetUserStats(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPeriodAnalytics aggregates a fixed window (week/month/year) into
// daily averages.
func (ac *AnalyticsController) GetPeriodAnalytics(c *gin.Context) {
	uid := c.GetString("uid")

	period := c.DefaultQuery("period", "month")
	var days int
	switch period {
	case "week":
		days = 7
	case "month":
		days = 30
	case "year":
		days = 365
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be week, month or year"})
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	entries, err := ac.entries.GetUserEntries(uid, &start, &end, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}

	stat := services.Aggregate(entries, start, end, services.BucketDay)
	stat.Period = period
	c.JSON(http.StatusOK, stat)
}

// GetTrends buckets a longer window with coarser granularity the
// longer the period.
func (ac *AnalyticsController) GetTrends(c *gin.Context) {
	uid := c.GetString("uid")

	period := c.DefaultQuery("period", "month")
	var days int
	var granularity string
	switch period {
	case "week":
		days, granularity = 7, services.BucketDay
	case "month":
		days, granularity = 30, services.BucketDay
	case "quarter":
		days, granularity = 90, services.BucketWeek
	case "year":
		days, granularity = 365, services.BucketMonth
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be week, month, quarter or year"})
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	entries, err := ac.entries.GetUserEntries(uid, &start, &end, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}

	stat := services.Aggregate(entries, start, end, granularity)
	stat.Period = period
	c.JSON(http.StatusOK, stat)
}

// GetRecommendations returns combined rule-based and AI advice.
func (ac *AnalyticsController) GetRecommendations(c *gin.Context) {
	uid := c.GetString("uid")

	recommendations, err := ac.analyzer.GetRecommendations(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build recommendations"})
		return
	}
	c.JSON(http.StatusOK, recommendations)
}

// GetInsights generates an AI trend narrative over recent entries.
func (ac *AnalyticsController) GetInsights(c *gin.Context) {
	uid := c.GetString("uid")

	days := intQuery(c, "days", 30, 7, 365)
	entries, err := ac.entries.GetRecentEntries(uid, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}

	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "Not enough data to generate insights",
			"recommendations": []string{
				"Start logging your mood regularly",
				"Record the details of your day and your emotions",
			},
		})
		return
	}

	analyzed := entries
	if len(analyzed) > 10 {
		analyzed = analyzed[:10]
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()
	insights := ac.inference.SummarizeTrend(ctx, analyzed)

	summary, err := ac.analyzer.GetMoodSummary(uid, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, models.InsightsResponse{
		PeriodDays:      days,
		EntriesAnalyzed: len(analyzed),
		AIInsights:      insights,
		Summary:         summary,
	})
}

// GetDashboard returns the composed read model for the current user.
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	uid := c.GetString("uid")

	dashboard, err := ac.dashboard.Compose(c.Request.Context(), uid)
	if errors.Is(err, crud.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
