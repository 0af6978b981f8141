package models

import "time"

// Trend classifications shared by summary and lifetime stats.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// MoodDistribution counts entries per sentiment band of the score:
// positive >= 7, neutral 4-6, negative < 4.
type MoodDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// BucketAverage is one day/week/month aggregation point.
type BucketAverage struct {
	Date         string  `json:"date"` // bucket key, "2006-01-02"
	AverageMood  float64 `json:"average_mood"`
	EntriesCount int     `json:"entries_count"`
}

// PeriodStat is the aggregation of a user's entries over a window.
type PeriodStat struct {
	Period           string             `json:"period"`
	StartDate        string             `json:"start_date"`
	EndDate          string             `json:"end_date"`
	TotalEntries     int                `json:"total_entries"`
	AverageMood      float64            `json:"average_mood"`
	MoodDistribution MoodDistribution   `json:"mood_distribution"`
	Buckets          []BucketAverage    `json:"buckets"`
	EmotionAverages  map[string]float64 `json:"emotion_averages,omitempty"`
}

// MoodSummary is the short-window summary report.
type MoodSummary struct {
	PeriodDays            int                `json:"period_days"`
	TotalEntries          int                `json:"total_entries"`
	AverageMood           float64            `json:"average_mood"`
	MoodTrend             string             `json:"mood_trend"`
	DominantEmotion       string             `json:"dominant_emotion"`
	EmotionAverages       map[string]float64 `json:"emotion_averages"`
	SentimentDistribution map[string]int     `json:"sentiment_distribution"`
	LatestEntryDate       string             `json:"latest_entry_date,omitempty"`
	Message               string             `json:"message,omitempty"`
}

// Recommendations combines rule-based advice with recent AI output.
type Recommendations struct {
	AverageMood            float64  `json:"average_mood,omitempty"`
	Period                 string   `json:"period,omitempty"`
	AIRecommendations      []string `json:"ai_recommendations"`
	GeneralRecommendations []string `json:"general_recommendations"`
	TotalEntriesAnalyzed   int      `json:"total_entries_analyzed"`
	Message                string   `json:"message,omitempty"`
}

// UserStats is the lifetime statistics block.
type UserStats struct {
	TotalEntries  int        `json:"total_entries"`
	AverageMood   float64    `json:"average_mood"`
	MoodTrend     string     `json:"mood_trend"`
	StreakDays    int        `json:"streak_days"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
}

// Dashboard is the composed read model for one user.
type Dashboard struct {
	User             *User           `json:"user"`
	Summary          MoodSummary     `json:"summary"`
	RecentEntries    []MoodEntry     `json:"recent_entries"`
	MonthlyAnalytics PeriodStat      `json:"monthly_analytics"`
	Recommendations  Recommendations `json:"recommendations"`
	Stats            UserStats       `json:"stats"`
}

// InsightsResponse wraps an AI-generated trend narrative.
type InsightsResponse struct {
	PeriodDays      int         `json:"period_days"`
	EntriesAnalyzed int         `json:"entries_analyzed"`
	AIInsights      string      `json:"ai_insights"`
	Summary         MoodSummary `json:"summary"`
}
