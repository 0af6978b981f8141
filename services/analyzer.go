package services

import (
	"context"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/R0D10Nq/AIMood-DiaryBot/utils"
)

// EntryStore is what the analyzer needs from the record store.
// crud.MoodEntryCRUD implements it.
type EntryStore interface {
	GetUserEntries(userID string, start, end *time.Time, limit int) ([]models.MoodEntry, error)
	GetRecentEntries(userID string, days int) ([]models.MoodEntry, error)
	GetAllByUser(userID string) ([]models.MoodEntry, error)
	SaveAnalysis(analysis *models.AIAnalysis) error
	DeleteAnalysisForEntry(entryID string) error
}

// MoodAnalyzer ties the inference engine to the stores and derives
// the read-side statistics.
type MoodAnalyzer struct {
	ai    *InferenceService
	store EntryStore
}

func NewMoodAnalyzer(ai *InferenceService, store EntryStore) *MoodAnalyzer {
	return &MoodAnalyzer{ai: ai, store: store}
}

// AnalyzeAndSave runs inference for one entry and persists the
// result. The inference itself cannot fail; only the store can.
func (a *MoodAnalyzer) AnalyzeAndSave(ctx context.Context, entry *models.MoodEntry) (*models.AIAnalysis, error) {
	config.Logger.Infow("analyzing mood entry", "entryID", entry.ID)

	result := a.ai.Analyze(ctx, entry.Text, entry.Score)

	analysis := &models.AIAnalysis{
		ID:              utils.GenerateID(),
		UserID:          entry.UserID,
		MoodEntryID:     entry.ID,
		SentimentScore:  result.SentimentScore,
		SentimentLabel:  result.SentimentLabel,
		Emotions:        result.Emotions,
		DominantEmotion: result.DominantEmotion,
		Keywords:        result.Keywords,
		Themes:          result.Themes,
		Recommendations: result.Recommendations,
		Insights:        result.Insights,
		AIModel:         result.AIModel,
		ProcessingTime:  result.ProcessingTime,
		ConfidenceScore: result.ConfidenceScore,
		AnalyzedAt:      time.Now().UTC(),
	}

	if err := a.store.SaveAnalysis(analysis); err != nil {
		config.Logger.Errorw("failed to save analysis", "error", err, "entryID", entry.ID)
		return nil, err
	}

	config.Logger.Infow("analysis saved", "analysisID", analysis.ID, "model", analysis.AIModel)
	return analysis, nil
}

// Reanalyze replaces the entry's analysis: the old row is deleted
// first so the zero-or-one invariant holds before and after. The
// caller serializes concurrent re-analysis of the same entry.
func (a *MoodAnalyzer) Reanalyze(ctx context.Context, entry *models.MoodEntry) (*models.AIAnalysis, error) {
	if err := a.store.DeleteAnalysisForEntry(entry.ID); err != nil {
		return nil, err
	}
	return a.AnalyzeAndSave(ctx, entry)
}

// GetMoodSummary builds the short-window summary report.
func (a *MoodAnalyzer) GetMoodSummary(userID string, days int) (models.MoodSummary, error) {
	summary := models.MoodSummary{
		PeriodDays:            days,
		EmotionAverages:       map[string]float64{},
		SentimentDistribution: map[string]int{"positive": 0, "negative": 0, "neutral": 0},
	}

	entries, err := a.store.GetRecentEntries(userID, days)
	if err != nil {
		return summary, err
	}
	if len(entries) == 0 {
		summary.MoodTrend = models.TrendInsufficientData
		summary.DominantEmotion = "undetermined"
		summary.Message = "No entries for this period"
		return summary, nil
	}

	summary.TotalEntries = len(entries)
	summary.AverageMood = round1(meanScore(entries))

	for _, entry := range entries {
		if entry.Analysis == nil {
			continue
		}
		if _, ok := summary.SentimentDistribution[entry.Analysis.SentimentLabel]; ok {
			summary.SentimentDistribution[entry.Analysis.SentimentLabel]++
		}
	}

	avgs, _ := EmotionAverages(entries)
	summary.EmotionAverages = avgs
	summary.DominantEmotion = DominantEmotion(entries)
	summary.MoodTrend = ClassifyTrend(entries)
	summary.LatestEntryDate = entries[0].EntryDate.Format("2006-01-02")

	return summary, nil
}

// GetRecommendations combines rule-based advice over the last five
// entries with the most recent AI-produced recommendation strings.
func (a *MoodAnalyzer) GetRecommendations(userID string) (models.Recommendations, error) {
	entries, err := a.store.GetUserEntries(userID, nil, nil, 5)
	if err != nil {
		return models.Recommendations{}, err
	}

	if len(entries) == 0 {
		// Explicit onboarding state, not an error.
		return models.Recommendations{
			Message:           "Not enough data for recommendations yet",
			AIRecommendations: []string{},
			GeneralRecommendations: []string{
				"Start logging your mood regularly",
				"Record not just the score but the details of your day",
			},
		}, nil
	}

	avg := meanScore(entries)

	var general []string
	switch {
	case avg < 4:
		general = []string{
			"Consider reaching out to a mental health professional",
			"Try daily walks in fresh air",
			"Practice relaxation techniques or meditation",
		}
	case avg < 7:
		general = []string{
			"Add some physical activity to your day",
			"Spend more time with people close to you",
			"Set yourself small achievable goals",
		}
	default:
		general = []string{
			"Keep it up!",
			"Try learning something new",
			"Share your positive energy with the people around you",
		}
	}

	// Up to the 3 most recent non-empty AI recommendations; entries
	// arrive newest first.
	aiRecs := []string{}
	for _, entry := range entries {
		if len(aiRecs) == 3 {
			break
		}
		if entry.Analysis != nil && entry.Analysis.Recommendations != "" {
			aiRecs = append(aiRecs, entry.Analysis.Recommendations)
		}
	}

	return models.Recommendations{
		AverageMood:            round1(avg),
		Period:                 "last 5 entries",
		AIRecommendations:      aiRecs,
		GeneralRecommendations: general,
		TotalEntriesAnalyzed:   len(entries),
	}, nil
}

// GetUserStats derives the lifetime statistics block.
func (a *MoodAnalyzer) GetUserStats(userID string) (models.UserStats, error) {
	entries, err := a.store.GetAllByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	if len(entries) == 0 {
		return models.UserStats{MoodTrend: models.TrendInsufficientData}, nil
	}

	stats := models.UserStats{
		TotalEntries: len(entries),
		AverageMood:  round2(meanScore(entries)),
		MoodTrend:    ClassifyTrend(entries),
		StreakDays:   CalculateStreak(entries, time.Now().UTC()),
	}
	last := entries[0].EntryDate
	stats.LastEntryDate = &last
	return stats, nil
}
