package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntryStore is an in-memory EntryStore.
type fakeEntryStore struct {
	entries  []models.MoodEntry // newest first
	analyses map[string]*models.AIAnalysis
}

func newFakeEntryStore(entries ...models.MoodEntry) *fakeEntryStore {
	return &fakeEntryStore{
		entries:  entries,
		analyses: map[string]*models.AIAnalysis{},
	}
}

func (f *fakeEntryStore) GetUserEntries(_ string, start, end *time.Time, limit int) ([]models.MoodEntry, error) {
	var out []models.MoodEntry
	for _, entry := range f.entries {
		if start != nil && entry.EntryDate.Before(*start) {
			continue
		}
		if end != nil && entry.EntryDate.After(*end) {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEntryStore) GetRecentEntries(userID string, days int) ([]models.MoodEntry, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)
	return f.GetUserEntries(userID, &start, nil, 0)
}

func (f *fakeEntryStore) GetAllByUser(userID string) ([]models.MoodEntry, error) {
	return f.GetUserEntries(userID, nil, nil, 0)
}

func (f *fakeEntryStore) SaveAnalysis(analysis *models.AIAnalysis) error {
	f.analyses[analysis.MoodEntryID] = analysis
	return nil
}

func (f *fakeEntryStore) DeleteAnalysisForEntry(entryID string) error {
	delete(f.analyses, entryID)
	return nil
}

func recentEntry(daysAgo int, score float64, analysis *models.AIAnalysis) models.MoodEntry {
	return models.MoodEntry{
		ID:        "entry-" + time.Now().UTC().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
		UserID:    "u1",
		Score:     score,
		Text:      "a day",
		EntryDate: dateOnly(time.Now().UTC()).AddDate(0, 0, -daysAgo),
		Analysis:  analysis,
	}
}

func TestAnalyzeAndSavePersistsResult(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), store)

	entry := recentEntry(0, 8, nil)
	analysis, err := analyzer.AnalyzeAndSave(context.Background(), &entry)

	require.NoError(t, err)
	assert.Equal(t, entry.ID, analysis.MoodEntryID)
	assert.Equal(t, entry.UserID, analysis.UserID)
	assert.Equal(t, "mock", analysis.AIModel)
	assert.Equal(t, "positive", analysis.SentimentLabel)
	assert.NotEmpty(t, analysis.ID)
	assert.Len(t, store.analyses, 1)
}

func TestReanalyzeReplacesExactlyOne(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), store)

	entry := recentEntry(0, 3, nil)
	first, err := analyzer.AnalyzeAndSave(context.Background(), &entry)
	require.NoError(t, err)

	second, err := analyzer.Reanalyze(context.Background(), &entry)
	require.NoError(t, err)

	// Still exactly one analysis, and it is the new one.
	assert.Len(t, store.analyses, 1)
	assert.Equal(t, second.ID, store.analyses[entry.ID].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetMoodSummaryEmpty(t *testing.T) {
	t.Parallel()

	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), newFakeEntryStore())

	summary, err := analyzer.GetMoodSummary("u1", 7)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalEntries)
	assert.Equal(t, models.TrendInsufficientData, summary.MoodTrend)
	assert.Equal(t, "undetermined", summary.DominantEmotion)
	assert.NotEmpty(t, summary.Message)
}

func TestGetMoodSummary(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore(
		recentEntry(0, 8, &models.AIAnalysis{
			SentimentLabel: "positive",
			Emotions:       map[string]float64{"joy": 0.8, "calm": 0.2},
		}),
		recentEntry(1, 6, &models.AIAnalysis{
			SentimentLabel: "neutral",
			Emotions:       map[string]float64{"joy": 0.4, "calm": 0.6},
		}),
		recentEntry(2, 4, nil),
	)
	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), store)

	summary, err := analyzer.GetMoodSummary("u1", 7)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalEntries)
	assert.Equal(t, 6.0, summary.AverageMood)
	assert.Equal(t, 1, summary.SentimentDistribution["positive"])
	assert.Equal(t, 1, summary.SentimentDistribution["neutral"])
	assert.Equal(t, 0, summary.SentimentDistribution["negative"])
	assert.Equal(t, 0.6, summary.EmotionAverages["joy"])
	assert.Equal(t, "joy", summary.DominantEmotion)
	assert.Equal(t, dateOnly(time.Now().UTC()).Format("2006-01-02"), summary.LatestEntryDate)
}

func TestGetRecommendationsEmptyState(t *testing.T) {
	t.Parallel()

	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), newFakeEntryStore())

	recs, err := analyzer.GetRecommendations("u1")
	require.NoError(t, err)

	assert.NotEmpty(t, recs.Message)
	assert.Empty(t, recs.AIRecommendations)
	assert.NotEmpty(t, recs.GeneralRecommendations)
	assert.Equal(t, 0, recs.TotalEntriesAnalyzed)
}

func TestGetRecommendationsBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scores   []float64
		contains string
	}{
		{name: "crisis band mentions professional help", scores: []float64{2, 3, 2}, contains: "professional"},
		{name: "middle band suggests activity", scores: []float64{5, 5, 5}, contains: "physical activity"},
		{name: "upper neutral average stays in the middle band", scores: []float64{6, 7, 6.5}, contains: "physical activity"},
		{name: "top band reinforces", scores: []float64{8, 9, 8}, contains: "Keep it up"},
		{name: "band boundary reinforces", scores: []float64{7, 7, 7}, contains: "Keep it up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var entries []models.MoodEntry
			for i, score := range tt.scores {
				entries = append(entries, recentEntry(i, score, nil))
			}
			analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), newFakeEntryStore(entries...))

			recs, err := analyzer.GetRecommendations("u1")
			require.NoError(t, err)

			found := false
			for _, r := range recs.GeneralRecommendations {
				if strings.Contains(strings.ToLower(r), strings.ToLower(tt.contains)) {
					found = true
				}
			}
			assert.True(t, found, "expected a recommendation containing %q, got %v", tt.contains, recs.GeneralRecommendations)
		})
	}
}

func TestGetRecommendationsCollectsRecentAIOutput(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore(
		recentEntry(0, 7, &models.AIAnalysis{Recommendations: "rec-0"}),
		recentEntry(1, 7, nil),
		recentEntry(2, 7, &models.AIAnalysis{Recommendations: "rec-2"}),
		recentEntry(3, 7, &models.AIAnalysis{Recommendations: "rec-3"}),
		recentEntry(4, 7, &models.AIAnalysis{Recommendations: "rec-4"}),
	)
	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), store)

	recs, err := analyzer.GetRecommendations("u1")
	require.NoError(t, err)

	// The 3 most recent non-empty AI recommendations, alongside the
	// rule-based list.
	assert.Equal(t, []string{"rec-0", "rec-2", "rec-3"}, recs.AIRecommendations)
	assert.NotEmpty(t, recs.GeneralRecommendations)
	assert.Equal(t, 5, recs.TotalEntriesAnalyzed)
}

func TestGetUserStats(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore(
		recentEntry(0, 8, nil),
		recentEntry(1, 6, nil),
		recentEntry(2, 4, nil),
	)
	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), store)

	stats, err := analyzer.GetUserStats("u1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 6.0, stats.AverageMood)
	assert.Equal(t, 3, stats.StreakDays)
	assert.Equal(t, models.TrendInsufficientData, stats.MoodTrend)
	require.NotNil(t, stats.LastEntryDate)
}

func TestGetUserStatsEmpty(t *testing.T) {
	t.Parallel()

	analyzer := NewMoodAnalyzer(NewInferenceService(nil, "gemini-1.5-flash"), newFakeEntryStore())

	stats, err := analyzer.GetUserStats("u1")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Equal(t, models.TrendInsufficientData, stats.MoodTrend)
	assert.Nil(t, stats.LastEntryDate)
}
