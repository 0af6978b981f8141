package services

import (
	"testing"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entryOn(date time.Time, score float64) models.MoodEntry {
	return models.MoodEntry{Score: score, EntryDate: date}
}

func TestScoreBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{1, "negative"},
		{3.9, "negative"},
		{4, "neutral"},
		{5, "neutral"},
		{6.9, "neutral"},
		{7, "positive"},
		{10, "positive"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scoreBand(tt.score), "score %g", tt.score)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	stat := Aggregate(nil, day(2024, 3, 1), day(2024, 3, 31), BucketDay)

	assert.Equal(t, 0, stat.TotalEntries)
	assert.Equal(t, 0.0, stat.AverageMood)
	assert.Equal(t, models.MoodDistribution{}, stat.MoodDistribution)
	assert.Empty(t, stat.Buckets)
}

func TestAggregateFiltersByEntryDateInclusive(t *testing.T) {
	t.Parallel()

	entries := []models.MoodEntry{
		entryOn(day(2024, 2, 29), 2), // before window
		entryOn(day(2024, 3, 1), 8),  // window start
		entryOn(day(2024, 3, 31), 6), // window end
		entryOn(day(2024, 4, 1), 2),  // after window
	}

	stat := Aggregate(entries, day(2024, 3, 1), day(2024, 3, 31), BucketDay)

	assert.Equal(t, 2, stat.TotalEntries)
	assert.Equal(t, 7.0, stat.AverageMood)
}

func TestAggregateWeekBuckets(t *testing.T) {
	t.Parallel()

	entries := []models.MoodEntry{
		entryOn(day(2024, 3, 4), 8),  // Monday
		entryOn(day(2024, 3, 6), 6),  // Wednesday, same week
		entryOn(day(2024, 3, 11), 4), // next Monday
	}

	stat := Aggregate(entries, day(2024, 3, 1), day(2024, 3, 31), BucketWeek)

	require.Len(t, stat.Buckets, 2)
	assert.Equal(t, "2024-03-04", stat.Buckets[0].Date)
	assert.Equal(t, 7.0, stat.Buckets[0].AverageMood)
	assert.Equal(t, 2, stat.Buckets[0].EntriesCount)
	assert.Equal(t, "2024-03-11", stat.Buckets[1].Date)
	assert.Equal(t, 4.0, stat.Buckets[1].AverageMood)
}

func TestAggregateMonthBuckets(t *testing.T) {
	t.Parallel()

	entries := []models.MoodEntry{
		entryOn(day(2024, 1, 15), 8),
		entryOn(day(2024, 1, 28), 4),
		entryOn(day(2024, 2, 2), 6),
	}

	stat := Aggregate(entries, day(2024, 1, 1), day(2024, 2, 28), BucketMonth)

	require.Len(t, stat.Buckets, 2)
	assert.Equal(t, "2024-01-01", stat.Buckets[0].Date)
	assert.Equal(t, 6.0, stat.Buckets[0].AverageMood)
	assert.Equal(t, "2024-02-01", stat.Buckets[1].Date)
}

func TestAggregateEndToEnd(t *testing.T) {
	t.Parallel()

	// 10 entries over 10 consecutive days ending today.
	scores := []float64{8, 7, 9, 6, 8, 3, 4, 2, 5, 9}
	today := time.Now().UTC()
	var entries []models.MoodEntry
	for i, score := range scores {
		entries = append(entries, entryOn(dateOnly(today).AddDate(0, 0, -i), score))
	}

	start := dateOnly(today).AddDate(0, 0, -9)
	stat := Aggregate(entries, start, today, BucketDay)

	assert.Equal(t, 10, stat.TotalEntries)
	assert.Equal(t, 6.1, stat.AverageMood)
	assert.Equal(t, models.MoodDistribution{Positive: 5, Neutral: 3, Negative: 2}, stat.MoodDistribution)
	assert.Equal(t, 10, CalculateStreak(entries, today))
}

func TestEmotionAverages(t *testing.T) {
	t.Parallel()

	entries := []models.MoodEntry{
		{
			EntryDate: day(2024, 3, 1),
			Analysis:  &models.AIAnalysis{Emotions: map[string]float64{"joy": 0.8, "calm": 0.4}},
		},
		{
			EntryDate: day(2024, 3, 2),
			Analysis:  &models.AIAnalysis{Emotions: map[string]float64{"joy": 0.4}},
		},
		{EntryDate: day(2024, 3, 3)}, // no analysis, contributes nothing
	}

	avgs, order := EmotionAverages(entries)

	// calm is averaged only over entries that carry it.
	assert.Equal(t, 0.6, avgs["joy"])
	assert.Equal(t, 0.4, avgs["calm"])
	assert.Contains(t, order, "joy")
	assert.Equal(t, "joy", DominantEmotion(entries))
}

func TestDominantEmotionTieBreak(t *testing.T) {
	t.Parallel()

	entries := []models.MoodEntry{{
		EntryDate: day(2024, 3, 1),
		Analysis:  &models.AIAnalysis{Emotions: map[string]float64{"joy": 0.5, "calm": 0.5}},
	}}

	// Equal averages within one entry resolve to the alphabetically
	// earlier name.
	assert.Equal(t, "calm", DominantEmotion(entries))
}

func TestDominantEmotionEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "undetermined", DominantEmotion(nil))
}

func TestCalculateStreak(t *testing.T) {
	t.Parallel()

	today := day(2024, 3, 10)

	tests := []struct {
		name    string
		offsets []int // days before today
		want    int
	}{
		{name: "no entries", offsets: nil, want: 0},
		{name: "three consecutive days", offsets: []int{0, 1, 2}, want: 3},
		{name: "gap truncates", offsets: []int{0, 2}, want: 1},
		{name: "no entry today", offsets: []int{1, 2, 3}, want: 0},
		{name: "duplicate days counted once", offsets: []int{0, 0, 1}, want: 2},
		{name: "long history behind gap ignored", offsets: []int{0, 1, 3, 4, 5, 6}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var entries []models.MoodEntry
			for _, off := range tt.offsets {
				entries = append(entries, entryOn(today.AddDate(0, 0, -off), 5))
			}
			assert.Equal(t, tt.want, CalculateStreak(entries, today))
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	t.Parallel()

	// Entries newest first.
	build := func(scores ...float64) []models.MoodEntry {
		var entries []models.MoodEntry
		base := day(2024, 3, 20)
		for i, score := range scores {
			entries = append(entries, entryOn(base.AddDate(0, 0, -i), score))
		}
		return entries
	}

	tests := []struct {
		name    string
		entries []models.MoodEntry
		want    string
	}{
		{name: "empty", entries: nil, want: models.TrendInsufficientData},
		{name: "single window only", entries: build(7, 7, 7), want: models.TrendInsufficientData},
		{
			name:    "improving",
			entries: build(8, 8, 8, 8, 8, 8, 8, 5, 5, 5, 5, 5, 5, 5),
			want:    models.TrendImproving,
		},
		{
			name:    "declining",
			entries: build(4, 4, 4, 4, 4, 4, 4, 7, 7, 7, 7, 7, 7, 7),
			want:    models.TrendDeclining,
		},
		{
			name:    "stable within threshold",
			entries: build(6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6),
			want:    models.TrendStable,
		},
		{
			name:    "short previous window still compares",
			entries: build(8, 8, 8, 8, 8, 8, 8, 4),
			want:    models.TrendImproving,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyTrend(tt.entries))
		})
	}
}

func TestBucketKeyMondayOfWeek(t *testing.T) {
	t.Parallel()

	// Sunday belongs to the week starting the previous Monday.
	sunday := day(2024, 3, 10)
	assert.Equal(t, day(2024, 3, 4), bucketKey(sunday, BucketWeek))

	monday := day(2024, 3, 4)
	assert.Equal(t, monday, bucketKey(monday, BucketWeek))
}
