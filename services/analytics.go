package services

import (
	"math"
	"sort"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/models"
)

// Bucket granularities for Aggregate.
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// Aggregate computes period statistics over the entries whose entry
// date falls inside [start, end] inclusive. An empty window is a
// valid result with zero averages and distributions, not an error.
func Aggregate(entries []models.MoodEntry, start, end time.Time, granularity string) models.PeriodStat {
	stat := models.PeriodStat{
		Period:    granularity,
		StartDate: dateOnly(start).Format("2006-01-02"),
		EndDate:   dateOnly(end).Format("2006-01-02"),
		Buckets:   []models.BucketAverage{},
	}

	filtered := filterByDate(entries, start, end)
	stat.TotalEntries = len(filtered)
	if len(filtered) == 0 {
		return stat
	}

	var sum float64
	buckets := map[time.Time][]float64{}
	for _, entry := range filtered {
		sum += entry.Score

		switch band := scoreBand(entry.Score); band {
		case "positive":
			stat.MoodDistribution.Positive++
		case "neutral":
			stat.MoodDistribution.Neutral++
		default:
			stat.MoodDistribution.Negative++
		}

		key := bucketKey(entry.EntryDate, granularity)
		buckets[key] = append(buckets[key], entry.Score)
	}
	stat.AverageMood = round2(sum / float64(len(filtered)))

	keys := make([]time.Time, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	for _, key := range keys {
		scores := buckets[key]
		var bucketSum float64
		for _, s := range scores {
			bucketSum += s
		}
		stat.Buckets = append(stat.Buckets, models.BucketAverage{
			Date:         key.Format("2006-01-02"),
			AverageMood:  round2(bucketSum / float64(len(scores))),
			EntriesCount: len(scores),
		})
	}

	if avgs, _ := EmotionAverages(filtered); len(avgs) > 0 {
		stat.EmotionAverages = avgs
	}

	return stat
}

// EmotionAverages averages each emotion over the entries whose
// analysis carries it; entries lacking a given emotion key do not
// contribute a zero. The returned slice records names in first-seen
// entry order, visiting each entry's names alphabetically: the map
// (and its JSON-serialized column) does not preserve the provider's
// key order, so within one entry alphabetical stands in for it. The
// slice is the tie-break order for DominantEmotion.
func EmotionAverages(entries []models.MoodEntry) (map[string]float64, []string) {
	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string

	for _, entry := range entries {
		if entry.Analysis == nil {
			continue
		}
		// Iterate recorded names in a stable order so ties resolve
		// deterministically.
		names := make([]string, 0, len(entry.Analysis.Emotions))
		for name := range entry.Analysis.Emotions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, seen := sums[name]; !seen {
				order = append(order, name)
			}
			sums[name] += entry.Analysis.Emotions[name]
			counts[name]++
		}
	}

	avgs := make(map[string]float64, len(sums))
	for name, sum := range sums {
		avgs[name] = round2(sum / float64(counts[name]))
	}
	return avgs, order
}

// DominantEmotion picks the emotion with the highest average;
// ties break toward the earlier first-seen name. Empty input yields
// "undetermined".
func DominantEmotion(entries []models.MoodEntry) string {
	avgs, order := EmotionAverages(entries)
	if len(avgs) == 0 {
		return "undetermined"
	}

	dominant := order[0]
	for _, name := range order[1:] {
		if avgs[name] > avgs[dominant] {
			dominant = name
		}
	}
	return dominant
}

// CalculateStreak counts consecutive calendar days with at least one
// entry, walking back from today. A day without an entry ends the
// streak immediately; an entry dated today is required for any
// positive streak.
func CalculateStreak(entries []models.MoodEntry, today time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	seen := map[time.Time]bool{}
	var dates []time.Time
	for _, entry := range entries {
		day := dateOnly(entry.EntryDate)
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 0
	todayDate := dateOnly(today)
	for i, day := range dates {
		expected := todayDate.AddDate(0, 0, -i)
		if !day.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// ClassifyTrend compares the averages of the most recent (up to 7)
// entries against the previous (up to 7) with a +-0.5 threshold.
// Entries must be ordered by entry date descending. Without a
// previous window there is nothing to compare against.
func ClassifyTrend(entries []models.MoodEntry) string {
	recent := entries
	if len(recent) > 7 {
		recent = recent[:7]
	}
	previous := []models.MoodEntry(nil)
	if len(entries) > 7 {
		previous = entries[7:]
		if len(previous) > 7 {
			previous = previous[:7]
		}
	}

	if len(recent) == 0 || len(previous) == 0 {
		return models.TrendInsufficientData
	}

	diff := meanScore(recent) - meanScore(previous)
	switch {
	case diff > 0.5:
		return models.TrendImproving
	case diff < -0.5:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func filterByDate(entries []models.MoodEntry, start, end time.Time) []models.MoodEntry {
	startDay := dateOnly(start)
	endDay := dateOnly(end)

	var filtered []models.MoodEntry
	for _, entry := range entries {
		day := dateOnly(entry.EntryDate)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// bucketKey maps an entry date to its aggregation bucket: the day
// itself, the Monday of its week, or the first of its month.
func bucketKey(t time.Time, granularity string) time.Time {
	day := dateOnly(t)
	switch granularity {
	case BucketWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case BucketMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func scoreBand(score float64) string {
	switch {
	case score >= 7:
		return "positive"
	case score >= 4:
		return "neutral"
	default:
		return "negative"
	}
}

func meanScore(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, entry := range entries {
		sum += entry.Score
	}
	return sum / float64(len(entries))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
