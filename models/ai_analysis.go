package models

import "time"

// AIAnalysis is the structured emotional analysis attached to exactly
// one mood entry. It is created whole and replaced whole on
// re-analysis, never updated in place. AIModel records which rung of
// the degradation ladder produced it: the real model name, "mock"
// when no provider is configured, or "<model>-fallback" after a
// provider error.
type AIAnalysis struct {
	ID          string `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID      string `gorm:"type:varchar(50);index" json:"userId"`
	MoodEntryID string `gorm:"type:varchar(50);uniqueIndex" json:"moodEntryId"`

	SentimentScore float64 `json:"sentimentScore"` // -1..1
	SentimentLabel string  `gorm:"type:varchar(20)" json:"sentimentLabel"`

	Emotions        map[string]float64 `gorm:"serializer:json" json:"emotions"` // name -> 0..1
	DominantEmotion string             `gorm:"type:varchar(50)" json:"dominantEmotion"`

	Keywords []string `gorm:"serializer:json" json:"keywords"`
	Themes   []string `gorm:"serializer:json" json:"themes"`

	Recommendations string `gorm:"type:text" json:"recommendations"`
	Insights        string `gorm:"type:text" json:"insights"`

	AIModel         string  `gorm:"type:varchar(50)" json:"aiModel"`
	ProcessingTime  float64 `json:"processingTime"` // seconds
	ConfidenceScore float64 `json:"confidenceScore"`

	AnalyzedAt time.Time `json:"analyzedAt"`
}
