package models

import "time"

// MoodEntry is a user's self-reported mood for one calendar day.
// EntryDate is the day the record describes, not when it was created;
// a user keeps at most one entry per date.
type MoodEntry struct {
	ID     string  `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID string  `gorm:"type:varchar(50);index:idx_user_entry_date,unique" json:"userId"`
	Score  float64 `gorm:"not null" json:"score"` // 1-10
	Text   string  `gorm:"type:text;not null" json:"text"`

	// Optional context
	Activities  []string `gorm:"serializer:json" json:"activities,omitempty"`
	Weather     string   `gorm:"type:varchar(50)" json:"weather,omitempty"`
	SleepHours  float64  `json:"sleepHours,omitempty"`
	StressLevel int      `json:"stressLevel,omitempty"` // 1-10

	EntryDate time.Time `gorm:"index:idx_user_entry_date,unique" json:"entryDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Analysis *AIAnalysis `gorm:"foreignKey:MoodEntryID" json:"analysis,omitempty"`
}
