package models

// TelegramLoginRequest identifies a user via their Telegram account.
type TelegramLoginRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// CreateMoodEntryRequest is the write payload for a new mood entry.
// EntryDate is the calendar day described, "2006-01-02"; empty means
// today.
type CreateMoodEntryRequest struct {
	Score       float64  `json:"score" binding:"required,min=1,max=10"`
	Text        string   `json:"text" binding:"required,max=5000"`
	EntryDate   string   `json:"entry_date"`
	Activities  []string `json:"activities"`
	Weather     string   `json:"weather"`
	SleepHours  float64  `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	StressLevel int      `json:"stress_level" binding:"omitempty,min=1,max=10"`
}

// UpdateMoodEntryRequest carries partial updates; nil fields are left
// untouched.
type UpdateMoodEntryRequest struct {
	Score       *float64 `json:"score" binding:"omitempty,min=1,max=10"`
	Text        *string  `json:"text" binding:"omitempty,max=5000"`
	Activities  []string `json:"activities"`
	Weather     *string  `json:"weather"`
	SleepHours  *float64 `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	StressLevel *int     `json:"stress_level" binding:"omitempty,min=1,max=10"`
}
