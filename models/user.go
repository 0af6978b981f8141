package models

import (
	"time"
)

// User is a diary owner identified through Telegram.
type User struct {
	ID           string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	TelegramID   int64      `gorm:"uniqueIndex" json:"telegramId"`
	Username     string     `gorm:"type:varchar(100)" json:"username"`
	FirstName    string     `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string     `gorm:"type:varchar(100)" json:"lastName"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	TotalEntries int        `gorm:"default:0" json:"totalEntries"` // denormalized mood entry counter
	CreatedAt    time.Time  `json:"createdAt"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
}

func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
