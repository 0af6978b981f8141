package crud

import (
	"errors"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"gorm.io/gorm"
)

// MoodEntryCRUD is the record-store collaborator for mood entries and
// their attached analyses.
type MoodEntryCRUD struct {
	db *gorm.DB
}

func NewMoodEntryCRUD(db *gorm.DB) *MoodEntryCRUD {
	return &MoodEntryCRUD{db: db}
}

// GetByID loads an entry with its analysis, if any.
func (c *MoodEntryCRUD) GetByID(id string) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := c.db.Preload("Analysis").Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByUserAndDate finds the user's entry for one calendar day.
func (c *MoodEntryCRUD) GetByUserAndDate(userID string, day time.Time) (*models.MoodEntry, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var entry models.MoodEntry
	err := c.db.Preload("Analysis").
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, dayStart, dayEnd).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetUserEntries returns the user's entries within [start, end],
// ordered by entry date descending. Nil bounds are open.
func (c *MoodEntryCRUD) GetUserEntries(userID string, start, end *time.Time, limit int) ([]models.MoodEntry, error) {
	query := c.db.Preload("Analysis").Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("entry_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("entry_date <= ?", *end)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.MoodEntry
	if err := query.Order("entry_date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRecentEntries returns entries from the last N days.
func (c *MoodEntryCRUD) GetRecentEntries(userID string, days int) ([]models.MoodEntry, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)
	return c.GetUserEntries(userID, &start, nil, 0)
}

// GetAllByUser returns the user's full history, newest first.
func (c *MoodEntryCRUD) GetAllByUser(userID string) ([]models.MoodEntry, error) {
	return c.GetUserEntries(userID, nil, nil, 0)
}

func (c *MoodEntryCRUD) Create(entry *models.MoodEntry) error {
	return c.db.Create(entry).Error
}

func (c *MoodEntryCRUD) Update(entry *models.MoodEntry) error {
	return c.db.Save(entry).Error
}

// Delete removes an entry together with its analysis.
func (c *MoodEntryCRUD) Delete(id string) error {
	entry, err := c.GetByID(id)
	if err != nil {
		return err
	}
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mood_entry_id = ?", id).Delete(&models.AIAnalysis{}).Error; err != nil {
			return err
		}
		return tx.Delete(entry).Error
	})
}

func (c *MoodEntryCRUD) CountByUser(userID string) (int64, error) {
	var count int64
	err := c.db.Model(&models.MoodEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SaveAnalysis attaches a freshly produced analysis to its entry.
func (c *MoodEntryCRUD) SaveAnalysis(analysis *models.AIAnalysis) error {
	return c.db.Create(analysis).Error
}

// DeleteAnalysisForEntry drops the entry's analysis before
// re-analysis. Deleting a non-existent analysis is not an error.
func (c *MoodEntryCRUD) DeleteAnalysisForEntry(entryID string) error {
	return c.db.Where("mood_entry_id = ?", entryID).Delete(&models.AIAnalysis{}).Error
}
