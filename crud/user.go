package crud

import (
	"errors"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"gorm.io/gorm"
)

// UserCRUD is the user-store collaborator.
type UserCRUD struct {
	db *gorm.DB
}

func NewUserCRUD(db *gorm.DB) *UserCRUD {
	return &UserCRUD{db: db}
}

func (c *UserCRUD) GetByID(id string) (*models.User, error) {
	var user models.User
	err := c.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserCRUD) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := c.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserCRUD) Create(user *models.User) error {
	return c.db.Create(user).Error
}

// TouchLastSeen records user activity.
func (c *UserCRUD) TouchLastSeen(id string) error {
	now := time.Now().UTC()
	return c.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen", &now).Error
}

// IncrementEntries bumps the denormalized entry counter.
func (c *UserCRUD) IncrementEntries(id string) error {
	return c.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("total_entries", gorm.Expr("total_entries + 1")).Error
}

// DecrementEntries compensates after an entry delete.
func (c *UserCRUD) DecrementEntries(id string) error {
	return c.db.Model(&models.User{}).Where("id = ? AND total_entries > 0", id).
		UpdateColumn("total_entries", gorm.Expr("total_entries - 1")).Error
}

func (c *UserCRUD) Count() (int64, error) {
	var count int64
	err := c.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
