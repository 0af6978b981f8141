package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/crud"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/R0D10Nq/AIMood-DiaryBot/utils"
	"github.com/gin-gonic/gin"
)

// AuthController handles Telegram-identity login.
type AuthController struct {
	users *crud.UserCRUD
}

func NewAuthController(users *crud.UserCRUD) *AuthController {
	return &AuthController{users: users}
}

// TelegramLogin finds or creates the user for a Telegram identity and
// issues a JWT.
func (ac *AuthController) TelegramLogin(c *gin.Context) {
	var req models.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.GetByTelegramID(req.TelegramID)
	if errors.Is(err, crud.ErrNotFound) {
		user = &models.User{
			ID:         utils.GenerateID(),
			TelegramID: req.TelegramID,
			Username:   req.Username,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			IsActive:   true,
			CreatedAt:  time.Now().UTC(),
		}
		if err := ac.users.Create(user); err != nil {
			config.Logger.Errorw("user creation failed",
				"error", err,
				"telegramID", req.TelegramID,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
			return
		}
		config.Logger.Infow("user created", "userID", user.ID, "telegramID", req.TelegramID)
	} else if err != nil {
		config.Logger.Errorw("user lookup failed", "error", err, "telegramID", req.TelegramID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	if err := ac.users.TouchLastSeen(user.ID); err != nil {
		config.Logger.Warnw("failed to touch last seen", "error", err, "userID", user.ID)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.GetDisplayName(),
		},
	})
}
