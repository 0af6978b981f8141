package controllers

import (
	"errors"
	"net/http"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/crud"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *crud.UserCRUD
}

func NewUserController(users *crud.UserCRUD) *UserController {
	return &UserController{users: users}
}

// GetUser returns the authenticated user's profile.
func (uc *UserController) GetUser(c *gin.Context) {
	uid := c.GetString("uid")

	user, err := uc.users.GetByID(uid)
	if errors.Is(err, crud.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		config.Logger.Errorw("user lookup failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
