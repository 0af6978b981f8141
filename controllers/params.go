package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery reads an integer query parameter clamped to [min, max].
func intQuery(c *gin.Context, name string, def, min, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
