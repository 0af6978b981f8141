package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/crud"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/R0D10Nq/AIMood-DiaryBot/services"
	"github.com/R0D10Nq/AIMood-DiaryBot/utils"
	"github.com/gin-gonic/gin"
)

const analysisTimeout = 60 * time.Second

// EntryController owns the mood entry write path. The entry row
// always commits before inference starts; analysis runs in a tracked
// background goroutine so a slow or failed provider never loses or
// delays the record.
type EntryController struct {
	entries   *crud.MoodEntryCRUD
	users     *crud.UserCRUD
	analyzer  *services.MoodAnalyzer
	dashboard *services.DashboardService
	wg        sync.WaitGroup
}

func NewEntryController(entries *crud.MoodEntryCRUD, users *crud.UserCRUD, analyzer *services.MoodAnalyzer, dashboard *services.DashboardService) *EntryController {
	return &EntryController{
		entries:   entries,
		users:     users,
		analyzer:  analyzer,
		dashboard: dashboard,
	}
}

// Wait blocks until background analyses finish; used during graceful
// shutdown.
func (ec *EntryController) Wait() {
	ec.wg.Wait()
}

// CreateEntry stores a new mood entry and schedules its analysis.
func (ec *EntryController) CreateEntry(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := ec.users.GetByID(uid); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	entryDate, err := resolveEntryDate(req.EntryDate, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// One entry per user per calendar day.
	if _, err := ec.entries.GetByUserAndDate(uid, entryDate); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("an entry already exists for %s", entryDate.Format("2006-01-02")),
		})
		return
	} else if !errors.Is(err, crud.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry lookup failed"})
		return
	}

	entry := &models.MoodEntry{
		ID:          utils.GenerateID(),
		UserID:      uid,
		Score:       req.Score,
		Text:        req.Text,
		Activities:  req.Activities,
		Weather:     req.Weather,
		SleepHours:  req.SleepHours,
		StressLevel: req.StressLevel,
		EntryDate:   entryDate,
	}

	if err := ec.entries.Create(entry); err != nil {
		config.Logger.Errorw("entry creation failed", "error", err, "userID", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry creation failed"})
		return
	}

	if err := ec.users.IncrementEntries(uid); err != nil {
		config.Logger.Warnw("entry counter increment failed", "error", err, "userID", uid)
	}
	ec.dashboard.Invalidate(c.Request.Context(), uid)

	if c.DefaultQuery("analyze", "true") == "true" {
		ec.scheduleAnalysis(entry, false)
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntry returns one entry with its analysis.
func (ec *EntryController) GetEntry(c *gin.Context) {
	uid := c.GetString("uid")

	entry, ok := ec.loadOwnedEntry(c, uid, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry applies partial changes; with reanalyze=true the old
// analysis is replaced after the update commits.
func (ec *EntryController) UpdateEntry(c *gin.Context) {
	uid := c.GetString("uid")

	entry, ok := ec.loadOwnedEntry(c, uid, c.Param("id"))
	if !ok {
		return
	}

	var req models.UpdateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Score != nil {
		entry.Score = *req.Score
	}
	if req.Text != nil {
		entry.Text = *req.Text
	}
	if req.Activities != nil {
		entry.Activities = req.Activities
	}
	if req.Weather != nil {
		entry.Weather = *req.Weather
	}
	if req.SleepHours != nil {
		entry.SleepHours = *req.SleepHours
	}
	if req.StressLevel != nil {
		entry.StressLevel = *req.StressLevel
	}

	if err := ec.entries.Update(entry); err != nil {
		config.Logger.Errorw("entry update failed", "error", err, "entryID", entry.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry update failed"})
		return
	}
	ec.dashboard.Invalidate(c.Request.Context(), uid)

	if c.Query("reanalyze") == "true" && (req.Text != nil || req.Score != nil) {
		ec.scheduleAnalysis(entry, true)
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes an entry and its analysis.
func (ec *EntryController) DeleteEntry(c *gin.Context) {
	uid := c.GetString("uid")

	entry, ok := ec.loadOwnedEntry(c, uid, c.Param("id"))
	if !ok {
		return
	}

	if err := ec.entries.Delete(entry.ID); err != nil {
		config.Logger.Errorw("entry delete failed", "error", err, "entryID", entry.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry delete failed"})
		return
	}
	if err := ec.users.DecrementEntries(uid); err != nil {
		config.Logger.Warnw("entry counter decrement failed", "error", err, "userID", uid)
	}
	ec.dashboard.Invalidate(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// GetRecentEntries lists the user's entries from the last N days.
func (ec *EntryController) GetRecentEntries(c *gin.Context) {
	uid := c.GetString("uid")

	days := intQuery(c, "days", 7, 1, 365)
	entries, err := ec.entries.GetRecentEntries(uid, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CheckToday reports whether today's entry exists.
func (ec *EntryController) CheckToday(c *gin.Context) {
	uid := c.GetString("uid")

	entry, err := ec.entries.GetByUserAndDate(uid, time.Now().UTC())
	if err != nil && !errors.Is(err, crud.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_entry_today": entry != nil,
		"entry":           entry,
	})
}

// ReanalyzeEntry drops and recreates the entry's analysis on demand.
func (ec *EntryController) ReanalyzeEntry(c *gin.Context) {
	uid := c.GetString("uid")

	entry, ok := ec.loadOwnedEntry(c, uid, c.Param("id"))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	analysis, err := ec.analyzer.Reanalyze(ctx, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "re-analysis failed"})
		return
	}
	ec.dashboard.Invalidate(c.Request.Context(), uid)

	c.JSON(http.StatusOK, analysis)
}

// scheduleAnalysis runs inference off the request path, detached from
// the request context so client disconnects do not cancel it.
func (ec *EntryController) scheduleAnalysis(entry *models.MoodEntry, replace bool) {
	ec.wg.Add(1)
	go func() {
		defer ec.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		var err error
		if replace {
			_, err = ec.analyzer.Reanalyze(ctx, entry)
		} else {
			_, err = ec.analyzer.AnalyzeAndSave(ctx, entry)
		}
		if err != nil {
			config.Logger.Errorw("background analysis failed", "error", err, "entryID", entry.ID)
			return
		}
		ec.dashboard.Invalidate(ctx, entry.UserID)
	}()
}

// resolveEntryDate normalizes the requested calendar day to UTC
// midnight. Empty means today; days after today are rejected.
func resolveEntryDate(raw string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw == "" {
		return today, nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("invalid entry_date, expected YYYY-MM-DD")
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return time.Time{}, errors.New("entry_date cannot be in the future")
	}
	return day, nil
}

func (ec *EntryController) loadOwnedEntry(c *gin.Context, uid, entryID string) (*models.MoodEntry, bool) {
	entry, err := ec.entries.GetByID(entryID)
	if errors.Is(err, crud.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entry lookup failed"})
		return nil, false
	}
	// Foreign entries are indistinguishable from missing ones.
	if entry.UserID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return nil, false
	}
	return entry, true
}
