package handlers

import (
	"errors"
	"net/http"

	"sendloop-api/internal/models"
	"sendloop-api/internal/notify"
	"sendloop-api/internal/policy"
	"sendloop-api/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotificationHandler manages per-task reminder settings and keeps the live
// scheduler in sync with them.
type NotificationHandler struct {
	DB        *gorm.DB
	Tasks     *store.TaskStore
	Scheduler *notify.Scheduler
}

// NotificationRequest is the payload for PUT .../notification.
type NotificationRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// Get handles GET /api/tasks/:id/notification
// A task with no stored setting reports the disabled default.
func (h *NotificationHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	var setting models.NotificationSetting
	err = h.DB.Where("task_id = ?", task.ID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.NotificationSetting{
			TaskID: task.ID,
			Time:   notify.DefaultReminderTime,
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification setting"})
		return
	}

	c.JSON(http.StatusOK, setting)
}

// Set handles PUT /api/tasks/:id/notification
// Time customization is a pro feature; the free plan stays on the default
// reminder time.
func (h *NotificationHandler) Set(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	clock := req.Time
	if clock == "" {
		clock = notify.DefaultReminderTime
	}
	if _, _, err := notify.ParseClock(clock); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time must be HH:MM (24-hour)", "field": "time"})
		return
	}
	if clock != notify.DefaultReminderTime && !policy.FlagsFor(planOf(c)).NotificationCustomization {
		c.JSON(http.StatusForbidden, gin.H{"error": "Reminder time customization requires the pro plan"})
		return
	}

	setting := models.NotificationSetting{
		TaskID:  task.ID,
		Enabled: req.Enabled,
		Time:    clock,
	}
	if err := h.DB.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification setting"})
		return
	}

	if err := h.Scheduler.Apply(setting); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule reminder"})
		return
	}

	c.JSON(http.StatusOK, setting)
}
