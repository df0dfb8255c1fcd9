package handlers

import (
	"net/http"
	"time"

	"sendloop-api/internal/cache"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/stage"
	"sendloop-api/internal/stats"
	"sendloop-api/internal/store"

	"github.com/gin-gonic/gin"
)

// ProgressHandler serves the daily check-in surface: record, list, undo.
type ProgressHandler struct {
	Tasks     *store.TaskStore
	Ledger    *store.ProgressLedger
	Hub       *realtime.Hub
	Summaries *cache.TTLCache[string, TaskSummary]
}

// RecordProgressRequest optionally overrides the check-in date.
type RecordProgressRequest struct {
	Date string `json:"date"`
}

// Record handles POST /api/tasks/:id/progress
// The one-seed-tap rule: recording the same day twice returns the existing
// entry with 200 instead of creating a duplicate.
func (h *ProgressHandler) Record(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req RecordProgressRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	entry, created, err := h.Ledger.Record(task.ID, req.Date)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.Summaries.Delete(task.ID)

	// Push the fresh percentage and stage so clients can animate growth
	// without a second round trip.
	dates, derr := h.Ledger.Dates(task.ID)
	if derr == nil {
		derived := stats.Compute(dates, task.CycleLength, time.Now())
		h.Hub.Publish(userID, realtime.Event{
			Type:   realtime.EventProgressRecorded,
			TaskID: task.ID,
			Payload: map[string]any{
				"date":                 entry.Date,
				"completionPercentage": derived.CompletionPercent,
				"currentStreak":        derived.CurrentStreak,
				"stage":                stage.ForProgress(task.VisualType, derived.CompletionPercent),
			},
		})
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, entry)
}

// List handles GET /api/tasks/:id/progress
func (h *ProgressHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	entries, err := h.Ledger.ForTask(task.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// Delete handles DELETE /api/tasks/:id/progress/:date
// This is the undo path; removing an absent entry is a no-op.
func (h *ProgressHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	date := c.Param("date")
	if err := h.Ledger.Delete(task.ID, date); err != nil {
		writeStoreError(c, err)
		return
	}

	h.Summaries.Delete(task.ID)
	h.Hub.Publish(userID, realtime.Event{
		Type:    realtime.EventProgressDeleted,
		TaskID:  task.ID,
		Payload: map[string]any{"date": date},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Progress entry removed",
		"date":    date,
	})
}
