package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"sendloop-api/internal/cache"
	"sendloop-api/internal/models"
	"sendloop-api/internal/notify"
	"sendloop-api/internal/policy"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/stage"
	"sendloop-api/internal/stats"
	"sendloop-api/internal/store"

	"github.com/gin-gonic/gin"
)

// summaryTTL bounds how stale a cached summary can get; mutations invalidate
// eagerly so this is only a backstop.
const summaryTTL = 5 * time.Second

// TaskHandler serves the task CRUD surface plus the derived-statistics
// summary and the CSV export.
type TaskHandler struct {
	Tasks     *store.TaskStore
	Ledger    *store.ProgressLedger
	Hub       *realtime.Hub
	Summaries *cache.TTLCache[string, TaskSummary]
	Scheduler *notify.Scheduler
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	CycleLength int               `json:"cycleLength" binding:"required"`
	VisualType  models.VisualType `json:"visualType"`
	StartDate   string            `json:"startDate"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	CycleLength *int               `json:"cycleLength"`
	VisualType  *models.VisualType `json:"visualType"`
}

// TaskSummary is the presentation-ready read model: the task, its ledger,
// the derived statistics and the growth stage.
type TaskSummary struct {
	Task    models.Task       `json:"task"`
	Entries []models.Progress `json:"entries"`
	Stats   stats.Stats       `json:"stats"`
	Stage   stage.Stage       `json:"stage"`
}

func planOf(c *gin.Context) policy.Plan {
	return policy.Plan(c.GetString("plan"))
}

// List handles GET /api/tasks
// Returns the user's active (non-archived) tasks, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.Tasks.Active(userID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// Create handles POST /api/tasks
// On the free plan an existing active task is archived to make room; the
// archived IDs are surfaced in the response rather than hidden.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, archived, err := h.Tasks.Create(userID, planOf(c), store.CreateTaskInput{
		Title:       req.Title,
		CycleLength: req.CycleLength,
		VisualType:  req.VisualType,
		StartDate:   req.StartDate,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	for _, id := range archived {
		h.Summaries.Delete(id)
		h.Scheduler.Clear(id)
	}

	h.Hub.Publish(userID, realtime.Event{Type: realtime.EventTaskCreated, TaskID: task.ID})

	c.JSON(http.StatusCreated, gin.H{
		"task":          task,
		"archivedTasks": archived,
	})
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/tasks/:id
// Applies only the fields present in the payload.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.Update(userID, c.Param("id"), store.TaskPatch{
		Title:       req.Title,
		CycleLength: req.CycleLength,
		VisualType:  req.VisualType,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.Summaries.Delete(task.ID)
	h.Hub.Publish(userID, realtime.Event{Type: realtime.EventTaskUpdated, TaskID: task.ID})

	c.JSON(http.StatusOK, task)
}

// Archive handles POST /api/tasks/:id/archive
// Archiving twice is not an error.
func (h *TaskHandler) Archive(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Archive(userID, c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.Summaries.Delete(task.ID)
	h.Scheduler.Clear(task.ID)
	h.Hub.Publish(userID, realtime.Event{Type: realtime.EventTaskArchived, TaskID: task.ID})

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id
// The progress ledger goes with the task via the engine's cascade.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if err := h.Tasks.Delete(userID, taskID); err != nil {
		writeStoreError(c, err)
		return
	}

	h.Summaries.Delete(taskID)
	h.Scheduler.Clear(taskID)
	h.Hub.Publish(userID, realtime.Event{Type: realtime.EventTaskDeleted, TaskID: taskID})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// Summary handles GET /api/tasks/:id/summary
// Statistics are recomputed from the ledger on read, behind a short cache.
func (h *TaskHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	task, err := h.Tasks.GetByID(userID, taskID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	if cached, ok := h.Summaries.Get(taskID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	entries, err := h.Ledger.ForTask(taskID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	dates := make([]string, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
	}

	derived := stats.Compute(dates, task.CycleLength, time.Now())
	summary := TaskSummary{
		Task:    *task,
		Entries: entries,
		Stats:   derived,
		Stage:   stage.ForProgress(task.VisualType, derived.CompletionPercent),
	}
	h.Summaries.Set(taskID, summary, summaryTTL)

	c.JSON(http.StatusOK, summary)
}

// Export handles GET /api/tasks/:id/export
// Streams the ledger as CSV. Gated by the plan's CSVExport flag.
func (h *TaskHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if !policy.FlagsFor(planOf(c)).CSVExport {
		c.JSON(http.StatusForbidden, gin.H{"error": "CSV export requires the pro plan"})
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

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-progress.csv", task.ID))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"date", "recorded_at"})
	for _, e := range entries {
		_ = w.Write([]string{e.Date, e.CreatedAt.Format(time.RFC3339)})
	}
	w.Flush()
}
