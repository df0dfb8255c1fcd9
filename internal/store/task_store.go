package store

import (
	"errors"
	"log"
	"strings"
	"time"

	"sendloop-api/internal/models"
	"sendloop-api/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cycle length bounds. The schema and the client slider agree on 180 as the
// upper bound, so that is the one enforced here.
const (
	MinCycleLength = 3
	MaxCycleLength = 180
)

const maxTitleLength = 100

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

func today() string {
	return now().Format("2006-01-02")
}

// TaskStore owns task records: creation, reads, partial updates and
// archiving. It consults the access policy on the creation path.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	CycleLength int
	VisualType  models.VisualType
	StartDate   string // YYYY-MM-DD; empty defaults to today
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	CycleLength *int
	VisualType  *models.VisualType
}

func validateTitle(title string) (string, *Error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", validationErr("title", "task title cannot be empty")
	}
	if len(trimmed) > maxTitleLength {
		return "", validationErr("title", "title must be at most 100 characters")
	}
	return trimmed, nil
}

func validateCycleLength(n int) *Error {
	if n < MinCycleLength || n > MaxCycleLength {
		return validationErr("cycleLength", "cycle length must be between 3 and 180 days")
	}
	return nil
}

// Create validates the input, enforces the plan's active-task limit and
// persists a new task. When the plan is already at its limit the existing
// active tasks are archived to make room (the one-seed product rule); their
// IDs are returned so the caller can surface the side effect.
func (s *TaskStore) Create(userID string, plan policy.Plan, in CreateTaskInput) (*models.Task, []string, error) {
	title, verr := validateTitle(in.Title)
	if verr != nil {
		return nil, nil, verr
	}
	if verr := validateCycleLength(in.CycleLength); verr != nil {
		return nil, nil, verr
	}
	if !in.VisualType.Known() {
		return nil, nil, validationErr("visualType", "unknown visual type")
	}
	if !policy.VisualTypeAllowed(plan, in.VisualType) {
		return nil, nil, validationErr("visualType", "visual type is not unlocked on the current plan")
	}

	startDate := in.StartDate
	if startDate == "" {
		startDate = today()
	} else if _, err := time.Parse("2006-01-02", startDate); err != nil {
		return nil, nil, validationErr("startDate", "start date must be YYYY-MM-DD")
	}

	task := models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		CycleLength: in.CycleLength,
		VisualType:  in.VisualType,
		StartDate:   startDate,
	}

	var archived []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active []models.Task
		if err := tx.Where("user_id = ? AND archived = ?", userID, false).Find(&active).Error; err != nil {
			return err
		}

		if !policy.CanCreateTask(plan, len(active)) {
			// Archive everything currently active rather than rejecting the
			// new task. Log each one; this must stay a visible side effect.
			for _, t := range active {
				if err := tx.Model(&models.Task{}).Where("id = ?", t.ID).Update("archived", true).Error; err != nil {
					return err
				}
				archived = append(archived, t.ID)
				log.Printf("task store: plan %q at active-task limit, archived task %s (%q) to make room", plan, t.ID, t.Title)
			}
		}

		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, nil, storageErr(err)
	}

	return &task, archived, nil
}

// GetByID returns one of the user's tasks, archived or not.
func (s *TaskStore) GetByID(userID, id string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("task not found")
		}
		return nil, storageErr(err)
	}
	return &task, nil
}

// Active returns the user's non-archived tasks, most recently created first.
func (s *TaskStore) Active(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return tasks, nil
}

// Update applies the non-nil patch fields. An empty patch degrades to a
// plain read.
func (s *TaskStore) Update(userID, id string, patch TaskPatch) (*models.Task, error) {
	task, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title == nil && patch.CycleLength == nil && patch.VisualType == nil {
		return task, nil
	}

	if patch.Title != nil {
		title, verr := validateTitle(*patch.Title)
		if verr != nil {
			return nil, verr
		}
		task.Title = title
	}
	if patch.CycleLength != nil {
		if verr := validateCycleLength(*patch.CycleLength); verr != nil {
			return nil, verr
		}
		task.CycleLength = *patch.CycleLength
	}
	if patch.VisualType != nil {
		if !patch.VisualType.Known() {
			return nil, validationErr("visualType", "unknown visual type")
		}
		task.VisualType = *patch.VisualType
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, storageErr(err)
	}
	return task, nil
}

// Archive marks a task archived. Archiving twice is not an error.
func (s *TaskStore) Archive(userID, id string) (*models.Task, error) {
	task, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if task.Archived {
		return task, nil
	}
	task.Archived = true
	if err := s.db.Save(task).Error; err != nil {
		return nil, storageErr(err)
	}
	return task, nil
}

// Delete removes a task for real (no soft delete), so the engine's foreign
// key cascade clears the progress ledger. The notification setting has no
// declared relation and is cleaned up here.
func (s *TaskStore) Delete(userID, id string) error {
	task, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.NotificationSetting{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(task).Error
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}
