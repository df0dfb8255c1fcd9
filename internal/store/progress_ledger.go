package store

import (
	"errors"
	"time"

	"sendloop-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressLedger owns the append-only daily check-in records. Entries are
// created once, never updated, and only ever removed by an explicit undo.
type ProgressLedger struct {
	db *gorm.DB
}

func NewProgressLedger(db *gorm.DB) *ProgressLedger {
	return &ProgressLedger{db: db}
}

// Record stores a check-in for (taskID, date), defaulting date to today.
// Recording is idempotent: if an entry for the day already exists it is
// returned unchanged with created=false, however the call was raced.
func (l *ProgressLedger) Record(taskID, date string) (entry *models.Progress, created bool, err error) {
	if date == "" {
		date = today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, false, validationErr("date", "date must be YYYY-MM-DD")
	}

	// Referential validity: an entry is meaningless without a live task.
	var count int64
	if err := l.db.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, false, storageErr(err)
	}
	if count == 0 {
		return nil, false, notFoundErr("task not found")
	}

	var existing models.Progress
	err = l.db.Where("task_id = ? AND date = ?", taskID, date).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, storageErr(err)
	}

	fresh := models.Progress{
		ID:     uuid.NewString(),
		TaskID: taskID,
		Date:   date,
	}
	if err := l.db.Create(&fresh).Error; err != nil {
		// A concurrent tap can lose the insert race to the unique index on
		// (task_id, date); the winner's row is the answer either way.
		var winner models.Progress
		if ferr := l.db.Where("task_id = ? AND date = ?", taskID, date).First(&winner).Error; ferr == nil {
			return &winner, false, nil
		}
		return nil, false, storageErr(err)
	}
	return &fresh, true, nil
}

// ForTask returns all entries for a task, most recent date first.
func (l *ProgressLedger) ForTask(taskID string) ([]models.Progress, error) {
	var entries []models.Progress
	err := l.db.Where("task_id = ?", taskID).Order("date desc").Find(&entries).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}

// Dates returns just the entry dates for a task, for the statistics engine.
func (l *ProgressLedger) Dates(taskID string) ([]string, error) {
	var dates []string
	err := l.db.Model(&models.Progress{}).
		Where("task_id = ?", taskID).
		Order("date desc").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return dates, nil
}

// Delete removes the entry for the exact date if present; deleting an
// absent entry is a no-op.
func (l *ProgressLedger) Delete(taskID, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return validationErr("date", "date must be YYYY-MM-DD")
	}
	err := l.db.Where("task_id = ? AND date = ?", taskID, date).Delete(&models.Progress{}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}
