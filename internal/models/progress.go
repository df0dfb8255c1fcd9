package models

import (
	"time"
)

// Progress is a single daily check-in for a task. The unique index on
// (task_id, date) enforces the one-entry-per-day invariant at the engine
// level; recording the same day twice must return the existing row.
type Progress struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"taskId" gorm:"column:task_id;not null;uniqueIndex:idx_progress_task_date"`
	Date      string    `json:"date" gorm:"not null;uniqueIndex:idx_progress_task_date"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Progress Model
func (Progress) TableName() string {
	return "progress"
}
