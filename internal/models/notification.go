package models

import (
	"time"
)

// NotificationSetting stores the daily reminder preference for a task.
// Time is "HH:MM" in 24-hour form; empty means the default reminder time.
type NotificationSetting struct {
	TaskID    string    `json:"taskId" gorm:"column:task_id;primaryKey"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:false"`
	Time      string    `json:"time"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for NotificationSetting Model
func (NotificationSetting) TableName() string {
	return "notification_settings"
}
