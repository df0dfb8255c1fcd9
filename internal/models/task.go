package models

import (
	"gorm.io/gorm"
)

// VisualType selects the growth visualization rendered for a task.
// The numeric encoding is persisted in the tasks table; do not reorder.
type VisualType int

const (
	VisualTree VisualType = iota
	VisualGarden
	VisualPet
	VisualStars
)

// Known reports whether the value is one of the persisted visual types.
func (v VisualType) Known() bool {
	return v >= VisualTree && v <= VisualStars
}

// Task represents a recurring habit with a target cycle length
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"-" gorm:"column:user_id;index"`
	Title       string     `json:"title" gorm:"not null"`
	CycleLength int        `json:"cycleLength" gorm:"column:cycle_length;not null"`
	VisualType  VisualType `json:"visualType" gorm:"column:visual_type;not null;default:0"`
	StartDate   string     `json:"startDate" gorm:"column:start_date;not null"`
	Archived    bool       `json:"archived" gorm:"not null;default:false;index"`

	// Entries is the task's progress ledger. The cascade means deleting a
	// task removes its whole ledger at the engine level.
	Entries []Progress `json:"-" gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE"`

	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
