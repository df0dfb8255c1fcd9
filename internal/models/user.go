package models

import (
	"gorm.io/gorm"
)

// User represents a user in the system. Plan holds the subscription tier
// ("free" or "pro") governed by the external billing collaborator.
type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	Plan     string `json:"plan" gorm:"not null;default:'free'"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
