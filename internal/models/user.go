package models

import "time"

// User represents an account in the system.
type User struct {
	UserID       uint   `gorm:"column:user_id;primaryKey"`
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

// TableName keeps the table name aligned with the seed schema.
func (User) TableName() string { return "users" }
