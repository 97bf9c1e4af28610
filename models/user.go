package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered account. The password column holds a bcrypt hash; the
// raw credential never leaves the auth handler.
type User struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Email     *string        `json:"email,omitempty"`
	City      *string        `json:"city,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
