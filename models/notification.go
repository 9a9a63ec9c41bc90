package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification represents an in-app notification for a user
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Message   string    `json:"message" gorm:"not null;type:text"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets the creation timestamp
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return nil
}
