package models

import (
	"time"

	"gorm.io/gorm"
)

// Card statuses
const (
	CardStatusPending   = "Pending"
	CardStatusCollected = "Collected"
)

// Card represents a membership card record
type Card struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FirstName    string     `json:"firstname" gorm:"not null;size:100"`
	LastName     string     `json:"lastname" gorm:"not null;size:100"`
	NRC          string     `json:"nrc" gorm:"column:nrc;not null;uniqueIndex;size:50"`
	Type         string     `json:"type" gorm:"size:50"`
	FieldOfStudy string     `json:"field_of_study" gorm:"size:255"`
	Status       string     `json:"status" gorm:"not null;default:'Pending'"`
	ReceiptID    *uint      `json:"receipt_id"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CreatedAt    time.Time  `json:"created" gorm:"column:created"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Receipt *Receipt `json:"receipt,omitempty" gorm:"foreignKey:ReceiptID"`
}

// Receipt represents an uploaded payment receipt file
type Receipt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Filename   string    `json:"filename" gorm:"not null;size:255"`
	Filepath   string    `json:"filepath" gorm:"not null;size:500"`
	UploadedBy uint      `json:"uploaded_by" gorm:"not null"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Renewal records a card renewal backed by a new receipt
type Renewal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CardID    uint      `json:"card_id" gorm:"not null;index"`
	ReceiptID uint      `json:"receipt_id" gorm:"not null"`
	RenewedBy uint      `json:"renewed_by" gorm:"not null"`
	RenewedAt time.Time `json:"renewed_at"`

	// Relations
	Card    Card    `json:"card" gorm:"foreignKey:CardID"`
	Receipt Receipt `json:"receipt" gorm:"foreignKey:ReceiptID"`
	Renewer *User   `json:"renewer,omitempty" gorm:"foreignKey:RenewedBy"`
}

// BeforeCreate sets creation timestamps
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if c.Status == "" {
		c.Status = CardStatusPending
	}
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate sets the upload timestamp
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now()
	}
	return nil
}

// BeforeCreate sets the renewal timestamp
func (r *Renewal) BeforeCreate(tx *gorm.DB) error {
	if r.RenewedAt.IsZero() {
		r.RenewedAt = time.Now()
	}
	return nil
}
