package models

import (
	"time"

	"gorm.io/gorm"
)

// Category represents a product category
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product represents an inventory item. CurrentQuantity is a denormalized
// running stock level maintained by the stock service: it must always equal
// InitialQuantity plus the signed sum of all remaining ledger entries.
type Product struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	CategoryID      uint      `json:"category_id" gorm:"not null"`
	UnitPrice       float64   `json:"unit_price" gorm:"not null;default:0"`
	InitialQuantity int       `json:"initial_quantity" gorm:"not null;default:0"` // set once at creation
	CurrentQuantity int       `json:"current_quantity" gorm:"not null;default:0"`
	AddedBy         uint      `json:"added_by" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
	Adder    *User    `json:"adder,omitempty" gorm:"foreignKey:AddedBy"`
}

// BeforeCreate sets creation timestamps
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (p *Product) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
