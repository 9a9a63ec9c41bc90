package models

import (
	"time"

	"gorm.io/gorm"
)

// Stock transaction types. The set is closed: inbound and outbound carry a
// positive magnitude, adjustment carries a signed delta.
const (
	TransactionTypeInbound    = "inbound"
	TransactionTypeOutbound   = "outbound"
	TransactionTypeAdjustment = "adjustment"
)

// IsValidTransactionType reports whether t is one of the allowed types
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeInbound, TransactionTypeOutbound, TransactionTypeAdjustment:
		return true
	}
	return false
}

// StockTransaction is a single recorded stock movement for a product.
// SupplierID applies only to inbound entries; CollectedBy and DepartmentID
// only to outbound entries.
type StockTransaction struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ProductID       uint      `json:"product_id" gorm:"not null;index"`
	TransactionType string    `json:"transaction_type" gorm:"not null;size:20;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	Date            time.Time `json:"date" gorm:"not null;index"`
	Remarks         string    `json:"remarks" gorm:"type:text"`
	SupplierID      *uint     `json:"supplier_id"`
	CollectedBy     string    `json:"collected_by" gorm:"size:255"`
	DepartmentID    *uint     `json:"department_id"`
	PerformedBy     uint      `json:"performed_by" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Product    Product     `json:"product" gorm:"foreignKey:ProductID"`
	Supplier   *Supplier   `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Performer  *User       `json:"performer,omitempty" gorm:"foreignKey:PerformedBy"`
}

// BeforeCreate sets creation timestamps and defaults the movement date
func (st *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if st.Date.IsZero() {
		st.Date = time.Now()
	}
	st.CreatedAt = time.Now()
	st.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate refreshes the update timestamp
func (st *StockTransaction) BeforeUpdate(tx *gorm.DB) error {
	st.UpdatedAt = time.Now()
	return nil
}
