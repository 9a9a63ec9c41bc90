package services

import (
	"errors"
	"fmt"
	"time"

	"stockcard-backend/models"

	"gorm.io/gorm"
)

// Error kinds recoverable at the controller boundary. Every failure leaves both
// the products table and the ledger unchanged.
var (
	// ErrProductNotFound is returned when a referenced product does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrTransactionNotFound is returned when a ledger entry does not exist
	ErrTransactionNotFound = errors.New("stock transaction not found")
	// ErrInsufficientStock is returned when an operation would drive a
	// product's current quantity negative
	ErrInsufficientStock = errors.New("insufficient stock: resulting quantity would be negative")
)

// ValidationError reports an invalid transaction request
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StockService keeps the denormalized current_quantity on products consistent
// with the stock transaction ledger. Every create, patch and delete runs as a
// single database transaction: either the ledger write and the quantity update
// both commit, or neither does.
type StockService struct {
	DB *gorm.DB
}

// NewStockService creates a new StockService
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{DB: db}
}

// CreateTransactionInput carries a new ledger entry request
type CreateTransactionInput struct {
	ProductID       uint       `json:"product_id"`
	TransactionType string     `json:"transaction_type"`
	Quantity        int        `json:"quantity"`
	Date            *time.Time `json:"date"`
	Remarks         string     `json:"remarks"`
	SupplierID      *uint      `json:"supplier_id"`
	CollectedBy     string     `json:"collected_by"`
	DepartmentID    *uint      `json:"department_id"`
	PerformedBy     uint       `json:"-"`
}

// TransactionPatch is a merge-patch over an existing ledger entry: nil fields
// keep their existing values, present fields overwrite them.
type TransactionPatch struct {
	ProductID       *uint      `json:"product_id"`
	TransactionType *string    `json:"transaction_type"`
	Quantity        *int       `json:"quantity"`
	Date            *time.Time `json:"date"`
	Remarks         *string    `json:"remarks"`
	SupplierID      *uint      `json:"supplier_id"`
	CollectedBy     *string    `json:"collected_by"`
	DepartmentID    *uint      `json:"department_id"`
	PerformedBy     *uint      `json:"performed_by"`
}

// effect returns the signed delta a ledger entry contributes to a product's
// stock. Adjustment quantities are already signed.
func effect(transactionType string, quantity int) int {
	switch transactionType {
	case models.TransactionTypeInbound:
		return quantity
	case models.TransactionTypeOutbound:
		return -quantity
	case models.TransactionTypeAdjustment:
		return quantity
	}
	return 0
}

// validateCreate checks type, quantity sign and type-specific required fields
func validateCreate(input *CreateTransactionInput) error {
	if !models.IsValidTransactionType(input.TransactionType) {
		return validationErrorf("invalid transaction type %q", input.TransactionType)
	}

	switch input.TransactionType {
	case models.TransactionTypeInbound, models.TransactionTypeOutbound:
		if input.Quantity <= 0 {
			return validationErrorf("%s transactions require a positive quantity", input.TransactionType)
		}
	}

	// Outbound stock must be issued to a department. Zero-quantity
	// adjustments are accepted and recorded as a no-op.
	if input.TransactionType == models.TransactionTypeOutbound && input.DepartmentID == nil {
		return validationErrorf("outbound transactions require a department_id")
	}

	return nil
}

// CreateStockTransaction records a new ledger entry and applies its effect to
// the product's current quantity. Outbound and adjustment entries that would
// drive the quantity negative fail with ErrInsufficientStock and write nothing.
func (s *StockService) CreateStockTransaction(input *CreateTransactionInput) (uint, error) {
	if err := validateCreate(input); err != nil {
		return 0, err
	}

	entry := models.StockTransaction{
		ProductID:       input.ProductID,
		TransactionType: input.TransactionType,
		Quantity:        input.Quantity,
		Remarks:         input.Remarks,
		SupplierID:      input.SupplierID,
		CollectedBy:     input.CollectedBy,
		DepartmentID:    input.DepartmentID,
		PerformedBy:     input.PerformedBy,
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		delta := effect(input.TransactionType, input.Quantity)
		if input.TransactionType != models.TransactionTypeInbound &&
			product.CurrentQuantity+delta < 0 {
			return ErrInsufficientStock
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("current_quantity", gorm.Expr("current_quantity + ?", delta)).Error
	})
	if err != nil {
		return 0, err
	}

	return entry.ID, nil
}

// GetStockTransaction returns a ledger entry with its display relations
func (s *StockService) GetStockTransaction(id uint) (*models.StockTransaction, error) {
	var entry models.StockTransaction
	err := s.DB.Preload("Product").Preload("Supplier").Preload("Department").
		Preload("Performer").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// PatchStockTransaction applies a merge-patch to a ledger entry, reversing the
// old effect and applying the new one where the patch touches the type or
// quantity. The whole update is one database transaction.
//
// The negative-stock guard is skipped whenever the existing or the requested
// type is adjustment, even across a type change.
func (s *StockService) PatchStockTransaction(id uint, patch *TransactionPatch) (*models.StockTransaction, error) {
	var existing models.StockTransaction
	if err := s.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	// Resolve effective values: absent fields keep their existing values.
	newType := existing.TransactionType
	if patch.TransactionType != nil {
		newType = *patch.TransactionType
	}
	newQuantity := existing.Quantity
	if patch.Quantity != nil {
		newQuantity = *patch.Quantity
	}
	productID := existing.ProductID
	if patch.ProductID != nil {
		productID = *patch.ProductID
	}

	if !models.IsValidTransactionType(newType) {
		return nil, validationErrorf("invalid transaction type %q", newType)
	}
	if patch.Quantity != nil || patch.TransactionType != nil {
		switch newType {
		case models.TransactionTypeInbound, models.TransactionTypeOutbound:
			if newQuantity <= 0 {
				return nil, validationErrorf("%s transactions require a positive quantity", newType)
			}
		}
	}

	// Net inventory change, in this exact precedence: a type change reverses
	// the full old effect and applies the full new one; a quantity-only
	// change applies the delta of the delta; anything else touches no stock.
	netChange := 0
	typeChanged := patch.TransactionType != nil && *patch.TransactionType != existing.TransactionType
	if typeChanged {
		netChange -= effect(existing.TransactionType, existing.Quantity)
		netChange += effect(newType, newQuantity)
	} else if patch.Quantity != nil && *patch.Quantity != existing.Quantity {
		netChange += effect(existing.TransactionType, newQuantity) -
			effect(existing.TransactionType, existing.Quantity)
	}

	isAdjustmentChange := existing.TransactionType == models.TransactionTypeAdjustment ||
		(patch.TransactionType != nil && *patch.TransactionType == models.TransactionTypeAdjustment)

	updates := patchFields(patch)
	if len(updates) == 0 {
		return nil, validationErrorf("no valid fields to update")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if !isAdjustmentChange && product.CurrentQuantity+netChange < 0 {
			return ErrInsufficientStock
		}

		if netChange != 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", productID).
				Update("current_quantity", gorm.Expr("current_quantity + ?", netChange)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.StockTransaction{}).Where("id = ?", id).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetStockTransaction(id)
}

// patchFields maps the present patch fields to their column updates
func patchFields(patch *TransactionPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.ProductID != nil {
		updates["product_id"] = *patch.ProductID
	}
	if patch.TransactionType != nil {
		updates["transaction_type"] = *patch.TransactionType
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.Remarks != nil {
		updates["remarks"] = *patch.Remarks
	}
	if patch.SupplierID != nil {
		updates["supplier_id"] = *patch.SupplierID
	}
	if patch.CollectedBy != nil {
		updates["collected_by"] = *patch.CollectedBy
	}
	if patch.DepartmentID != nil {
		updates["department_id"] = *patch.DepartmentID
	}
	if patch.PerformedBy != nil {
		updates["performed_by"] = *patch.PerformedBy
	}
	return updates
}

// DeleteStockTransaction removes a ledger entry and reverses its effect on the
// product's stock. Only inbound and outbound entries are reversed; adjustment
// deletions leave the quantity as is. There is no negative-stock guard on
// deletion.
func (s *StockService) DeleteStockTransaction(id uint) error {
	var entry models.StockTransaction
	if err := s.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		switch entry.TransactionType {
		case models.TransactionTypeInbound:
			if err := tx.Model(&models.Product{}).Where("id = ?", entry.ProductID).
				Update("current_quantity", gorm.Expr("current_quantity - ?", entry.Quantity)).Error; err != nil {
				return err
			}
		case models.TransactionTypeOutbound:
			if err := tx.Model(&models.Product{}).Where("id = ?", entry.ProductID).
				Update("current_quantity", gorm.Expr("current_quantity + ?", entry.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.StockTransaction{}, id).Error
	})
}
