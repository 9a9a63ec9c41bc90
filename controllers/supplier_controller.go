package controllers

import (
	"errors"
	"strconv"
	"strings"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SupplierController handles supplier reference data
type SupplierController struct {
	DB *gorm.DB
}

// NewSupplierController creates a new SupplierController
func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

// SupplierRequest is the create/update body for suppliers
type SupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// GetSuppliers lists all suppliers ordered by name
func (sc *SupplierController) GetSuppliers(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := sc.DB.Order("name").Find(&suppliers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching suppliers"})
	}

	return c.JSON(suppliers)
}

// CreateSupplier adds a supplier
func (sc *SupplierController) CreateSupplier(c *fiber.Ctx) error {
	var req SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Supplier name is required"})
	}

	supplier := models.Supplier{
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}

	if err := sc.DB.Create(&supplier).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"message": "Supplier already exists"})
	}

	return c.Status(201).JSON(supplier)
}

// UpdateSupplier replaces a supplier's fields
func (sc *SupplierController) UpdateSupplier(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}

	var supplier models.Supplier
	if err := sc.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Supplier not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching supplier"})
	}

	var req SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Supplier name is required"})
	}

	if err := sc.DB.Model(&supplier).Updates(map[string]interface{}{
		"name":           strings.TrimSpace(req.Name),
		"contact_person": req.ContactPerson,
		"phone":          req.Phone,
		"email":          req.Email,
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error updating supplier"})
	}

	return c.JSON(supplier)
}

// DeleteSupplier removes a supplier
func (sc *SupplierController) DeleteSupplier(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}

	result := sc.DB.Delete(&models.Supplier{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting supplier"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Supplier not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
