package controllers

import (
	"errors"
	"strconv"
	"strings"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DepartmentController handles department reference data
type DepartmentController struct {
	DB *gorm.DB
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

// GetDepartments lists all departments ordered by name
func (dc *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := dc.DB.Order("name").Find(&departments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching departments"})
	}

	return c.JSON(departments)
}

// CreateDepartment adds a department
func (dc *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Department name is required"})
	}

	department := models.Department{Name: strings.TrimSpace(req.Name)}
	if err := dc.DB.Create(&department).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"message": "Department already exists"})
	}

	return c.Status(201).JSON(department)
}

// UpdateDepartment renames a department
func (dc *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid department ID"})
	}

	var department models.Department
	if err := dc.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Department not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching department"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Department name is required"})
	}

	if err := dc.DB.Model(&department).Update("name", strings.TrimSpace(req.Name)).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error updating department"})
	}

	return c.JSON(department)
}

// DeleteDepartment removes a department
func (dc *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid department ID"})
	}

	result := dc.DB.Delete(&models.Department{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting department"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Department not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
