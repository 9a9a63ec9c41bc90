package controllers

import (
	"errors"
	"strconv"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles user administration
type UserController struct {
	DB *gorm.DB
}

// NewUserController creates a new UserController
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsers lists all users
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching users"})
	}

	return c.JSON(users)
}

// UpdateUserRole changes a user's role
func (uc *UserController) UpdateUserRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleStaff {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid role"})
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching user"})
	}

	if err := uc.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Error updating user role"})
	}

	return c.JSON(user)
}

// DeleteUser removes a user and returns the deleted record
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching user"})
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Error deleting user"})
	}

	return c.JSON(user)
}
