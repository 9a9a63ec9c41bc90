package controllers

import (
	"strconv"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController handles in-app notifications
type NotificationController struct {
	DB *gorm.DB
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications lists notifications for the authenticated user
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching notifications"})
	}

	return c.JSON(notifications)
}

// MarkRead marks a notification as read
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid notification ID"})
	}

	result := nc.DB.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error marking notification as read"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Notification not found"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
