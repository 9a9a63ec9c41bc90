package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptController handles receipt upload and retrieval
type ReceiptController struct {
	DB        *gorm.DB
	UploadDir string
}

// NewReceiptController creates a new ReceiptController. Uploads are stored
// under dir, which is created on first use.
func NewReceiptController(db *gorm.DB, dir string) *ReceiptController {
	if dir == "" {
		dir = "uploads/receipts"
	}
	return &ReceiptController{DB: db, UploadDir: dir}
}

// UploadReceipt stores an uploaded receipt file and its database record.
// Stored filenames are generated; the original name is kept on the record.
func (rc *ReceiptController) UploadReceipt(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok || userID == 0 {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "No file uploaded"})
	}

	if err := os.MkdirAll(rc.UploadDir, 0755); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error uploading receipt"})
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	filePath := filepath.Join(rc.UploadDir, storedName)

	if err := c.SaveFile(file, filePath); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error uploading receipt"})
	}

	receipt := models.Receipt{
		Filename:   file.Filename,
		Filepath:   filePath,
		UploadedBy: userID,
	}

	if err := rc.DB.Create(&receipt).Error; err != nil {
		os.Remove(filePath)
		return c.Status(500).JSON(fiber.Map{"message": "Error uploading receipt"})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":         receipt.ID,
		"filename":   receipt.Filename,
		"filepath":   receipt.Filepath,
		"uploadedBy": receipt.UploadedBy,
	})
}

// GetReceipt sends the stored file for a receipt
func (rc *ReceiptController) GetReceipt(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid receipt ID"})
	}

	var receipt models.Receipt
	if err := rc.DB.First(&receipt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Receipt not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching receipt"})
	}

	absPath, err := filepath.Abs(receipt.Filepath)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching receipt"})
	}

	return c.SendFile(absPath)
}

// GetRecentReceipts lists the 50 most recent receipts, optionally filtered by
// a filename search term
func (rc *ReceiptController) GetRecentReceipts(c *fiber.Ctx) error {
	query := rc.DB.Model(&models.Receipt{})

	if search := c.Query("search"); search != "" {
		query = query.Where("filename LIKE ?", "%"+search+"%")
	}

	var receipts []models.Receipt
	if err := query.Order("uploaded_at DESC").Limit(50).Find(&receipts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching receipts"})
	}

	return c.JSON(receipts)
}
