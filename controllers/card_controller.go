package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stockcard-backend/models"
	"stockcard-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CardController handles membership card endpoints
type CardController struct {
	DB  *gorm.DB
	Hub *services.Hub
}

// NewCardController creates a new CardController
func NewCardController(db *gorm.DB, hub *services.Hub) *CardController {
	return &CardController{DB: db, Hub: hub}
}

// CreateCardRequest is the card creation body
type CreateCardRequest struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	NRC          string `json:"nrc"`
	Type         string `json:"type"`
	FieldOfStudy string `json:"field_of_study"`
	ReceiptID    *uint  `json:"receipt_id"`
}

// UpdateCardRequest is the full-replace card update body
type UpdateCardRequest struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Status       string `json:"status"`
	NRC          string `json:"nrc"`
	Type         string `json:"type"`
	FieldOfStudy string `json:"field_of_study"`
}

// CardPatch is a merge-patch over a card
type CardPatch struct {
	FirstName    *string `json:"firstname"`
	LastName     *string `json:"lastname"`
	Status       *string `json:"status"`
	NRC          *string `json:"nrc"`
	Type         *string `json:"type"`
	FieldOfStudy *string `json:"field_of_study"`
}

// RenewalRequest is the card renewal body
type RenewalRequest struct {
	ReceiptID uint `json:"receipt_id"`
}

// StatusDayRow is one day of status counts for the chart feeds
type StatusDayRow struct {
	Day     string `json:"day"`
	Records int64  `json:"records"`
}

// GetCards lists cards, optionally filtered by status
func (cc *CardController) GetCards(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Card{})

	if status := c.Query("status"); status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(status))
	}

	var cards []models.Card
	if err := query.Find(&cards).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching cards"})
	}

	return c.JSON(cards)
}

// GetCard returns one card with its receipt
func (cc *CardController) GetCard(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var card models.Card
	if err := cc.DB.Preload("Receipt").First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Card not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	return c.JSON(card)
}

// CreateCard creates a card and notifies the creator
func (cc *CardController) CreateCard(c *fiber.Ctx) error {
	var req CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.NRC) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required fields"})
	}

	var existing models.Card
	if err := cc.DB.Where("nrc = ?", req.NRC).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"message": "A card with this NRC already exists"})
	}

	userID, _ := c.Locals("user_id").(uint)

	card := models.Card{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		NRC:          strings.TrimSpace(req.NRC),
		Type:         req.Type,
		FieldOfStudy: req.FieldOfStudy,
		ReceiptID:    req.ReceiptID,
	}

	if err := cc.DB.Create(&card).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error creating card"})
	}

	if cc.Hub != nil {
		cc.Hub.Notify(userID, fmt.Sprintf("New record added: %s %s", card.FirstName, card.LastName))
	}

	var created models.Card
	if err := cc.DB.Preload("Receipt").First(&created, card.ID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	return c.Status(201).JSON(created)
}

// UpdateCard replaces all editable card fields
func (cc *CardController) UpdateCard(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var card models.Card
	if err := cc.DB.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Card not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	var req UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := cc.DB.Model(&card).Updates(map[string]interface{}{
		"first_name":     req.FirstName,
		"last_name":      req.LastName,
		"status":         req.Status,
		"nrc":            req.NRC,
		"type":           req.Type,
		"field_of_study": req.FieldOfStudy,
	}).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Error updating card"})
	}

	var updated models.Card
	if err := cc.DB.Preload("Receipt").First(&updated, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	return c.JSON(updated)
}

// PatchCard applies a merge-patch to a card
func (cc *CardController) PatchCard(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var card models.Card
	if err := cc.DB.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Card not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	var patch CardPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.NRC != nil {
		updates["nrc"] = *patch.NRC
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.FieldOfStudy != nil {
		updates["field_of_study"] = *patch.FieldOfStudy
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "No valid fields to update"})
	}

	if err := cc.DB.Model(&card).Updates(updates).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Error updating card"})
	}

	var updated models.Card
	if err := cc.DB.Preload("Receipt").First(&updated, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	return c.JSON(updated)
}

// DeleteCard removes a card and returns the deleted record
func (cc *CardController) DeleteCard(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var card models.Card
	if err := cc.DB.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Card not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	if err := cc.DB.Delete(&card).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Error deleting card"})
	}

	return c.JSON(card)
}

// GetCounts returns total, pending and collected card counts
func (cc *CardController) GetCounts(c *fiber.Ctx) error {
	var total, pending, collected int64

	if err := cc.DB.Model(&models.Card{}).Count(&total).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card counts"})
	}
	cc.DB.Model(&models.Card{}).Where("status = ?", models.CardStatusPending).Count(&pending)
	cc.DB.Model(&models.Card{}).Where("status = ?", models.CardStatusCollected).Count(&collected)

	return c.JSON(fiber.Map{
		"total":     total,
		"pending":   pending,
		"collected": collected,
	})
}

// GetLast7Days returns per-day card creation counts over the last week
func (cc *CardController) GetLast7Days(c *fiber.Ctx) error {
	var rows []StatusDayRow
	since := time.Now().AddDate(0, 0, -7)

	err := cc.DB.Model(&models.Card{}).
		Select("DATE(created) AS day, COUNT(*) AS records").
		Where("created >= ?", since).
		Group("DATE(created)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching last 7 days data"})
	}

	return c.JSON(rows)
}

// GetPendingOverTime returns per-day pending counts over the last week
func (cc *CardController) GetPendingOverTime(c *fiber.Ctx) error {
	type pendingRow struct {
		Day     string `json:"day"`
		Pending int64  `json:"pending"`
	}
	var rows []pendingRow
	since := time.Now().AddDate(0, 0, -7)

	err := cc.DB.Model(&models.Card{}).
		Select("DATE(created) AS day, COUNT(*) AS pending").
		Where("status = ? AND created >= ?", models.CardStatusPending, since).
		Group("DATE(created)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching pending records over time"})
	}

	return c.JSON(rows)
}

// GetPendingByField returns pending counts grouped by field of study
func (cc *CardController) GetPendingByField(c *fiber.Ctx) error {
	type fieldRow struct {
		FieldOfStudy string `json:"field_of_study"`
		Count        int64  `json:"count"`
	}
	var rows []fieldRow

	err := cc.DB.Model(&models.Card{}).
		Select("field_of_study, COUNT(*) AS count").
		Where("status = ?", models.CardStatusPending).
		Group("field_of_study").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching pending records by field"})
	}

	return c.JSON(rows)
}

// GetCollectedByMonth returns monthly collected/pending counts for 6 months
func (cc *CardController) GetCollectedByMonth(c *fiber.Ctx) error {
	type monthRow struct {
		Month     string `json:"month"`
		Collected int64  `json:"collected"`
		Pending   int64  `json:"pending"`
	}
	var rows []monthRow
	since := time.Now().AddDate(0, -6, 0)

	// Month bucketing has no portable SQL spelling
	monthExpr := "strftime('%Y-%m', created)"
	if cc.DB.Dialector.Name() == "postgres" {
		monthExpr = "to_char(created, 'YYYY-MM')"
	}

	err := cc.DB.Model(&models.Card{}).
		Select(fmt.Sprintf(`%s AS month,
			SUM(CASE WHEN status = 'Collected' THEN 1 ELSE 0 END) AS collected,
			SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END) AS pending`, monthExpr)).
		Where("created >= ?", since).
		Group(monthExpr).
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching collected records by month"})
	}

	return c.JSON(rows)
}

// GetCollectedByDay returns collected counts grouped by calendar day
func (cc *CardController) GetCollectedByDay(c *fiber.Ctx) error {
	type dayRow struct {
		Date      string `json:"date"`
		Collected int64  `json:"collected"`
	}
	var rows []dayRow

	err := cc.DB.Model(&models.Card{}).
		Select("DATE(created) AS date, COUNT(*) AS collected").
		Where("status = ?", models.CardStatusCollected).
		Group("DATE(created)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching collected records by day"})
	}

	return c.JSON(rows)
}

// CheckDuplicate reports whether a card with the given NRC already exists
func (cc *CardController) CheckDuplicate(c *fiber.Ctx) error {
	var req struct {
		NRC string `json:"nrc"`
	}
	if err := c.BodyParser(&req); err != nil || req.NRC == "" {
		return c.Status(400).JSON(fiber.Map{"message": "NRC is required"})
	}

	var count int64
	if err := cc.DB.Model(&models.Card{}).Where("nrc = ?", req.NRC).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error checking duplicates"})
	}

	if count > 0 {
		return c.JSON(fiber.Map{"exists": true, "field": "nrc"})
	}
	return c.JSON(fiber.Map{"exists": false})
}

// CreateRenewal records a renewal: the card gets the new receipt and one more
// year of validity, atomically with the renewal row.
func (cc *CardController) CreateRenewal(c *fiber.Ctx) error {
	cardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var req RenewalRequest
	if err := c.BodyParser(&req); err != nil || req.ReceiptID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Receipt ID is required"})
	}

	var card models.Card
	if err := cc.DB.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Card not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching card"})
	}

	userID, _ := c.Locals("user_id").(uint)
	renewal := models.Renewal{
		CardID:    uint(cardID),
		ReceiptID: req.ReceiptID,
		RenewedBy: userID,
	}

	expiresAt := time.Now().AddDate(1, 0, 0)
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&renewal).Error; err != nil {
			return err
		}
		return tx.Model(&models.Card{}).Where("id = ?", cardID).Updates(map[string]interface{}{
			"receipt_id": req.ReceiptID,
			"expires_at": expiresAt,
		}).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error creating renewal"})
	}

	return c.Status(201).JSON(fiber.Map{"id": renewal.ID})
}

// GetRenewals lists the renewal history of a card
func (cc *CardController) GetRenewals(c *fiber.Ctx) error {
	cardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid card ID"})
	}

	var renewals []models.Renewal
	if err := cc.DB.Preload("Receipt").Preload("Renewer").
		Where("card_id = ?", cardID).
		Order("renewed_at DESC").
		Find(&renewals).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching renewals"})
	}

	return c.JSON(renewals)
}
