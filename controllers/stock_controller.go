package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"stockcard-backend/models"
	"stockcard-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StockController handles stock transaction endpoints. All writes go through
// the StockService so the product quantities stay consistent with the ledger.
type StockController struct {
	DB      *gorm.DB
	Service *services.StockService
}

// NewStockController creates a new StockController
func NewStockController(db *gorm.DB, service *services.StockService) *StockController {
	return &StockController{DB: db, Service: service}
}

// TransactionCounts summarizes the ledger for the dashboard
type TransactionCounts struct {
	Total           int64   `json:"total"`
	Inbound         int64   `json:"inbound"`
	Outbound        int64   `json:"outbound"`
	Adjustments     int64   `json:"adjustments"`
	InboundValue    float64 `json:"inbound_value"`
	OutboundValue   float64 `json:"outbound_value"`
	AdjustmentValue float64 `json:"adjustment_value"`
	TotalValue      float64 `json:"total_value"`
}

// DayMovementRow is one day of inbound/outbound counts
type DayMovementRow struct {
	Day      string `json:"day"`
	Inbound  int64  `json:"inbound"`
	Outbound int64  `json:"outbound"`
}

// DayVolumeRow is one day of quantity and value totals for a single direction
type DayVolumeRow struct {
	Day      string  `json:"day"`
	Quantity int64   `json:"quantity"`
	Value    float64 `json:"value"`
}

// ProductVolumeRow is a per-product quantity total
type ProductVolumeRow struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DirectionStats summarizes one direction of stock movement
type DirectionStats struct {
	Total         int64   `json:"total"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
	AvgValue      float64 `json:"avgValue"`
}

// PartnerValueRow is a per-supplier or per-department value total
type PartnerValueRow struct {
	Name             string  `json:"name"`
	TransactionCount int64   `json:"transactionCount"`
	TotalValue       float64 `json:"totalValue"`
}

// GetTransactions lists ledger entries, optionally filtered by type and product
func (sc *StockController) GetTransactions(c *fiber.Ctx) error {
	query := sc.DB.Model(&models.StockTransaction{}).
		Preload("Product").
		Preload("Supplier").
		Preload("Department")

	if transactionType := c.Query("transaction_type"); transactionType != "" {
		query = query.Where("transaction_type = ?", transactionType)
	}
	if productID := c.Query("product_id"); productID != "" {
		if id, err := strconv.ParseUint(productID, 10, 32); err == nil {
			query = query.Where("product_id = ?", id)
		}
	}

	var transactions []models.StockTransaction
	if err := query.Order("date DESC").Find(&transactions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock transactions"})
	}

	return c.JSON(transactions)
}

// GetTransaction returns one ledger entry with display relations
func (sc *StockController) GetTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	transaction, err := sc.Service.GetStockTransaction(uint(id))
	if err != nil {
		return sc.serviceError(c, err, "Error fetching transaction")
	}

	return c.JSON(transaction)
}

// GetRecent returns the five most recent ledger entries
func (sc *StockController) GetRecent(c *fiber.Ctx) error {
	var transactions []models.StockTransaction
	if err := sc.DB.Preload("Product").
		Order("date DESC").Limit(5).Find(&transactions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching recent stock transactions"})
	}

	return c.JSON(transactions)
}

// GetCounts returns ledger counts and inventory value for the dashboard
func (sc *StockController) GetCounts(c *fiber.Ctx) error {
	var counts TransactionCounts

	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN transaction_type = 'inbound' THEN 1 ELSE 0 END) AS inbound,
			SUM(CASE WHEN transaction_type = 'outbound' THEN 1 ELSE 0 END) AS outbound,
			SUM(CASE WHEN transaction_type = 'adjustment' THEN 1 ELSE 0 END) AS adjustments,
			ROUND(SUM(CASE WHEN transaction_type = 'inbound' THEN stock_transactions.quantity * products.unit_price ELSE 0 END), 2) AS inbound_value,
			ROUND(SUM(CASE WHEN transaction_type = 'outbound' THEN stock_transactions.quantity * products.unit_price ELSE 0 END), 2) AS outbound_value,
			ROUND(SUM(CASE WHEN transaction_type = 'adjustment' THEN stock_transactions.quantity * products.unit_price ELSE 0 END), 2) AS adjustment_value`).
		Joins("JOIN products ON stock_transactions.product_id = products.id").
		Scan(&counts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock counts"})
	}

	var totalValue *float64
	if err := sc.DB.Model(&models.Product{}).
		Select("ROUND(SUM(current_quantity * unit_price), 2)").
		Scan(&totalValue).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock counts"})
	}
	if totalValue != nil {
		counts.TotalValue = *totalValue
	}

	return c.JSON(counts)
}

// GetLast7Days returns per-day inbound/outbound counts over the last week
func (sc *StockController) GetLast7Days(c *fiber.Ctx) error {
	var rows []DayMovementRow
	since := time.Now().AddDate(0, 0, -7)

	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`DATE(date) AS day,
			SUM(CASE WHEN transaction_type = 'inbound' THEN 1 ELSE 0 END) AS inbound,
			SUM(CASE WHEN transaction_type = 'outbound' THEN 1 ELSE 0 END) AS outbound`).
		Where("date >= ?", since).
		Group("DATE(date)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching last 7 days data"})
	}

	return c.JSON(rows)
}

// GetInbound lists all inbound entries
func (sc *StockController) GetInbound(c *fiber.Ctx) error {
	return sc.listByType(c, models.TransactionTypeInbound)
}

// GetOutbound lists all outbound entries
func (sc *StockController) GetOutbound(c *fiber.Ctx) error {
	return sc.listByType(c, models.TransactionTypeOutbound)
}

func (sc *StockController) listByType(c *fiber.Ctx, transactionType string) error {
	var transactions []models.StockTransaction
	if err := sc.DB.Preload("Product").
		Where("transaction_type = ?", transactionType).
		Order("date DESC").Find(&transactions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock transactions"})
	}

	return c.JSON(transactions)
}

// GetInboundOverTime returns daily inbound quantity and value for 30 days
func (sc *StockController) GetInboundOverTime(c *fiber.Ctx) error {
	return sc.volumeOverTime(c, models.TransactionTypeInbound)
}

// GetOutboundOverTime returns daily outbound quantity and value for 30 days
func (sc *StockController) GetOutboundOverTime(c *fiber.Ctx) error {
	return sc.volumeOverTime(c, models.TransactionTypeOutbound)
}

func (sc *StockController) volumeOverTime(c *fiber.Ctx, transactionType string) error {
	var rows []DayVolumeRow
	since := time.Now().AddDate(0, 0, -30)

	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`DATE(date) AS day,
			SUM(stock_transactions.quantity) AS quantity,
			SUM(stock_transactions.quantity * COALESCE(products.unit_price, 0)) AS value`).
		Joins("LEFT JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ? AND date >= ?", transactionType, since).
		Group("DATE(date)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock data"})
	}

	return c.JSON(rows)
}

// GetInboundByProduct returns the top products by inbound quantity
func (sc *StockController) GetInboundByProduct(c *fiber.Ctx) error {
	return sc.volumeByProduct(c, models.TransactionTypeInbound)
}

// GetOutboundByProduct returns the top products by outbound quantity
func (sc *StockController) GetOutboundByProduct(c *fiber.Ctx) error {
	return sc.volumeByProduct(c, models.TransactionTypeOutbound)
}

func (sc *StockController) volumeByProduct(c *fiber.Ctx, transactionType string) error {
	var rows []ProductVolumeRow

	err := sc.DB.Model(&models.StockTransaction{}).
		Select("products.name AS product_name, SUM(stock_transactions.quantity) AS total_quantity").
		Joins("JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ?", transactionType).
		Group("products.name").
		Order("total_quantity DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock data"})
	}

	return c.JSON(rows)
}

// GetInboundStats returns inbound totals plus the top suppliers by value
func (sc *StockController) GetInboundStats(c *fiber.Ctx) error {
	var stats DirectionStats
	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`COUNT(stock_transactions.id) AS total,
			COALESCE(SUM(stock_transactions.quantity), 0) AS total_quantity,
			COALESCE(SUM(stock_transactions.quantity * COALESCE(products.unit_price, 0)), 0) AS total_value,
			COALESCE(AVG(stock_transactions.quantity * COALESCE(products.unit_price, 0)), 0) AS avg_value`).
		Joins("LEFT JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ?", models.TransactionTypeInbound).
		Scan(&stats).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching inbound stats"})
	}

	var topSuppliers []PartnerValueRow
	err = sc.DB.Model(&models.StockTransaction{}).
		Select(`suppliers.name AS name,
			COUNT(stock_transactions.id) AS transaction_count,
			SUM(stock_transactions.quantity * COALESCE(products.unit_price, 0)) AS total_value`).
		Joins("JOIN suppliers ON stock_transactions.supplier_id = suppliers.id").
		Joins("JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ?", models.TransactionTypeInbound).
		Group("suppliers.name").
		Order("total_value DESC").
		Limit(5).
		Scan(&topSuppliers).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching inbound stats"})
	}

	return c.JSON(fiber.Map{
		"total":         stats.Total,
		"totalQuantity": stats.TotalQuantity,
		"totalValue":    stats.TotalValue,
		"avgValue":      stats.AvgValue,
		"topSuppliers":  topSuppliers,
	})
}

// GetOutboundStats returns outbound totals plus the top departments by value
func (sc *StockController) GetOutboundStats(c *fiber.Ctx) error {
	var stats DirectionStats
	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`COUNT(stock_transactions.id) AS total,
			COALESCE(SUM(stock_transactions.quantity), 0) AS total_quantity,
			COALESCE(SUM(stock_transactions.quantity * COALESCE(products.unit_price, 0)), 0) AS total_value,
			COALESCE(AVG(stock_transactions.quantity * COALESCE(products.unit_price, 0)), 0) AS avg_value`).
		Joins("LEFT JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ?", models.TransactionTypeOutbound).
		Scan(&stats).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching outbound stats"})
	}

	var topDepartments []PartnerValueRow
	err = sc.DB.Model(&models.StockTransaction{}).
		Select(`departments.name AS name,
			COUNT(stock_transactions.id) AS transaction_count,
			SUM(stock_transactions.quantity * COALESCE(products.unit_price, 0)) AS total_value`).
		Joins("LEFT JOIN departments ON stock_transactions.department_id = departments.id").
		Joins("LEFT JOIN products ON stock_transactions.product_id = products.id").
		Where("transaction_type = ?", models.TransactionTypeOutbound).
		Group("departments.name").
		Order("total_value DESC").
		Limit(5).
		Scan(&topDepartments).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching outbound stats"})
	}

	return c.JSON(fiber.Map{
		"total":          stats.Total,
		"totalQuantity":  stats.TotalQuantity,
		"totalValue":     stats.TotalValue,
		"avgValue":       stats.AvgValue,
		"topDepartments": topDepartments,
	})
}

// GetStats returns overall ledger totals and the recently trending products
func (sc *StockController) GetStats(c *fiber.Ctx) error {
	var counts struct {
		TotalTransactions int64
		TotalInbound      int64
		TotalOutbound     int64
		TotalAdjustments  int64
	}
	err := sc.DB.Model(&models.StockTransaction{}).
		Select(`COUNT(*) AS total_transactions,
			SUM(CASE WHEN transaction_type = 'inbound' THEN 1 ELSE 0 END) AS total_inbound,
			SUM(CASE WHEN transaction_type = 'outbound' THEN 1 ELSE 0 END) AS total_outbound,
			SUM(CASE WHEN transaction_type = 'adjustment' THEN 1 ELSE 0 END) AS total_adjustments`).
		Scan(&counts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock stats"})
	}

	var inventoryValue *float64
	if err := sc.DB.Model(&models.Product{}).
		Select("SUM(current_quantity * unit_price)").
		Scan(&inventoryValue).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock stats"})
	}

	type trendingRow struct {
		Name             string
		TransactionCount int64
		InboundQty       int64
		OutboundQty      int64
	}
	var trending []trendingRow
	err = sc.DB.Model(&models.StockTransaction{}).
		Select(`products.name AS name,
			COUNT(stock_transactions.id) AS transaction_count,
			SUM(CASE WHEN transaction_type = 'inbound' THEN stock_transactions.quantity ELSE 0 END) AS inbound_qty,
			SUM(CASE WHEN transaction_type = 'outbound' THEN stock_transactions.quantity ELSE 0 END) AS outbound_qty`).
		Joins("JOIN products ON stock_transactions.product_id = products.id").
		Group("products.name").
		Order("transaction_count DESC").
		Limit(5).
		Scan(&trending).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching stock stats"})
	}

	trendingProducts := make([]fiber.Map, 0, len(trending))
	for _, row := range trending {
		changePercentage := 0.0
		if row.InboundQty > 0 {
			changePercentage = float64(row.InboundQty-row.OutboundQty) / float64(row.InboundQty) * 100
		}
		trendingProducts = append(trendingProducts, fiber.Map{
			"name":             row.Name,
			"transactionCount": row.TransactionCount,
			"changePercentage": changePercentage,
		})
	}

	value := 0.0
	if inventoryValue != nil {
		value = *inventoryValue
	}

	return c.JSON(fiber.Map{
		"totalTransactions": counts.TotalTransactions,
		"totalInbound":      counts.TotalInbound,
		"totalOutbound":     counts.TotalOutbound,
		"totalAdjustments":  counts.TotalAdjustments,
		"inventoryValue":    value,
		"trendingProducts":  trendingProducts,
	})
}

// CreateTransaction records a new stock movement for the authenticated user
func (sc *StockController) CreateTransaction(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok || userID == 0 {
		return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
	}

	var input services.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	input.PerformedBy = userID

	id, err := sc.Service.CreateStockTransaction(&input)
	if err != nil {
		return sc.serviceError(c, err, "Error creating stock transaction")
	}

	return c.Status(201).JSON(fiber.Map{"id": id})
}

// PatchTransaction applies a merge-patch to a ledger entry
func (sc *StockController) PatchTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	var patch services.TransactionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	transaction, err := sc.Service.PatchStockTransaction(uint(id), &patch)
	if err != nil {
		return sc.serviceError(c, err, "Error updating stock transaction")
	}

	return c.JSON(transaction)
}

// DeleteTransaction removes a ledger entry and reverses its stock effect
func (sc *StockController) DeleteTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	if err := sc.Service.DeleteStockTransaction(uint(id)); err != nil {
		return sc.serviceError(c, err, "Error deleting transaction")
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}

// serviceError translates stock service errors into HTTP responses
func (sc *StockController) serviceError(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrTransactionNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "Transaction not found"})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	case errors.Is(err, services.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &validationErr):
		return c.Status(400).JSON(fiber.Map{"message": validationErr.Msg})
	}

	log.Printf("%s: %v", fallback, err)
	return c.Status(500).JSON(fiber.Map{"message": fallback})
}
