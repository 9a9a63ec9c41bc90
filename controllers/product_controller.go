package controllers

import (
	"errors"
	"strconv"
	"strings"

	"stockcard-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProductController handles product and category endpoints
type ProductController struct {
	DB *gorm.DB
}

// NewProductController creates a new ProductController
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// CreateProductRequest is the product creation body
type CreateProductRequest struct {
	Name            string  `json:"name"`
	CategoryID      uint    `json:"category_id"`
	UnitPrice       float64 `json:"unit_price"`
	InitialQuantity int     `json:"initial_quantity"`
}

// UpdateProductRequest is the full-replace product update body. Quantities are
// not editable here, the stock ledger owns them.
type UpdateProductRequest struct {
	Name       string  `json:"name"`
	CategoryID uint    `json:"category_id"`
	UnitPrice  float64 `json:"unit_price"`
}

// ProductPatch is a merge-patch over a product: nil fields are left untouched
type ProductPatch struct {
	Name            *string  `json:"name"`
	CategoryID      *uint    `json:"category_id"`
	UnitPrice       *float64 `json:"unit_price"`
	CurrentQuantity *int     `json:"current_quantity"`
	InitialQuantity *int     `json:"initial_quantity"`
}

// ProductListResponse pairs the product rows with a category id to name map
type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Categories map[uint]string  `json:"categories"`
}

// ProductDropdownItem is the reduced shape used by selection widgets
type ProductDropdownItem struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"current_quantity"`
}

// GetProducts lists all products together with the category name map
func (pc *ProductController) GetProducts(c *fiber.Ctx) error {
	var categories []models.Category
	if err := pc.DB.Find(&categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching products"})
	}

	categoryNames := make(map[uint]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	var products []models.Product
	if err := pc.DB.Order("name").Find(&products).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching products"})
	}

	return c.JSON(ProductListResponse{
		Products:   products,
		Categories: categoryNames,
	})
}

// GetProduct returns one product with its category
func (pc *ProductController) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var product models.Product
	if err := pc.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching product"})
	}

	return c.JSON(product)
}

// CreateProduct creates a product. The initial quantity is optional, defaults
// to zero and seeds the current quantity.
func (pc *ProductController) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" || req.CategoryID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required fields"})
	}
	if req.UnitPrice < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Unit price cannot be negative"})
	}
	if req.InitialQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Initial quantity cannot be negative"})
	}

	var category models.Category
	if err := pc.DB.First(&category, req.CategoryID).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Category not found"})
	}

	userID, _ := c.Locals("user_id").(uint)

	product := models.Product{
		Name:            strings.TrimSpace(req.Name),
		CategoryID:      req.CategoryID,
		UnitPrice:       req.UnitPrice,
		InitialQuantity: req.InitialQuantity,
		CurrentQuantity: req.InitialQuantity,
		AddedBy:         userID,
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error creating product"})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":      product.ID,
		"message": "Product created successfully",
	})
}

// UpdateProduct replaces the editable product fields
func (pc *ProductController) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var existing models.Product
	if err := pc.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching product"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" || req.CategoryID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required fields"})
	}
	if req.UnitPrice < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Unit price cannot be negative"})
	}

	var category models.Category
	if err := pc.DB.First(&category, req.CategoryID).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Category not found"})
	}

	if err := pc.DB.Model(&existing).Updates(map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"category_id": req.CategoryID,
		"unit_price":  req.UnitPrice,
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error updating product"})
	}

	var updated models.Product
	if err := pc.DB.Preload("Category").First(&updated, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching product"})
	}

	return c.JSON(updated)
}

// PatchProduct applies a merge-patch to a product
func (pc *ProductController) PatchProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var existing models.Product
	if err := pc.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching product"})
	}

	var patch ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	updates := map[string]interface{}{}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return c.Status(400).JSON(fiber.Map{"message": "Product name cannot be empty"})
		}
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.CategoryID != nil {
		var category models.Category
		if err := pc.DB.First(&category, *patch.CategoryID).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Category not found"})
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.UnitPrice != nil {
		if *patch.UnitPrice < 0 {
			return c.Status(400).JSON(fiber.Map{"message": "Unit price cannot be negative"})
		}
		updates["unit_price"] = *patch.UnitPrice
	}
	if patch.CurrentQuantity != nil {
		updates["current_quantity"] = *patch.CurrentQuantity
	}
	if patch.InitialQuantity != nil {
		if *patch.InitialQuantity < 0 {
			return c.Status(400).JSON(fiber.Map{"message": "Initial quantity cannot be negative"})
		}
		updates["initial_quantity"] = *patch.InitialQuantity
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "No valid fields to update"})
	}

	if err := pc.DB.Model(&existing).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error updating product"})
	}

	var updated models.Product
	if err := pc.DB.Preload("Category").First(&updated, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching product"})
	}

	return c.JSON(updated)
}

// DeleteProduct removes a product
func (pc *ProductController) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	result := pc.DB.Delete(&models.Product{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting product"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetProductsDropdown lists id, name and stock for selection widgets
func (pc *ProductController) GetProductsDropdown(c *fiber.Ctx) error {
	var items []ProductDropdownItem
	if err := pc.DB.Model(&models.Product{}).
		Select("id, name, current_quantity").
		Order("name").
		Scan(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching products"})
	}

	return c.JSON(items)
}

// GetCategories lists all categories
func (pc *ProductController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := pc.DB.Order("name").Find(&categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching categories"})
	}

	return c.JSON(categories)
}

// CreateCategory creates a category
func (pc *ProductController) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Category name is required"})
	}

	category := models.Category{Name: strings.TrimSpace(req.Name)}
	if err := pc.DB.Create(&category).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"message": "Category already exists"})
	}

	return c.Status(201).JSON(category)
}
