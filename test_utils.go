package main

import (
	"stockcard-backend/models"
	"stockcard-backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Supplier{},
		&models.Department{},
		&models.StockTransaction{},
		&models.Card{},
		&models.Receipt{},
		&models.Renewal{},
		&models.Notification{},
	)
	return db
}

// createTestUser creates a user with the given role and returns it with a token
func createTestUser(db *gorm.DB, email, role string) (models.User, string) {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	db.Create(&user)

	token, _ := utils.GenerateJWT(user.ID, user.Email, user.Role)
	return user, token
}

// createTestProduct creates a category and a product with the given starting stock
func createTestProduct(db *gorm.DB, name string, quantity int) models.Product {
	category := models.Category{Name: "Category for " + name}
	db.Create(&category)

	product := models.Product{
		Name:            name,
		CategoryID:      category.ID,
		UnitPrice:       2.5,
		InitialQuantity: quantity,
		CurrentQuantity: quantity,
		AddedBy:         1,
	}
	db.Create(&product)
	return product
}

// createTestDepartment creates a department stock can be issued to
func createTestDepartment(db *gorm.DB, name string) models.Department {
	department := models.Department{Name: name}
	db.Create(&department)
	return department
}

// createTestSupplier creates a supplier for inbound entries
func createTestSupplier(db *gorm.DB, name string) models.Supplier {
	supplier := models.Supplier{Name: name}
	db.Create(&supplier)
	return supplier
}

// currentQuantity reloads a product's stock level
func currentQuantity(db *gorm.DB, productID uint) int {
	var product models.Product
	db.First(&product, productID)
	return product.CurrentQuantity
}
