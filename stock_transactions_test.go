package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"stockcard-backend/controllers"
	"stockcard-backend/models"
	"stockcard-backend/routes"
	"stockcard-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupStockApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()

	app := fiber.New()
	stockController := controllers.NewStockController(db, services.NewStockService(db))
	routes.SetupStockRoutes(app, stockController)

	return app, db
}

func TestCreateTransactionEndpoint(t *testing.T) {
	app, db := setupStockApp()
	_, token := createTestUser(db, "staff@test.com", models.RoleStaff)
	product := createTestProduct(db, "Paper", 0)

	body, _ := json.Marshal(fiber.Map{
		"product_id":       product.ID,
		"transaction_type": "inbound",
		"quantity":         20,
	})

	req := httptest.NewRequest("POST", "/stock-transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, 20, currentQuantity(db, product.ID))
}

func TestCreateTransactionRequiresAuth(t *testing.T) {
	app, db := setupStockApp()
	product := createTestProduct(db, "Paper", 0)

	body, _ := json.Marshal(fiber.Map{
		"product_id":       product.ID,
		"transaction_type": "inbound",
		"quantity":         20,
	})

	req := httptest.NewRequest("POST", "/stock-transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, 0, currentQuantity(db, product.ID))
}

func TestCreateTransactionErrorMapping(t *testing.T) {
	app, db := setupStockApp()
	_, token := createTestUser(db, "staff2@test.com", models.RoleStaff)
	product := createTestProduct(db, "Ink", 3)
	department := createTestDepartment(db, "Finance")

	tests := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
	}{
		{
			name: "insufficient stock",
			body: fiber.Map{
				"product_id":       product.ID,
				"transaction_type": "outbound",
				"quantity":         10,
				"department_id":    department.ID,
			},
			expectedStatus: 409,
		},
		{
			name: "invalid type",
			body: fiber.Map{
				"product_id":       product.ID,
				"transaction_type": "transfer",
				"quantity":         1,
			},
			expectedStatus: 400,
		},
		{
			name: "unknown product",
			body: fiber.Map{
				"product_id":       999,
				"transaction_type": "inbound",
				"quantity":         1,
			},
			expectedStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/stock-transactions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestPatchTransactionRequiresAdmin(t *testing.T) {
	app, db := setupStockApp()
	_, staffToken := createTestUser(db, "staff3@test.com", models.RoleStaff)
	_, adminToken := createTestUser(db, "admin@test.com", models.RoleAdmin)
	product := createTestProduct(db, "Pens", 0)

	service := services.NewStockService(db)
	id, err := service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeInbound,
		Quantity:        10,
		PerformedBy:     1,
	})
	assert.NoError(t, err)

	body, _ := json.Marshal(fiber.Map{"quantity": 4})

	req := httptest.NewRequest("PATCH", fmt.Sprintf("/stock-transactions/%d", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+staffToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, 10, currentQuantity(db, product.ID))

	req = httptest.NewRequest("PATCH", fmt.Sprintf("/stock-transactions/%d", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 4, currentQuantity(db, product.ID))
}

func TestDeleteTransactionRequiresAdmin(t *testing.T) {
	app, db := setupStockApp()
	_, staffToken := createTestUser(db, "staff4@test.com", models.RoleStaff)
	_, adminToken := createTestUser(db, "admin2@test.com", models.RoleAdmin)
	product := createTestProduct(db, "Toner", 0)

	service := services.NewStockService(db)
	id, err := service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeInbound,
		Quantity:        10,
		PerformedBy:     1,
	})
	assert.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/stock-transactions/%d", id), nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/stock-transactions/%d", id), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 0, currentQuantity(db, product.ID))
}

func TestGetTransactionsFilter(t *testing.T) {
	app, db := setupStockApp()
	_, token := createTestUser(db, "staff5@test.com", models.RoleStaff)
	product := createTestProduct(db, "Folders", 100)
	department := createTestDepartment(db, "Registry")

	service := services.NewStockService(db)
	service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeInbound,
		Quantity:        10,
		PerformedBy:     1,
	})
	service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeOutbound,
		Quantity:        5,
		DepartmentID:    &department.ID,
		PerformedBy:     1,
	})

	req := httptest.NewRequest("GET", "/stock-transactions?transaction_type=inbound", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []models.StockTransaction
	json.NewDecoder(resp.Body).Decode(&entries)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.TransactionTypeInbound, entries[0].TransactionType)
}

func TestGetTransactionCounts(t *testing.T) {
	app, db := setupStockApp()
	_, token := createTestUser(db, "staff6@test.com", models.RoleStaff)
	product := createTestProduct(db, "Markers", 100)
	department := createTestDepartment(db, "Operations")

	service := services.NewStockService(db)
	service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeInbound,
		Quantity:        10,
		PerformedBy:     1,
	})
	service.CreateStockTransaction(&services.CreateTransactionInput{
		ProductID:       product.ID,
		TransactionType: models.TransactionTypeOutbound,
		Quantity:        5,
		DepartmentID:    &department.ID,
		PerformedBy:     1,
	})

	req := httptest.NewRequest("GET", "/stock-transactions/count", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var counts map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&counts)
	assert.EqualValues(t, 2, counts["total"])
	assert.EqualValues(t, 1, counts["inbound"])
	assert.EqualValues(t, 1, counts["outbound"])
}
