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

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupSupplierApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()

	app := fiber.New()
	supplierController := controllers.NewSupplierController(db)
	routes.SetupSupplierRoutes(app, supplierController)

	return app, db
}

func TestCreateSupplier(t *testing.T) {
	app, db := setupSupplierApp()
	_, token := createTestUser(db, "staff@test.com", models.RoleStaff)

	body, _ := json.Marshal(controllers.SupplierRequest{
		Name:          "Office Supplies Ltd",
		ContactPerson: "M. Tembo",
		Phone:         "+260-211-000111",
		Email:         "sales@officesupplies.example",
	})
	req := httptest.NewRequest("POST", "/suppliers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// Duplicate name is rejected
	req = httptest.NewRequest("POST", "/suppliers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestUpdateSupplier(t *testing.T) {
	app, db := setupSupplierApp()
	_, token := createTestUser(db, "staff2@test.com", models.RoleStaff)
	supplier := createTestSupplier(db, "CleanCo")

	body, _ := json.Marshal(controllers.SupplierRequest{
		Name:  "CleanCo Distributors",
		Phone: "+260-211-000222",
	})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/suppliers/%d", supplier.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Supplier
	db.First(&updated, supplier.ID)
	assert.Equal(t, "CleanCo Distributors", updated.Name)
	assert.Equal(t, "+260-211-000222", updated.Phone)
}

func TestDeleteSupplierRequiresAdmin(t *testing.T) {
	app, db := setupSupplierApp()
	_, staffToken := createTestUser(db, "staff3@test.com", models.RoleStaff)
	_, adminToken := createTestUser(db, "admin@test.com", models.RoleAdmin)
	supplier := createTestSupplier(db, "TechSource")

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/suppliers/%d", supplier.ID), nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/suppliers/%d", supplier.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/suppliers/%d", supplier.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
