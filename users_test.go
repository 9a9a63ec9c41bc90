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

func setupUserApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()

	app := fiber.New()
	userController := controllers.NewUserController(db)
	routes.SetupUserRoutes(app, userController)

	return app, db
}

func TestUserEndpointsRequireAdmin(t *testing.T) {
	app, db := setupUserApp()
	_, staffToken := createTestUser(db, "staff@test.com", models.RoleStaff)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestUpdateUserRole(t *testing.T) {
	app, db := setupUserApp()
	_, adminToken := createTestUser(db, "admin@test.com", models.RoleAdmin)
	staff, _ := createTestUser(db, "promote@test.com", models.RoleStaff)

	body, _ := json.Marshal(fiber.Map{"role": models.RoleAdmin})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/users/%d", staff.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.User
	db.First(&updated, staff.ID)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUpdateUserRoleInvalid(t *testing.T) {
	app, db := setupUserApp()
	_, adminToken := createTestUser(db, "admin2@test.com", models.RoleAdmin)
	staff, _ := createTestUser(db, "keep@test.com", models.RoleStaff)

	body, _ := json.Marshal(fiber.Map{"role": "superuser"})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/users/%d", staff.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var unchanged models.User
	db.First(&unchanged, staff.ID)
	assert.Equal(t, models.RoleStaff, unchanged.Role)
}

func TestDeleteUser(t *testing.T) {
	app, db := setupUserApp()
	_, adminToken := createTestUser(db, "admin3@test.com", models.RoleAdmin)
	staff, _ := createTestUser(db, "remove@test.com", models.RoleStaff)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/users/%d", staff.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("id = ?", staff.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
