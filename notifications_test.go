package main

import (
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

func setupNotificationApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()

	app := fiber.New()
	notificationController := controllers.NewNotificationController(db)
	routes.SetupNotificationRoutes(app, notificationController)

	return app, db
}

func TestGetNotificationsOwnOnly(t *testing.T) {
	app, db := setupNotificationApp()
	user, token := createTestUser(db, "mine@test.com", models.RoleStaff)
	other, _ := createTestUser(db, "other@test.com", models.RoleStaff)

	hub := services.NewHub(db)
	hub.Notify(user.ID, "New record added: Chipo Mwale")
	hub.Notify(other.ID, "New record added: Someone Else")

	req := httptest.NewRequest("GET", "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var notifications []models.Notification
	json.NewDecoder(resp.Body).Decode(&notifications)
	assert.Len(t, notifications, 1)
	assert.Equal(t, user.ID, notifications[0].UserID)
	assert.False(t, notifications[0].IsRead)
}

func TestMarkNotificationRead(t *testing.T) {
	app, db := setupNotificationApp()
	user, token := createTestUser(db, "reader@test.com", models.RoleStaff)

	notification := models.Notification{Message: "New record added: Test", UserID: user.ID}
	db.Create(&notification)

	req := httptest.NewRequest("PATCH", fmt.Sprintf("/notifications/%d/read", notification.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Notification
	db.First(&updated, notification.ID)
	assert.True(t, updated.IsRead)

	req = httptest.NewRequest("PATCH", "/notifications/999/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
