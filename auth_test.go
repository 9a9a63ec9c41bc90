package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"stockcard-backend/controllers"
	"stockcard-backend/models"
	"stockcard-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupAuthApp() (*fiber.App, *gorm.DB) {
	db := setupTestDB()

	app := fiber.New()
	authController := controllers.NewAuthController(db)
	routes.SetupAuthRoutes(app, authController)

	return app, db
}

func TestRegister(t *testing.T) {
	app, _ := setupAuthApp()

	tests := []struct {
		name            string
		request         controllers.RegisterRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "successful registration",
			request: controllers.RegisterRequest{
				FirstName: "Jane",
				LastName:  "Phiri",
				Email:     "jane@example.com",
				Password:  "password123",
			},
			expectedStatus:  201,
			expectedSuccess: true,
		},
		{
			name: "invalid email",
			request: controllers.RegisterRequest{
				FirstName: "Jane",
				LastName:  "Phiri",
				Email:     "not-an-email",
				Password:  "password123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "short password",
			request: controllers.RegisterRequest{
				FirstName: "Jane",
				LastName:  "Phiri",
				Email:     "jane2@example.com",
				Password:  "123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "missing name",
			request: controllers.RegisterRequest{
				FirstName: "",
				LastName:  "Phiri",
				Email:     "jane3@example.com",
				Password:  "password123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "duplicate email",
			request: controllers.RegisterRequest{
				FirstName: "Jane",
				LastName:  "Phiri",
				Email:     "jane@example.com",
				Password:  "password123",
			},
			expectedStatus:  409,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var authResp controllers.AuthResponse
			json.NewDecoder(resp.Body).Decode(&authResp)
			assert.Equal(t, tt.expectedSuccess, authResp.Success)
			if tt.expectedSuccess {
				assert.NotEmpty(t, authResp.Token)
				assert.Equal(t, models.RoleStaff, authResp.User.Role)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	app, db := setupAuthApp()
	user, _ := createTestUser(db, "login@test.com", models.RoleStaff)

	body, _ := json.Marshal(controllers.LoginRequest{
		Email:    "login@test.com",
		Password: "password123",
	})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var authResp controllers.AuthResponse
	json.NewDecoder(resp.Body).Decode(&authResp)
	assert.True(t, authResp.Success)
	assert.NotEmpty(t, authResp.Token)
	assert.Equal(t, user.ID, authResp.User.ID)

	// Login marks the account as active
	var updated models.User
	db.First(&updated, user.ID)
	assert.True(t, updated.IsLoggedIn)
	assert.NotNil(t, updated.LastActive)
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := setupAuthApp()
	createTestUser(db, "login2@test.com", models.RoleStaff)

	body, _ := json.Marshal(controllers.LoginRequest{
		Email:    "login2@test.com",
		Password: "wrong-password",
	})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	app, _ := setupAuthApp()

	body, _ := json.Marshal(controllers.LoginRequest{
		Email:    "nobody@test.com",
		Password: "password123",
	})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app, db := setupAuthApp()
	user, _ := createTestUser(db, "logout@test.com", models.RoleStaff)
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_logged_in", true)

	body, _ := json.Marshal(controllers.LogoutRequest{UserID: user.ID})
	req := httptest.NewRequest("POST", "/auth/logout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.User
	db.First(&updated, user.ID)
	assert.False(t, updated.IsLoggedIn)
}
