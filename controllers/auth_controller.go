package controllers

import (
	"regexp"
	"strings"
	"time"

	"stockcard-backend/models"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration and login
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates a new AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest is the registration request body
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest is the logout request body
type LogoutRequest struct {
	UserID uint `json:"user_id"`
}

// AuthResponse is returned from the auth endpoints
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    struct {
		ID        uint   `json:"id"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	} `json:"user,omitempty"`
}

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := ac.validateRegisterRequest(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	var existingUser models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existingUser).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{
			Success: false,
			Message: "Email already in use",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error creating user",
		})
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashedPassword,
		Role:         models.RoleStaff,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error creating user",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error creating token",
		})
	}

	return c.Status(201).JSON(ac.authResponse("User registered successfully", token, &user))
}

// Login authenticates a user and issues a token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	var user models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Email not found",
		})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Incorrect password",
		})
	}

	now := time.Now()
	ac.DB.Model(&user).Updates(map[string]interface{}{
		"is_logged_in": true,
		"last_active":  now,
	})

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error creating token",
		})
	}

	return c.JSON(ac.authResponse("Login successful", token, &user))
}

// Logout clears the login flag for a user
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	var req LogoutRequest

	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "User ID is required",
		})
	}

	now := time.Now()
	if err := ac.DB.Model(&models.User{}).Where("id = ?", req.UserID).Updates(map[string]interface{}{
		"is_logged_in": false,
		"last_active":  now,
	}).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error logging out",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Message: "Logout successful",
	})
}

// validateRegisterRequest validates the registration fields
func (ac *AuthController) validateRegisterRequest(req *RegisterRequest) error {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fiber.NewError(400, "First and last name are required")
	}

	if !emailRegexp.MatchString(req.Email) {
		return fiber.NewError(400, "Invalid email address")
	}

	if len(req.Password) < 6 {
		return fiber.NewError(400, "Password must be at least 6 characters")
	}

	return nil
}

func (ac *AuthController) authResponse(message, token string, user *models.User) AuthResponse {
	resp := AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
	}
	resp.User.ID = user.ID
	resp.User.FirstName = user.FirstName
	resp.User.LastName = user.LastName
	resp.User.Email = user.Email
	resp.User.Role = user.Role
	return resp
}
