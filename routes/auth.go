package routes

import (
	"stockcard-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the authentication endpoints
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/auth")

	// POST /auth/register - create an account
	auth.Post("/register", authController.Register)

	// POST /auth/login - sign in and receive a token
	auth.Post("/login", authController.Login)

	// POST /auth/logout - clear the login flag
	auth.Post("/logout", authController.Logout)
}
