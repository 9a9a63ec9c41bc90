package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires the user management endpoints (admin only)
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	users := app.Group("/users", utils.AuthMiddleware, utils.AdminMiddleware)

	// GET /users - all registered users
	users.Get("/", userController.GetUsers)

	// PATCH /users/:id - change a user's role
	users.Patch("/:id", userController.UpdateUserRole)

	// DELETE /users/:id - remove a user
	users.Delete("/:id", userController.DeleteUser)
}
