package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupDepartmentRoutes wires the department endpoints
func SetupDepartmentRoutes(app *fiber.App, departmentController *controllers.DepartmentController) {
	departments := app.Group("/departments", utils.AuthMiddleware)

	// GET /departments - all departments
	departments.Get("/", departmentController.GetDepartments)

	// POST /departments - add a department
	departments.Post("/", departmentController.CreateDepartment)

	// PUT /departments/:id - update a department
	departments.Put("/:id", departmentController.UpdateDepartment)

	// DELETE /departments/:id - remove a department (admin)
	departments.Delete("/:id", utils.AdminMiddleware, departmentController.DeleteDepartment)
}
