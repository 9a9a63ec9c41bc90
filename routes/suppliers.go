package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupSupplierRoutes wires the supplier endpoints
func SetupSupplierRoutes(app *fiber.App, supplierController *controllers.SupplierController) {
	suppliers := app.Group("/suppliers", utils.AuthMiddleware)

	// GET /suppliers - all suppliers
	suppliers.Get("/", supplierController.GetSuppliers)

	// POST /suppliers - add a supplier
	suppliers.Post("/", supplierController.CreateSupplier)

	// PUT /suppliers/:id - update a supplier
	suppliers.Put("/:id", supplierController.UpdateSupplier)

	// DELETE /suppliers/:id - remove a supplier (admin)
	suppliers.Delete("/:id", utils.AdminMiddleware, supplierController.DeleteSupplier)
}
