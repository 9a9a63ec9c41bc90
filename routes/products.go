package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupProductRoutes wires the product and category endpoints
func SetupProductRoutes(app *fiber.App, productController *controllers.ProductController) {
	products := app.Group("/products", utils.AuthMiddleware)

	// GET /products - all products with the category name map
	products.Get("/", productController.GetProducts)

	// POST /products - create a product
	products.Post("/", productController.CreateProduct)

	// GET /products/:id - one product
	products.Get("/:id", productController.GetProduct)

	// PUT /products/:id - replace product fields (admin)
	products.Put("/:id", utils.AdminMiddleware, productController.UpdateProduct)

	// PATCH /products/:id - merge-patch a product (admin)
	products.Patch("/:id", utils.AdminMiddleware, productController.PatchProduct)

	// DELETE /products/:id - remove a product
	products.Delete("/:id", productController.DeleteProduct)

	// GET /products-dropdown - reduced list for selection widgets
	app.Get("/products-dropdown", utils.AuthMiddleware, productController.GetProductsDropdown)

	categories := app.Group("/categories", utils.AuthMiddleware)

	// GET /categories - all categories
	categories.Get("/", productController.GetCategories)

	// POST /categories - create a category
	categories.Post("/", productController.CreateCategory)
}
