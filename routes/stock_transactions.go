package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupStockRoutes wires the stock transaction endpoints. Aggregate routes
// must be registered before the parametric /:id route.
func SetupStockRoutes(app *fiber.App, stockController *controllers.StockController) {
	transactions := app.Group("/stock-transactions", utils.AuthMiddleware)

	// GET /stock-transactions - list, filtered by transaction_type/product_id
	transactions.Get("/", stockController.GetTransactions)

	// GET /stock-transactions/count - ledger counts and inventory value
	transactions.Get("/count", stockController.GetCounts)

	// GET /stock-transactions/stats - ledger totals and trending products
	transactions.Get("/stats", stockController.GetStats)

	// GET /stock-transactions/recent - five most recent entries
	transactions.Get("/recent", stockController.GetRecent)

	// GET /stock-transactions/last7days - daily movement counts
	transactions.Get("/last7days", stockController.GetLast7Days)

	// GET /stock-transactions/inbound - all inbound entries
	transactions.Get("/inbound", stockController.GetInbound)

	// GET /stock-transactions/inbound-over-time - daily inbound volume
	transactions.Get("/inbound-over-time", stockController.GetInboundOverTime)

	// GET /stock-transactions/inbound-by-product - top inbound products
	transactions.Get("/inbound-by-product", stockController.GetInboundByProduct)

	// GET /stock-transactions/inbound-stats - inbound totals and top suppliers
	transactions.Get("/inbound-stats", stockController.GetInboundStats)

	// GET /stock-transactions/outbound - all outbound entries
	transactions.Get("/outbound", stockController.GetOutbound)

	// GET /stock-transactions/outbound-over-time - daily outbound volume
	transactions.Get("/outbound-over-time", stockController.GetOutboundOverTime)

	// GET /stock-transactions/outbound-by-product - top outbound products
	transactions.Get("/outbound-by-product", stockController.GetOutboundByProduct)

	// GET /stock-transactions/outbound-stats - outbound totals and top departments
	transactions.Get("/outbound-stats", stockController.GetOutboundStats)

	// POST /stock-transactions - record a stock movement
	transactions.Post("/", stockController.CreateTransaction)

	// GET /stock-transactions/:id - one entry with display relations
	transactions.Get("/:id", stockController.GetTransaction)

	// PATCH /stock-transactions/:id - merge-patch an entry (admin)
	transactions.Patch("/:id", utils.AdminMiddleware, stockController.PatchTransaction)

	// DELETE /stock-transactions/:id - delete an entry and reverse it (admin)
	transactions.Delete("/:id", utils.AdminMiddleware, stockController.DeleteTransaction)
}
