package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCardRoutes wires the membership card endpoints. Chart feeds must be
// registered before the parametric /:id route.
func SetupCardRoutes(app *fiber.App, cardController *controllers.CardController) {
	cards := app.Group("/cards", utils.AuthMiddleware)

	// GET /cards - list, filtered by status
	cards.Get("/", cardController.GetCards)

	// GET /cards/count - total/pending/collected counts
	cards.Get("/count", cardController.GetCounts)

	// GET /cards/last7days - daily creation counts
	cards.Get("/last7days", cardController.GetLast7Days)

	// GET /cards/pending-over-time - daily pending counts
	cards.Get("/pending-over-time", cardController.GetPendingOverTime)

	// GET /cards/pending-by-field - pending counts by field of study
	cards.Get("/pending-by-field", cardController.GetPendingByField)

	// GET /cards/collected-by-month - monthly collected/pending counts
	cards.Get("/collected-by-month", cardController.GetCollectedByMonth)

	// GET /cards/collected-by-day - collected counts by day
	cards.Get("/collected-by-day", cardController.GetCollectedByDay)

	// POST /cards - create a card
	cards.Post("/", cardController.CreateCard)

	// GET /cards/:id - one card with its receipt
	cards.Get("/:id", cardController.GetCard)

	// PUT /cards/:id - replace card fields (admin)
	cards.Put("/:id", utils.AdminMiddleware, cardController.UpdateCard)

	// PATCH /cards/:id - merge-patch a card
	cards.Patch("/:id", cardController.PatchCard)

	// DELETE /cards/:id - remove a card (admin)
	cards.Delete("/:id", utils.AdminMiddleware, cardController.DeleteCard)

	// POST /cards/:id/renewals - renew a card against a new receipt
	cards.Post("/:id/renewals", cardController.CreateRenewal)

	// GET /cards/:id/renewals - renewal history
	cards.Get("/:id/renewals", cardController.GetRenewals)

	// POST /check-duplicate - NRC duplicate check
	app.Post("/check-duplicate", utils.AuthMiddleware, cardController.CheckDuplicate)
}
