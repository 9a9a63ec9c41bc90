package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupReceiptRoutes wires the receipt upload and retrieval endpoints
func SetupReceiptRoutes(app *fiber.App, receiptController *controllers.ReceiptController) {
	// POST /upload-receipt - multipart receipt upload
	app.Post("/upload-receipt", utils.AuthMiddleware, receiptController.UploadReceipt)

	receipts := app.Group("/receipts", utils.AuthMiddleware)

	// GET /receipts - recent receipts with optional filename search
	receipts.Get("/", receiptController.GetRecentReceipts)

	// GET /receipts/:id - download the stored file
	receipts.Get("/:id", receiptController.GetReceipt)
}
