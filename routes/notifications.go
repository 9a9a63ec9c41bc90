package routes

import (
	"stockcard-backend/controllers"
	"stockcard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes wires the notification endpoints
func SetupNotificationRoutes(app *fiber.App, notificationController *controllers.NotificationController) {
	notifications := app.Group("/notifications", utils.AuthMiddleware)

	// GET /notifications - notifications for the authenticated user
	notifications.Get("/", notificationController.GetNotifications)

	// PATCH /notifications/:id/read - mark a notification as read
	notifications.Patch("/:id/read", notificationController.MarkRead)
}
