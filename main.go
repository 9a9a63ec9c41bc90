package main

import (
	"log"
	"os"
	"time"

	"stockcard-backend/controllers"
	"stockcard-backend/models"
	"stockcard-backend/routes"
	"stockcard-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// .env is optional, environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Supplier{},
		&models.Department{},
		&models.StockTransaction{},
		&models.Card{},
		&models.Receipt{},
		&models.Renewal{},
		&models.Notification{},
	)

	initDefaultCategories(db)
	initDefaultDepartments(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// WebSocket hub for realtime notifications
	hub := services.NewHub(db)
	go hub.Run()

	// Controllers
	authController := controllers.NewAuthController(db)
	stockController := controllers.NewStockController(db, services.NewStockService(db))
	productController := controllers.NewProductController(db)
	cardController := controllers.NewCardController(db, hub)
	receiptController := controllers.NewReceiptController(db, os.Getenv("UPLOAD_DIR"))
	supplierController := controllers.NewSupplierController(db)
	departmentController := controllers.NewDepartmentController(db)
	userController := controllers.NewUserController(db)
	notificationController := controllers.NewNotificationController(db)

	// Routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupStockRoutes(app, stockController)
	routes.SetupProductRoutes(app, productController)
	routes.SetupCardRoutes(app, cardController)
	routes.SetupReceiptRoutes(app, receiptController)
	routes.SetupSupplierRoutes(app, supplierController)
	routes.SetupDepartmentRoutes(app, departmentController)
	routes.SetupUserRoutes(app, userController)
	routes.SetupNotificationRoutes(app, notificationController)

	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Stockcard Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// initDefaultCategories seeds the catalog categories on first start
func initDefaultCategories(db *gorm.DB) {
	defaultCategories := []models.Category{
		{Name: "Stationery"},
		{Name: "Cleaning Supplies"},
		{Name: "Electronics"},
		{Name: "Furniture"},
		{Name: "Medical Supplies"},
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)

	if count == 0 {
		log.Println("Seeding default categories...")
		for _, category := range defaultCategories {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to create category '%s': %v", category.Name, err)
			}
		}
	}
}

// initDefaultDepartments seeds the departments stock can be issued to
func initDefaultDepartments(db *gorm.DB) {
	defaultDepartments := []models.Department{
		{Name: "Administration"},
		{Name: "Finance"},
		{Name: "Operations"},
		{Name: "Registry"},
	}

	var count int64
	db.Model(&models.Department{}).Count(&count)

	if count == 0 {
		log.Println("Seeding default departments...")
		for _, department := range defaultDepartments {
			if err := db.Create(&department).Error; err != nil {
				log.Printf("Failed to create department '%s': %v", department.Name, err)
			}
		}
	}
}
