package main

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/navigator"
	authRoutes "lms/routers/authRoutes"
	catalogRoutes "lms/routers/catalogRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	catalogService "lms/services/catalog"
	enrollmentService "lms/services/enrollment"
	"lms/storage"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	db := database.Database.Db

	navStore := navigator.NewStore()
	catalogSvc := catalogService.NewService(db)
	catalogSvc.NotifyStale(navStore.MarkAllStale)
	enrollmentSvc := enrollmentService.NewService(db)
	uploader := storage.NewClient(config.AppConfig.StorageApiURL, config.AppConfig.StorageApiKey)

	authRoutes.SetupAuthRoutes(app)
	catalogRoutes.SetupAdminCatalogRoutes(app, catalogSvc, uploader)
	catalogRoutes.SetupStudentCatalogRoutes(app, catalogSvc, navStore)
	enrollmentRoutes.SetupEnrollmentRoutes(app, enrollmentSvc)

	purge := utils.StartPurgeScheduler(db)
	defer purge.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
