package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "schoolhub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	log.Println("[INFO] Setting up SchoolRoutes...")
	routeDetails.SchoolRoutes(api, db)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(api, db)
}
