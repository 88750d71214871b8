package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoutes "schoolhub_backend/internals/features/school/classes/routes"
	studentRoutes "schoolhub_backend/internals/features/school/students/routes"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	studentRoutes.StudentRoutes(api, db)
	classRoutes.ClassFeeRuleRoutes(api, db)
}
