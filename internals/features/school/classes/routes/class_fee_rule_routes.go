package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classapi "schoolhub_backend/internals/features/school/classes/controller"
)

func ClassFeeRuleRoutes(api fiber.Router, db *gorm.DB) {
	h := classapi.NewClassFeeRuleHandler(db)

	grp := api.Group("/class-fee-rules")
	{
		grp.Get("/", h.List)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
	}
}
