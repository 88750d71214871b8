package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentapi "schoolhub_backend/internals/features/school/students/controller"
)

func StudentRoutes(api fiber.Router, db *gorm.DB) {
	h := studentapi.NewStudentHandler(db)

	grp := api.Group("/students")
	{
		grp.Post("/", h.Create)
		grp.Get("/", h.List)
		grp.Get("/:id", h.GetByID)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
		grp.Post("/:id/promote", h.Promote)
	}
}
