package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeledgerRoutes "schoolhub_backend/internals/features/finance/feeledger/routes"
)

func FinanceRoutes(api fiber.Router, db *gorm.DB) {
	feeledgerRoutes.FeeLedgerRoutes(api, db)
}
