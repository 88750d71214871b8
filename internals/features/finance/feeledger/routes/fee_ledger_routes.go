package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeapi "schoolhub_backend/internals/features/finance/feeledger/controller"
	"schoolhub_backend/internals/middlewares"
)

func FeeLedgerRoutes(api fiber.Router, db *gorm.DB) {
	ledger := feeapi.NewFeeLedgerHandler(db)
	gateway := feeapi.NewGatewayHandler(db)

	students := api.Group("/students")
	{
		students.Post("/:id/fee-payment", middlewares.PaymentRateLimiter(), ledger.RecordPayment)
		students.Get("/:id/fees", ledger.GetFees)
		students.Get("/:id/fee-payments/:payment_id/receipt", ledger.DownloadReceipt)
		students.Post("/:id/fee-checkout", middlewares.PaymentRateLimiter(), gateway.Checkout)
	}

	payments := api.Group("/payments")
	{
		payments.Post("/gateway/webhook", gateway.Webhook)
	}
}
