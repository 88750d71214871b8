package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/finance/feeledger/dto"
	"schoolhub_backend/internals/features/finance/feeledger/model"
	"schoolhub_backend/internals/features/finance/feeledger/service"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	helper "schoolhub_backend/internals/helpers"
)

type FeeLedgerHandler struct {
	DB       *gorm.DB
	Ledger   *service.Ledger
	Validate *validator.Validate
}

func NewFeeLedgerHandler(db *gorm.DB) *FeeLedgerHandler {
	return &FeeLedgerHandler{
		DB:       db,
		Ledger:   service.NewLedger(service.NewGormStore(db)),
		Validate: validator.New(),
	}
}

// statusFor maps ledger failures to HTTP statuses. Every branch keeps the
// short, user-displayable message from the sentinel.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidComponent), errors.Is(err, service.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrOverpayment):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// -----------------------------------------
// RecordPayment (POST /students/:id/fee-payment)
// Commits the payment; the receipt is rendered separately on GET so a
// render failure can never leave a half-applied payment.
// -----------------------------------------
func (h *FeeLedgerHandler) RecordPayment(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	fee, payment, err := h.Ledger.RecordPayment(c.UserContext(), studentID, in.Breakdown(), model.PaymentMode(in.PaymentMethod), in.Reference)
	if err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}

	return helper.JsonCreated(c, "payment recorded", fiber.Map{
		"payment":     dto.ToFeePaymentResponse(*payment),
		"fee_summary": dto.ToFeeSummaryResponse(service.Summarize(fee)),
		"receipt_url": fmt.Sprintf("/api/students/%s/fee-payments/%s/receipt", studentID, payment.FeePaymentID),
	})
}

// -----------------------------------------
// GetFees (GET /students/:id/fees)
// -----------------------------------------
func (h *FeeLedgerHandler) GetFees(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	summary, err := h.Ledger.FeeSummary(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}
	payments, err := h.Ledger.PaymentHistory(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}

	fullName := ""
	var student studentModel.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", studentID).Error; err == nil {
		fullName = student.StudentFullName
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"fee_summary":  dto.ToFeeSummaryResponse(summary),
		"fee_payments": dto.ToFeePaymentResponses(payments),
		"full_name":    fullName,
	})
}

// -----------------------------------------
// DownloadReceipt (GET /students/:id/fee-payments/:payment_id/receipt)
// Best-effort rendering; retryable, the payment stays committed regardless.
// -----------------------------------------
func (h *FeeLedgerHandler) DownloadReceipt(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	paymentID, err := parseUUIDParam(c, "payment_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	payment, err := h.Ledger.Payment(c.UserContext(), studentID, paymentID)
	if err != nil {
		return helper.JsonError(c, statusFor(err), "payment not found")
	}
	summary, err := h.Ledger.FeeSummary(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}

	data := service.ReceiptData{
		SchoolName: "SchoolHub",
		Payment:    *payment,
		Fee:        summary.Fee,
	}
	var student studentModel.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", studentID).Error; err == nil {
		data.StudentName = student.StudentFullName
		data.AdmissionNo = student.StudentAdmissionNo
		data.ClassName = student.StudentClass
	}

	pdf, err := service.BuildReceiptPDF(data)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError,
			"receipt generation failed; the payment is recorded, please retry the download")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, payment.FeePaymentID))
	return c.Send(pdf)
}
