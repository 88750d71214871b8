package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/finance/feeledger/dto"
	"schoolhub_backend/internals/features/finance/feeledger/model"
	"schoolhub_backend/internals/features/finance/feeledger/service"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	helper "schoolhub_backend/internals/helpers"
)

type GatewayHandler struct {
	DB       *gorm.DB
	Ledger   *service.Ledger
	Validate *validator.Validate
}

func NewGatewayHandler(db *gorm.DB) *GatewayHandler {
	return &GatewayHandler{
		DB:       db,
		Ledger:   service.NewLedger(service.NewGormStore(db)),
		Validate: validator.New(),
	}
}

// -----------------------------------------
// Checkout (POST /students/:id/fee-checkout)
// Creates a gateway order + Snap token. The ledger is untouched until the
// settlement webhook confirms the money.
// -----------------------------------------
func (h *GatewayHandler) Checkout(c *fiber.Ctx) error {
	if !service.GatewayEnabled() {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "online payments are not available")
	}

	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	breakdown := in.Breakdown()
	amount := 0
	for k, v := range breakdown {
		if !k.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown fee component %q", string(k)))
		}
		if v <= 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "payment amount must be a positive whole amount")
		}
		amount += v
	}

	// Advisory precheck against the current fee row; the authoritative check
	// happens again under lock when the settlement webhook lands.
	fee, err := h.Ledger.Store.FeeFor(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}
	for k, v := range breakdown {
		if fee.PaidFor(k)+v > fee.ExpectedFor(k) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("payment exceeds the remaining amount for %s", k.Label()))
		}
	}

	var student studentModel.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order := model.GatewayOrder{
		GatewayOrderRef:       "FEE-" + uuid.NewString(),
		GatewayOrderStudentID: studentID,
		GatewayOrderAmount:    amount,
		GatewayOrderBreakdown: datatypes.NewJSONType(breakdown),
		GatewayOrderStatus:    model.GatewayOrderStatusInitiated,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&order).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, redirectURL, err := service.CreateSnapTransaction(&order, service.CheckoutCustomer{
		FullName: student.StudentFullName,
		Email:    in.Email,
		Phone:    in.Phone,
	})
	if err != nil {
		note := err.Error()
		order.GatewayOrderStatus = model.GatewayOrderStatusFailed
		order.GatewayOrderNote = &note
		_ = h.DB.WithContext(c.UserContext()).Save(&order).Error
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to start online payment")
	}

	order.GatewayOrderSnapToken = &token
	order.GatewayOrderRedirectURL = &redirectURL
	if err := h.DB.WithContext(c.UserContext()).Save(&order).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "checkout created", dto.ToGatewayOrderResponse(order))
}

// -----------------------------------------
// Webhook (POST /payments/gateway/webhook)
// -----------------------------------------
func (h *GatewayHandler) Webhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := service.HandleGatewayWebhook(c.UserContext(), h.DB, h.Ledger, body); err != nil {
		return helper.JsonError(c, statusFor(err), err.Error())
	}
	return helper.JsonOK(c, "notification processed", nil)
}
