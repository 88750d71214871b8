package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/classes/dto"
	"schoolhub_backend/internals/features/school/classes/model"
	helper "schoolhub_backend/internals/helpers"
)

type ClassFeeRuleHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassFeeRuleHandler(db *gorm.DB) *ClassFeeRuleHandler {
	return &ClassFeeRuleHandler{DB: db, Validate: validator.New()}
}

// -----------------------------------------
// List (GET /class-fee-rules)
// -----------------------------------------
func (h *ClassFeeRuleHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "class", "asc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.ClassFeeRule{})
	if v := strings.TrimSpace(c.Query("class")); v != "" {
		q = q.Where("class_fee_rule_class ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed := map[string]string{
		"class":      "class_fee_rule_class",
		"created_at": "class_fee_rule_created_at",
	}
	col, ok := allowed[strings.ToLower(p.SortBy)]
	if !ok {
		col = allowed["class"]
	}
	dir := "ASC"
	if strings.ToLower(p.SortOrder) == "desc" {
		dir = "DESC"
	}

	var list []model.ClassFeeRule
	if err := q.
		Order(fmt.Sprintf("%s %s", col, dir)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, dto.ToClassFeeRuleResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /class-fee-rules)
// -----------------------------------------
func (h *ClassFeeRuleHandler) Create(c *fiber.Ctx) error {
	var in dto.ClassFeeRuleCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	m := in.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "a fee rule for this class already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee rule created", dto.ToClassFeeRuleResponse(m))
}

// -----------------------------------------
// Update (PATCH /class-fee-rules/:id)
// Changes apply to students created or promoted afterwards; existing fee
// structures are only replaced through promotion.
// -----------------------------------------
func (h *ClassFeeRuleHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.ClassFeeRuleUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var m model.ClassFeeRule
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "class_fee_rule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee rule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyClassFeeRuleUpdate(&m, in)
	if err := h.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee rule updated", dto.ToClassFeeRuleResponse(m))
}

// -----------------------------------------
// Delete (DELETE /class-fee-rules/:id) — soft delete
// -----------------------------------------
func (h *ClassFeeRuleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.ClassFeeRule
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "class_fee_rule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee rule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "fee rule deleted", dto.ToClassFeeRuleResponse(m))
}
