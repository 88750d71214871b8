package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feedto "schoolhub_backend/internals/features/finance/feeledger/dto"
	feemodel "schoolhub_backend/internals/features/finance/feeledger/model"
	feeservice "schoolhub_backend/internals/features/finance/feeledger/service"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	"schoolhub_backend/internals/features/school/students/dto"
	"schoolhub_backend/internals/features/school/students/model"
	helper "schoolhub_backend/internals/helpers"
)

type StudentHandler struct {
	DB       *gorm.DB
	Ledger   *feeservice.Ledger
	Validate *validator.Validate
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		DB:       db,
		Ledger:   feeservice.NewLedger(feeservice.NewGormStore(db)),
		Validate: validator.New(),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// expectedForClass resolves the fee amounts for a class: explicit override
// first, then the class fee rule. No rule and no override means a zero
// structure (amounts get set when the rule is created later).
func (h *StudentHandler) expectedForClass(c *fiber.Ctx, class string, override *dto.FeeOverrideDTO) (feemodel.ExpectedAmounts, error) {
	if override != nil {
		return override.Expected(), nil
	}
	var rule classModel.ClassFeeRule
	err := h.DB.WithContext(c.UserContext()).
		First(&rule, "class_fee_rule_class = ?", class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] no fee rule for class %q, starting with zero amounts", class)
			return feemodel.ExpectedAmounts{}, nil
		}
		return feemodel.ExpectedAmounts{}, err
	}
	return rule.Expected(), nil
}

// -----------------------------------------
// Create (POST /students)
// Student + fee structure are created in one transaction.
// -----------------------------------------
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var in dto.StudentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	expected, err := h.expectedForClass(c, in.StudentClass, in.FeeOverride)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	student := in.ToModel()
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		fee := feemodel.StudentFee{StudentFeeStudentID: student.StudentID}
		fee.SetExpected(expected)
		return tx.Create(&fee).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "admission number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "student created", dto.ToStudentResponse(student))
}

// -----------------------------------------
// List (GET /students)
// Filters: class, q (name/admission search); sort_by (created_at|name|class)
// -----------------------------------------
func (h *StudentHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Student{})

	if v := strings.TrimSpace(c.Query("class")); v != "" {
		q = q.Where("student_class = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + v + "%"
		q = q.Where("student_full_name ILIKE ? OR student_admission_no ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed := map[string]string{
		"created_at": "student_created_at",
		"name":       "student_full_name",
		"class":      "student_class",
	}
	col, ok := allowed[strings.ToLower(p.SortBy)]
	if !ok {
		col = allowed["created_at"]
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}

	var list []model.Student
	if err := q.
		Order(fmt.Sprintf("%s %s", col, dir)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, dto.ToStudentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /students/:id) — student + fee summary
// -----------------------------------------
func (h *StudentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	body := fiber.Map{"student": dto.ToStudentResponse(m)}
	if summary, err := h.Ledger.FeeSummary(c.UserContext(), id); err == nil {
		body["fee_summary"] = feedto.ToFeeSummaryResponse(summary)
	}
	return helper.JsonOK(c, "ok", body)
}

// -----------------------------------------
// Update (PATCH /students/:id)
// -----------------------------------------
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.StudentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var m model.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	dto.ApplyStudentUpdate(&m, in)
	if err := h.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToStudentResponse(m))
}

// -----------------------------------------
// Delete (DELETE /students/:id) — soft delete; fee rows and payment history
// stay behind as the audit trail.
// -----------------------------------------
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "deleted", dto.ToStudentResponse(m))
}

// -----------------------------------------
// Promote (POST /students/:id/promote)
// Snapshots the old class's fee numbers into the student's history, replaces
// the expected amounts for the new class (paid + payment history carry over)
// and switches the class.
// -----------------------------------------
func (h *StudentHandler) Promote(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.PromoteDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var student model.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.FeeOverride == nil {
		var rule classModel.ClassFeeRule
		if err := h.DB.WithContext(c.UserContext()).
			First(&rule, "class_fee_rule_class = ?", in.NewClass).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnprocessableEntity,
					fmt.Sprintf("no fee rule for class %q", in.NewClass))
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		override := dto.FeeOverrideDTO{
			TuitionFirstTerm:  rule.ClassFeeRuleTuitionFirstTerm,
			TuitionSecondTerm: rule.ClassFeeRuleTuitionSecondTerm,
			Transport:         rule.ClassFeeRuleTransport,
			Kit:               rule.ClassFeeRuleKit,
		}
		in.FeeOverride = &override
	}

	// snapshot before the structure is replaced
	oldSummary, err := h.Ledger.FeeSummary(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	snapshot := model.PromotionSnapshot{
		Class:      student.StudentClass,
		Total:      oldSummary.Fee.StudentFeeTotal,
		Paid:       oldSummary.Fee.StudentFeePaid,
		Balance:    oldSummary.Fee.StudentFeeBalance,
		PromotedAt: time.Now(),
	}

	fee, err := h.Ledger.ApplyPromotion(c.UserContext(), id, in.FeeOverride.Expected())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, feeservice.ErrInvalidAmount) {
			status = fiber.StatusBadRequest
		}
		return helper.JsonError(c, status, err.Error())
	}

	var history []model.PromotionSnapshot
	if len(student.StudentHistory) > 0 {
		_ = json.Unmarshal(student.StudentHistory, &history)
	}
	history = append(history, snapshot)
	if raw, err := json.Marshal(history); err == nil {
		student.StudentHistory = datatypes.JSON(raw)
	}
	student.StudentClass = in.NewClass
	if err := h.DB.WithContext(c.UserContext()).Save(&student).Error; err != nil {
		// the fee promotion is committed; surface the partial failure
		log.Printf("[ERROR] promote: class/history update failed for %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError,
			"fee structure updated but the student record could not be saved; please retry")
	}

	return helper.JsonUpdated(c, "student promoted", fiber.Map{
		"student":     dto.ToStudentResponse(student),
		"fee_summary": feedto.ToFeeSummaryResponse(feeservice.Summarize(fee)),
	})
}
