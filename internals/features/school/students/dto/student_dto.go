package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	feemodel "schoolhub_backend/internals/features/finance/feeledger/model"
	"schoolhub_backend/internals/features/school/students/model"
)

/* ==============================
   Requests
============================== */

// FeeOverrideDTO replaces the class defaults when a student has a negotiated
// amount (e.g. transport opt-out is Transport=0).
type FeeOverrideDTO struct {
	TuitionFirstTerm  int `json:"tuition_first_term" validate:"min=0"`
	TuitionSecondTerm int `json:"tuition_second_term" validate:"min=0"`
	Transport         int `json:"transport" validate:"min=0"`
	Kit               int `json:"kit" validate:"min=0"`
}

func (f FeeOverrideDTO) Expected() feemodel.ExpectedAmounts {
	return feemodel.ExpectedAmounts{
		TuitionFirstTerm:  f.TuitionFirstTerm,
		TuitionSecondTerm: f.TuitionSecondTerm,
		Transport:         f.Transport,
		Kit:               f.Kit,
	}
}

type StudentCreateDTO struct {
	StudentFullName    string  `json:"student_full_name" validate:"required,max=120"`
	StudentAdmissionNo string  `json:"student_admission_no" validate:"required,max=40"`
	StudentClass       string  `json:"student_class" validate:"required,max=40"`
	StudentGuardian    *string `json:"student_guardian,omitempty" validate:"omitempty,max=120"`
	StudentPhone       *string `json:"student_phone,omitempty" validate:"omitempty,max=20"`
	StudentEmail       *string `json:"student_email,omitempty" validate:"omitempty,email"`

	// optional: override the class fee rule
	FeeOverride *FeeOverrideDTO `json:"fee_override,omitempty"`
}

func (in StudentCreateDTO) ToModel() model.Student {
	return model.Student{
		StudentFullName:    in.StudentFullName,
		StudentAdmissionNo: in.StudentAdmissionNo,
		StudentClass:       in.StudentClass,
		StudentGuardian:    in.StudentGuardian,
		StudentPhone:       in.StudentPhone,
		StudentEmail:       in.StudentEmail,
		StudentHistory:     datatypes.JSON([]byte("[]")),
	}
}

// Update (partial)
type StudentUpdateDTO struct {
	StudentFullName *string `json:"student_full_name,omitempty" validate:"omitempty,max=120"`
	StudentGuardian *string `json:"student_guardian,omitempty" validate:"omitempty,max=120"`
	StudentPhone    *string `json:"student_phone,omitempty" validate:"omitempty,max=20"`
	StudentEmail    *string `json:"student_email,omitempty" validate:"omitempty,email"`
}

func ApplyStudentUpdate(m *model.Student, in StudentUpdateDTO) {
	if in.StudentFullName != nil {
		m.StudentFullName = *in.StudentFullName
	}
	if in.StudentGuardian != nil {
		m.StudentGuardian = in.StudentGuardian
	}
	if in.StudentPhone != nil {
		m.StudentPhone = in.StudentPhone
	}
	if in.StudentEmail != nil {
		m.StudentEmail = in.StudentEmail
	}
}

// PromoteDTO moves the student to a new class. Amounts come from the new
// class's fee rule unless an override is supplied.
type PromoteDTO struct {
	NewClass    string          `json:"new_class" validate:"required,max=40"`
	FeeOverride *FeeOverrideDTO `json:"fee_override,omitempty"`
}

/* ==============================
   Responses
============================== */

type StudentResponse struct {
	ID          uuid.UUID      `json:"id"`
	FullName    string         `json:"full_name"`
	AdmissionNo string         `json:"admission_no"`
	Class       string         `json:"class"`
	Guardian    *string        `json:"guardian,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Email       *string        `json:"email,omitempty"`
	History     datatypes.JSON `json:"history,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToStudentResponse(m model.Student) StudentResponse {
	return StudentResponse{
		ID:          m.StudentID,
		FullName:    m.StudentFullName,
		AdmissionNo: m.StudentAdmissionNo,
		Class:       m.StudentClass,
		Guardian:    m.StudentGuardian,
		Phone:       m.StudentPhone,
		Email:       m.StudentEmail,
		History:     m.StudentHistory,
		CreatedAt:   m.StudentCreatedAt,
	}
}

func ToStudentResponses(list []model.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStudentResponse(m))
	}
	return out
}
