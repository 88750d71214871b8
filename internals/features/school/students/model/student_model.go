package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — students
============================================== */

type Student struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// Identity
	StudentFullName    string  `gorm:"column:student_full_name;type:varchar(120);not null" json:"student_full_name"`
	StudentAdmissionNo string  `gorm:"column:student_admission_no;type:varchar(40);not null;uniqueIndex" json:"student_admission_no"`
	StudentClass       string  `gorm:"column:student_class;type:varchar(40);not null;index" json:"student_class"`
	StudentGuardian    *string `gorm:"column:student_guardian;type:varchar(120)" json:"student_guardian,omitempty"`
	StudentPhone       *string `gorm:"column:student_phone;type:varchar(20)" json:"student_phone,omitempty"`
	StudentEmail       *string `gorm:"column:student_email;type:varchar(120)" json:"student_email,omitempty"`

	// Promotion snapshots, appended on every promotion (JSONB array)
	StudentHistory datatypes.JSON `gorm:"column:student_history;type:jsonb" json:"student_history,omitempty"`

	// Audit
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;type:timestamptz;index" json:"-"`
}

func (Student) TableName() string { return "students" }

/* ==============================================
   Promotion snapshot (element of student_history)
============================================== */

// PromotionSnapshot freezes the class and fee aggregate the moment a student
// leaves a class, so the prior year's numbers stay visible after the fee
// structure is replaced.
type PromotionSnapshot struct {
	Class      string    `json:"class"`
	Total      int       `json:"total"`
	Paid       int       `json:"paid"`
	Balance    int       `json:"balance"`
	PromotedAt time.Time `json:"promoted_at"`
}
