package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	feemodel "schoolhub_backend/internals/features/finance/feeledger/model"
)

/* ==============================================
   MODEL — class_fee_rules (defaults per class)
============================================== */

// ClassFeeRule is the default expected amount per fee component for one
// class. Consumed when a student record is created and on promotion.
type ClassFeeRule struct {
	// PK
	ClassFeeRuleID uuid.UUID `gorm:"column:class_fee_rule_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_fee_rule_id"`

	// Class name, e.g. "LKG", "Grade 5"
	ClassFeeRuleClass string `gorm:"column:class_fee_rule_class;type:varchar(40);not null;uniqueIndex" json:"class_fee_rule_class"`

	// Default amounts
	ClassFeeRuleTuitionFirstTerm  int `gorm:"column:class_fee_rule_tuition_first_term;type:int;not null;default:0;check:class_fee_rule_tuition_first_term>=0" json:"class_fee_rule_tuition_first_term"`
	ClassFeeRuleTuitionSecondTerm int `gorm:"column:class_fee_rule_tuition_second_term;type:int;not null;default:0;check:class_fee_rule_tuition_second_term>=0" json:"class_fee_rule_tuition_second_term"`
	ClassFeeRuleTransport         int `gorm:"column:class_fee_rule_transport;type:int;not null;default:0;check:class_fee_rule_transport>=0" json:"class_fee_rule_transport"`
	ClassFeeRuleKit               int `gorm:"column:class_fee_rule_kit;type:int;not null;default:0;check:class_fee_rule_kit>=0" json:"class_fee_rule_kit"`

	ClassFeeRuleNote *string `gorm:"column:class_fee_rule_note;type:text" json:"class_fee_rule_note,omitempty"`

	// Audit
	ClassFeeRuleCreatedAt time.Time      `gorm:"column:class_fee_rule_created_at;type:timestamptz;not null;autoCreateTime" json:"class_fee_rule_created_at"`
	ClassFeeRuleUpdatedAt time.Time      `gorm:"column:class_fee_rule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_fee_rule_updated_at"`
	ClassFeeRuleDeletedAt gorm.DeletedAt `gorm:"column:class_fee_rule_deleted_at;type:timestamptz;index" json:"-"`
}

func (ClassFeeRule) TableName() string { return "class_fee_rules" }

// Expected converts the rule into the ledger's expected-amounts shape.
func (m *ClassFeeRule) Expected() feemodel.ExpectedAmounts {
	return feemodel.ExpectedAmounts{
		TuitionFirstTerm:  m.ClassFeeRuleTuitionFirstTerm,
		TuitionSecondTerm: m.ClassFeeRuleTuitionSecondTerm,
		Transport:         m.ClassFeeRuleTransport,
		Kit:               m.ClassFeeRuleKit,
	}
}
