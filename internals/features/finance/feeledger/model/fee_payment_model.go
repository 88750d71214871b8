package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — fee_payments (append-only audit trail)
============================================== */

// FeePayment is one payment transaction. Rows are created exactly once per
// successful submission and never updated or deleted.
type FeePayment struct {
	// PK
	FeePaymentID uuid.UUID `gorm:"column:fee_payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_payment_id"`

	// FK → students(student_id)
	FeePaymentStudentID uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null;index" json:"fee_payment_student_id"`

	// Transaction amount = sum of the breakdown values
	FeePaymentAmount int `gorm:"column:fee_payment_amount;type:int;not null;check:fee_payment_amount>0" json:"fee_payment_amount"`

	// Mode: cash | upi | razorpay | card | cheque | gateway | other
	FeePaymentMode PaymentMode `gorm:"column:fee_payment_mode;type:varchar(20);not null" json:"fee_payment_mode"`

	// Per-component allocation of this transaction (JSONB)
	FeePaymentBreakdown datatypes.JSONType[map[ComponentKey]int] `gorm:"column:fee_payment_breakdown;type:jsonb;not null" json:"fee_payment_breakdown"`

	// Display tags derived from the breakdown
	FeePaymentPaidFor string  `gorm:"column:fee_payment_paid_for;type:varchar(120);not null" json:"fee_payment_paid_for"`
	FeePaymentTerm    *string `gorm:"column:fee_payment_term;type:varchar(40)" json:"fee_payment_term,omitempty"`

	// External reference (gateway order ref, cheque no, ...)
	FeePaymentReference *string `gorm:"column:fee_payment_reference;type:varchar(64);index" json:"fee_payment_reference,omitempty"`

	// Immutable once created
	FeePaymentDate time.Time `gorm:"column:fee_payment_date;type:timestamptz;not null;index" json:"fee_payment_date"`

	FeePaymentCreatedAt time.Time `gorm:"column:fee_payment_created_at;type:timestamptz;not null;autoCreateTime" json:"fee_payment_created_at"`
}

func (FeePayment) TableName() string { return "fee_payments" }

func (m *FeePayment) BeforeCreate(tx *gorm.DB) error {
	if m.FeePaymentDate.IsZero() {
		m.FeePaymentDate = time.Now()
	}
	return nil
}

// Breakdown unwraps the JSONB column.
func (m *FeePayment) Breakdown() map[ComponentKey]int {
	return m.FeePaymentBreakdown.Data()
}

/* ======================================
   Display tags
====================================== */

// DescribeBreakdown builds the "paid for" label, e.g.
// "First Term Tuition + Kit". Components appear in display order.
func DescribeBreakdown(breakdown map[ComponentKey]int) string {
	parts := make([]string, 0, len(breakdown))
	for _, k := range AllComponents {
		if _, ok := breakdown[k]; ok {
			parts = append(parts, k.Label())
		}
	}
	return strings.Join(parts, " + ")
}

// TermTag returns "Term 1", "Term 2" or "Term 1 & 2" when tuition is part of
// the breakdown, nil otherwise.
func TermTag(breakdown map[ComponentKey]int) *string {
	_, first := breakdown[ComponentTuitionFirstTerm]
	_, second := breakdown[ComponentTuitionSecondTerm]

	var tag string
	switch {
	case first && second:
		tag = "Term 1 & 2"
	case first:
		tag = "Term 1"
	case second:
		tag = "Term 2"
	default:
		return nil
	}
	return &tag
}
