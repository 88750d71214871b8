package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — student_fees (one row per student)
============================================== */

// StudentFee is a student's fee structure for their current class plus the
// running payment aggregate. Amounts are whole rupees.
//
// Derived columns (total, balance) are recomputed in the hooks so a row can
// never be written with stale totals.
type StudentFee struct {
	// PK
	StudentFeeID uuid.UUID `gorm:"column:student_fee_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_fee_id"`

	// FK → students(student_id), one fee row per student
	StudentFeeStudentID uuid.UUID `gorm:"column:student_fee_student_id;type:uuid;not null;uniqueIndex" json:"student_fee_student_id"`

	// Expected amounts per component
	StudentFeeTuitionFirstTerm  int `gorm:"column:student_fee_tuition_first_term;type:int;not null;default:0;check:student_fee_tuition_first_term>=0" json:"student_fee_tuition_first_term"`
	StudentFeeTuitionSecondTerm int `gorm:"column:student_fee_tuition_second_term;type:int;not null;default:0;check:student_fee_tuition_second_term>=0" json:"student_fee_tuition_second_term"`
	StudentFeeTransport         int `gorm:"column:student_fee_transport;type:int;not null;default:0;check:student_fee_transport>=0" json:"student_fee_transport"`
	StudentFeeKit               int `gorm:"column:student_fee_kit;type:int;not null;default:0;check:student_fee_kit>=0" json:"student_fee_kit"`

	// Derived: total = sum of expected, balance = total - paid
	StudentFeeTotal   int `gorm:"column:student_fee_total;type:int;not null;default:0" json:"student_fee_total"`
	StudentFeePaid    int `gorm:"column:student_fee_paid;type:int;not null;default:0;check:student_fee_paid>=0" json:"student_fee_paid"`
	StudentFeeBalance int `gorm:"column:student_fee_balance;type:int;not null;default:0" json:"student_fee_balance"`

	// Cumulative paid per component
	StudentFeePaidTuitionFirstTerm  int `gorm:"column:student_fee_paid_tuition_first_term;type:int;not null;default:0" json:"student_fee_paid_tuition_first_term"`
	StudentFeePaidTuitionSecondTerm int `gorm:"column:student_fee_paid_tuition_second_term;type:int;not null;default:0" json:"student_fee_paid_tuition_second_term"`
	StudentFeePaidTransport         int `gorm:"column:student_fee_paid_transport;type:int;not null;default:0" json:"student_fee_paid_transport"`
	StudentFeePaidKit               int `gorm:"column:student_fee_paid_kit;type:int;not null;default:0" json:"student_fee_paid_kit"`

	// Audit
	StudentFeeCreatedAt time.Time `gorm:"column:student_fee_created_at;type:timestamptz;not null;autoCreateTime" json:"student_fee_created_at"`
	StudentFeeUpdatedAt time.Time `gorm:"column:student_fee_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_fee_updated_at"`
}

func (StudentFee) TableName() string { return "student_fees" }

/* ======================================
   HOOKS — keep derived totals honest
====================================== */

func (m *StudentFee) BeforeCreate(tx *gorm.DB) error {
	m.Recompute()
	return nil
}

func (m *StudentFee) BeforeUpdate(tx *gorm.DB) error {
	m.Recompute()
	return nil
}

/* ======================================
   Accessors per component
====================================== */

func (m *StudentFee) Expected() ExpectedAmounts {
	return ExpectedAmounts{
		TuitionFirstTerm:  m.StudentFeeTuitionFirstTerm,
		TuitionSecondTerm: m.StudentFeeTuitionSecondTerm,
		Transport:         m.StudentFeeTransport,
		Kit:               m.StudentFeeKit,
	}
}

// SetExpected replaces the expected amounts (promotion). Paid aggregates and
// history are untouched; callers must Recompute (the hooks do it on save).
func (m *StudentFee) SetExpected(e ExpectedAmounts) {
	m.StudentFeeTuitionFirstTerm = e.TuitionFirstTerm
	m.StudentFeeTuitionSecondTerm = e.TuitionSecondTerm
	m.StudentFeeTransport = e.Transport
	m.StudentFeeKit = e.Kit
}

func (m *StudentFee) ExpectedFor(k ComponentKey) int {
	return m.Expected().For(k)
}

func (m *StudentFee) PaidFor(k ComponentKey) int {
	switch k {
	case ComponentTuitionFirstTerm:
		return m.StudentFeePaidTuitionFirstTerm
	case ComponentTuitionSecondTerm:
		return m.StudentFeePaidTuitionSecondTerm
	case ComponentTransport:
		return m.StudentFeePaidTransport
	case ComponentKit:
		return m.StudentFeePaidKit
	}
	return 0
}

func (m *StudentFee) AddPaid(k ComponentKey, amount int) {
	switch k {
	case ComponentTuitionFirstTerm:
		m.StudentFeePaidTuitionFirstTerm += amount
	case ComponentTuitionSecondTerm:
		m.StudentFeePaidTuitionSecondTerm += amount
	case ComponentTransport:
		m.StudentFeePaidTransport += amount
	case ComponentKit:
		m.StudentFeePaidKit += amount
	}
}

// PaidComponents returns the per-component cumulative map in display order.
func (m *StudentFee) PaidComponents() map[ComponentKey]int {
	out := make(map[ComponentKey]int, len(AllComponents))
	for _, k := range AllComponents {
		out[k] = m.PaidFor(k)
	}
	return out
}

// StatusOf: a component is paid once its cumulative paid reaches the
// expected amount (a zero-expected component counts as paid).
func (m *StudentFee) StatusOf(k ComponentKey) ComponentStatus {
	if m.PaidFor(k) >= m.ExpectedFor(k) {
		return ComponentStatusPaid
	}
	return ComponentStatusPending
}

// Recompute refreshes the derived columns. Balance can go negative after a
// promotion lowers the expected amounts below what was already paid; that is
// displayed as-is, not treated as an error.
func (m *StudentFee) Recompute() {
	m.StudentFeeTotal = m.Expected().Total()
	m.StudentFeeBalance = m.StudentFeeTotal - m.StudentFeePaid
}
