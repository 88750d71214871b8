package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   LedgerStore — storage capability of the ledger
========================================================= */

// LedgerStore abstracts the persisted student fee record so the ledger logic
// is storage-agnostic. ApplyPayment and ApplyPromotion must run their mutate
// callback under per-student mutual exclusion and persist all-or-nothing.
type LedgerStore interface {
	// FeeFor returns the fee structure, or ErrStudentNotFound.
	FeeFor(ctx context.Context, studentID uuid.UUID) (*model.StudentFee, error)

	// PaymentsFor returns the payment history, newest first.
	PaymentsFor(ctx context.Context, studentID uuid.UUID) ([]model.FeePayment, error)

	// PaymentByID returns one payment of the student, or ErrStudentNotFound.
	PaymentByID(ctx context.Context, studentID, paymentID uuid.UUID) (*model.FeePayment, error)

	// ApplyPayment locks the student's fee row, runs mutate, then persists the
	// mutated fee and the returned payment in one transaction. A non-nil error
	// from mutate aborts with no state change.
	ApplyPayment(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) (*model.FeePayment, error)) (*model.StudentFee, *model.FeePayment, error)

	// ApplyPromotion locks the student's fee row, runs mutate and persists.
	ApplyPromotion(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) error) (*model.StudentFee, error)
}

/* =========================================================
   GormStore — Postgres implementation
========================================================= */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) FeeFor(ctx context.Context, studentID uuid.UUID) (*model.StudentFee, error) {
	var fee model.StudentFee
	if err := s.DB.WithContext(ctx).
		First(&fee, "student_fee_student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &fee, nil
}

func (s *GormStore) PaymentsFor(ctx context.Context, studentID uuid.UUID) ([]model.FeePayment, error) {
	var list []model.FeePayment
	if err := s.DB.WithContext(ctx).
		Where("fee_payment_student_id = ?", studentID).
		Order("fee_payment_date DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return list, nil
}

func (s *GormStore) PaymentByID(ctx context.Context, studentID, paymentID uuid.UUID) (*model.FeePayment, error) {
	var p model.FeePayment
	if err := s.DB.WithContext(ctx).
		First(&p, "fee_payment_id = ? AND fee_payment_student_id = ?", paymentID, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &p, nil
}

// ApplyPayment serializes concurrent payments for the same student via a
// row-level SELECT ... FOR UPDATE, so two requests can never jointly overpay
// a component (the second one re-reads the committed state).
func (s *GormStore) ApplyPayment(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) (*model.FeePayment, error)) (*model.StudentFee, *model.FeePayment, error) {
	var fee model.StudentFee
	var pay *model.FeePayment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&fee, "student_fee_student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		p, err := mutate(&fee)
		if err != nil {
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if err := tx.Save(&fee).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		pay = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &fee, pay, nil
}

func (s *GormStore) ApplyPromotion(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) error) (*model.StudentFee, error) {
	var fee model.StudentFee

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&fee, "student_fee_student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if err := mutate(&fee); err != nil {
			return err
		}
		if err := tx.Save(&fee).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &fee, nil
}
