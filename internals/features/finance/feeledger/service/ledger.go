package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   Ledger — fee structure + payment history consistency
========================================================= */

// Ledger keeps a student's fee aggregate and its append-only payment history
// consistent. All mutations go through the store's per-student lock, so after
// every successful operation:
//
//	paid    == sum of all payment amounts
//	balance == total - paid
//	paid per component <= expected per component
type Ledger struct {
	Store LedgerStore
}

func NewLedger(store LedgerStore) *Ledger { return &Ledger{Store: store} }

// ComponentSummary is one row of the fee summary.
type ComponentSummary struct {
	Component model.ComponentKey    `json:"component"`
	Label     string                `json:"label"`
	Expected  int                   `json:"expected"`
	Paid      int                   `json:"paid"`
	Status    model.ComponentStatus `json:"status"`
}

// FeeSummary is the read model for the fees screen and receipts.
type FeeSummary struct {
	Fee        model.StudentFee   `json:"fee"`
	Components []ComponentSummary `json:"components"`
}

/* =========================================================
   Writes
========================================================= */

// RecordPayment validates and applies one payment transaction atomically.
// The breakdown allocates the transaction across components; the transaction
// amount is the sum of the breakdown values.
//
// Failure modes: ErrInvalidComponent (unknown key), ErrInvalidAmount
// (non-positive value or empty breakdown), ErrOverpayment (a component would
// exceed its expected amount), ErrStudentNotFound. On any failure no state
// changes.
func (l *Ledger) RecordPayment(ctx context.Context, studentID uuid.UUID, breakdown map[model.ComponentKey]int, mode model.PaymentMode, reference *string) (*model.StudentFee, *model.FeePayment, error) {
	if len(breakdown) == 0 {
		return nil, nil, fmt.Errorf("%w: empty breakdown", ErrInvalidAmount)
	}
	amount := 0
	for k, v := range breakdown {
		if !k.Valid() {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidComponent, string(k))
		}
		if v <= 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrInvalidAmount, k.Label())
		}
		amount += v
	}
	if !mode.Valid() {
		mode = model.PaymentModeOther
	}

	return l.Store.ApplyPayment(ctx, studentID, func(fee *model.StudentFee) (*model.FeePayment, error) {
		// Overpayment precondition, checked against the locked row.
		for _, k := range model.AllComponents {
			v, ok := breakdown[k]
			if !ok {
				continue
			}
			if fee.PaidFor(k)+v > fee.ExpectedFor(k) {
				return nil, fmt.Errorf("%w: %s", ErrOverpayment, k.Label())
			}
		}

		for k, v := range breakdown {
			fee.AddPaid(k, v)
		}
		fee.StudentFeePaid += amount
		fee.Recompute()

		return &model.FeePayment{
			FeePaymentStudentID: studentID,
			FeePaymentAmount:    amount,
			FeePaymentMode:      mode,
			FeePaymentBreakdown: datatypes.NewJSONType(breakdown),
			FeePaymentPaidFor:   model.DescribeBreakdown(breakdown),
			FeePaymentTerm:      model.TermTag(breakdown),
			FeePaymentReference: reference,
			FeePaymentDate:      time.Now(),
		}, nil
	})
}

// ApplyPromotion replaces the expected amounts for the student's new class,
// carrying paid totals, per-component paid and history over. The balance is
// recomputed against the new total and may come out negative when the old
// class was overpaid relative to the new one; that is a display-only oddity.
func (l *Ledger) ApplyPromotion(ctx context.Context, studentID uuid.UUID, next model.ExpectedAmounts) (*model.StudentFee, error) {
	if next.Negative() {
		return nil, fmt.Errorf("%w: expected amounts must not be negative", ErrInvalidAmount)
	}
	return l.Store.ApplyPromotion(ctx, studentID, func(fee *model.StudentFee) error {
		fee.SetExpected(next)
		fee.Recompute()
		return nil
	})
}

/* =========================================================
   Reads
========================================================= */

func (l *Ledger) FeeSummary(ctx context.Context, studentID uuid.UUID) (*FeeSummary, error) {
	fee, err := l.Store.FeeFor(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return Summarize(fee), nil
}

func (l *Ledger) PaymentHistory(ctx context.Context, studentID uuid.UUID) ([]model.FeePayment, error) {
	return l.Store.PaymentsFor(ctx, studentID)
}

func (l *Ledger) Payment(ctx context.Context, studentID, paymentID uuid.UUID) (*model.FeePayment, error) {
	return l.Store.PaymentByID(ctx, studentID, paymentID)
}

// Summarize builds the read model from a fee snapshot.
func Summarize(fee *model.StudentFee) *FeeSummary {
	out := &FeeSummary{Fee: *fee}
	for _, k := range model.AllComponents {
		out.Components = append(out.Components, ComponentSummary{
			Component: k,
			Label:     k.Label(),
			Expected:  fee.ExpectedFor(k),
			Paid:      fee.PaidFor(k),
			Status:    fee.StatusOf(k),
		})
	}
	return out
}
