package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

func setupLedger(t *testing.T) (*Ledger, *MemoryStore, uuid.UUID) {
	t.Helper()
	store := NewMemoryStore()
	studentID := uuid.New()
	store.Seed(model.StudentFee{
		StudentFeeStudentID:         studentID,
		StudentFeeTuitionFirstTerm:  27500,
		StudentFeeTuitionSecondTerm: 27500,
		StudentFeeTransport:         0,
		StudentFeeKit:               15000,
	})
	return NewLedger(store), store, studentID
}

func TestRecordPayment_FirstTermFullyPaid(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	fee, payment, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentTuitionFirstTerm: 27500},
		model.PaymentModeCash, nil)
	require.NoError(t, err)

	assert.Equal(t, 70000, fee.StudentFeeTotal)
	assert.Equal(t, 27500, fee.StudentFeePaid)
	assert.Equal(t, 42500, fee.StudentFeeBalance)
	assert.Equal(t, 27500, fee.PaidFor(model.ComponentTuitionFirstTerm))
	assert.Equal(t, model.ComponentStatusPaid, fee.StatusOf(model.ComponentTuitionFirstTerm))
	assert.Equal(t, model.ComponentStatusPending, fee.StatusOf(model.ComponentTuitionSecondTerm))

	assert.Equal(t, 27500, payment.FeePaymentAmount)
	assert.Equal(t, model.PaymentModeCash, payment.FeePaymentMode)
	assert.Equal(t, "First Term Tuition", payment.FeePaymentPaidFor)
	require.NotNil(t, payment.FeePaymentTerm)
	assert.Equal(t, "Term 1", *payment.FeePaymentTerm)
}

func TestRecordPayment_OverpaymentRejectedAtomic(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	_, _, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentTuitionFirstTerm: 27500},
		model.PaymentModeCash, nil)
	require.NoError(t, err)

	// kit expected is 15000; 20000 must be rejected with no state change
	_, _, err = ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentKit: 20000},
		model.PaymentModeUPI, nil)
	require.ErrorIs(t, err, ErrOverpayment)

	summary, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 27500, summary.Fee.StudentFeePaid)
	assert.Equal(t, 0, summary.Fee.PaidFor(model.ComponentKit))

	history, err := ledger.PaymentHistory(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordPayment_MixedBreakdownRejectedWhollyOnOneBadComponent(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	// kit exceeds; the valid first-term portion must not be applied either
	_, _, err := ledger.RecordPayment(ctx, studentID, map[model.ComponentKey]int{
		model.ComponentTuitionFirstTerm: 10000,
		model.ComponentKit:              16000,
	}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrOverpayment)

	summary, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Fee.StudentFeePaid)
	assert.Equal(t, 0, summary.Fee.PaidFor(model.ComponentTuitionFirstTerm))
}

func TestRecordPayment_UnknownComponent(t *testing.T) {
	ledger, _, studentID := setupLedger(t)

	_, _, err := ledger.RecordPayment(context.Background(), studentID,
		map[model.ComponentKey]int{"library": 500}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrInvalidComponent)
}

func TestRecordPayment_NonPositiveAmount(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	_, _, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentKit: 0}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentKit: -100}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecordPayment_UnknownStudent(t *testing.T) {
	ledger, _, _ := setupLedger(t)

	_, _, err := ledger.RecordPayment(context.Background(), uuid.New(),
		map[model.ComponentKey]int{model.ComponentKit: 1000}, model.PaymentModeCash, nil)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestPaidEqualsSumOfHistory(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	payments := []map[model.ComponentKey]int{
		{model.ComponentTuitionFirstTerm: 10000},
		{model.ComponentTuitionFirstTerm: 17500, model.ComponentKit: 5000},
		{model.ComponentKit: 10000},
		{model.ComponentTuitionSecondTerm: 27500},
	}
	for _, b := range payments {
		_, _, err := ledger.RecordPayment(ctx, studentID, b, model.PaymentModeUPI, nil)
		require.NoError(t, err)
	}

	summary, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	history, err := ledger.PaymentHistory(ctx, studentID)
	require.NoError(t, err)

	sum := 0
	for _, p := range history {
		sum += p.FeePaymentAmount
	}
	assert.Equal(t, sum, summary.Fee.StudentFeePaid)
	assert.Equal(t, summary.Fee.StudentFeeTotal-sum, summary.Fee.StudentFeeBalance)
	assert.Equal(t, 0, summary.Fee.StudentFeeBalance) // everything paid up

	for _, row := range summary.Components {
		assert.LessOrEqual(t, row.Paid, row.Expected)
	}
}

func TestFeeSummary_ReadIsIdempotent(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	_, _, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentKit: 5000}, model.PaymentModeCash, nil)
	require.NoError(t, err)

	a, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	b, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPaymentHistory_NewestFirst(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	for _, amt := range []int{1000, 2000, 3000} {
		_, _, err := ledger.RecordPayment(ctx, studentID,
			map[model.ComponentKey]int{model.ComponentKit: amt}, model.PaymentModeCash, nil)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	history, err := ledger.PaymentHistory(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i-1].FeePaymentDate.Before(history[i].FeePaymentDate),
			"history must be date descending")
	}
	assert.Equal(t, 3000, history[0].FeePaymentAmount)
}

func TestApplyPromotion_CarriesPaidAndHistory(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	_, _, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentTuitionFirstTerm: 27500},
		model.PaymentModeCash, nil)
	require.NoError(t, err)

	fee, err := ledger.ApplyPromotion(ctx, studentID, model.ExpectedAmounts{
		TuitionFirstTerm:  37500,
		TuitionSecondTerm: 37500,
		Transport:         0,
		Kit:               15000,
	})
	require.NoError(t, err)

	assert.Equal(t, 90000, fee.StudentFeeTotal)
	assert.Equal(t, 27500, fee.StudentFeePaid)
	assert.Equal(t, 62500, fee.StudentFeeBalance)
	assert.Equal(t, 27500, fee.PaidFor(model.ComponentTuitionFirstTerm))

	history, err := ledger.PaymentHistory(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestApplyPromotion_NegativeBalanceIsDisplayed(t *testing.T) {
	ledger, _, studentID := setupLedger(t)
	ctx := context.Background()

	_, _, err := ledger.RecordPayment(ctx, studentID,
		map[model.ComponentKey]int{model.ComponentKit: 15000}, model.PaymentModeCash, nil)
	require.NoError(t, err)

	// new class charges less than already paid; balance goes negative, no error
	fee, err := ledger.ApplyPromotion(ctx, studentID, model.ExpectedAmounts{Kit: 10000})
	require.NoError(t, err)
	assert.Equal(t, -5000, fee.StudentFeeBalance)
}

func TestApplyPromotion_RejectsNegativeAmounts(t *testing.T) {
	ledger, _, studentID := setupLedger(t)

	_, err := ledger.ApplyPromotion(context.Background(), studentID,
		model.ExpectedAmounts{TuitionFirstTerm: -1})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

// Two concurrent payments of 10000 against an expected transport of 15000:
// at most one may succeed, and the ledger must stay within the cap.
func TestRecordPayment_ConcurrentNeverJointlyOverpay(t *testing.T) {
	store := NewMemoryStore()
	studentID := uuid.New()
	store.Seed(model.StudentFee{
		StudentFeeStudentID: studentID,
		StudentFeeTransport: 15000,
	})
	ledger := NewLedger(store)
	ctx := context.Background()

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = ledger.RecordPayment(ctx, studentID,
				map[model.ComponentKey]int{model.ComponentTransport: 10000},
				model.PaymentModeUPI, nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrOverpayment)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of the two 10000 payments may land")

	summary, err := ledger.FeeSummary(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 10000, summary.Fee.PaidFor(model.ComponentTransport))
	assert.LessOrEqual(t, summary.Fee.PaidFor(model.ComponentTransport), 15000)
}
