package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

func TestBuildReceiptPDF(t *testing.T) {
	term := "Term 1"
	breakdown := map[model.ComponentKey]int{
		model.ComponentTuitionFirstTerm: 27500,
		model.ComponentKit:              5000,
	}
	data := ReceiptData{
		SchoolName:  "Sunrise Public School",
		StudentName: "Asha Verma",
		AdmissionNo: "ADM-2031",
		ClassName:   "Grade 5",
		Payment: model.FeePayment{
			FeePaymentID:        uuid.New(),
			FeePaymentStudentID: uuid.New(),
			FeePaymentAmount:    32500,
			FeePaymentMode:      model.PaymentModeUPI,
			FeePaymentBreakdown: datatypes.NewJSONType(breakdown),
			FeePaymentPaidFor:   model.DescribeBreakdown(breakdown),
			FeePaymentTerm:      &term,
			FeePaymentDate:      time.Date(2026, 4, 7, 10, 30, 0, 0, time.UTC),
		},
		Fee: model.StudentFee{
			StudentFeeTotal:   70000,
			StudentFeePaid:    32500,
			StudentFeeBalance: 37500,
		},
	}

	pdf, err := BuildReceiptPDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildReceiptPDF_DefaultsSchoolName(t *testing.T) {
	breakdown := map[model.ComponentKey]int{model.ComponentTransport: 1500}
	data := ReceiptData{
		StudentName: "Ravi Kumar",
		Payment: model.FeePayment{
			FeePaymentID:        uuid.New(),
			FeePaymentAmount:    1500,
			FeePaymentMode:      model.PaymentModeCash,
			FeePaymentBreakdown: datatypes.NewJSONType(breakdown),
			FeePaymentPaidFor:   model.DescribeBreakdown(breakdown),
			FeePaymentDate:      time.Now(),
		},
	}

	pdf, err := BuildReceiptPDF(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
