package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeBreakdown_DisplayOrder(t *testing.T) {
	got := DescribeBreakdown(map[ComponentKey]int{
		ComponentKit:              5000,
		ComponentTuitionFirstTerm: 27500,
	})
	assert.Equal(t, "First Term Tuition + Kit", got)

	got = DescribeBreakdown(map[ComponentKey]int{ComponentTransport: 1500})
	assert.Equal(t, "Transport", got)
}

func TestTermTag(t *testing.T) {
	tag := TermTag(map[ComponentKey]int{ComponentTuitionFirstTerm: 100})
	require.NotNil(t, tag)
	assert.Equal(t, "Term 1", *tag)

	tag = TermTag(map[ComponentKey]int{ComponentTuitionSecondTerm: 100, ComponentKit: 50})
	require.NotNil(t, tag)
	assert.Equal(t, "Term 2", *tag)

	tag = TermTag(map[ComponentKey]int{
		ComponentTuitionFirstTerm:  100,
		ComponentTuitionSecondTerm: 100,
	})
	require.NotNil(t, tag)
	assert.Equal(t, "Term 1 & 2", *tag)

	assert.Nil(t, TermTag(map[ComponentKey]int{ComponentKit: 50}))
}

func TestStudentFee_Recompute(t *testing.T) {
	fee := StudentFee{
		StudentFeeTuitionFirstTerm:  27500,
		StudentFeeTuitionSecondTerm: 27500,
		StudentFeeKit:               15000,
		StudentFeePaid:              30000,
	}
	fee.Recompute()
	assert.Equal(t, 70000, fee.StudentFeeTotal)
	assert.Equal(t, 40000, fee.StudentFeeBalance)
}

func TestStudentFee_StatusOf(t *testing.T) {
	fee := StudentFee{
		StudentFeeTuitionFirstTerm: 27500,
		StudentFeeTransport:        0,
	}
	assert.Equal(t, ComponentStatusPending, fee.StatusOf(ComponentTuitionFirstTerm))
	// zero-expected components count as paid
	assert.Equal(t, ComponentStatusPaid, fee.StatusOf(ComponentTransport))

	fee.AddPaid(ComponentTuitionFirstTerm, 27500)
	assert.Equal(t, ComponentStatusPaid, fee.StatusOf(ComponentTuitionFirstTerm))
}
