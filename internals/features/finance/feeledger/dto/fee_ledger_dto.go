package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/finance/feeledger/model"
	"schoolhub_backend/internals/features/finance/feeledger/service"
)

/* ==============================
   Requests
============================== */

// RecordPaymentRequest is the body of POST /students/:id/fee-payment.
// Breakdown keys are the dotted component names; values are whole rupees.
type RecordPaymentRequest struct {
	PaymentBreakdown map[string]int `json:"payment_breakdown" validate:"required,min=1"`
	PaymentMethod    string         `json:"payment_method" validate:"required,oneof=cash upi razorpay card cheque other"`
	Reference        *string        `json:"reference,omitempty" validate:"omitempty,max=64"`
}

func (r RecordPaymentRequest) Breakdown() map[model.ComponentKey]int {
	out := make(map[model.ComponentKey]int, len(r.PaymentBreakdown))
	for k, v := range r.PaymentBreakdown {
		out[model.ComponentKey(k)] = v
	}
	return out
}

// CheckoutRequest is the body of POST /students/:id/fee-checkout.
type CheckoutRequest struct {
	PaymentBreakdown map[string]int `json:"payment_breakdown" validate:"required,min=1"`
	Email            string         `json:"email" validate:"omitempty,email"`
	Phone            string         `json:"phone" validate:"omitempty,max=20"`
}

func (r CheckoutRequest) Breakdown() map[model.ComponentKey]int {
	out := make(map[model.ComponentKey]int, len(r.PaymentBreakdown))
	for k, v := range r.PaymentBreakdown {
		out[model.ComponentKey(k)] = v
	}
	return out
}

/* ==============================
   Responses
============================== */

type FeePaymentResponse struct {
	ID        uuid.UUID                  `json:"id"`
	StudentID uuid.UUID                  `json:"student_id"`
	Amount    int                        `json:"amount"`
	Mode      model.PaymentMode          `json:"mode"`
	Breakdown map[model.ComponentKey]int `json:"breakdown"`
	PaidFor   string                     `json:"paid_for"`
	Term      *string                    `json:"term,omitempty"`
	Reference *string                    `json:"reference,omitempty"`
	Date      time.Time                  `json:"date"`
}

func ToFeePaymentResponse(m model.FeePayment) FeePaymentResponse {
	return FeePaymentResponse{
		ID:        m.FeePaymentID,
		StudentID: m.FeePaymentStudentID,
		Amount:    m.FeePaymentAmount,
		Mode:      m.FeePaymentMode,
		Breakdown: m.Breakdown(),
		PaidFor:   m.FeePaymentPaidFor,
		Term:      m.FeePaymentTerm,
		Reference: m.FeePaymentReference,
		Date:      m.FeePaymentDate,
	}
}

func ToFeePaymentResponses(list []model.FeePayment) []FeePaymentResponse {
	out := make([]FeePaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeePaymentResponse(m))
	}
	return out
}

type FeeSummaryResponse struct {
	Tuition struct {
		FirstTerm  int `json:"first_term"`
		SecondTerm int `json:"second_term"`
	} `json:"tuition"`
	Transport int `json:"transport"`
	Kit       int `json:"kit"`

	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Balance int `json:"balance"`

	PaidComponents map[model.ComponentKey]int `json:"paid_components"`
	Components     []service.ComponentSummary `json:"components"`
}

func ToFeeSummaryResponse(s *service.FeeSummary) FeeSummaryResponse {
	var out FeeSummaryResponse
	out.Tuition.FirstTerm = s.Fee.StudentFeeTuitionFirstTerm
	out.Tuition.SecondTerm = s.Fee.StudentFeeTuitionSecondTerm
	out.Transport = s.Fee.StudentFeeTransport
	out.Kit = s.Fee.StudentFeeKit
	out.Total = s.Fee.StudentFeeTotal
	out.Paid = s.Fee.StudentFeePaid
	out.Balance = s.Fee.StudentFeeBalance
	out.PaidComponents = s.Fee.PaidComponents()
	out.Components = s.Components
	return out
}

type GatewayOrderResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Ref         string                     `json:"ref"`
	StudentID   uuid.UUID                  `json:"student_id"`
	Amount      int                        `json:"amount"`
	Breakdown   map[model.ComponentKey]int `json:"breakdown"`
	Status      model.GatewayOrderStatus   `json:"status"`
	SnapToken   *string                    `json:"snap_token,omitempty"`
	RedirectURL *string                    `json:"redirect_url,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

func ToGatewayOrderResponse(m model.GatewayOrder) GatewayOrderResponse {
	return GatewayOrderResponse{
		ID:          m.GatewayOrderID,
		Ref:         m.GatewayOrderRef,
		StudentID:   m.GatewayOrderStudentID,
		Amount:      m.GatewayOrderAmount,
		Breakdown:   m.GatewayOrderBreakdown.Data(),
		Status:      m.GatewayOrderStatus,
		SnapToken:   m.GatewayOrderSnapToken,
		RedirectURL: m.GatewayOrderRedirectURL,
		CreatedAt:   m.GatewayOrderCreatedAt,
	}
}
