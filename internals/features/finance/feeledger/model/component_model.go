package model

/* ==============================
   ENUM — fee components
============================== */

// ComponentKey is the closed set of chargeable fee categories. Keys match the
// dotted names the frontend sends in payment breakdowns.
type ComponentKey string

const (
	ComponentTuitionFirstTerm  ComponentKey = "tuition.firstTerm"
	ComponentTuitionSecondTerm ComponentKey = "tuition.secondTerm"
	ComponentTransport         ComponentKey = "transport"
	ComponentKit               ComponentKey = "kit"
)

// AllComponents in display order. Used wherever deterministic ordering
// matters (summary rows, receipt lines, paid-for tags).
var AllComponents = []ComponentKey{
	ComponentTuitionFirstTerm,
	ComponentTuitionSecondTerm,
	ComponentTransport,
	ComponentKit,
}

func (k ComponentKey) Valid() bool {
	switch k {
	case ComponentTuitionFirstTerm, ComponentTuitionSecondTerm, ComponentTransport, ComponentKit:
		return true
	}
	return false
}

// Label is the human label used on receipts and summaries.
func (k ComponentKey) Label() string {
	switch k {
	case ComponentTuitionFirstTerm:
		return "First Term Tuition"
	case ComponentTuitionSecondTerm:
		return "Second Term Tuition"
	case ComponentTransport:
		return "Transport"
	case ComponentKit:
		return "Kit"
	}
	return string(k)
}

/* ==============================
   ENUM — component status
============================== */

type ComponentStatus string

const (
	ComponentStatusPending ComponentStatus = "pending"
	ComponentStatusPaid    ComponentStatus = "paid"
)

/* ==============================
   ENUM — payment mode
============================== */

type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "cash"
	PaymentModeUPI      PaymentMode = "upi"
	PaymentModeRazorpay PaymentMode = "razorpay"
	PaymentModeCard     PaymentMode = "card"
	PaymentModeCheque   PaymentMode = "cheque"
	PaymentModeGateway  PaymentMode = "gateway"
	PaymentModeOther    PaymentMode = "other"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeRazorpay, PaymentModeCard,
		PaymentModeCheque, PaymentModeGateway, PaymentModeOther:
		return true
	}
	return false
}

/* ==============================
   Expected amounts per component
============================== */

// ExpectedAmounts is a class's charge sheet for one student: the expected
// amount per component. Transport is 0 when the student opted out.
type ExpectedAmounts struct {
	TuitionFirstTerm  int `json:"tuition_first_term"`
	TuitionSecondTerm int `json:"tuition_second_term"`
	Transport         int `json:"transport"`
	Kit               int `json:"kit"`
}

func (e ExpectedAmounts) Total() int {
	return e.TuitionFirstTerm + e.TuitionSecondTerm + e.Transport + e.Kit
}

func (e ExpectedAmounts) For(k ComponentKey) int {
	switch k {
	case ComponentTuitionFirstTerm:
		return e.TuitionFirstTerm
	case ComponentTuitionSecondTerm:
		return e.TuitionSecondTerm
	case ComponentTransport:
		return e.Transport
	case ComponentKit:
		return e.Kit
	}
	return 0
}

func (e ExpectedAmounts) Negative() bool {
	return e.TuitionFirstTerm < 0 || e.TuitionSecondTerm < 0 || e.Transport < 0 || e.Kit < 0
}
