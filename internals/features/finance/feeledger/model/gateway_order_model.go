package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — gateway order status
============================== */

type GatewayOrderStatus string

const (
	GatewayOrderStatusInitiated GatewayOrderStatus = "initiated"
	GatewayOrderStatusSettled   GatewayOrderStatus = "settled"
	GatewayOrderStatusExpired   GatewayOrderStatus = "expired"
	GatewayOrderStatusCanceled  GatewayOrderStatus = "canceled"
	GatewayOrderStatusFailed    GatewayOrderStatus = "failed"
)

/* ==============================================
   MODEL — gateway_orders
============================================== */

// GatewayOrder tracks an online checkout from Snap token creation until the
// settlement webhook lands. The ledger itself only changes on settlement;
// an order is not a payment.
type GatewayOrder struct {
	// PK
	GatewayOrderID uuid.UUID `gorm:"column:gateway_order_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"gateway_order_id"`

	// External order ref sent to the gateway (OrderID)
	GatewayOrderRef string `gorm:"column:gateway_order_ref;type:varchar(64);not null;uniqueIndex" json:"gateway_order_ref"`

	// FK → students(student_id)
	GatewayOrderStudentID uuid.UUID `gorm:"column:gateway_order_student_id;type:uuid;not null;index" json:"gateway_order_student_id"`

	// Amount + intended allocation, frozen at checkout time
	GatewayOrderAmount    int                                       `gorm:"column:gateway_order_amount;type:int;not null;check:gateway_order_amount>0" json:"gateway_order_amount"`
	GatewayOrderBreakdown datatypes.JSONType[map[ComponentKey]int] `gorm:"column:gateway_order_breakdown;type:jsonb;not null" json:"gateway_order_breakdown"`

	// Status
	GatewayOrderStatus    GatewayOrderStatus `gorm:"column:gateway_order_status;type:varchar(20);not null;default:'initiated';index" json:"gateway_order_status"`
	GatewayOrderSettledAt *time.Time         `gorm:"column:gateway_order_settled_at;type:timestamptz" json:"gateway_order_settled_at,omitempty"`
	GatewayOrderNote      *string            `gorm:"column:gateway_order_note;type:text" json:"gateway_order_note,omitempty"`

	// Snap artifacts
	GatewayOrderSnapToken   *string `gorm:"column:gateway_order_snap_token;type:text" json:"gateway_order_snap_token,omitempty"`
	GatewayOrderRedirectURL *string `gorm:"column:gateway_order_redirect_url;type:text" json:"gateway_order_redirect_url,omitempty"`

	// Audit
	GatewayOrderCreatedAt time.Time `gorm:"column:gateway_order_created_at;type:timestamptz;not null;autoCreateTime" json:"gateway_order_created_at"`
	GatewayOrderUpdatedAt time.Time `gorm:"column:gateway_order_updated_at;type:timestamptz;not null;autoUpdateTime" json:"gateway_order_updated_at"`
}

func (GatewayOrder) TableName() string { return "gateway_orders" }

func (m *GatewayOrder) BeforeCreate(tx *gorm.DB) error {
	if m.GatewayOrderRef == "" {
		m.GatewayOrderRef = "FEE-" + uuid.NewString()
	}
	return nil
}
