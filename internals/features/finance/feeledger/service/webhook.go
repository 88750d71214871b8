package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   Gateway webhook → ledger settlement
========================================================= */

// HandleGatewayWebhook processes a gateway notification. On settlement the
// ledger records the payment with the breakdown frozen at checkout time; if
// that payment now violates the overpayment precondition (e.g. a cash payment
// landed in between), the order is marked failed instead of corrupting the
// ledger. Re-delivered notifications for a settled order are no-ops.
func HandleGatewayWebhook(ctx context.Context, db *gorm.DB, ledger *Ledger, body map[string]interface{}) error {
	orderRef, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] incomplete webhook payload:", body)
		return fmt.Errorf("invalid payload")
	}

	var order model.GatewayOrder
	if err := db.WithContext(ctx).
		First(&order, "gateway_order_ref = ?", orderRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("gateway order %s not found", orderRef)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if order.GatewayOrderStatus == model.GatewayOrderStatusSettled {
		log.Printf("[INFO] order %s already settled, ignoring duplicate notification", orderRef)
		return nil
	}

	switch status {
	case "capture", "settlement":
		ref := order.GatewayOrderRef
		_, _, err := ledger.RecordPayment(ctx, order.GatewayOrderStudentID,
			order.GatewayOrderBreakdown.Data(), model.PaymentModeGateway, &ref)
		if err != nil {
			note := err.Error()
			order.GatewayOrderStatus = model.GatewayOrderStatusFailed
			order.GatewayOrderNote = &note
			if saveErr := db.WithContext(ctx).Save(&order).Error; saveErr != nil {
				return fmt.Errorf("%w: %v", ErrPersistence, saveErr)
			}
			return err
		}
		now := time.Now()
		order.GatewayOrderStatus = model.GatewayOrderStatusSettled
		order.GatewayOrderSettledAt = &now

	case "expire":
		order.GatewayOrderStatus = model.GatewayOrderStatusExpired
	case "cancel", "deny":
		order.GatewayOrderStatus = model.GatewayOrderStatusCanceled
	default:
		log.Println("[INFO] unhandled transaction status:", status)
		return nil
	}

	if err := db.WithContext(ctx).Save(&order).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
