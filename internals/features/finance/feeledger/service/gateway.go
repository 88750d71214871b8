package service

import (
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   Gateway client (Snap)
========================================================= */

var SnapClient snap.Client

var gatewayReady bool

// InitGateway must be called during bootstrap. useProduction=false keeps the
// Sandbox environment.
func InitGateway(serverKey string, useProduction bool) {
	if strings.TrimSpace(serverKey) == "" {
		gatewayReady = false
		return
	}
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
	gatewayReady = true
}

// GatewayEnabled reports whether checkout is configured.
func GatewayEnabled() bool { return gatewayReady }

/* =========================================================
   Checkout
========================================================= */

type CheckoutCustomer struct {
	FullName string
	Email    string
	Phone    string
}

// CreateSnapTransaction asks the gateway for a Snap token for the given
// order. Item details mirror the intended breakdown so the payer sees the
// same split as the ledger will record on settlement.
func CreateSnapTransaction(order *model.GatewayOrder, cust CheckoutCustomer) (token string, redirectURL string, err error) {
	if !gatewayReady {
		return "", "", errors.New("payment gateway is not configured")
	}
	if order.GatewayOrderAmount <= 0 {
		return "", "", errors.New("invalid gateway order amount")
	}
	if order.GatewayOrderRef == "" {
		return "", "", errors.New("gateway order ref is required (used as OrderID)")
	}

	first, last := splitName(cust.FullName)
	breakdown := order.GatewayOrderBreakdown.Data()

	items := make([]midtrans.ItemDetails, 0, len(breakdown))
	for _, k := range model.AllComponents {
		v, ok := breakdown[k]
		if !ok {
			continue
		}
		items = append(items, midtrans.ItemDetails{
			ID:    string(k),
			Name:  k.Label(),
			Price: int64(v),
			Qty:   1,
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.GatewayOrderRef,
			GrossAmt: int64(order.GatewayOrderAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: first,
			LName: last,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &items,
	}

	resp, snapErr := SnapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", snapErr
	}
	return resp.Token, resp.RedirectURL, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "Student", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
