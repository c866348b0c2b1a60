package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Price: 25, Size: SizeSelection{Name: "M", Quantity: 2}},
		{Price: 40, Size: SizeSelection{Name: "L", Quantity: 1}},
	}
	assert.InDelta(t, 90.0, OrderTotal(items), 0.001)
	assert.Zero(t, OrderTotal(nil))
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusProcessing, true},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCancel(tt.status))
		})
	}
}

func TestIsWalletMethod(t *testing.T) {
	assert.True(t, IsWalletMethod(PaymentMethodBkash))
	assert.True(t, IsWalletMethod(PaymentMethodNagad))
	assert.False(t, IsWalletMethod(PaymentMethodCOD))
	assert.False(t, IsWalletMethod(PaymentMethodCreditCard))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(s))
	}
	assert.False(t, IsValidOrderStatus("refunded"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, IsValidPaymentMethod(m))
	}
	assert.False(t, IsValidPaymentMethod("bitcoin"))
}
