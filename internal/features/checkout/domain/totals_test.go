package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingPolicy_ComputeTotals(t *testing.T) {
	policy := ShippingPolicy{Fee: 15000, FreeThreshold: 100000}

	t.Run("BelowThresholdPaysShipping", func(t *testing.T) {
		totals := policy.ComputeTotals(50000)
		assert.Equal(t, Totals{Subtotal: 50000, Shipping: 15000, Total: 65000}, totals)
	})

	t.Run("AboveThresholdShipsFree", func(t *testing.T) {
		totals := policy.ComputeTotals(100001)
		assert.Equal(t, Totals{Subtotal: 100001, Shipping: 0, Total: 100001}, totals)
	})

	t.Run("ExactlyAtThresholdPaysShipping", func(t *testing.T) {
		totals := policy.ComputeTotals(100000)
		assert.Equal(t, float64(15000), totals.Shipping)
	})

	t.Run("ZeroSubtotalIsAllZero", func(t *testing.T) {
		assert.Equal(t, Totals{}, policy.ComputeTotals(0))
	})
}
