package Calculations

import (
	"testing"

	"Himal/Models"

	"github.com/stretchr/testify/assert"
)

func TestComputePurchaseTotalsTaxable(t *testing.T) {
	items := []Models.POItem{
		{Description: "Corrugated sheet", Quantity: 100, Rate: 45.5},
		{Description: "Stitching wire", Quantity: 10, Rate: 120},
	}

	subtotal, vat, grand := ComputePurchaseTotals(items, "Taxable")
	assert.InDelta(t, 5750, subtotal, 1e-9)
	assert.InDelta(t, 5750*0.13, vat, 1e-9)
	assert.InDelta(t, 5750*1.13, grand, 1e-9)
}

func TestComputePurchaseTotalsNonTaxable(t *testing.T) {
	items := []Models.POItem{{Quantity: 3, Rate: 99.99}}

	subtotal, vat, grand := ComputePurchaseTotals(items, "Non-Taxable")
	assert.InDelta(t, 299.97, subtotal, 1e-9)
	assert.Zero(t, vat)
	assert.InDelta(t, subtotal, grand, 1e-9)
}

func TestComputePurchaseTotalsEmpty(t *testing.T) {
	subtotal, vat, grand := ComputePurchaseTotals(nil, "Taxable")
	assert.Zero(t, subtotal)
	assert.Zero(t, vat)
	assert.Zero(t, grand)
}

func TestLeadTimeDays(t *testing.T) {
	days, ok := LeadTimeDays("2024-01-10", "2024-01-25")
	assert.True(t, ok)
	assert.Equal(t, 15, days)

	_, ok = LeadTimeDays("2024-01-10", "")
	assert.False(t, ok)

	_, ok = LeadTimeDays("not-a-date", "2024-01-25")
	assert.False(t, ok)
}
